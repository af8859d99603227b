package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"merchant-be/internal/common"
	"merchant-be/internal/entities"
	"merchant-be/internal/models"
)

// fakeUserRepo is an in-memory UserRepository with a unique email constraint
type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]*entities.User
	findErr error
	// hideExisting makes FindByEmail miss, simulating a concurrent insert racing the existence check
	hideExisting bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[primitive.ObjectID]*entities.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entities.User) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrConflict
		}
	}
	cp := *u
	cp.ID = primitive.NewObjectID()
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.hideExisting {
		return nil, common.ErrNotFound
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrNotFound
	}
	u, ok := f.byID[oid]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp, nil
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

// fakeMerchantRepo is an in-memory MerchantRepository ordered by insertion
type fakeMerchantRepo struct {
	mu         sync.Mutex
	items      []*entities.Merchant
	lastQuery  models.ListMerchantsQuery
	lastFilter models.MerchantFilter
}

func (f *fakeMerchantRepo) Create(_ context.Context, m *entities.Merchant) (*entities.Merchant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.Email == m.Email {
			return nil, common.ErrConflict
		}
	}
	cp := *m
	cp.ID = primitive.NewObjectID()
	f.items = append(f.items, &cp)
	out := cp
	return &out, nil
}

func (f *fakeMerchantRepo) FindByEmail(_ context.Context, email string) (*entities.Merchant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.items {
		if m.Email == email {
			cp := *m
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeMerchantRepo) FindByID(_ context.Context, id string) (*entities.Merchant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.indexOf(id); i >= 0 {
		cp := *f.items[i]
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeMerchantRepo) List(_ context.Context, q models.ListMerchantsQuery) ([]*entities.Merchant, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q

	var matched []*entities.Merchant
	for _, m := range f.items {
		if q.SearchQuery != "" {
			needle := strings.ToLower(q.SearchQuery)
			if !strings.Contains(strings.ToLower(m.MerchantName), needle) &&
				!strings.Contains(strings.ToLower(m.Email), needle) {
				continue
			}
		}
		if q.DateFrom != nil && q.DateTo != nil {
			if m.CreatedAt.Before(*q.DateFrom) || m.CreatedAt.After(*q.DateTo) {
				continue
			}
		}
		matched = append(matched, m)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID.Hex() < matched[j].ID.Hex() })

	start := (q.Page - 1) * q.PageSize
	page := make([]*entities.Merchant, 0)
	for i := start; i < start+q.PageSize && i < int64(len(matched)); i++ {
		cp := *matched[i]
		page = append(page, &cp)
	}
	return page, int64(len(matched)), nil
}

func (f *fakeMerchantRepo) Filter(_ context.Context, flt models.MerchantFilter) ([]*entities.Merchant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = flt

	out := make([]*entities.Merchant, 0)
	for _, m := range f.items {
		if flt.MerchantName != "" && !strings.Contains(strings.ToLower(m.MerchantName), strings.ToLower(flt.MerchantName)) {
			continue
		}
		if flt.Email != "" && !strings.Contains(strings.ToLower(m.Email), strings.ToLower(flt.Email)) {
			continue
		}
		if flt.Commission != nil && m.Commission != *flt.Commission {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeMerchantRepo) Update(_ context.Context, id string, name, email string, commission float64) (*entities.Merchant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexOf(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	for j, m := range f.items {
		if j != i && m.Email == email {
			return nil, common.ErrConflict
		}
	}
	f.items[i].MerchantName = name
	f.items[i].Email = email
	f.items[i].Commission = commission
	cp := *f.items[i]
	return &cp, nil
}

func (f *fakeMerchantRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexOf(id)
	if i < 0 {
		return common.ErrNotFound
	}
	f.items = append(f.items[:i], f.items[i+1:]...)
	return nil
}

func (f *fakeMerchantRepo) indexOf(id string) int {
	for i, m := range f.items {
		if m.ID.Hex() == id {
			return i
		}
	}
	return -1
}

func (f *fakeMerchantRepo) snapshot() []entities.Merchant {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.Merchant, len(f.items))
	for i, m := range f.items {
		out[i] = *m
	}
	return out
}
