package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"merchant-be/internal/common"
	"merchant-be/internal/entities"
	"merchant-be/internal/models"
	"merchant-be/internal/repository"
)

// MerchantService defines the interface for merchant business logic
type MerchantService interface {
	List(ctx context.Context, q models.ListMerchantsQuery) (*models.MerchantPage, error)
	Add(ctx context.Context, req *models.AddMerchantRequest) (*entities.Merchant, error)
	Update(ctx context.Context, id string, req *models.UpdateMerchantRequest) (*entities.Merchant, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*entities.Merchant, error)
	Filter(ctx context.Context, filterOption string) ([]*entities.Merchant, error)
}

type merchantService struct {
	repo repository.MerchantRepository
	now  func() time.Time
}

// NewMerchantService creates a new merchant service
func NewMerchantService(repo repository.MerchantRepository) MerchantService {
	return &merchantService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *merchantService) List(ctx context.Context, q models.ListMerchantsQuery) (*models.MerchantPage, error) {
	if q.Page < 1 || q.PageSize < 1 {
		return nil, fmt.Errorf("%w: page and pageSize must be positive", common.ErrBadRequest)
	}
	// the repository skips (Page-1)*PageSize documents
	if q.Page-1 > math.MaxInt64/q.PageSize {
		return nil, fmt.Errorf("%w: page is too large", common.ErrBadRequest)
	}

	merchants, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &models.MerchantPage{Merchants: merchants, Total: total}, nil
}

func (s *merchantService) Add(ctx context.Context, req *models.AddMerchantRequest) (*entities.Merchant, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("merchant: %w", common.ErrConflict)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	merchant, err := s.repo.Create(ctx, &entities.Merchant{
		StoreID:      req.StoreID,
		MerchantName: req.MerchantName,
		Email:        req.Email,
		Commission:   req.Commission,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, fmt.Errorf("merchant: %w", common.ErrConflict)
		}
		return nil, err
	}
	return merchant, nil
}

func (s *merchantService) Update(ctx context.Context, id string, req *models.UpdateMerchantRequest) (*entities.Merchant, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	merchant, err := s.repo.Update(ctx, id, req.MerchantName, req.Email, req.Commission)
	if err != nil {
		return nil, wrapMerchantErr(err)
	}
	return merchant, nil
}

func (s *merchantService) Delete(ctx context.Context, id string) error {
	return wrapMerchantErr(s.repo.Delete(ctx, id))
}

func (s *merchantService) Get(ctx context.Context, id string) (*entities.Merchant, error) {
	merchant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapMerchantErr(err)
	}
	return merchant, nil
}

func (s *merchantService) Filter(ctx context.Context, filterOption string) ([]*entities.Merchant, error) {
	f, err := ParseFilterOption(filterOption)
	if err != nil {
		return nil, err
	}
	return s.repo.Filter(ctx, f)
}

// ParseFilterOption decodes the JSON filterOption query value. Falsy values
// are ignored. commission may be a JSON number or a numeric string.
func ParseFilterOption(raw string) (models.MerchantFilter, error) {
	var f models.MerchantFilter
	if strings.TrimSpace(raw) == "" {
		return f, fmt.Errorf("%w: no filter options provided", common.ErrBadRequest)
	}

	var opts struct {
		MerchantName interface{} `json:"merchantName"`
		Email        interface{} `json:"email"`
		Commission   interface{} `json:"commission"`
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&opts); err != nil {
		return f, fmt.Errorf("%w: invalid filter options", common.ErrBadRequest)
	}
	// exactly one JSON value, nothing after it
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return f, fmt.Errorf("%w: invalid filter options", common.ErrBadRequest)
	}

	f.MerchantName = stringOption(opts.MerchantName)
	f.Email = stringOption(opts.Email)

	commission, err := numberOption(opts.Commission)
	if err != nil {
		return f, err
	}
	f.Commission = commission
	return f, nil
}

func stringOption(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func numberOption(v interface{}) (*float64, error) {
	var raw string
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if !t {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: commission must be numeric", common.ErrBadRequest)
	case json.Number:
		// a numeric zero is falsy and skipped, the string "0" is not
		if f, err := t.Float64(); err == nil && f == 0 {
			return nil, nil
		}
		raw = t.String()
	case string:
		if t == "" {
			return nil, nil
		}
		raw = t
	default:
		return nil, fmt.Errorf("%w: commission must be numeric", common.ErrBadRequest)
	}

	n, err := models.ParseNumber(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: commission must be numeric", common.ErrBadRequest)
	}
	return &n, nil
}

func wrapMerchantErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrNotFound):
		return fmt.Errorf("merchant: %w", common.ErrNotFound)
	case errors.Is(err, common.ErrConflict):
		return fmt.Errorf("merchant email: %w", common.ErrConflict)
	default:
		return err
	}
}
