package models

import (
	"encoding/json"
	"time"
)

// AddMerchantRequest represents the request body for POST /api/merchants.
// A zero commission counts as missing.
type AddMerchantRequest struct {
	StoreID      string  `json:"storeID" validate:"required"`
	MerchantName string  `json:"merchantName" validate:"required"`
	Email        string  `json:"email" validate:"required"`
	Commission   float64 `json:"commission" validate:"required"`
}

// UnmarshalJSON accepts numeric strings for commission and numbers for the text fields
func (r *AddMerchantRequest) UnmarshalJSON(data []byte) error {
	var in struct {
		StoreID      lenientString `json:"storeID"`
		MerchantName lenientString `json:"merchantName"`
		Email        lenientString `json:"email"`
		Commission   lenientNumber `json:"commission"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*r = AddMerchantRequest{
		StoreID:      string(in.StoreID),
		MerchantName: string(in.MerchantName),
		Email:        string(in.Email),
		Commission:   float64(in.Commission),
	}
	return nil
}

// UpdateMerchantRequest represents the request body for PUT /api/merchants/:merchantId
type UpdateMerchantRequest struct {
	MerchantName string  `json:"merchantName" validate:"required"`
	Email        string  `json:"email" validate:"required"`
	Commission   float64 `json:"commission" validate:"required"`
}

// UnmarshalJSON accepts numeric strings for commission and numbers for the text fields
func (r *UpdateMerchantRequest) UnmarshalJSON(data []byte) error {
	var in struct {
		MerchantName lenientString `json:"merchantName"`
		Email        lenientString `json:"email"`
		Commission   lenientNumber `json:"commission"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*r = UpdateMerchantRequest{
		MerchantName: string(in.MerchantName),
		Email:        string(in.Email),
		Commission:   float64(in.Commission),
	}
	return nil
}

// ListMerchantsQuery holds the parsed query string of GET /api/merchants
type ListMerchantsQuery struct {
	Page        int64
	PageSize    int64
	SearchQuery string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// MerchantFilter is the decoded filterOption of GET /api/merchants/filter
type MerchantFilter struct {
	MerchantName string
	Email        string
	Commission   *float64
}
