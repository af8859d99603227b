package models

import "merchant-be/internal/entities"

// MerchantPage is one page of the merchant listing plus the unpaginated match count
type MerchantPage struct {
	Merchants []*entities.Merchant `json:"merchants"`
	Total     int64                `json:"total"`
}
