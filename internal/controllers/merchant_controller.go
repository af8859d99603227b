package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"merchant-be/internal/common"
	"merchant-be/internal/models"
	"merchant-be/internal/service"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

var merchantMessages = messages{common.ErrNotFound: "Merchant not found", common.ErrConflict: "Merchant already exists"}

type MerchantController struct {
	merchantService service.MerchantService
}

func NewMerchantController(merchantService service.MerchantService) *MerchantController {
	return &MerchantController{merchantService: merchantService}
}

// List handles GET /api/merchants
func (mc *MerchantController) List(c *gin.Context) {
	q, err := parseListQuery(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := mc.merchantService.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	ok(c, "List of all merchants successfully retrieved", gin.H{
		"merchants": page.Merchants,
		"total":     page.Total,
	})
}

// Add handles POST /api/merchants
func (mc *MerchantController) Add(c *gin.Context) {
	var req models.AddMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	merchant, err := mc.merchantService.Add(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, messages{
			common.ErrBadRequest: "Please enter all required fields",
			common.ErrConflict:   "Merchant already exists",
		})
		return
	}

	ok(c, "Merchant created successfully", gin.H{"newMerchant": merchant})
}

// Update handles PUT /api/merchants/:merchantId
func (mc *MerchantController) Update(c *gin.Context) {
	var req models.UpdateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	merchant, err := mc.merchantService.Update(c.Request.Context(), c.Param("merchantId"), &req)
	if err != nil {
		respondError(c, err, messages{
			common.ErrBadRequest: "Missing required fields",
			common.ErrNotFound:   "Merchant not found",
			common.ErrConflict:   "Merchant already exists",
		})
		return
	}

	ok(c, "Merchant updated successfully", gin.H{"updatedMerchant": merchant})
}

// Delete handles DELETE /api/merchants/:merchantId
func (mc *MerchantController) Delete(c *gin.Context) {
	if err := mc.merchantService.Delete(c.Request.Context(), c.Param("merchantId")); err != nil {
		respondError(c, err, merchantMessages)
		return
	}

	ok(c, "Merchant deleted successfully", nil)
}

// Get handles GET /api/merchants/:merchantId
func (mc *MerchantController) Get(c *gin.Context) {
	merchant, err := mc.merchantService.Get(c.Request.Context(), c.Param("merchantId"))
	if err != nil {
		respondError(c, err, merchantMessages)
		return
	}

	ok(c, "Merchant details retrieved successfully", gin.H{"existingMerchant": merchant})
}

// Filter handles GET /api/merchants/filter?filterOption=<json>
func (mc *MerchantController) Filter(c *gin.Context) {
	merchants, err := mc.merchantService.Filter(c.Request.Context(), c.Query("filterOption"))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	ok(c, "Merchants filtered successfully", gin.H{"filteredMerchants": merchants})
}

func parseListQuery(c *gin.Context) (models.ListMerchantsQuery, error) {
	q := models.ListMerchantsQuery{
		Page:        defaultPage,
		PageSize:    defaultPageSize,
		SearchQuery: c.Query("searchQuery"),
	}

	var err error
	if v := c.Query("page"); v != "" {
		if q.Page, err = strconv.ParseInt(v, 10, 64); err != nil || q.Page < 1 {
			return q, fmt.Errorf("page must be a positive integer")
		}
	}
	if v := c.Query("pageSize"); v != "" {
		if q.PageSize, err = strconv.ParseInt(v, 10, 64); err != nil || q.PageSize < 1 {
			return q, fmt.Errorf("pageSize must be a positive integer")
		}
	}

	if q.DateFrom, err = parseDate(c.Query("dateFrom")); err != nil {
		return q, fmt.Errorf("dateFrom: %w", err)
	}
	if q.DateTo, err = parseDate(c.Query("dateTo")); err != nil {
		return q, fmt.Errorf("dateTo: %w", err)
	}

	return q, nil
}

// parseDate accepts RFC3339 timestamps or plain dates (midnight UTC)
func parseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			utc := t.UTC()
			return &utc, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD or RFC 3339", v)
}
