package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"merchant-be/internal/service"
)

type QRCodeController struct {
	merchantService service.MerchantService
	frontendURL     string
}

func NewQRCodeController(merchantService service.MerchantService, frontendURL string) *QRCodeController {
	return &QRCodeController{
		merchantService: merchantService,
		frontendURL:     frontendURL,
	}
}

// MerchantURL is the storefront link encoded in a merchant's QR code
func (qc *QRCodeController) MerchantURL(storeID string) string {
	return qc.frontendURL + "/merchants/" + storeID
}

// GenerateQRCode handles GET /api/merchants/:merchantId/qrcode
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	merchant, err := qc.merchantService.Get(c.Request.Context(), c.Param("merchantId"))
	if err != nil {
		respondError(c, err, merchantMessages)
		return
	}

	// 256x256 pixels, medium error recovery
	qrCode, err := qrcode.New(qc.MerchantURL(merchant.StoreID), qrcode.Medium)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pngData, err := qrCode.PNG(256)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate QR code image")
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
