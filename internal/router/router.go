package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"merchant-be/internal/controllers"
	"merchant-be/internal/middleware"
)

// Deps are the handlers and middleware the routes are wired to
type Deps struct {
	Logger             *slog.Logger
	CORSOrigins        []string
	TrustedProxies     []string
	AuthController     *controllers.AuthController
	MerchantController *controllers.MerchantController
	QRCodeController   *controllers.QRCodeController
	Sessions           middleware.SessionResolver
	AuthLimiter        middleware.Limiter
}

// New builds the gin engine with every route registered
func New(d Deps) *gin.Engine {
	r := gin.New()
	// ClientIP keys the rate limiter; forwarded headers count only from these peers
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		d.Logger.Warn("invalid trusted proxies, trusting none", "err", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.Cors(d.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	if d.AuthLimiter != nil {
		auth.Use(middleware.LimitMiddleware(d.AuthLimiter))
	}
	{
		auth.POST("/register", d.AuthController.Register)
		auth.POST("/login", d.AuthController.Login)
		auth.GET("/logout", d.AuthController.Logout)
		auth.GET("/session", d.AuthController.Session)
	}

	merchants := r.Group("/api/merchants")
	merchants.Use(middleware.AuthMiddleware(d.Sessions))
	{
		merchants.GET("", d.MerchantController.List)
		merchants.POST("", d.MerchantController.Add)
		// static segment wins over :merchantId in gin's router
		merchants.GET("/filter", d.MerchantController.Filter)
		merchants.GET("/:merchantId", d.MerchantController.Get)
		merchants.PUT("/:merchantId", d.MerchantController.Update)
		merchants.DELETE("/:merchantId", d.MerchantController.Delete)
		merchants.GET("/:merchantId/qrcode", d.QRCodeController.GenerateQRCode)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	return r
}
