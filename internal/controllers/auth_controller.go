package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"merchant-be/internal/common"
	"merchant-be/internal/models"
	"merchant-be/internal/service"
)

type AuthController struct {
	authService  service.AuthService
	secureCookie bool
}

func NewAuthController(authService service.AuthService, secureCookie bool) *AuthController {
	return &AuthController{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// Register handles POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, messages{common.ErrConflict: "User already exists"})
		return
	}

	ac.setSessionCookie(c, response.Token, ac.authService.SessionTTL())
	ok(c, "User created successfully", gin.H{
		"token": response.Token,
		"user":  response.User,
	})
}

// Login handles POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, messages{common.ErrInvalidCredentials: "Invalid credentials"})
		return
	}

	ac.setSessionCookie(c, response.Token, ac.authService.SessionTTL())
	ok(c, "User logged in successfully", gin.H{
		"token": response.Token,
		"user":  response.User,
	})
}

// Logout handles GET /auth/logout. The token itself stays valid until it
// expires; only the client's cookie is replaced.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.setSessionCookie(c, common.LoggedOutToken, common.LoggedOutTTL)
	ok(c, "User logged out successfully", nil)
}

// Session handles GET /auth/session
func (ac *AuthController) Session(c *gin.Context) {
	token, err := c.Cookie(common.SessionCookie)
	if err != nil || token == "" {
		fail(c, http.StatusUnauthorized, "Unauthorized: No token provided")
		return
	}

	user, err := ac.authService.GetSession(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, messages{common.ErrUnauthorized: "Unauthorized: Invalid token"})
		return
	}

	ok(c, "Session is valid", gin.H{"user": user})
}

func (ac *AuthController) setSessionCookie(c *gin.Context, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookie, value, int(ttl.Seconds()), "/", "", ac.secureCookie, true)
}
