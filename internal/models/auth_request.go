package models

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=30"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
