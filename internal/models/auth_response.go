package models

import "merchant-be/internal/entities"

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}
