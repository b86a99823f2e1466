package model

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// RegisterRequest represents a representative sign-up.
type RegisterRequest struct {
	Email          string `json:"email"           binding:"required,email"`
	Password       string `json:"password"        binding:"required,min=6"`
	Country        string `json:"country"`
	Manager        string `json:"manager"`
	FederationName string `json:"federation_name"`
}

// LoginRequest represents a sign-in.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Email string `json:"email"`
}
