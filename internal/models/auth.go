package models

// LoginRequest is the collaborator payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the collaborator payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse answers login and register.
type AuthResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// SessionResult is returned to the browser after login or register.
type SessionResult struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
