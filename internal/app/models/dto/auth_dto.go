package dto

// RegisterRequest creates a new auth subject. The provisioning trigger
// derives the profile from the metadata; FullName falls back to a
// placeholder when absent.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"user@sisacad.edu.br"`
	Password string `json:"password" binding:"required" example:"Secret123"`
	FullName string `json:"fullName" example:"Maria da Silva"`
}

// LoginRequest authenticates an existing auth subject
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	ExpiresIn        int64  `json:"expiresIn"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn"`
}

// UpdateProfileRequest updates the caller's own profile row
type UpdateProfileRequest struct {
	FullName string `json:"fullName" binding:"required"`
}
