package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lfarias/sisacad/internal/app/models/dto"
	"github.com/lfarias/sisacad/internal/app/repositories"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/lfarias/sisacad/internal/pkg/auth"
	"github.com/lfarias/sisacad/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// AuthService handles registration, login and token rotation
type AuthService struct {
	userRepo  repositories.IUserRepository
	tokenRepo repositories.ITokenRepository
	roleRepo  repositories.IRoleRepository
	jwt       *auth.JWTService
	logger    zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	roleRepo repositories.IRoleRepository,
	jwt *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		roleRepo:  roleRepo,
		jwt:       jwt,
		logger:    logger,
	}
}

func (s *AuthService) validateRegistration(req dto.RegisterRequest) error {
	// Emails are stored lowercase, so the format check runs on the
	// normalized value.
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return apperrors.NewValidationError("email", "email cannot be empty")
	}
	if !validation.IsValidEmail(email) {
		return apperrors.NewValidationError("email", "invalid email format")
	}
	if len(req.Password) < validation.PasswordMinLength {
		return apperrors.NewValidationError("password",
			fmt.Sprintf("password must be at least %d characters long", validation.PasswordMinLength))
	}
	name := strings.TrimSpace(req.FullName)
	if len(name) < validation.NameMinLength || len(name) > validation.NameMaxLength {
		return apperrors.NewValidationError("fullName", "full name must be between 2 and 150 characters")
	}
	return nil
}

// Register creates a new auth subject. The profile row is provisioned by
// the database trigger inside the same transaction as the user insert.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (int64, error) {
	if err := s.validateRegistration(req); err != nil {
		return 0, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Early duplicate check for a friendly error; the unique constraint
	// remains the backstop against races.
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.userRepo.CreateUser(ctx, email, hash, strings.TrimSpace(req.FullName))
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("userID", userID).Msg("User registered")
	return userID, nil
}

// Login verifies credentials and issues a token pair. Role names ride in
// the access token as a rendering hint only; the row policies remain the
// authority on every data access.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID, user.Email)
}

// RefreshToken rotates a refresh token: the presented token is revoked
// and a fresh pair is issued, so a replayed token fails.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenExpired) {
			// Expired tokens are dead either way; mark them revoked so
			// they drop out of the live set immediately.
			_ = s.tokenRepo.RevokeToken(ctx, refreshToken)
		}
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user.ID, user.Email)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

// LogoutAll revokes every live refresh token the user owns, ending all
// of their sessions at once.
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) error {
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Msg("All refresh tokens revoked")
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, userID int64, email string) (*dto.TokenResponse, error) {
	roles, err := s.roleRepo.ListByUserSystem(ctx, userID)
	if err != nil {
		return nil, err
	}
	roleNames := make([]string, 0, len(roles))
	for _, role := range roles {
		roleNames = append(roleNames, string(role))
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(userID, email, roleNames)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to generate token pair")
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, userID, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}
