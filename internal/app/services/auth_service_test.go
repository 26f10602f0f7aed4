package services

import (
	"context"
	"testing"
	"time"

	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/app/models/dto"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/lfarias/sisacad/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[int64]*models.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[int64]*models.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, email, passwordHash, _ string) (int64, error) {
	if _, ok := f.byEmail[email]; ok {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	user := &models.User{ID: f.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.nextID++
	f.byEmail[email] = user
	f.byID[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

type storedToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeTokenRepo struct {
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*storedToken)}
}

func (f *fakeTokenRepo) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenRepo) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	st, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if st.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if st.expiry.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return st.userID, st.expiry, nil
}

func (f *fakeTokenRepo) RevokeToken(_ context.Context, token string) error {
	st, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	st.revoked = true
	return nil
}

func (f *fakeTokenRepo) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, st := range f.tokens {
		if st.userID == userID {
			st.revoked = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) CleanupExpiredTokens(context.Context) (int64, error) { return 0, nil }

type fakeRoleRepo struct {
	roles map[int64][]models.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[int64][]models.Role)}
}

func (f *fakeRoleRepo) ListByUser(_ context.Context, userID int64) ([]models.Role, error) {
	return f.roles[userID], nil
}

func (f *fakeRoleRepo) ListByUserSystem(_ context.Context, userID int64) ([]models.Role, error) {
	return f.roles[userID], nil
}

func (f *fakeRoleRepo) Grant(_ context.Context, userID int64, role models.Role) error {
	for _, r := range f.roles[userID] {
		if r == role {
			return apperrors.ErrRoleAlreadyGranted
		}
	}
	f.roles[userID] = append(f.roles[userID], role)
	return nil
}

func (f *fakeRoleRepo) GrantSystem(ctx context.Context, userID int64, role models.Role) error {
	return f.Grant(ctx, userID, role)
}

func (f *fakeRoleRepo) Revoke(_ context.Context, userID int64, role models.Role) error {
	for i, r := range f.roles[userID] {
		if r == role {
			f.roles[userID] = append(f.roles[userID][:i], f.roles[userID][i+1:]...)
			return nil
		}
	}
	return apperrors.ErrRoleNotFound
}

func (f *fakeRoleRepo) HasRole(_ context.Context, userID int64, role models.Role) (bool, error) {
	for _, r := range f.roles[userID] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeTokenRepo, *fakeRoleRepo) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key-for-auth-service",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "sisacad-test",
	})
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	roleRepo := newFakeRoleRepo()
	svc := NewAuthService(userRepo, tokenRepo, roleRepo, jwtService, zerolog.Nop())
	return svc, userRepo, tokenRepo, roleRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _, roleRepo := newTestAuthService(t)
	ctx := context.Background()

	userID, err := svc.Register(ctx, dto.RegisterRequest{
		Email:    "Aluno@Sisacad.edu.br",
		Password: "Secret123!",
		FullName: "Aluno Teste",
	})
	require.NoError(t, err)
	require.NotZero(t, userID)

	roleRepo.roles[userID] = []models.Role{models.RoleReader}

	tokens, err := svc.Login(ctx, dto.LoginRequest{Email: "aluno@sisacad.edu.br", Password: "Secret123!"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   dto.RegisterRequest
		field string
	}{
		{"bad email", dto.RegisterRequest{Email: "nope", Password: "Secret123!", FullName: "Aluno"}, "email"},
		{"short password", dto.RegisterRequest{Email: "a@b.com", Password: "short", FullName: "Aluno"}, "password"},
		{"empty name", dto.RegisterRequest{Email: "a@b.com", Password: "Secret123!", FullName: " "}, "fullName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, tt.field, apperrors.FieldOf(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	req := dto.RegisterRequest{Email: "a@b.com", Password: "Secret123!", FullName: "Aluno"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "Secret123!", FullName: "Aluno"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailIsIndistinguishable(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@b.com", Password: "whatever1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, tokenRepo, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "Secret123!", FullName: "Aluno"})
	require.NoError(t, err)

	first, err := svc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "Secret123!"})
	require.NoError(t, err)

	second, err := svc.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// the rotated-out token must be dead
	_, err = svc.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	require.True(t, tokenRepo.tokens[first.RefreshToken].revoked)
}

func TestRefreshTokenExpiredIsRevoked(t *testing.T) {
	svc, _, tokenRepo, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, tokenRepo.CreateToken(ctx, "stale-token", 1, time.Now().Add(-time.Hour)))

	_, err := svc.RefreshToken(ctx, "stale-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	// an expired token presented for refresh is also marked revoked
	assert.True(t, tokenRepo.tokens["stale-token"].revoked)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, _, tokenRepo, _ := newTestAuthService(t)
	ctx := context.Background()

	userID, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "Secret123!", FullName: "Aluno"})
	require.NoError(t, err)

	first, err := svc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "Secret123!"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "Secret123!"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, userID))

	_, err = svc.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	_, err = svc.RefreshToken(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	require.True(t, tokenRepo.tokens[first.RefreshToken].revoked)
	require.True(t, tokenRepo.tokens[second.RefreshToken].revoked)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "Secret123!", FullName: "Aluno"})
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "Secret123!"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))

	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}
