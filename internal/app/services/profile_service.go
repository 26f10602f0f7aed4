package services

import (
	"context"
	"strings"

	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/app/models/dto"
	"github.com/lfarias/sisacad/internal/app/repositories"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/lfarias/sisacad/internal/pkg/helpers"
	"github.com/lfarias/sisacad/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// ProfileService handles profile operations. Visibility is not checked
// here: the select policy already limits what each caller can read.
type ProfileService struct {
	profileRepo repositories.IProfileRepository
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repositories.IProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// GetProfile retrieves a profile by user ID
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

// ListProfiles lists profiles page by page. Non-admins see only their own
// row; the total reflects what the policies expose to the caller.
func (s *ProfileService) ListProfiles(ctx context.Context, page, pageSize int) ([]*models.Profile, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	profiles, total, err := s.profileRepo.GetAll(ctx, offset, limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := helpers.NewPaginationInfo(total, page, pageSize)
	return profiles, &pagination, nil
}

// UpdateProfile renames the caller's profile
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.Profile, error) {
	name := strings.TrimSpace(req.FullName)
	if len(name) < validation.NameMinLength || len(name) > validation.NameMaxLength {
		return nil, apperrors.NewValidationError("fullName", "full name must be between 2 and 150 characters")
	}

	if err := s.profileRepo.UpdateFullName(ctx, userID, name); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByID(ctx, userID)
}
