package profile

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/geo"
	"github.com/gdugdh24/covenant-backend/internal/repository"
)

// ProfileUseCase serves read-only profile lookups. Profile authoring lives
// outside this service.
type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
}

func NewProfileUseCase(profileRepo repository.ProfileRepository, logger *zap.Logger) *ProfileUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// ProfileResponse represents profile response with additional info
type ProfileResponse struct {
	*domain.Profile
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, identity string) (*domain.Profile, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, domain.InvalidRequestf("identity is required")
	}
	profile, err := uc.profileRepo.GetByIdentity(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// GetProfile returns the target profile with the distance from the viewer
// when both have coordinates.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, targetID, viewerID string) (*ProfileResponse, error) {
	if strings.TrimSpace(targetID) == "" {
		return nil, domain.InvalidRequestf("identity is required")
	}

	profile, err := uc.profileRepo.GetByIdentity(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	response := &ProfileResponse{Profile: profile}

	if viewerID == "" || viewerID == targetID || !profile.HasCoordinates() {
		return response, nil
	}

	viewer, err := uc.profileRepo.GetByIdentity(ctx, viewerID)
	if err != nil {
		// distance is decoration, the lookup itself succeeded
		uc.logger.Debug("viewer profile unavailable for distance",
			zap.String("viewer", viewerID),
			zap.Error(err),
		)
		return response, nil
	}
	if viewer.HasCoordinates() {
		d := geo.RoundKm(geo.DistanceKm(
			viewer.Coordinates.Lat, viewer.Coordinates.Lon,
			profile.Coordinates.Lat, profile.Coordinates.Lon,
		))
		response.DistanceKm = &d
	}
	return response, nil
}
