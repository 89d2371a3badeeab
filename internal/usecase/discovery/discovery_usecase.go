package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/infrastructure/metrics"
	"github.com/gdugdh24/covenant-backend/internal/repository"
)

// Options bound the work a single discovery or nearby call may do.
type Options struct {
	DefaultLimit        int
	MaxLimit            int
	DefaultMinAge       int
	DefaultMaxAge       int
	DefaultRadiusMeters float64
	MaxRadiusMeters     float64
	NearbyDefaultLimit  int
	NearbyMaxLimit      int
}

// DefaultOptions mirrors the defaults of the config package.
func DefaultOptions() Options {
	return Options{
		DefaultLimit:        50,
		MaxLimit:            50,
		DefaultMinAge:       18,
		DefaultMaxAge:       50,
		DefaultRadiusMeters: 50_000,
		MaxRadiusMeters:     500_000,
		NearbyDefaultLimit:  20,
		NearbyMaxLimit:      100,
	}
}

type DiscoveryUseCase struct {
	profileRepo repository.ProfileRepository
	validate    *validator.Validate
	opts        Options
	logger      *zap.Logger
}

func NewDiscoveryUseCase(
	profileRepo repository.ProfileRepository,
	opts Options,
	logger *zap.Logger,
) *DiscoveryUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscoveryUseCase{
		profileRepo: profileRepo,
		validate:    validator.New(),
		opts:        opts,
		logger:      logger,
	}
}

// DiscoverRequest represents the candidate filters of a discovery call.
// Zero values are replaced by the configured defaults.
type DiscoverRequest struct {
	Gender string `form:"gender" validate:"max=32"`
	MinAge int    `form:"min_age" validate:"gte=18,lte=120"`
	MaxAge int    `form:"max_age" validate:"gte=18,lte=120,gtefield=MinAge"`
	Limit  int    `form:"limit" validate:"gte=1"`
}

// NearbyRequest represents a proximity query around a coordinate.
type NearbyRequest struct {
	Lat          *float64 `form:"lat" validate:"required,gte=-90,lte=90"`
	Lon          *float64 `form:"lon" validate:"required,gte=-180,lte=180"`
	RadiusMeters float64  `form:"radius" validate:"gt=0"`
	Limit        int      `form:"limit" validate:"gte=1"`
}

// RankDiscovery returns candidates matching the filters, best covenant score first.
// An unknown viewer is scored as an empty profile rather than failing.
func (uc *DiscoveryUseCase) RankDiscovery(ctx context.Context, viewerID string, req *DiscoverRequest) ([]*RankedProfile, error) {
	defer metrics.RecordDuration("rank_discovery", time.Now())

	if strings.TrimSpace(viewerID) == "" {
		return nil, domain.InvalidRequestf("viewer identity is required")
	}
	filter, err := uc.normalizeDiscover(req)
	if err != nil {
		return nil, err
	}

	viewer, err := uc.profileRepo.GetByIdentity(ctx, viewerID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("failed to get viewer profile: %w", err)
		}
		uc.logger.Warn("viewer profile not found, scoring with empty profile", zap.String("viewer", viewerID))
		viewer = &domain.Profile{Identity: viewerID}
	}

	candidates, err := uc.profileRepo.QueryByFilter(ctx, repository.ProfileFilter{
		Gender:          filter.Gender,
		MinAge:          filter.MinAge,
		MaxAge:          filter.MaxAge,
		ExcludeIdentity: viewerID,
		Limit:           filter.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	ranked := Rank(viewer, candidates, filter.Limit)
	for _, r := range ranked {
		metrics.RecordCompatibilityScore(r.Score)
	}

	uc.logger.Debug("discovery ranked",
		zap.String("viewer", viewerID),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(ranked)),
	)
	return ranked, nil
}

// Nearby returns profiles within the radius of the given coordinate, nearest first.
func (uc *DiscoveryUseCase) Nearby(ctx context.Context, viewerID string, req *NearbyRequest) ([]*NearbyProfile, error) {
	defer metrics.RecordDuration("nearby", time.Now())

	if strings.TrimSpace(viewerID) == "" {
		return nil, domain.InvalidRequestf("viewer identity is required")
	}
	if req == nil || req.Lat == nil || req.Lon == nil {
		return nil, domain.InvalidRequestf("coordinate is required")
	}
	q, err := uc.normalizeNearby(req)
	if err != nil {
		return nil, err
	}

	center := domain.Coordinate{Lat: *q.Lat, Lon: *q.Lon}
	candidates, err := uc.profileRepo.QueryNearby(ctx, repository.NearbyQuery{
		Center:            center,
		MaxDistanceMeters: q.RadiusMeters,
		ExcludeIdentity:   viewerID,
		Limit:             q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby profiles: %w", err)
	}

	return FilterNearby(viewerID, center, candidates, q.RadiusMeters, q.Limit), nil
}

func (uc *DiscoveryUseCase) normalizeDiscover(req *DiscoverRequest) (DiscoverRequest, error) {
	var f DiscoverRequest
	if req != nil {
		f = *req
	}
	f.Gender = strings.TrimSpace(f.Gender)
	if f.MinAge == 0 {
		f.MinAge = uc.opts.DefaultMinAge
	}
	if f.MaxAge == 0 {
		f.MaxAge = uc.opts.DefaultMaxAge
	}
	if f.Limit == 0 {
		f.Limit = uc.opts.DefaultLimit
	}
	if err := uc.validate.Struct(f); err != nil {
		return f, validationError(err)
	}
	if uc.opts.MaxLimit > 0 && f.Limit > uc.opts.MaxLimit {
		f.Limit = uc.opts.MaxLimit
	}
	return f, nil
}

func (uc *DiscoveryUseCase) normalizeNearby(req *NearbyRequest) (NearbyRequest, error) {
	q := *req
	if q.RadiusMeters == 0 {
		q.RadiusMeters = uc.opts.DefaultRadiusMeters
	}
	if q.Limit == 0 {
		q.Limit = uc.opts.NearbyDefaultLimit
	}
	if err := uc.validate.Struct(q); err != nil {
		return q, validationError(err)
	}
	if uc.opts.MaxRadiusMeters > 0 && q.RadiusMeters > uc.opts.MaxRadiusMeters {
		return q, domain.InvalidRequestf("radius must not exceed %.0f meters", uc.opts.MaxRadiusMeters)
	}
	if uc.opts.NearbyMaxLimit > 0 && q.Limit > uc.opts.NearbyMaxLimit {
		q.Limit = uc.opts.NearbyMaxLimit
	}
	return q, nil
}

// validationError turns validator output into a domain.ErrInvalidRequest.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.InvalidRequestf("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return domain.InvalidRequestf("%s", strings.Join(msgs, "; "))
}
