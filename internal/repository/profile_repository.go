package repository

import (
	"context"

	"github.com/gdugdh24/covenant-backend/internal/domain"
)

// ProfileFilter is the store-side candidate query used by discovery.
// An empty Gender matches any gender.
type ProfileFilter struct {
	Gender          string
	MinAge          int
	MaxAge          int
	ExcludeIdentity string
	Limit           int
}

// NearbyQuery asks the geospatial index for profiles within MaxDistanceMeters
// of Center, nearest first.
type NearbyQuery struct {
	Center            domain.Coordinate
	MaxDistanceMeters float64
	ExcludeIdentity   string
	Limit             int
}

// ProfileRepository is the read-only profile store used by the matching core.
type ProfileRepository interface {
	GetByIdentity(ctx context.Context, identity string) (*domain.Profile, error)
	QueryByFilter(ctx context.Context, filter ProfileFilter) ([]*domain.Profile, error)
	QueryNearby(ctx context.Context, query NearbyQuery) ([]*domain.Profile, error)
	Count(ctx context.Context) (int, error)
}

// ProfileWriter is used by seeding tools only.
type ProfileWriter interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
}

type ProfileReadWriter interface {
	ProfileRepository
	ProfileWriter
}
