// Package memory implements the repositories in process memory. Uniqueness
// constraints are enforced under a mutex so that the engine behaves the same
// as against Postgres.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/geo"
	"github.com/gdugdh24/covenant-backend/internal/repository"
)

type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.Profile
	// insertion order, stands in for the store's natural order
	order []string
}

func NewProfileRepository(profiles ...*domain.Profile) *ProfileRepository {
	r := &ProfileRepository{profiles: make(map[string]*domain.Profile)}
	for _, p := range profiles {
		_ = r.Upsert(context.Background(), p)
	}
	return r
}

var _ repository.ProfileReadWriter = (*ProfileRepository)(nil)

func (r *ProfileRepository) Upsert(_ context.Context, profile *domain.Profile) error {
	if profile == nil || profile.Identity == "" {
		return domain.InvalidRequestf("profile identity is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.Identity]; !ok {
		r.order = append(r.order, profile.Identity)
	}
	r.profiles[profile.Identity] = cloneProfile(profile)
	return nil
}

func (r *ProfileRepository) GetByIdentity(_ context.Context, identity string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[identity]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *ProfileRepository) QueryByFilter(_ context.Context, filter repository.ProfileFilter) ([]*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Profile
	for _, id := range r.order {
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		p := r.profiles[id]
		if p.Identity == filter.ExcludeIdentity {
			continue
		}
		if filter.Gender != "" && p.Gender != filter.Gender {
			continue
		}
		if filter.MinAge > 0 && p.Age < filter.MinAge {
			continue
		}
		if filter.MaxAge > 0 && p.Age > filter.MaxAge {
			continue
		}
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

// QueryNearby scans every profile; it is the in-process fallback for a geospatial index.
func (r *ProfileRepository) QueryNearby(_ context.Context, query repository.NearbyQuery) ([]*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type hit struct {
		profile *domain.Profile
		km      float64
	}
	maxKm := query.MaxDistanceMeters / 1000
	var hits []hit
	for _, id := range r.order {
		p := r.profiles[id]
		if p.Identity == query.ExcludeIdentity || p.Coordinates == nil {
			continue
		}
		km := geo.DistanceKm(query.Center.Lat, query.Center.Lon, p.Coordinates.Lat, p.Coordinates.Lon)
		if km > maxKm {
			continue
		}
		hits = append(hits, hit{profile: p, km: km})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].km < hits[j].km })

	if query.Limit > 0 && len(hits) > query.Limit {
		hits = hits[:query.Limit]
	}
	out := make([]*domain.Profile, 0, len(hits))
	for _, h := range hits {
		out = append(out, cloneProfile(h.profile))
	}
	return out, nil
}

func (r *ProfileRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles), nil
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	c := *p
	if p.Coordinates != nil {
		coord := *p.Coordinates
		c.Coordinates = &coord
	}
	if p.Values != nil {
		c.Values = append([]string(nil), p.Values...)
	}
	return &c
}
