package discovery

import (
	"sort"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/geo"
)

// NearbyProfile is a candidate with its distance from the viewer.
type NearbyProfile struct {
	*domain.Profile
	DistanceKm float64 `json:"distanceKm"`
}

// FilterNearby attaches distances to candidates returned by the geospatial
// index. Candidates without coordinates, the viewer itself and anything
// beyond maxDistanceMeters are dropped. Results are nearest first and capped
// at limit. DistanceKm is rounded to one decimal; ordering uses the exact value.
func FilterNearby(viewerID string, center domain.Coordinate, candidates []*domain.Profile, maxDistanceMeters float64, limit int) []*NearbyProfile {
	type hit struct {
		profile *domain.Profile
		km      float64
	}

	maxKm := maxDistanceMeters / 1000
	hits := make([]hit, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || !c.HasCoordinates() || c.Identity == viewerID {
			continue
		}
		km := geo.DistanceKm(center.Lat, center.Lon, c.Coordinates.Lat, c.Coordinates.Lon)
		if maxDistanceMeters > 0 && km > maxKm {
			continue
		}
		hits = append(hits, hit{profile: c, km: km})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].km < hits[j].km })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]*NearbyProfile, 0, len(hits))
	for _, h := range hits {
		out = append(out, &NearbyProfile{
			Profile:    h.profile,
			DistanceKm: geo.RoundKm(h.km),
		})
	}
	return out
}
