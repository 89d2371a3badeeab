package discovery

import (
	"sort"

	"github.com/gdugdh24/covenant-backend/internal/domain"
)

// RankedProfile is a candidate with its covenant score merged in.
type RankedProfile struct {
	*domain.Profile
	domain.ScoreResult
}

// Rank scores candidates against viewer and orders them by descending score.
// The viewer is dropped from the candidate list, at most limit candidates are
// considered (the cap is applied before scoring) and ties keep the input order.
func Rank(viewer *domain.Profile, candidates []*domain.Profile, limit int) []*RankedProfile {
	viewerID := ""
	if viewer != nil {
		viewerID = viewer.Identity
	}

	considered := make([]*domain.Profile, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || (viewerID != "" && c.Identity == viewerID) {
			continue
		}
		if limit > 0 && len(considered) >= limit {
			break
		}
		considered = append(considered, c)
	}

	ranked := make([]*RankedProfile, 0, len(considered))
	for _, c := range considered {
		ranked = append(ranked, &RankedProfile{
			Profile:     c,
			ScoreResult: Score(viewer, c),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
