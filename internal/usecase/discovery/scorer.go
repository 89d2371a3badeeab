package discovery

import (
	"strings"

	"github.com/gdugdh24/covenant-backend/internal/domain"
)

const maxScore = 100

var (
	faithLevelPoints = map[string]int{
		domain.FaithLevelVerySerious: 15,
		domain.FaithLevelPracticing:  10,
		domain.FaithLevelCultural:    5,
	}

	intentionPoints = map[string]int{
		domain.IntentionMarriageASAP:  25,
		domain.IntentionMarriageSoon:  20,
		domain.IntentionDatingToMarry: 15,
		domain.IntentionUnsure:        5,
	}

	lifestylePoints = map[string]int{
		domain.LifestyleTraditional: 10,
		domain.LifestyleModerate:    5,
		domain.LifestyleModern:      3,
	}
)

const (
	denominationBonus   = 20
	christianFaithBonus = 10
	valuesMax           = 30
	neutralValuesScore  = 15
	defaultIntention    = 10
	defaultLifestyle    = 3
)

// Score computes the covenant score of candidate as seen by viewer.
// A nil viewer is scored as a profile with no values and no denomination.
// Unknown enum values fall back to their defaults; Score never fails.
func Score(viewer, candidate *domain.Profile) domain.ScoreResult {
	if viewer == nil {
		viewer = &domain.Profile{}
	}
	if candidate == nil {
		candidate = &domain.Profile{}
	}

	var (
		breakdown domain.ScoreBreakdown
		reasons   []string
	)

	// faith: 35 max
	breakdown.Faith = faithLevelPoints[candidate.FaithLevel]
	if candidate.Denomination != "" && candidate.Denomination == viewer.Denomination {
		breakdown.Faith += denominationBonus
		reasons = append(reasons, "Denomination Match: "+candidate.Denomination)
	} else if candidate.Faith == domain.FaithChristian {
		breakdown.Faith += christianFaithBonus
	}

	// values: 30 max
	viewerValues := uniqueValues(viewer.Values)
	shared := sharedValues(viewerValues, candidate.Values)
	if len(viewerValues) > 0 {
		breakdown.Values = valuesMax * len(shared) / len(viewerValues)
	} else {
		breakdown.Values = neutralValuesScore
	}
	if len(shared) > 0 {
		reasons = append(reasons, "Shared Values: "+strings.Join(shared, ", "))
	}

	// intention: 25 max
	if pts, ok := intentionPoints[candidate.Intention]; ok {
		breakdown.Intention = pts
	} else {
		breakdown.Intention = defaultIntention
	}
	if candidate.Intention == domain.IntentionMarriageASAP {
		reasons = append(reasons, "Ready for Marriage Now")
	}

	// lifestyle: 10 max
	if pts, ok := lifestylePoints[candidate.Lifestyle]; ok {
		breakdown.Lifestyle = pts
	} else {
		breakdown.Lifestyle = defaultLifestyle
	}
	if candidate.Lifestyle == domain.LifestyleTraditional {
		reasons = append(reasons, "Traditional Lifestyle")
	}

	total := breakdown.Sum()
	if total > maxScore {
		total = maxScore
	}

	if reasons == nil {
		reasons = []string{}
	}
	return domain.ScoreResult{
		Score:     total,
		Breakdown: breakdown,
		Reasons:   reasons,
	}
}

// uniqueValues drops duplicates and empty tags, keeping first-seen order.
func uniqueValues(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// sharedValues returns the intersection in the viewer's order.
func sharedValues(viewerValues, candidateValues []string) []string {
	if len(viewerValues) == 0 || len(candidateValues) == 0 {
		return nil
	}
	theirs := make(map[string]struct{}, len(candidateValues))
	for _, v := range candidateValues {
		theirs[v] = struct{}{}
	}
	var shared []string
	for _, v := range viewerValues {
		if _, ok := theirs[v]; ok {
			shared = append(shared, v)
		}
	}
	return shared
}
