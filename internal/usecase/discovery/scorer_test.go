package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gdugdh24/covenant-backend/internal/domain"
)

func TestScore_PerfectMatch(t *testing.T) {
	viewer := &domain.Profile{
		Denomination: "Baptist",
		Values:       []string{"Purity", "Family"},
		Intention:    domain.IntentionMarriageASAP,
	}
	candidate := &domain.Profile{
		Faith:        domain.FaithChristian,
		FaithLevel:   domain.FaithLevelVerySerious,
		Denomination: "Baptist",
		Values:       []string{"Purity", "Family", "Homeschooling"},
		Intention:    domain.IntentionMarriageASAP,
		Lifestyle:    domain.LifestyleTraditional,
	}

	got := Score(viewer, candidate)

	assert.Equal(t, domain.ScoreBreakdown{Faith: 35, Values: 30, Intention: 25, Lifestyle: 10}, got.Breakdown)
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, []string{
		"Denomination Match: Baptist",
		"Shared Values: Purity, Family",
		"Ready for Marriage Now",
		"Traditional Lifestyle",
	}, got.Reasons)
}

func TestScore_DenominationAndChristianBonusAreExclusive(t *testing.T) {
	viewer := &domain.Profile{Denomination: "Reformed"}

	same := Score(viewer, &domain.Profile{Faith: domain.FaithChristian, Denomination: "Reformed"})
	assert.Equal(t, 20, same.Breakdown.Faith, "denomination bonus only")

	other := Score(viewer, &domain.Profile{Faith: domain.FaithChristian, Denomination: "Methodist"})
	assert.Equal(t, 10, other.Breakdown.Faith, "generic christian bonus only")
	assert.NotContains(t, other.Reasons, "Denomination Match: Methodist")

	neither := Score(viewer, &domain.Profile{Faith: "Catholic", Denomination: "Catholic"})
	assert.Equal(t, 0, neither.Breakdown.Faith)
}

func TestScore_EmptyDenominationsDoNotMatch(t *testing.T) {
	got := Score(&domain.Profile{}, &domain.Profile{Faith: domain.FaithChristian})
	assert.Equal(t, 10, got.Breakdown.Faith)
	assert.Empty(t, got.Reasons)
}

func TestScore_Values(t *testing.T) {
	tests := []struct {
		name       string
		viewer     []string
		candidate  []string
		wantScore  int
		wantReason string
	}{
		{"no viewer values is neutral", nil, []string{"Family"}, 15, ""},
		{"half overlap", []string{"A", "B"}, []string{"A", "C"}, 15, "Shared Values: A"},
		{"one of three floors", []string{"A", "B", "C"}, []string{"B"}, 10, "Shared Values: B"},
		{"two of three", []string{"A", "B", "C"}, []string{"C", "A"}, 20, "Shared Values: A, C"},
		{"one of seven floors", []string{"A", "B", "C", "D", "E", "F", "G"}, []string{"G"}, 4, "Shared Values: G"},
		{"no overlap", []string{"A"}, []string{"B"}, 0, ""},
		{"duplicate viewer tags count once", []string{"A", "A", "B"}, []string{"A"}, 15, "Shared Values: A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(&domain.Profile{Values: tt.viewer}, &domain.Profile{Values: tt.candidate})
			assert.Equal(t, tt.wantScore, got.Breakdown.Values)
			if tt.wantReason == "" {
				for _, r := range got.Reasons {
					assert.NotContains(t, r, "Shared Values")
				}
			} else {
				assert.Contains(t, got.Reasons, tt.wantReason)
			}
		})
	}
}

func TestScore_EnumDefaults(t *testing.T) {
	tests := []struct {
		intention, lifestyle string
		wantIntent, wantLife int
	}{
		{domain.IntentionMarriageASAP, domain.LifestyleTraditional, 25, 10},
		{domain.IntentionMarriageSoon, domain.LifestyleModerate, 20, 5},
		{domain.IntentionDatingToMarry, domain.LifestyleModern, 15, 3},
		{domain.IntentionUnsure, "", 5, 3},
		{"", "Nomadic", 10, 3},
		{"Whenever", "traditional", 10, 3},
	}
	for _, tt := range tests {
		got := Score(nil, &domain.Profile{Intention: tt.intention, Lifestyle: tt.lifestyle})
		assert.Equal(t, tt.wantIntent, got.Breakdown.Intention, tt.intention)
		assert.Equal(t, tt.wantLife, got.Breakdown.Lifestyle, tt.lifestyle)
	}
}

func TestScore_FaithLevels(t *testing.T) {
	levels := map[string]int{
		domain.FaithLevelVerySerious: 15,
		domain.FaithLevelPracticing:  10,
		domain.FaithLevelCultural:    5,
		domain.FaithLevelExploring:   0,
		"":                           0,
	}
	for level, want := range levels {
		got := Score(nil, &domain.Profile{FaithLevel: level})
		assert.Equal(t, want, got.Breakdown.Faith, level)
	}
}

func TestScore_NilViewerAndBounds(t *testing.T) {
	got := Score(nil, &domain.Profile{})
	assert.Equal(t, domain.ScoreBreakdown{Faith: 0, Values: 15, Intention: 10, Lifestyle: 3}, got.Breakdown)
	assert.Equal(t, 28, got.Score)
	assert.NotNil(t, got.Reasons)

	profiles := []*domain.Profile{
		nil,
		{},
		{Denomination: "Baptist", Values: []string{"Purity"}},
		{Faith: domain.FaithChristian, FaithLevel: domain.FaithLevelVerySerious, Values: []string{"Purity", "X"},
			Intention: domain.IntentionMarriageASAP, Lifestyle: domain.LifestyleTraditional, Denomination: "Baptist"},
		{Faith: domain.FaithChristian, FaithLevel: "Cultural", Intention: "Unsure", Lifestyle: "Modern"},
	}
	for _, v := range profiles {
		for _, c := range profiles {
			r := Score(v, c)
			assert.GreaterOrEqual(t, r.Score, 0)
			assert.LessOrEqual(t, r.Score, 100)
			assert.LessOrEqual(t, r.Breakdown.Faith, 35)
			assert.LessOrEqual(t, r.Breakdown.Values, 30)
			assert.LessOrEqual(t, r.Breakdown.Intention, 25)
			assert.LessOrEqual(t, r.Breakdown.Lifestyle, 10)
			want := r.Breakdown.Sum()
			if want > 100 {
				want = 100
			}
			assert.Equal(t, want, r.Score)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	viewer := &domain.Profile{Values: []string{"Family", "Purity", "Music"}, Denomination: "Baptist"}
	candidate := &domain.Profile{Values: []string{"Music", "Purity", "Family"}, Denomination: "Baptist"}

	first := Score(viewer, candidate)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Score(viewer, candidate))
	}
}
