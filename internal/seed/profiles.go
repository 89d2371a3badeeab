// Package seed holds the demo profile set used for local runs and demos.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/repository"
)

var (
	austin    = domain.Coordinate{Lat: 30.2672, Lon: -97.7431}
	dallas    = domain.Coordinate{Lat: 32.7767, Lon: -96.7970}
	houston   = domain.Coordinate{Lat: 29.7604, Lon: -95.3698}
	nashville = domain.Coordinate{Lat: 36.1627, Lon: -86.7816}
	charlotte = domain.Coordinate{Lat: 35.2271, Lon: -80.8431}
	atlanta   = domain.Coordinate{Lat: 33.7490, Lon: -84.3880}
)

func at(c domain.Coordinate) *domain.Coordinate {
	return &c
}

// DemoProfiles returns a fresh copy of the demo set stamped with createdAt.
func DemoProfiles(createdAt time.Time) []*domain.Profile {
	profiles := []*domain.Profile{
		{
			Identity: "mock_elizabeth_1", Name: "Elizabeth", Age: 24, Gender: "Female",
			LocationLabel: "Austin, TX", Coordinates: at(austin),
			Faith: domain.FaithChristian, FaithLevel: domain.FaithLevelVerySerious, Denomination: "Baptist",
			Values:    []string{"Purity", "Family", "Homeschooling"},
			Intention: domain.IntentionMarriageASAP, Lifestyle: domain.LifestyleTraditional,
			Bio:          "Saving myself for marriage. Looking for a spiritual leader who walks with God daily.",
			ProfileImage: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?auto=format&fit=crop&w=800&q=80",
			IsVerified:   true,
		},
		{
			Identity: "mock_sarah_2", Name: "Sarah", Age: 26, Gender: "Female",
			LocationLabel: "Dallas, TX", Coordinates: at(dallas),
			Faith: domain.FaithChristian, FaithLevel: domain.FaithLevelPracticing, Denomination: "Non-Denominational",
			Values:    []string{"Kindness", "Family", "Travel"},
			Intention: domain.IntentionDatingToMarry, Lifestyle: domain.LifestyleModerate,
			Bio:          "Love Jesus and coffee. Want a family one day. Looking for someone who leads with faith.",
			ProfileImage: "https://images.unsplash.com/photo-1517841905240-472988babdf9?auto=format&fit=crop&w=800&q=80",
			IsVerified:   true,
		},
		{
			Identity: "mock_mary_3", Name: "Mary", Age: 23, Gender: "Female",
			LocationLabel: "Houston, TX", Coordinates: at(houston),
			Faith: "Catholic", FaithLevel: domain.FaithLevelVerySerious, Denomination: "Catholic",
			Values:    []string{"Purity", "Tradition", "Pro-Life"},
			Intention: domain.IntentionMarriageASAP, Lifestyle: domain.LifestyleTraditional,
			Bio:          "Traditional Catholic mass attendee. Values faith above all else in life and love.",
			ProfileImage: "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=800&q=80",
			IsVerified:   true, IsPremium: true,
		},
		{
			Identity: "mock_james_4", Name: "James", Age: 27, Gender: "Male",
			LocationLabel: "Austin, TX", Coordinates: at(austin),
			Faith: domain.FaithChristian, FaithLevel: domain.FaithLevelVerySerious, Denomination: "Reformed",
			Values:    []string{"Leadership", "Purity", "Family"},
			Intention: domain.IntentionMarriageASAP, Lifestyle: domain.LifestyleTraditional,
			Bio:          "Biblical manhood. Seeking a Proverbs 31 woman to build a legacy with.",
			ProfileImage: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?auto=format&fit=crop&w=800&q=80",
			IsVerified:   true,
		},
		{
			Identity: "mock_david_5", Name: "David", Age: 29, Gender: "Male",
			LocationLabel: "Dallas, TX", Coordinates: at(dallas),
			Faith: domain.FaithChristian, FaithLevel: domain.FaithLevelPracticing, Denomination: "Methodist",
			Values:    []string{"Career", "Faith", "Sports"},
			Intention: domain.IntentionMarriageSoon, Lifestyle: domain.LifestyleModern,
			Bio:          "Work hard, pray hard. Looking for a partner who balances ambition with devotion.",
			ProfileImage: "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?auto=format&fit=crop&w=800&q=80",
			IsVerified:   true, IsPremium: true,
		},
		{
			Identity: "mock_hannah_6", Name: "Hannah", Age: 22, Gender: "Female",
			LocationLabel: "Nashville, TN", Coordinates: at(nashville),
			Faith: domain.FaithChristian, FaithLevel: domain.FaithLevelVerySerious, Denomination: "Baptist",
			Values:    []string{"Purity", "Music", "Family"},
			Intention: domain.IntentionMarriageSoon, Lifestyle: domain.LifestyleTraditional,
			Bio:          "Worship leader. Waiting for a man who loves God more than he loves me.",
			ProfileImage: "https://images.unsplash.com/photo-1529626455594-4ff0802cfb7e?auto=format&fit=crop&w=800&q=80",
			IsVerified:   true,
		},
		{
			Identity: "mock_ruth_7", Name: "Ruth", Age: 25, Gender: "Female",
			LocationLabel: "Charlotte, NC", Coordinates: at(charlotte),
			Faith: domain.FaithChristian, FaithLevel: domain.FaithLevelPracticing, Denomination: "Presbyterian",
			Values:    []string{"Kindness", "Tradition", "Education"},
			Intention: domain.IntentionDatingToMarry, Lifestyle: domain.LifestyleModerate,
			Bio:          "Seminary student with a heart for missions. Looking for a partner in ministry.",
			ProfileImage: "https://images.unsplash.com/photo-1534528741775-53994a69daeb?auto=format&fit=crop&w=800&q=80",
			IsVerified:   true,
		},
		{
			Identity: "mock_caleb_8", Name: "Caleb", Age: 28, Gender: "Male",
			LocationLabel: "Atlanta, GA", Coordinates: at(atlanta),
			Faith: domain.FaithChristian, FaithLevel: domain.FaithLevelVerySerious, Denomination: "Non-Denominational",
			Values:    []string{"Leadership", "Family", "Tradition"},
			Intention: domain.IntentionMarriageASAP, Lifestyle: domain.LifestyleTraditional,
			Bio:          "Youth pastor building a future rooted in Christ. Ready for a helpmeet.",
			ProfileImage: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?auto=format&fit=crop&w=800&q=80",
			IsVerified:   true, IsPremium: true,
		},
	}
	for i, p := range profiles {
		// keep the listed order as the store's natural order
		p.CreatedAt = createdAt.Add(time.Duration(i) * time.Millisecond)
	}
	return profiles
}

// Upsert writes the demo set, overwriting demo profiles already present.
func Upsert(ctx context.Context, w repository.ProfileWriter, createdAt time.Time) (int, error) {
	profiles := DemoProfiles(createdAt)
	for _, p := range profiles {
		if err := w.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("failed to seed %s: %w", p.Identity, err)
		}
	}
	return len(profiles), nil
}

// IfEmpty seeds the demo set only into an empty store and reports how many
// profiles were written.
func IfEmpty(ctx context.Context, rw repository.ProfileReadWriter, createdAt time.Time) (int, error) {
	n, err := rw.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	return Upsert(ctx, rw, createdAt)
}
