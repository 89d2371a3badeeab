package stats

import (
	"context"
	"fmt"

	"github.com/gdugdh24/covenant-backend/internal/repository"
)

// Stats are aggregate record counts for the admin dashboard.
type Stats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalLikes   int `json:"totalLikes"`
	TotalMatches int `json:"totalMatches"`
}

type StatsUseCase struct {
	profileRepo repository.ProfileRepository
	likeRepo    repository.LikeRepository
	matchRepo   repository.MatchRepository
}

func NewStatsUseCase(
	profileRepo repository.ProfileRepository,
	likeRepo repository.LikeRepository,
	matchRepo repository.MatchRepository,
) *StatsUseCase {
	return &StatsUseCase{
		profileRepo: profileRepo,
		likeRepo:    likeRepo,
		matchRepo:   matchRepo,
	}
}

func (uc *StatsUseCase) GetStats(ctx context.Context) (*Stats, error) {
	users, err := uc.profileRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}
	likes, err := uc.likeRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	matches, err := uc.matchRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	return &Stats{TotalUsers: users, TotalLikes: likes, TotalMatches: matches}, nil
}
