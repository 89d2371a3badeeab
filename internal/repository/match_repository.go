package repository

import (
	"context"

	"github.com/gdugdh24/covenant-backend/internal/domain"
)

// MatchRepository stores at most one match per canonical pair.
type MatchRepository interface {
	// Insert creates the match if no match exists for its pair.
	// A duplicate returns domain.ErrMatchAlreadyExists and leaves the existing record untouched.
	Insert(ctx context.Context, match *domain.Match) error
	GetByPair(ctx context.Context, pair domain.Pair) (*domain.Match, error)
	ListByParticipant(ctx context.Context, identity string) ([]*domain.Match, error)
	Count(ctx context.Context) (int, error)
}
