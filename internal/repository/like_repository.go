package repository

import (
	"context"

	"github.com/gdugdh24/covenant-backend/internal/domain"
)

// LikeRepository stores at most one like per ordered (from, to) pair.
type LikeRepository interface {
	// Insert creates the like if absent. A duplicate returns domain.ErrLikeAlreadyExists.
	Insert(ctx context.Context, like *domain.Like) error
	Get(ctx context.Context, fromID, toID string) (*domain.Like, error)
	// Delete removes the (from, to) like and reports whether a record was removed.
	Delete(ctx context.Context, fromID, toID string) (bool, error)
	// DeletePair removes the likes in both directions between a and b.
	DeletePair(ctx context.Context, a, b string) error
	ListByTarget(ctx context.Context, toID string) ([]*domain.Like, error)
	ListBySender(ctx context.Context, fromID string) ([]*domain.Like, error)
	Count(ctx context.Context) (int, error)
}
