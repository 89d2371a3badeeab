package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/repository"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) repository.LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Insert(ctx context.Context, like *domain.Like) error {
	query := `
		INSERT INTO likes (from_identity, to_identity, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_identity, to_identity) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, like.FromID, like.ToID, like.CreatedAt)
	if err != nil {
		return mapError(err, nil, domain.ErrLikeAlreadyExists)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return mapError(err, nil, nil)
	}
	if rows == 0 {
		return domain.ErrLikeAlreadyExists
	}
	return nil
}

func (r *likeRepository) Get(ctx context.Context, fromID, toID string) (*domain.Like, error) {
	var like domain.Like
	query := `SELECT from_identity, to_identity, created_at FROM likes WHERE from_identity = $1 AND to_identity = $2`
	if err := r.db.GetContext(ctx, &like, query, fromID, toID); err != nil {
		return nil, mapError(err, domain.ErrLikeNotFound, nil)
	}
	return &like, nil
}

func (r *likeRepository) Delete(ctx context.Context, fromID, toID string) (bool, error) {
	query := `DELETE FROM likes WHERE from_identity = $1 AND to_identity = $2`
	result, err := r.db.ExecContext(ctx, query, fromID, toID)
	if err != nil {
		return false, mapError(err, nil, nil)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, mapError(err, nil, nil)
	}
	return rows > 0, nil
}

func (r *likeRepository) DeletePair(ctx context.Context, a, b string) error {
	query := `
		DELETE FROM likes
		WHERE (from_identity = $1 AND to_identity = $2)
		   OR (from_identity = $2 AND to_identity = $1)
	`
	_, err := r.db.ExecContext(ctx, query, a, b)
	return mapError(err, nil, nil)
}

func (r *likeRepository) ListByTarget(ctx context.Context, toID string) ([]*domain.Like, error) {
	var likes []*domain.Like
	query := `
		SELECT from_identity, to_identity, created_at FROM likes
		WHERE to_identity = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &likes, query, toID); err != nil {
		return nil, mapError(err, nil, nil)
	}
	return likes, nil
}

func (r *likeRepository) ListBySender(ctx context.Context, fromID string) ([]*domain.Like, error) {
	var likes []*domain.Like
	query := `
		SELECT from_identity, to_identity, created_at FROM likes
		WHERE from_identity = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &likes, query, fromID); err != nil {
		return nil, mapError(err, nil, nil)
	}
	return likes, nil
}

func (r *likeRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM likes`); err != nil {
		return 0, mapError(err, nil, nil)
	}
	return n, nil
}
