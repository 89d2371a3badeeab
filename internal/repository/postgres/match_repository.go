package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

const matchColumns = `id, user1_identity, user2_identity, created_at, last_message, last_message_at`

func (r *matchRepository) Insert(ctx context.Context, match *domain.Match) error {
	// user1 < user2 is enforced by a CHECK constraint
	pair := match.Pair()
	match.User1ID, match.User2ID = pair.First, pair.Second

	query := `
		INSERT INTO matches (id, user1_identity, user2_identity, created_at, last_message, last_message_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user1_identity, user2_identity) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query,
		match.ID, match.User1ID, match.User2ID, match.CreatedAt, match.LastMessage, match.LastMessageAt,
	)
	if err != nil {
		return mapError(err, nil, domain.ErrMatchAlreadyExists)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return mapError(err, nil, nil)
	}
	if rows == 0 {
		return domain.ErrMatchAlreadyExists
	}
	return nil
}

func (r *matchRepository) GetByPair(ctx context.Context, pair domain.Pair) (*domain.Match, error) {
	pair = domain.NewPair(pair.First, pair.Second)

	var match domain.Match
	query := `SELECT ` + matchColumns + ` FROM matches WHERE user1_identity = $1 AND user2_identity = $2`
	if err := r.db.GetContext(ctx, &match, query, pair.First, pair.Second); err != nil {
		return nil, mapError(err, domain.ErrMatchNotFound, nil)
	}
	return &match, nil
}

func (r *matchRepository) ListByParticipant(ctx context.Context, identity string) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE (user1_identity = $1 OR user2_identity = $1)
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &matches, query, identity); err != nil {
		return nil, mapError(err, nil, nil)
	}
	return matches, nil
}

func (r *matchRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM matches`); err != nil {
		return 0, mapError(err, nil, nil)
	}
	return n, nil
}
