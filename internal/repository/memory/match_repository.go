package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/repository"
)

type MatchRepository struct {
	mu      sync.Mutex
	matches map[domain.Pair]domain.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{matches: make(map[domain.Pair]domain.Match)}
}

var _ repository.MatchRepository = (*MatchRepository)(nil)

func (r *MatchRepository) Insert(_ context.Context, match *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pair := match.Pair()
	if _, ok := r.matches[pair]; ok {
		return domain.ErrMatchAlreadyExists
	}
	stored := *match
	stored.User1ID, stored.User2ID = pair.First, pair.Second
	r.matches[pair] = stored
	match.User1ID, match.User2ID = pair.First, pair.Second
	return nil
}

func (r *MatchRepository) GetByPair(_ context.Context, pair domain.Pair) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[domain.NewPair(pair.First, pair.Second)]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return &m, nil
}

func (r *MatchRepository) ListByParticipant(_ context.Context, identity string) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Match
	for _, m := range r.matches {
		if m.HasUser(identity) {
			match := m
			out = append(out, &match)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *MatchRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matches), nil
}

