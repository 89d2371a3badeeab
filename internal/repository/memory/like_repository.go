package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/repository"
)

type likeKey struct {
	from, to string
}

type LikeRepository struct {
	mu    sync.Mutex
	likes map[likeKey]domain.Like
}

func NewLikeRepository() *LikeRepository {
	return &LikeRepository{likes: make(map[likeKey]domain.Like)}
}

var _ repository.LikeRepository = (*LikeRepository)(nil)

func (r *LikeRepository) Insert(_ context.Context, like *domain.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := likeKey{from: like.FromID, to: like.ToID}
	if _, ok := r.likes[key]; ok {
		return domain.ErrLikeAlreadyExists
	}
	r.likes[key] = *like
	return nil
}

func (r *LikeRepository) Get(_ context.Context, fromID, toID string) (*domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	like, ok := r.likes[likeKey{from: fromID, to: toID}]
	if !ok {
		return nil, domain.ErrLikeNotFound
	}
	return &like, nil
}

func (r *LikeRepository) Delete(_ context.Context, fromID, toID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := likeKey{from: fromID, to: toID}
	if _, ok := r.likes[key]; !ok {
		return false, nil
	}
	delete(r.likes, key)
	return true, nil
}

func (r *LikeRepository) DeletePair(_ context.Context, a, b string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.likes, likeKey{from: a, to: b})
	delete(r.likes, likeKey{from: b, to: a})
	return nil
}

func (r *LikeRepository) ListByTarget(_ context.Context, toID string) ([]*domain.Like, error) {
	return r.list(func(l domain.Like) bool { return l.ToID == toID }), nil
}

func (r *LikeRepository) ListBySender(_ context.Context, fromID string) ([]*domain.Like, error) {
	return r.list(func(l domain.Like) bool { return l.FromID == fromID }), nil
}

func (r *LikeRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.likes), nil
}

// list returns matching likes newest first, ties broken by identities for a stable order.
func (r *LikeRepository) list(keep func(domain.Like) bool) []*domain.Like {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Like
	for _, l := range r.likes {
		if keep(l) {
			like := l
			out = append(out, &like)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		if out[i].FromID != out[j].FromID {
			return out[i].FromID < out[j].FromID
		}
		return out[i].ToID < out[j].ToID
	})
	return out
}
