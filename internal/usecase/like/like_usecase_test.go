package like

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/repository"
	"github.com/gdugdh24/covenant-backend/internal/repository/memory"
)

type fixture struct {
	uc       *LikeUseCase
	likes    *memory.LikeRepository
	matches  *memory.MatchRepository
	profiles *memory.ProfileRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		likes:   memory.NewLikeRepository(),
		matches: memory.NewMatchRepository(),
		profiles: memory.NewProfileRepository(
			&domain.Profile{Identity: "alice", Name: "Alice", Age: 25},
			&domain.Profile{Identity: "bob", Name: "Bob", Age: 27},
			&domain.Profile{Identity: "carol", Name: "Carol", Age: 29},
		),
	}
	f.uc = NewLikeUseCase(f.likes, f.matches, f.profiles, nil)
	return f
}

func (f *fixture) counts(t *testing.T) (likes, matches int) {
	t.Helper()
	ctx := context.Background()
	likes, err := f.likes.Count(ctx)
	require.NoError(t, err)
	matches, err = f.matches.Count(ctx)
	require.NoError(t, err)
	return likes, matches
}

func TestLike_OneSided(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Like(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, resp.Matched)
	assert.Equal(t, MessageLikeSent, resp.Message)

	sent, err := f.uc.GetSentLikes(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, sent)

	received, err := f.uc.GetReceivedLikes(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "alice", received[0].Identity)
	assert.False(t, received[0].LikedAt.IsZero())
}

func TestLike_MutualCreatesMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Like(ctx, "alice", "bob")
	require.NoError(t, err)

	resp, err := f.uc.Like(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.True(t, resp.Matched)
	assert.Equal(t, MessageItsAMatch, resp.Message)
	require.NotNil(t, resp.Match)
	assert.Equal(t, "alice", resp.Match.User1ID)
	assert.Equal(t, "bob", resp.Match.User2ID)

	likes, matches := f.counts(t)
	assert.Equal(t, 0, likes, "likes are consumed by the match")
	assert.Equal(t, 1, matches)

	for _, id := range []string{"alice", "bob"} {
		views, err := f.uc.GetMatches(ctx, id)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.NotEqual(t, id, views[0].MatchedUser.Identity)
		assert.Nil(t, views[0].LastMessage)
		assert.Nil(t, views[0].LastMessageAt)
	}
}

func TestLike_AlreadyMatched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Like(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = f.uc.Like(ctx, "bob", "alice")
	require.NoError(t, err)

	resp, err := f.uc.Like(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, resp.Matched)
	assert.Equal(t, MessageAlreadyMatched, resp.Message)

	likes, matches := f.counts(t)
	assert.Equal(t, 0, likes, "no stale like after a match")
	assert.Equal(t, 1, matches)
}

func TestLike_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Like(ctx, "alice", "bob")
	require.NoError(t, err)

	resp, err := f.uc.Like(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, resp.Matched)
	assert.Equal(t, MessageAlreadyLiked, resp.Message)

	likes, _ := f.counts(t)
	assert.Equal(t, 1, likes)
}

func TestLike_InvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Like(ctx, "alice", "alice")
	assert.ErrorIs(t, err, domain.ErrCannotLikeSelf)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = f.uc.Like(ctx, "", "bob")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = f.uc.Like(ctx, "alice", "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	likes, matches := f.counts(t)
	assert.Zero(t, likes)
	assert.Zero(t, matches)
}

func TestLike_ConcurrentMutual(t *testing.T) {
	for i := 0; i < 50; i++ {
		f := newFixture(t)
		ctx := context.Background()

		var (
			wg      sync.WaitGroup
			matched atomic.Int32
		)
		for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
			wg.Add(1)
			go func(from, to string) {
				defer wg.Done()
				resp, err := f.uc.Like(ctx, from, to)
				assert.NoError(t, err)
				if resp != nil && resp.Matched {
					matched.Add(1)
				}
			}(pair[0], pair[1])
		}
		wg.Wait()

		likes, matches := f.counts(t)
		require.Equal(t, 1, matches, "iteration %d", i)
		require.Equal(t, 0, likes, "iteration %d", i)
		require.GreaterOrEqual(t, matched.Load(), int32(1), "iteration %d", i)
	}
}

func TestLike_ConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const callers = 20
	var (
		wg   sync.WaitGroup
		sent atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := f.uc.Like(ctx, "alice", "bob")
			assert.NoError(t, err)
			if resp != nil && resp.Message == MessageLikeSent {
				sent.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), sent.Load())
	likes, matches := f.counts(t)
	assert.Equal(t, 1, likes)
	assert.Zero(t, matches)
}

// flakyMatches fails the first Insert with a retryable error.
type flakyMatches struct {
	repository.MatchRepository
	failed atomic.Bool
}

func (r *flakyMatches) Insert(ctx context.Context, m *domain.Match) error {
	if r.failed.CompareAndSwap(false, true) {
		return domain.ErrStoreUnavailable
	}
	return r.MatchRepository.Insert(ctx, m)
}

// flakyLikes fails the first DeletePair with a retryable error.
type flakyLikes struct {
	repository.LikeRepository
	failed atomic.Bool
}

func (r *flakyLikes) DeletePair(ctx context.Context, a, b string) error {
	if r.failed.CompareAndSwap(false, true) {
		return domain.ErrStoreUnavailable
	}
	return r.LikeRepository.DeletePair(ctx, a, b)
}

func TestLike_RetryAfterMatchInsertFailure(t *testing.T) {
	f := newFixture(t)
	f.uc = NewLikeUseCase(f.likes, &flakyMatches{MatchRepository: f.matches}, f.profiles, nil)
	ctx := context.Background()

	_, err := f.uc.Like(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = f.uc.Like(ctx, "bob", "alice")
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	likes, matches := f.counts(t)
	assert.Equal(t, 2, likes, "both likes survive the failed attempt")
	assert.Zero(t, matches)

	resp, err := f.uc.Like(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.True(t, resp.Matched)
	assert.Equal(t, MessageItsAMatch, resp.Message)

	likes, matches = f.counts(t)
	assert.Zero(t, likes)
	assert.Equal(t, 1, matches)
}

func TestLike_RetryAfterCleanupFailure(t *testing.T) {
	f := newFixture(t)
	f.uc = NewLikeUseCase(&flakyLikes{LikeRepository: f.likes}, f.matches, f.profiles, nil)
	ctx := context.Background()

	_, err := f.uc.Like(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = f.uc.Like(ctx, "bob", "alice")
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	likes, matches := f.counts(t)
	assert.Equal(t, 2, likes)
	assert.Equal(t, 1, matches)

	// leftovers are hidden from the received list while a match exists
	received, err := f.uc.GetReceivedLikes(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, received)

	resp, err := f.uc.Like(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.True(t, resp.Matched)
	assert.Equal(t, MessageAlreadyMatched, resp.Message)

	likes, matches = f.counts(t)
	assert.Zero(t, likes)
	assert.Equal(t, 1, matches)
}

func TestLike_StaleLikeAfterConcurrentMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// alice's like landed after bob's call had already formed the match
	require.NoError(t, f.matches.Insert(ctx, domain.NewMatch(domain.NewPair("alice", "bob"), time.Now())))

	resp, err := f.uc.Like(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, resp.Matched)

	likes, _ := f.counts(t)
	assert.Zero(t, likes)
}

func TestUnlike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Like(ctx, "alice", "carol")
	require.NoError(t, err)

	resp, err := f.uc.Unlike(ctx, "alice", "carol")
	require.NoError(t, err)
	assert.True(t, resp.Removed)

	resp, err = f.uc.Unlike(ctx, "alice", "carol")
	require.NoError(t, err)
	assert.False(t, resp.Removed)

	_, err = f.uc.Unlike(ctx, "", "carol")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestUnlike_KeepsMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Like(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = f.uc.Like(ctx, "bob", "alice")
	require.NoError(t, err)

	resp, err := f.uc.Unlike(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, resp.Removed)

	_, matches := f.counts(t)
	assert.Equal(t, 1, matches)
}

func TestGetReceivedLikes_SkipsMissingProfiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.likes.Insert(ctx, &domain.Like{FromID: "ghost", ToID: "carol", CreatedAt: time.Now()}))
	_, err := f.uc.Like(ctx, "bob", "carol")
	require.NoError(t, err)

	received, err := f.uc.GetReceivedLikes(ctx, "carol")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "bob", received[0].Identity)
}

type brokenLikes struct {
	repository.LikeRepository
}

func (brokenLikes) Insert(context.Context, *domain.Like) error {
	return errors.Join(domain.ErrStoreUnavailable, errors.New("connection reset"))
}

func TestLike_StoreErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.uc = NewLikeUseCase(brokenLikes{LikeRepository: f.likes}, f.matches, f.profiles, nil)

	_, err := f.uc.Like(context.Background(), "alice", "bob")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
