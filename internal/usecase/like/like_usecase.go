package like

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/infrastructure/metrics"
	"github.com/gdugdh24/covenant-backend/internal/repository"
)

// Outcome messages returned by Like.
const (
	MessageLikeSent       = "Like sent"
	MessageAlreadyLiked   = "Already liked"
	MessageItsAMatch      = "It's a match!"
	MessageAlreadyMatched = "Already matched"
)

// LikeUseCase owns the like -> mutual like -> match transition.
//
// Uniqueness is enforced by the repositories (insert-if-absent on the ordered
// like pair and on the canonical match pair), never by in-process locks, so
// several instances may run against the same store. The sequence
// like -> reciprocity check -> match insert -> like cleanup is not
// transactional; every step is idempotent and a retried call finishes
// whatever an interrupted call left behind.
type LikeUseCase struct {
	likeRepo    repository.LikeRepository
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewLikeUseCase(
	likeRepo repository.LikeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	logger *zap.Logger,
) *LikeUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LikeUseCase{
		likeRepo:    likeRepo,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// LikeRequest represents a like action
type LikeRequest struct {
	ToUserID string `json:"to_user_id" binding:"required"`
}

// LikeResponse represents like result
type LikeResponse struct {
	Matched bool          `json:"matched"`
	Message string        `json:"message"`
	Match   *domain.Match `json:"match,omitempty"`
}

// UnlikeResponse reports whether a like record was removed.
type UnlikeResponse struct {
	Removed bool   `json:"removed"`
	Message string `json:"message"`
}

// ReceivedLike is a pending like with the sender's profile.
type ReceivedLike struct {
	*domain.Profile
	LikedAt time.Time `json:"likedAt"`
}

// MatchView is a match seen from one of its members.
type MatchView struct {
	MatchID       string          `json:"matchId"`
	MatchedUser   *domain.Profile `json:"matchedUser"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastMessage   *string         `json:"lastMessage"`
	LastMessageAt *time.Time      `json:"lastMessageAt"`
}

// Like records a like from fromID to toID and promotes a mutual like to a match.
func (uc *LikeUseCase) Like(ctx context.Context, fromID, toID string) (*LikeResponse, error) {
	defer metrics.RecordDuration("like", time.Now())

	fromID, toID = strings.TrimSpace(fromID), strings.TrimSpace(toID)
	if fromID == "" || toID == "" {
		return nil, domain.InvalidRequestf("both identities are required")
	}
	if fromID == toID {
		return nil, domain.ErrCannotLikeSelf
	}

	if _, err := uc.profileRepo.GetByIdentity(ctx, toID); err != nil {
		return nil, fmt.Errorf("failed to get liked profile: %w", err)
	}

	pair := domain.NewPair(fromID, toID)

	// Matched is terminal: liking again only sweeps leftovers.
	existing, err := uc.matchRepo.GetByPair(ctx, pair)
	switch {
	case err == nil:
		if err := uc.likeRepo.DeletePair(ctx, fromID, toID); err != nil {
			return nil, fmt.Errorf("failed to clean up likes: %w", err)
		}
		metrics.RecordLike(metrics.LikeAlreadyMatch)
		return &LikeResponse{Matched: true, Message: MessageAlreadyMatched, Match: existing}, nil
	case !errors.Is(err, domain.ErrMatchNotFound):
		return nil, fmt.Errorf("failed to check match: %w", err)
	}

	like := &domain.Like{FromID: fromID, ToID: toID, CreatedAt: uc.now()}
	insertErr := uc.likeRepo.Insert(ctx, like)
	if insertErr != nil && !errors.Is(insertErr, domain.ErrLikeAlreadyExists) {
		return nil, fmt.Errorf("failed to create like: %w", insertErr)
	}
	duplicate := insertErr != nil

	_, err = uc.likeRepo.Get(ctx, toID, fromID)
	switch {
	case err == nil:
		match, err := uc.formMatch(ctx, pair)
		if err != nil {
			return nil, err
		}
		metrics.RecordLike(metrics.LikeMatched)
		uc.logger.Info("match created",
			zap.String("from", fromID),
			zap.String("to", toID),
			zap.Bool("resumed", duplicate),
		)
		return &LikeResponse{Matched: true, Message: MessageItsAMatch, Match: match}, nil
	case !errors.Is(err, domain.ErrLikeNotFound):
		return nil, fmt.Errorf("failed to check mutual like: %w", err)
	}

	if duplicate {
		metrics.RecordLike(metrics.LikeAlreadyLiked)
		return &LikeResponse{Matched: false, Message: MessageAlreadyLiked}, nil
	}

	// A concurrent reciprocal call may have formed the match and consumed
	// the reverse like between our insert and the reciprocity check.
	existing, err = uc.matchRepo.GetByPair(ctx, pair)
	switch {
	case err == nil:
		if err := uc.likeRepo.DeletePair(ctx, fromID, toID); err != nil {
			return nil, fmt.Errorf("failed to clean up likes: %w", err)
		}
		metrics.RecordLike(metrics.LikeMatched)
		return &LikeResponse{Matched: true, Message: MessageItsAMatch, Match: existing}, nil
	case !errors.Is(err, domain.ErrMatchNotFound):
		return nil, fmt.Errorf("failed to check match: %w", err)
	}

	metrics.RecordLike(metrics.LikeSent)
	return &LikeResponse{Matched: false, Message: MessageLikeSent}, nil
}

// formMatch inserts the match for pair unless one exists, then deletes the
// likes in both directions. Losing the insert race returns the winner's record.
func (uc *LikeUseCase) formMatch(ctx context.Context, pair domain.Pair) (*domain.Match, error) {
	match := domain.NewMatch(pair, uc.now())

	err := uc.matchRepo.Insert(ctx, match)
	switch {
	case err == nil:
		metrics.RecordMatch()
	case errors.Is(err, domain.ErrMatchAlreadyExists):
		metrics.RecordMatchConflict()
		existing, getErr := uc.matchRepo.GetByPair(ctx, pair)
		if getErr != nil {
			return nil, fmt.Errorf("failed to get existing match: %w", getErr)
		}
		match = existing
	default:
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if err := uc.likeRepo.DeletePair(ctx, pair.First, pair.Second); err != nil {
		return nil, fmt.Errorf("failed to clean up likes: %w", err)
	}
	return match, nil
}

// Unlike deletes the like from fromID to toID. Matches are never touched.
func (uc *LikeUseCase) Unlike(ctx context.Context, fromID, toID string) (*UnlikeResponse, error) {
	fromID, toID = strings.TrimSpace(fromID), strings.TrimSpace(toID)
	if fromID == "" || toID == "" {
		return nil, domain.InvalidRequestf("both identities are required")
	}

	removed, err := uc.likeRepo.Delete(ctx, fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete like: %w", err)
	}
	if !removed {
		return &UnlikeResponse{Removed: false, Message: "Like not found"}, nil
	}
	return &UnlikeResponse{Removed: true, Message: "Unliked"}, nil
}

// GetReceivedLikes returns pending likes targeting identity. Senders who
// already share a match with identity are excluded, which also hides likes
// left behind by an interrupted match formation.
func (uc *LikeUseCase) GetReceivedLikes(ctx context.Context, identity string) ([]*ReceivedLike, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, domain.InvalidRequestf("identity is required")
	}

	likes, err := uc.likeRepo.ListByTarget(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to get received likes: %w", err)
	}
	matched, err := uc.matchedWith(ctx, identity)
	if err != nil {
		return nil, err
	}

	responses := make([]*ReceivedLike, 0, len(likes))
	for _, l := range likes {
		if _, ok := matched[l.FromID]; ok {
			continue
		}
		profile, err := uc.profileRepo.GetByIdentity(ctx, l.FromID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to get sender profile: %w", err)
		}
		responses = append(responses, &ReceivedLike{Profile: profile, LikedAt: l.CreatedAt})
	}
	return responses, nil
}

// GetSentLikes returns the identities liked by identity.
func (uc *LikeUseCase) GetSentLikes(ctx context.Context, identity string) ([]string, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, domain.InvalidRequestf("identity is required")
	}

	likes, err := uc.likeRepo.ListBySender(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to get sent likes: %w", err)
	}
	targets := make([]string, 0, len(likes))
	for _, l := range likes {
		targets = append(targets, l.ToID)
	}
	return targets, nil
}

// GetMatches returns every match of identity with the other member's profile.
func (uc *LikeUseCase) GetMatches(ctx context.Context, identity string) ([]*MatchView, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, domain.InvalidRequestf("identity is required")
	}

	matches, err := uc.matchRepo.ListByParticipant(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	views := make([]*MatchView, 0, len(matches))
	for _, m := range matches {
		otherID, ok := m.GetOtherUserID(identity)
		if !ok {
			continue
		}
		other, err := uc.profileRepo.GetByIdentity(ctx, otherID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				uc.logger.Warn("matched profile missing", zap.String("identity", otherID))
				continue
			}
			return nil, fmt.Errorf("failed to get matched profile: %w", err)
		}
		views = append(views, &MatchView{
			MatchID:       m.ID.String(),
			MatchedUser:   other,
			CreatedAt:     m.CreatedAt,
			LastMessage:   m.LastMessage,
			LastMessageAt: m.LastMessageAt,
		})
	}
	return views, nil
}

func (uc *LikeUseCase) matchedWith(ctx context.Context, identity string) (map[string]struct{}, error) {
	matches, err := uc.matchRepo.ListByParticipant(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	ids := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if other, ok := m.GetOtherUserID(identity); ok {
			ids[other] = struct{}{}
		}
	}
	return ids, nil
}
