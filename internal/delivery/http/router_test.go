package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/covenant-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/repository"
	"github.com/gdugdh24/covenant-backend/internal/repository/memory"
	"github.com/gdugdh24/covenant-backend/internal/usecase/discovery"
	"github.com/gdugdh24/covenant-backend/internal/usecase/like"
	"github.com/gdugdh24/covenant-backend/internal/usecase/profile"
	"github.com/gdugdh24/covenant-backend/internal/usecase/stats"
)

func newTestEngine(t *testing.T, profiles repository.ProfileRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	likes := memory.NewLikeRepository()
	matches := memory.NewMatchRepository()

	router := NewRouter(
		handler.NewDiscoveryHandler(discovery.NewDiscoveryUseCase(profiles, discovery.DefaultOptions(), logger), logger),
		handler.NewLikeHandler(like.NewLikeUseCase(likes, matches, profiles, logger), logger),
		handler.NewProfileHandler(profile.NewProfileUseCase(profiles, logger), logger),
		handler.NewAdminHandler(stats.NewStatsUseCase(profiles, likes, matches), logger),
		middleware.NewAuthMiddleware("", logger),
		time.Second,
		logger,
	)
	return router.Setup()
}

func defaultProfiles() *memory.ProfileRepository {
	return memory.NewProfileRepository(
		&domain.Profile{Identity: "james", Name: "James", Gender: "Male", Age: 28,
			Faith: domain.FaithChristian, FaithLevel: domain.FaithLevelVerySerious, Denomination: "Baptist",
			Values: []string{"Family", "Purity"}, Intention: domain.IntentionMarriageASAP,
			Lifestyle: domain.LifestyleTraditional, Coordinates: &domain.Coordinate{Lat: 30.2672, Lon: -97.7431}},
		&domain.Profile{Identity: "sarah", Name: "Sarah", Gender: "Female", Age: 26,
			Faith: domain.FaithChristian, FaithLevel: domain.FaithLevelVerySerious, Denomination: "Baptist",
			Values: []string{"Purity", "Family"}, Intention: domain.IntentionMarriageASAP,
			Lifestyle: domain.LifestyleTraditional, Coordinates: &domain.Coordinate{Lat: 32.7767, Lon: -96.7970}},
		&domain.Profile{Identity: "grace", Name: "Grace", Gender: "Female", Age: 31},
	)
}

func do(r *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if user != "" {
		req.Header.Set(middleware.IdentityHeader, user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t, defaultProfiles())

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodHead, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/metrics", "", "").Code)
}

func TestProtectedRoutesRequireIdentity(t *testing.T) {
	r := newTestEngine(t, defaultProfiles())

	for _, path := range []string{"/api/v1/discover", "/api/v1/matches", "/api/v1/profile/me"} {
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, path, "", "").Code, path)
	}
}

func TestDiscover(t *testing.T) {
	r := newTestEngine(t, defaultProfiles())

	w := do(r, http.MethodGet, "/api/v1/discover?gender=Female", "james", "")
	require.Equal(t, http.StatusOK, w.Code)

	ranked := decode[[]map[string]any](t, w)
	require.Len(t, ranked, 2)
	assert.Equal(t, "sarah", ranked[0]["firebaseUid"])
	assert.EqualValues(t, 100, ranked[0]["score"])
	assert.Contains(t, ranked[0], "breakdown")
	assert.Contains(t, ranked[0], "reasons")

	w = do(r, http.MethodGet, "/api/v1/discover?min_age=40&max_age=30", "james", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/v1/discover?min_age=abc", "james", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNearby(t *testing.T) {
	r := newTestEngine(t, defaultProfiles())

	w := do(r, http.MethodGet, "/api/v1/nearby?lat=30.2672&lon=-97.7431&radius=400000", "james", "")
	require.Equal(t, http.StatusOK, w.Code)
	nearby := decode[[]map[string]any](t, w)
	require.Len(t, nearby, 1)
	assert.Equal(t, "sarah", nearby[0]["firebaseUid"])
	assert.EqualValues(t, 293.1, nearby[0]["distanceKm"])

	w = do(r, http.MethodGet, "/api/v1/nearby?lon=-97.7431", "james", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLikeFlow(t *testing.T) {
	r := newTestEngine(t, defaultProfiles())

	w := do(r, http.MethodPost, "/api/v1/likes", "james", `{"to_user_id":"sarah"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[like.LikeResponse](t, w)
	assert.False(t, resp.Matched)
	assert.Equal(t, like.MessageLikeSent, resp.Message)

	w = do(r, http.MethodGet, "/api/v1/likes/sent", "james", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"sarah"}, decode[[]string](t, w))

	w = do(r, http.MethodGet, "/api/v1/likes/received", "sarah", "")
	require.Equal(t, http.StatusOK, w.Code)
	received := decode[[]map[string]any](t, w)
	require.Len(t, received, 1)
	assert.Equal(t, "james", received[0]["firebaseUid"])
	assert.Contains(t, received[0], "likedAt")

	w = do(r, http.MethodPost, "/api/v1/likes", "sarah", `{"to_user_id":"james"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[like.LikeResponse](t, w)
	assert.True(t, resp.Matched)
	assert.Equal(t, like.MessageItsAMatch, resp.Message)

	w = do(r, http.MethodGet, "/api/v1/matches", "james", "")
	require.Equal(t, http.StatusOK, w.Code)
	matches := decode[[]map[string]any](t, w)
	require.Len(t, matches, 1)
	matched, ok := matches[0]["matchedUser"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sarah", matched["firebaseUid"])
	assert.Nil(t, matches[0]["lastMessage"])

	w = do(r, http.MethodGet, "/api/v1/admin/stats", "james", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, stats.Stats{TotalUsers: 3, TotalLikes: 0, TotalMatches: 1}, decode[stats.Stats](t, w))
}

func TestLikeErrors(t *testing.T) {
	r := newTestEngine(t, defaultProfiles())

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"self like", `{"to_user_id":"james"}`, http.StatusBadRequest},
		{"unknown target", `{"to_user_id":"nobody"}`, http.StatusNotFound},
		{"missing target", `{}`, http.StatusBadRequest},
		{"malformed body", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/v1/likes", "james", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestUnlike(t *testing.T) {
	r := newTestEngine(t, defaultProfiles())

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/likes", "james", `{"to_user_id":"grace"}`).Code)

	w := do(r, http.MethodDelete, "/api/v1/likes/grace", "james", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[like.UnlikeResponse](t, w).Removed)

	w = do(r, http.MethodDelete, "/api/v1/likes/grace", "james", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[like.UnlikeResponse](t, w).Removed)
}

func TestProfileRoutes(t *testing.T) {
	r := newTestEngine(t, defaultProfiles())

	w := do(r, http.MethodGet, "/api/v1/profile/me", "james", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "James", decode[map[string]any](t, w)["name"])

	w = do(r, http.MethodGet, "/api/v1/profile/sarah", "james", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 293.1, decode[map[string]any](t, w)["distanceKm"])

	w = do(r, http.MethodGet, "/api/v1/profile/nobody", "james", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/v1/profile/me", "stranger", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type unavailableProfiles struct {
	repository.ProfileRepository
}

func (unavailableProfiles) GetByIdentity(context.Context, string) (*domain.Profile, error) {
	return nil, domain.ErrStoreUnavailable
}

func TestStoreUnavailableMapsTo503(t *testing.T) {
	r := newTestEngine(t, unavailableProfiles{ProfileRepository: defaultProfiles()})

	w := do(r, http.MethodGet, "/api/v1/profile/me", "james", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = do(r, http.MethodPost, "/api/v1/likes", "james", `{"to_user_id":"sarah"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
