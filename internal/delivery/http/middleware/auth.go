package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	// UserIDKey is the gin context key holding the caller's identity.
	UserIDKey = "user_id"
	// IdentityHeader carries the caller's identity when token verification is disabled.
	IdentityHeader = "X-Firebase-UID"
	// identityClaim is the token claim carrying the identity assigned by the auth service.
	identityClaim = "uid"
)

var errInvalidToken = errors.New("invalid token")

// AuthMiddleware resolves the caller identity. Accounts and token issuance
// belong to an external auth service; this side only verifies.
type AuthMiddleware struct {
	secret []byte
	logger *zap.Logger
}

// NewAuthMiddleware verifies HS256 bearer tokens signed with secret. An empty
// secret trusts IdentityHeader instead, for local development and tests.
func NewAuthMiddleware(secret string, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{secret: []byte(secret), logger: logger}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.identify(c)
		if err != nil {
			m.logger.Debug("unauthorized request", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		c.Set(UserIDKey, identity)
		c.Next()
	}
}

func (m *AuthMiddleware) identify(c *gin.Context) (string, error) {
	if len(m.secret) == 0 {
		identity := strings.TrimSpace(c.GetHeader(IdentityHeader))
		if identity == "" {
			return "", errors.New("missing identity header")
		}
		return identity, nil
	}

	header := c.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return "", errors.New("missing bearer token")
	}
	return m.verifyToken(tokenString)
}

// verifyToken checks the signature and expiry and returns the uid claim.
func (m *AuthMiddleware) verifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}
	uid, ok := claims[identityClaim].(string)
	if !ok || strings.TrimSpace(uid) == "" {
		return "", errInvalidToken
	}
	return uid, nil
}
