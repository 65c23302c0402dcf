package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session expired")
)

// CookieName is the cookie carrying the session token
const CookieName = "parkeasy_session"

const redisPrefix = "session:"

// Claims represents session JWT claims. UserID is uuid.Nil for
// admin sessions, which carry only the admin flag.
type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	IsAdmin bool      `json:"is_admin"`
	jwt.RegisteredClaims
}

// Service issues and validates session tokens. Tokens are signed JWTs;
// when Redis is configured each token's jti is also stored server-side
// so logout can revoke a session before its expiry.
type Service struct {
	secret []byte
	ttl    time.Duration
	redis  *redis.Client // nil if Redis disabled
}

// NewService creates session service
func NewService(secret string, ttl time.Duration, redis *redis.Client) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, redis: redis}
}

// Issue creates a session token for a user or the admin identity
func (s *Service) Issue(ctx context.Context, userID uuid.UUID, isAdmin bool) (string, error) {
	now := time.Now()
	jti := uuid.New().String()
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, redisPrefix+jti, userID.String(), s.ttl).Err(); err != nil {
			return "", err
		}
	}

	return token, nil
}

// Validate parses the token and, when Redis is configured, checks the
// session has not been revoked.
func (s *Service) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if s.redis != nil {
		exists, err := s.redis.Exists(ctx, redisPrefix+claims.ID).Result()
		if err != nil || exists == 0 {
			return nil, ErrInvalidToken
		}
	}

	return claims, nil
}

// Revoke invalidates the session server-side. Without Redis the token
// simply runs out at its expiry.
func (s *Service) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.Validate(ctx, tokenString)
	if err != nil {
		return nil // already invalid, nothing to revoke
	}
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, redisPrefix+claims.ID).Err()
}

// TTL returns the configured session lifetime
func (s *Service) TTL() time.Duration { return s.ttl }

// FromRequest extracts the session token from the cookie or the
// Authorization header.
func FromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

// SetCookie writes the session cookie
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
