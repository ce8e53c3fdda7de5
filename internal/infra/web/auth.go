package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"learner-practice-portal/internal/infra/logging"
)

// ===== Session/JWT primitives =====

// AuthManager mints and verifies the portal's HS256 session tokens. The
// token subject carries the user id; handlers read it back from the
// request context.
type AuthManager struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthManager(secret string, ttl time.Duration) *AuthManager {
	return &AuthManager{secret: []byte(secret), ttl: ttl}
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

// Mint issues a session token for the given user id.
func (a *AuthManager) Mint(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Parse verifies a token and returns the user id it was minted for.
func (a *AuthManager) Parse(tok string) (string, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

type ctxKey string

const ctxUserID ctxKey = "user_id"

// UserID returns the authenticated user id from the request, or "".
func UserID(r *http.Request) string {
	if v := r.Context().Value(ctxUserID); v != nil {
		return v.(string)
	}
	return ""
}

// Middleware authenticates Authorization: Bearer <jwt> and injects the
// user id into the request context, both for handlers and for the
// logging context fields. Requests without a valid token are rejected
// here so handlers can rely on a non-empty user id.
func (a *AuthManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := r.Header.Get("Authorization")
		if hdr == "" || !strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userID, err := a.Parse(strings.TrimSpace(hdr[7:]))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, userID)
		ctx = logging.WithUserID(ctx, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
