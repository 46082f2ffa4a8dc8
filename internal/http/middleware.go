package http

import (
	"context"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Manu2954/Buildora-sub000/internal/auth"
	"github.com/Manu2954/Buildora-sub000/internal/domain"
)

type ctxKey int

const (
	ctxKeyUserID ctxKey = iota
	ctxKeyRole
	ctxKeyRequestID
)

// UserIDFromContext returns the authenticated user ID, or "" when the
// request never passed the Authenticator.
func UserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(ctxKeyUserID).(string); ok {
		return userID
	}
	return ""
}

func RoleFromContext(ctx context.Context) domain.Role {
	if role, ok := ctx.Value(ctxKeyRole).(domain.Role); ok {
		return role
	}
	return ""
}

func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// RequestIDMiddleware attaches a ULID to each request, honoring an
// X-Request-ID supplied by an upstream proxy.
func RequestIDMiddleware(next http.Handler) http.Handler {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
		}

		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authenticator verifies the bearer token and attaches the identity to the
// request context. Protected handlers never see a request without one, so
// there is no partially-authenticated state downstream.
func Authenticator(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.Subject)
			ctx = context.WithValue(ctx, ctxKeyRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly gates back-office routes on the role claim. It must run after
// Authenticator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromContext(r.Context()) != domain.RoleAdmin {
			respondError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
