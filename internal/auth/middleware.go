package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	applog "saldo/internal/log"
)

type contextKey string

const ownerContextKey contextKey = "owner_id"

// WithOwner returns ctx carrying the authenticated owner id.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerContextKey, ownerID)
}

// OwnerFromContext returns the owner id stored by Middleware.
func OwnerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ownerContextKey).(string)
	return id, ok && id != ""
}

// Middleware rejects requests without a valid bearer token with 401.
func Middleware(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "Not authorized, no token")
				return
			}
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				unauthorized(w, "Not authorized, malformed token")
				return
			}

			ownerID, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				msg := "Not authorized, token failed"
				if errors.Is(err, ErrExpiredToken) {
					msg = "Not authorized, token expired"
				}
				applog.FromContext(r.Context()).WarnContext(r.Context(), "Rejected bearer token",
					applog.NewFields().WithError(err).WithErrorType(applog.ErrorTypeAuth).Args()...)
				unauthorized(w, msg)
				return
			}

			ctx := WithOwner(r.Context(), ownerID)
			ctx = applog.NewContext(ctx, applog.FromContext(ctx).WithOwner(ownerID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
