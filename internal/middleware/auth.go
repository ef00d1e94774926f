package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/splatcrew/splattrack/internal/auth"
	"github.com/splatcrew/splattrack/internal/models"
	"github.com/splatcrew/splattrack/internal/storage"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// userIDKey is the context key for the authenticated account ID.
	userIDKey contextKey = "user_id"
	// emailKey is the context key for the authenticated account email.
	emailKey contextKey = "email"
	// playerKey is the context key for the roster entry matched to the
	// authenticated email.
	playerKey contextKey = "player"
)

// GetUserID extracts the account ID from the context, or "".
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// GetEmail extracts the account email from the context, or "".
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}

// GetPlayer extracts the caller's roster entry from the context, or nil.
func GetPlayer(ctx context.Context) *models.Player {
	player, _ := ctx.Value(playerKey).(*models.Player)
	return player
}

// RequireAuth validates the Bearer token and puts the account ID and email
// on the request context. Requests without a valid token get 401.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, auth.ErrMissingToken.Error())
				return
			}

			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				unauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, emailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoster gates access on roster membership: the authenticated email
// must match a player record. The lookup is fresh per request, so removal
// from the roster locks an account out immediately. The matched player is
// put on the context for downstream handlers.
func RequireRoster(store storage.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := GetEmail(r.Context())
			if email == "" {
				unauthorized(w, auth.ErrMissingToken.Error())
				return
			}

			player, err := store.GetPlayerByEmail(r.Context(), email)
			if errors.Is(err, storage.ErrNotFound) {
				forbidden(w, "your email is not on the team roster")
				return
			}
			if err != nil {
				slog.Error("roster lookup failed", "email", email, "error", err)
				writeJSONError(w, http.StatusInternalServerError, "failed to check roster")
				return
			}

			ctx := context.WithValue(r.Context(), playerKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin allows only roster members with the admin flag through.
// Must run after RequireRoster.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := GetPlayer(r.Context())
		if player == nil || !player.IsAdmin {
			forbidden(w, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusUnauthorized, msg)
}

func forbidden(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusForbidden, msg)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
