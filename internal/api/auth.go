package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/splatcrew/splattrack/internal/auth"
	"github.com/splatcrew/splattrack/internal/middleware"
	"github.com/splatcrew/splattrack/internal/models"
)

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userJSON struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type sessionResponse struct {
	Token    string   `json:"token"`
	User     userJSON `json:"user"`
	OnRoster bool     `json:"on_roster"`
	IsAdmin  bool     `json:"is_admin"`
}

// Register creates a login account. Sign-up is open to anyone; until an
// admin puts the email on the roster the account can log in but reach
// nothing.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "email and display_name are required")
		return
	}

	user, err := h.authenticator.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("registration failed", "email", req.Email, "error", err)
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	h.writeSession(w, r, user, http.StatusCreated)
}

// Login authenticates an account and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "email", req.Email)
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	h.writeSession(w, r, user, http.StatusOK)
}

// CurrentUser returns the caller's account and roster standing.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	writeJSON(w, http.StatusOK, sessionResponse{
		User: userJSON{
			ID:    middleware.GetUserID(r.Context()),
			Email: middleware.GetEmail(r.Context()),
		},
		OnRoster: player != nil,
		IsAdmin:  player != nil && player.IsAdmin,
	})
}

func (h *Handler) writeSession(w http.ResponseWriter, r *http.Request, user *models.User, status int) {
	token, err := h.jwt.Generate(user)
	if err != nil {
		slog.Error("failed to generate token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	resp := sessionResponse{
		Token: token,
		User: userJSON{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
	}

	// Roster standing is informational here; middleware re-checks it on
	// every request.
	if player, err := h.store.GetPlayerByEmail(r.Context(), user.Email); err == nil {
		resp.OnRoster = true
		resp.IsAdmin = player.IsAdmin
	}

	writeJSON(w, status, resp)
}
