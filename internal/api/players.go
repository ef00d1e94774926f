package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splatcrew/splattrack/internal/models"
	"github.com/splatcrew/splattrack/internal/storage"
)

type playerJSON struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Paid    float64 `json:"paid"`
	IsAdmin bool    `json:"is_admin"`
}

func toPlayerJSON(p models.Player) playerJSON {
	return playerJSON{ID: p.ID, Name: p.Name, Email: p.Email, Paid: p.Paid, IsAdmin: p.IsAdmin}
}

type createPlayerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type paymentRequest struct {
	Amount float64 `json:"amount"`
}

// ListPlayers returns the roster ordered by name.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.store.ListPlayers(r.Context())
	if err != nil {
		slog.Error("list players failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list players")
		return
	}

	out := make([]playerJSON, len(players))
	for i, p := range players {
		out[i] = toPlayerJSON(p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": out})
}

// CreatePlayer adds a player to the roster and, when an email is given,
// fires an invite in the background. Invite failures never fail the
// roster write.
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	player := &models.Player{
		Name:    req.Name,
		Email:   req.Email,
		IsAdmin: req.IsAdmin,
	}
	if err := player.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.CreatePlayer(r.Context(), player); err != nil {
		slog.Error("create player failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add player")
		return
	}
	slog.Info("player added", "player_id", player.ID, "name", player.Name, "is_admin", player.IsAdmin)

	go h.dispatcher.Invite(context.WithoutCancel(r.Context()), *player, h.appURL)

	writeJSON(w, http.StatusCreated, toPlayerJSON(*player))
}

// DeletePlayer removes a player from the roster. Their historical shares
// stay in the ledgers under the orphaned ID.
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeletePlayer(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}
		slog.Error("delete player failed", "player_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete player")
		return
	}
	slog.Info("player deleted", "player_id", id)

	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// RecordPayment adds an amount to the player's cumulative paid total.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req paymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "payment amount must be positive")
		return
	}

	if err := h.store.AddPayment(r.Context(), id, req.Amount); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}
		slog.Error("record payment failed", "player_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record payment")
		return
	}
	slog.Info("payment recorded", "player_id", id, "amount", req.Amount)

	player, err := h.store.GetPlayer(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reload player")
		return
	}
	writeJSON(w, http.StatusOK, toPlayerJSON(*player))
}
