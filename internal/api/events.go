package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splatcrew/splattrack/internal/models"
	"github.com/splatcrew/splattrack/internal/notify"
	"github.com/splatcrew/splattrack/internal/storage"
)

type eventJSON struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Date      string   `json:"date"`
	Cost      float64  `json:"cost"`
	Attendees []string `json:"attendees"`
}

func toEventJSON(e models.Event) eventJSON {
	return eventJSON{ID: e.ID, Type: e.Type, Date: e.Date, Cost: e.Cost, Attendees: e.Attendees}
}

type createEventRequest struct {
	Type      string   `json:"type"`
	Date      string   `json:"date"`
	Cost      float64  `json:"cost"`
	Attendees []string `json:"attendees"`
}

// ListEvents returns the event ledger, newest first.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.ListEvents(r.Context())
	if err != nil {
		slog.Error("list events failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	out := make([]eventJSON, len(events))
	for i, e := range events {
		out[i] = toEventJSON(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

// CreateEvent validates and commits an event in one shot (events have no
// staging step), then notifies attendees of their split in the
// background.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event := &models.Event{
		Type:      req.Type,
		Date:      req.Date,
		Cost:      req.Cost,
		Attendees: req.Attendees,
	}
	if event.Type == "" {
		event.Type = models.EventPractice
	}
	if err := event.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.CreateEvent(r.Context(), event); err != nil {
		slog.Error("create event failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save event")
		return
	}
	slog.Info("event recorded", "event_id", event.ID, "type", event.Type, "cost", event.Cost, "attendees", len(event.Attendees))

	h.notifyAsync(r, func(players []models.Player) []notify.Message {
		return notify.EventMessages(*event, players)
	})

	writeJSON(w, http.StatusCreated, toEventJSON(*event))
}

// DeleteEvent removes an event; the next summary read drops its
// contribution from every attendee's share.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteEvent(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		slog.Error("delete event failed", "event_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}
	slog.Info("event deleted", "event_id", id)

	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// notifyAsync reads the roster and dispatches the built messages without
// blocking the response. The commit has already succeeded; notification
// problems are the dispatcher's to log.
func (h *Handler) notifyAsync(r *http.Request, build func([]models.Player) []notify.Message) {
	ctx := context.WithoutCancel(r.Context())
	go func() {
		players, err := h.store.ListPlayers(ctx)
		if err != nil {
			slog.Warn("skipping notifications, roster read failed", "error", err)
			return
		}
		h.dispatcher.Dispatch(ctx, build(players))
	}()
}
