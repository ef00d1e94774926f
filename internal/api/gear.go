package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splatcrew/splattrack/internal/middleware"
	"github.com/splatcrew/splattrack/internal/models"
	"github.com/splatcrew/splattrack/internal/notify"
	"github.com/splatcrew/splattrack/internal/staging"
	"github.com/splatcrew/splattrack/internal/storage"
)

type lineItemJSON struct {
	Description string   `json:"description"`
	Cost        float64  `json:"cost"`
	Purchasers  []string `json:"purchasers"`
}

type gearOrderJSON struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Date        string         `json:"date"`
	LineItems   []lineItemJSON `json:"line_items"`
	Total       float64        `json:"total"`
}

func toGearOrderJSON(o models.GearOrder) gearOrderJSON {
	items := make([]lineItemJSON, len(o.Items))
	for i, item := range o.Items {
		items[i] = lineItemJSON{Description: item.Description, Cost: item.Cost, Purchasers: item.Purchasers}
	}
	return gearOrderJSON{
		ID:          o.ID,
		Description: o.Description,
		Date:        o.Date,
		LineItems:   items,
		Total:       o.Total(),
	}
}

type openDraftRequest struct {
	Description string `json:"description"`
	Date        string `json:"date"`
}

type draftItemRequest struct {
	Description string   `json:"description"`
	Cost        float64  `json:"cost"`
	Purchasers  []string `json:"purchasers"`
}

type draftJSON struct {
	Description string         `json:"description"`
	Date        string         `json:"date"`
	LineItems   []lineItemJSON `json:"line_items"`
}

// ListGearOrders returns the gear ledger, newest first.
func (h *Handler) ListGearOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListGearOrders(r.Context())
	if err != nil {
		slog.Error("list gear orders failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list gear orders")
		return
	}

	out := make([]gearOrderJSON, len(orders))
	for i, o := range orders {
		out[i] = toGearOrderJSON(o)
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": out})
}

// DeleteGearOrder removes an order and its line items.
func (h *Handler) DeleteGearOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteGearOrder(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "gear order not found")
			return
		}
		slog.Error("delete gear order failed", "order_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete gear order")
		return
	}
	slog.Info("gear order deleted", "order_id", id)

	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// OpenDraft starts a fresh gear order draft for the calling admin,
// replacing any draft they already had open.
func (h *Handler) OpenDraft(w http.ResponseWriter, r *http.Request) {
	var req openDraftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft := h.drafts.Open(middleware.GetUserID(r.Context()), req.Description, req.Date)
	writeJSON(w, http.StatusCreated, toDraftJSON(draft))
}

// GetDraft returns the calling admin's open draft.
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.drafts.Get(middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toDraftJSON(draft))
}

// AppendDraftItem validates and stages one line item onto the open draft.
func (h *Handler) AppendDraftItem(w http.ResponseWriter, r *http.Request) {
	var req draftItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := models.LineItem{
		Description: req.Description,
		Cost:        req.Cost,
		Purchasers:  req.Purchasers,
	}
	if err := h.drafts.Append(middleware.GetUserID(r.Context()), item); err != nil {
		if errors.Is(err, staging.ErrNoDraft) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := h.drafts.Get(middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toDraftJSON(draft))
}

// DiscardDraft throws away the open draft wholesale.
func (h *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	h.drafts.Discard(middleware.GetUserID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// CommitDraft converts the open draft into a gear order and persists it
// as a single write. The draft is only discarded once the write is
// confirmed, so a store failure leaves the staged items intact. On
// success, purchasers are notified of their per-order amounts in the
// background.
func (h *Handler) CommitDraft(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	order, err := h.drafts.Commit(userID)
	if err != nil {
		if errors.Is(err, staging.ErrNoDraft) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.CreateGearOrder(r.Context(), order); err != nil {
		slog.Error("create gear order failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save gear order")
		return
	}
	h.drafts.Discard(userID)
	slog.Info("gear order committed", "order_id", order.ID, "items", len(order.Items), "total", order.Total())

	h.notifyAsync(r, func(players []models.Player) []notify.Message {
		return notify.OrderMessages(*order, players)
	})

	writeJSON(w, http.StatusCreated, toGearOrderJSON(*order))
}

func toDraftJSON(d *staging.Draft) draftJSON {
	items := make([]lineItemJSON, len(d.Items))
	for i, item := range d.Items {
		items[i] = lineItemJSON{Description: item.Description, Cost: item.Cost, Purchasers: item.Purchasers}
	}
	return draftJSON{Description: d.Description, Date: d.Date, LineItems: items}
}
