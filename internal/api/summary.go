package api

import (
	"log/slog"
	"net/http"

	"github.com/splatcrew/splattrack/internal/allocation"
)

type summaryRowJSON struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Share    float64 `json:"share"`
	Paid     float64 `json:"paid"`
	Balance  float64 `json:"balance"`
	Status   string  `json:"status"`
}

type summaryResponse struct {
	Players          []summaryRowJSON `json:"players"`
	TotalExpenses    float64          `json:"total_expenses"`
	TotalCollected   float64          `json:"total_collected"`
	TotalOutstanding float64          `json:"total_outstanding"`
}

// Summary recomputes every player's share and balance from full ledger
// snapshots. Nothing is cached between requests; a write is visible in
// the very next summary read.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	players, err := h.store.ListPlayers(ctx)
	if err != nil {
		slog.Error("summary roster read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}
	events, err := h.store.ListEvents(ctx)
	if err != nil {
		slog.Error("summary events read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}
	orders, err := h.store.ListGearOrders(ctx)
	if err != nil {
		slog.Error("summary gear read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}

	summaries := allocation.SummarizeRoster(players, events, orders)
	rows := make([]summaryRowJSON, len(summaries))
	for i, s := range summaries {
		rows[i] = summaryRowJSON{
			PlayerID: s.Player.ID,
			Name:     s.Player.Name,
			Email:    s.Player.Email,
			Share:    s.Share,
			Paid:     s.Player.Paid,
			Balance:  s.Balance,
			Status:   allocation.BalanceLabel(s.Balance),
		}
	}

	totals := allocation.AggregateTotals(events, orders, players)
	writeJSON(w, http.StatusOK, summaryResponse{
		Players:          rows,
		TotalExpenses:    totals.TotalExpenses,
		TotalCollected:   totals.TotalCollected,
		TotalOutstanding: totals.TotalOutstanding,
	})
}
