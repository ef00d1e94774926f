package allocation

import "github.com/splatcrew/splattrack/internal/models"

// Totals aggregates the whole ledger into three headline numbers.
type Totals struct {
	// TotalExpenses is the sum of all event costs plus all line item costs.
	TotalExpenses float64

	// TotalCollected is the sum of every player's cumulative paid amount.
	TotalCollected float64

	// TotalOutstanding is TotalExpenses - TotalCollected. This is a global
	// balance, not the sum of positive per-player balances: one player's
	// overpayment offsets another's debt, and the value can go negative.
	TotalOutstanding float64
}

// AggregateTotals computes the headline totals from full snapshots of the
// three collections.
func AggregateTotals(events []models.Event, orders []models.GearOrder, players []models.Player) Totals {
	var t Totals
	for _, event := range events {
		t.TotalExpenses += event.Cost
	}
	for _, order := range orders {
		for _, item := range order.Items {
			t.TotalExpenses += item.Cost
		}
	}
	for _, player := range players {
		t.TotalCollected += player.Paid
	}
	t.TotalOutstanding = t.TotalExpenses - t.TotalCollected
	return t
}
