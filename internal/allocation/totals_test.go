package allocation

import (
	"testing"

	"github.com/splatcrew/splattrack/internal/models"
)

func TestAggregateTotals(t *testing.T) {
	players := []models.Player{
		{ID: "p1", Name: "Viper", Paid: 5.0},
		{ID: "p2", Name: "Doc", Paid: 0.0},
		{ID: "p3", Name: "Tank", Paid: 0.0},
	}
	events := []models.Event{
		{ID: "e1", Cost: 30.0, Attendees: []string{"p1", "p2", "p3"}},
	}
	orders := []models.GearOrder{
		{ID: "g1", Items: []models.LineItem{
			{Description: "Jersey", Cost: 10.0, Purchasers: []string{"p1"}},
			{Description: "Pads", Cost: 5.0, Purchasers: []string{"p2"}},
		}},
	}

	totals := AggregateTotals(events, orders, players)
	if !almostEqual(totals.TotalExpenses, 45.0) {
		t.Errorf("TotalExpenses = %v, want 45.0", totals.TotalExpenses)
	}
	if !almostEqual(totals.TotalCollected, 5.0) {
		t.Errorf("TotalCollected = %v, want 5.0", totals.TotalCollected)
	}
	if !almostEqual(totals.TotalOutstanding, 40.0) {
		t.Errorf("TotalOutstanding = %v, want 40.0", totals.TotalOutstanding)
	}
}

// Outstanding is the global formula expenses - collected, not the sum of
// positive per-player balances, so one player's overpayment masks another's
// debt and the value can even go negative.
func TestAggregateTotalsGlobalOutstanding(t *testing.T) {
	players := []models.Player{
		{ID: "p1", Paid: 100.0}, // overpaid
		{ID: "p2", Paid: 0.0},   // owes 10
	}
	events := []models.Event{
		{ID: "e1", Cost: 20.0, Attendees: []string{"p1", "p2"}},
	}

	totals := AggregateTotals(events, nil, players)
	if !almostEqual(totals.TotalOutstanding, -80.0) {
		t.Errorf("TotalOutstanding = %v, want -80.0", totals.TotalOutstanding)
	}
}

func TestAggregateTotalsEmpty(t *testing.T) {
	totals := AggregateTotals(nil, nil, nil)
	if totals.TotalExpenses != 0 || totals.TotalCollected != 0 || totals.TotalOutstanding != 0 {
		t.Errorf("expected zero totals, got %+v", totals)
	}
}
