// Package allocation computes each player's share of team costs and
// reconciles it against what they have paid.
//
// Every function here is pure: it consumes full snapshots of the event and
// gear ledgers and returns derived values. Nothing is cached; callers
// recompute whenever the source collections change. Summation happens on
// full-precision float64 values, and rounding to two decimals is left to
// the presentation layer so rounding error never compounds across records.
package allocation

import "github.com/splatcrew/splattrack/internal/models"

// ShareForPlayer returns the player's total liability: the sum over all
// events they attended of cost/len(attendees), plus the sum over all gear
// line items they purchased of cost/len(purchasers).
//
// The write path rejects events and items with empty participant sets, but
// if one slips through it contributes zero rather than NaN. An order with
// no line items likewise contributes zero. The result is independent of the
// order of the input collections.
func ShareForPlayer(playerID string, events []models.Event, orders []models.GearOrder) float64 {
	var share float64
	for _, event := range events {
		if len(event.Attendees) == 0 {
			continue
		}
		if containsID(event.Attendees, playerID) {
			share += event.Cost / float64(len(event.Attendees))
		}
	}
	for _, order := range orders {
		for _, item := range order.Items {
			if len(item.Purchasers) == 0 {
				continue
			}
			if containsID(item.Purchasers, playerID) {
				share += item.Cost / float64(len(item.Purchasers))
			}
		}
	}
	return share
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
