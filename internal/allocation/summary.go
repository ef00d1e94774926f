package allocation

import (
	"fmt"

	"github.com/splatcrew/splattrack/internal/models"
)

// paidTolerance absorbs floating point noise when deciding whether a
// player has settled up.
const paidTolerance = 0.01

// PlayerSummary is one roster row of the reconciliation: what the player
// owes in total, what they have paid, and the difference.
type PlayerSummary struct {
	Player models.Player

	// Share is the player's total liability across both ledgers.
	Share float64

	// Balance is Share minus the player's cumulative paid amount.
	// Positive means money owed; negative means overpayment.
	Balance float64
}

// SummarizeRoster recomputes every player's share and balance from the
// given snapshots. The slice preserves the roster's order.
func SummarizeRoster(players []models.Player, events []models.Event, orders []models.GearOrder) []PlayerSummary {
	summaries := make([]PlayerSummary, len(players))
	for i, player := range players {
		share := ShareForPlayer(player.ID, events, orders)
		summaries[i] = PlayerSummary{
			Player:  player,
			Share:   share,
			Balance: share - player.Paid,
		}
	}
	return summaries
}

// BalanceLabel renders a balance the way the dashboard shows it: players
// within a cent of settled read "Paid", everyone else "Owes $X.XX".
func BalanceLabel(balance float64) string {
	if balance > paidTolerance {
		return fmt.Sprintf("Owes $%.2f", balance)
	}
	return "Paid"
}
