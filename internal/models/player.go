package models

import "fmt"

// Player represents one member of the team roster.
//
// Paid is the authoritative cumulative amount this player has handed in.
// It is not a list of payments: recording a payment adds to it, and it
// never decreases.
type Player struct {
	// ID is the unique identifier for the player (UUID format).
	ID string

	// Name is the display name of the player.
	Name string

	// Email is the player's email address. It doubles as the login link:
	// a User account with this email gets roster access. Optional; players
	// without an email are simply never notified.
	Email string

	// Paid is the cumulative amount the player has paid in. Always >= 0.
	Paid float64

	// IsAdmin marks the player as allowed to record events, orders and
	// payments, and to edit the roster.
	IsAdmin bool

	// CreatedAt is the Unix timestamp when the player was added.
	CreatedAt int64
}

// Validate checks the fields required to add a player to the roster.
func (p *Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Paid < 0 {
		return fmt.Errorf("paid amount cannot be negative")
	}
	return nil
}
