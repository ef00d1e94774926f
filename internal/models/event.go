package models

import "fmt"

// Well-known event types. Type is an open string; these are the values the
// UI offers but anything non-empty is accepted.
const (
	EventPractice   = "Practice"
	EventTournament = "Tournament"
	EventSocial     = "Social"
)

// Event represents a dated team cost split equally across its attendees.
// Events are immutable once created; the only mutation is deletion.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string

	// Type categorizes the event (Practice, Tournament, Social, ...).
	Type string

	// Date is the event date in YYYY-MM-DD form.
	Date string

	// Cost is the total cost of the event. Always >= 0.
	Cost float64

	// Attendees lists the player IDs sharing the cost. Non-empty for any
	// committed event; each attendee owes Cost / len(Attendees).
	Attendees []string

	// CreatedAt is the Unix timestamp when the event was recorded.
	CreatedAt int64
}

// Validate checks the fields required to commit an event. An event with no
// attendees is rejected here so the allocation engine never has to divide
// by zero.
func (e *Event) Validate() error {
	if e.Date == "" {
		return fmt.Errorf("event date is required")
	}
	if e.Cost < 0 {
		return fmt.Errorf("event cost cannot be negative")
	}
	if len(e.Attendees) == 0 {
		return fmt.Errorf("event needs at least one attendee")
	}
	return nil
}
