// Package notify builds and dispatches per-player email notifications for
// freshly committed events and gear orders.
//
// Dispatch is fire-and-forget: a failure to reach one recipient is logged
// and never blocks the other recipients or the commit that triggered the
// batch. There are no automatic retries.
package notify

import (
	"fmt"

	"github.com/splatcrew/splattrack/internal/models"
)

// Message is one notification payload: who to tell, and what they owe for
// which record.
type Message struct {
	RecipientName  string
	RecipientEmail string

	// Context labels the record the amount belongs to, e.g. "Tournament"
	// or "Spring PE Order".
	Context string

	// Date is the record's date in YYYY-MM-DD form.
	Date string

	// Amount is this recipient's share of the record.
	Amount float64
}

// Subject renders the email subject line.
func (m Message) Subject() string {
	return fmt.Sprintf("SplatTrack: $%.2f for %s", m.Amount, m.Context)
}

// Body renders the plain text email body.
func (m Message) Body() string {
	return fmt.Sprintf(
		"Hey %s,\n\nYour share for %s (%s) is $%.2f.\n\nPlease settle up with your team admin.\n",
		m.RecipientName, m.Context, m.Date, m.Amount,
	)
}

// EventMessages builds one message per event attendee with a usable email
// address. Every attendee owes the same equal split of the event cost.
// Attendees missing from the roster or without an email are skipped, not
// treated as errors.
func EventMessages(event models.Event, players []models.Player) []Message {
	if len(event.Attendees) == 0 {
		return nil
	}
	split := event.Cost / float64(len(event.Attendees))

	byID := indexPlayers(players)
	var msgs []Message
	for _, id := range event.Attendees {
		player, ok := byID[id]
		if !ok || player.Email == "" {
			continue
		}
		msgs = append(msgs, Message{
			RecipientName:  player.Name,
			RecipientEmail: player.Email,
			Context:        event.Type,
			Date:           event.Date,
			Amount:         split,
		})
	}
	return msgs
}

// OrderMessages builds one message per player who purchased anything in
// the order. A player's amount is the sum of their splits across the
// order's line items, so recipients of the same order can owe different
// amounts. Players without an email are skipped.
func OrderMessages(order models.GearOrder, players []models.Player) []Message {
	amounts := make(map[string]float64)
	for _, item := range order.Items {
		if len(item.Purchasers) == 0 {
			continue
		}
		split := item.Cost / float64(len(item.Purchasers))
		for _, id := range item.Purchasers {
			amounts[id] += split
		}
	}

	var msgs []Message
	for _, player := range players {
		amount, ok := amounts[player.ID]
		if !ok || player.Email == "" {
			continue
		}
		msgs = append(msgs, Message{
			RecipientName:  player.Name,
			RecipientEmail: player.Email,
			Context:        order.Description,
			Date:           order.Date,
			Amount:         amount,
		})
	}
	return msgs
}

// InviteSubject and InviteBody render the email sent when an admin adds a
// player to the roster: sign up with this address to get access.
func InviteSubject() string {
	return "You've been added to SplatTrack"
}

func InviteBody(player models.Player, appURL string) string {
	return fmt.Sprintf(
		"Hey %s,\n\nYou've been added to the team expense tracker. Sign up at %s using this email address (%s) to set your password.\n",
		player.Name, appURL, player.Email,
	)
}

func indexPlayers(players []models.Player) map[string]models.Player {
	byID := make(map[string]models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return byID
}
