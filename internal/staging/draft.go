// Package staging assembles gear orders in memory before they are
// committed to storage as a single write.
//
// An admin builds an order one line item at a time. Each staged item is
// validated as it is appended; the draft itself is append-only and can only
// be discarded wholesale or committed as one GearOrder. Nothing here
// touches storage.
package staging

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/splatcrew/splattrack/internal/models"
)

// ErrNoDraft is returned when an operation targets a user with no open draft.
var ErrNoDraft = errors.New("no gear order draft in progress")

// Draft is an uncommitted gear order.
type Draft struct {
	Description string
	Date        string
	Items       []models.LineItem
}

// Append validates the line item and adds it to the end of the draft.
func (d *Draft) Append(item models.LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	d.Items = append(d.Items, item)
	return nil
}

// Commit validates the draft as a whole and converts it into a GearOrder
// ready to be written. The draft itself is left untouched; the caller
// discards it once the write is confirmed.
func (d *Draft) Commit() (*models.GearOrder, error) {
	order := &models.GearOrder{
		ID:          uuid.New().String(),
		Description: d.Description,
		Date:        d.Date,
		Items:       append([]models.LineItem(nil), d.Items...),
		CreatedAt:   time.Now().Unix(),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// clone returns a snapshot of the draft with its own item slice.
func (d *Draft) clone() *Draft {
	return &Draft{
		Description: d.Description,
		Date:        d.Date,
		Items:       append([]models.LineItem(nil), d.Items...),
	}
}

// Registry holds at most one open draft per user. Drafts are transient
// server state; a restart loses them, which matches their pre-commit
// contract.
//
// The live drafts never leave the registry: Open and Get hand out
// snapshots, so a caller ranging over Items can never race a concurrent
// Append for the same user.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

// NewRegistry creates an empty draft registry.
func NewRegistry() *Registry {
	return &Registry{drafts: make(map[string]*Draft)}
}

// Open starts a fresh draft for the user, replacing any existing one, and
// returns a snapshot of it.
func (r *Registry) Open(userID, description, date string) *Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft := &Draft{Description: description, Date: date}
	r.drafts[userID] = draft
	return draft.clone()
}

// Get returns a snapshot of the user's open draft.
func (r *Registry) Get(userID string) (*Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[userID]
	if !ok {
		return nil, ErrNoDraft
	}
	return draft.clone(), nil
}

// Append adds a validated line item to the user's open draft.
func (r *Registry) Append(userID string, item models.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[userID]
	if !ok {
		return ErrNoDraft
	}
	return draft.Append(item)
}

// Discard drops the user's open draft, if any.
func (r *Registry) Discard(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, userID)
}

// Commit converts the user's draft into a GearOrder. The draft stays open
// until the caller confirms the write succeeded and calls Discard; a
// failed store write must not lose the staged items.
func (r *Registry) Commit(userID string) (*models.GearOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[userID]
	if !ok {
		return nil, ErrNoDraft
	}
	return draft.Commit()
}
