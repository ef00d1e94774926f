// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splatcrew/splattrack/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the single source of truth for players, events, gear orders and
// login accounts. The allocation engine only ever holds transient values
// derived from full snapshots read through this interface; after any write
// callers re-read the affected collection in full before recomputing.
//
// The abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the API layer.
type Store interface {
	// ListPlayers returns the roster ordered by name.
	ListPlayers(ctx context.Context) ([]models.Player, error)

	// GetPlayer retrieves one player by ID.
	GetPlayer(ctx context.Context, id string) (*models.Player, error)

	// GetPlayerByEmail retrieves the player whose email matches, used to
	// gate login accounts on roster membership. Returns ErrNotFound for
	// addresses not on the roster.
	GetPlayerByEmail(ctx context.Context, email string) (*models.Player, error)

	// CreatePlayer adds a player to the roster, populating ID and
	// CreatedAt.
	CreatePlayer(ctx context.Context, player *models.Player) error

	// AddPayment adds amount to the player's cumulative paid total.
	// Amount must be positive; Paid never decreases.
	AddPayment(ctx context.Context, playerID string, amount float64) error

	// DeletePlayer removes a player from the roster. Historical attendee
	// and purchaser references keep the orphaned ID.
	DeletePlayer(ctx context.Context, id string) error

	// ListEvents returns all events ordered by date descending.
	ListEvents(ctx context.Context) ([]models.Event, error)

	// CreateEvent persists a validated event, populating ID and CreatedAt.
	CreateEvent(ctx context.Context, event *models.Event) error

	// DeleteEvent removes an event and its attendee rows.
	DeleteEvent(ctx context.Context, id string) error

	// ListGearOrders returns all orders, with their line items in staged
	// order, ordered by date descending.
	ListGearOrders(ctx context.Context) ([]models.GearOrder, error)

	// CreateGearOrder persists a validated order as one transaction.
	CreateGearOrder(ctx context.Context, order *models.GearOrder) error

	// DeleteGearOrder removes an order and all of its line items.
	DeleteGearOrder(ctx context.Context, id string) error

	// CreateUser persists a login account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a login account, or nil if none exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
