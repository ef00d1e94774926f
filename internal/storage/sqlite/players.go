package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splatcrew/splattrack/internal/models"
	"github.com/splatcrew/splattrack/internal/storage"
)

// ListPlayers returns the full roster ordered by name.
func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, paid, is_admin, created_at FROM players ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Paid, &p.IsAdmin, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}

// GetPlayer retrieves one player by ID.
func (s *SQLiteStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	return s.getPlayerBy(ctx, "id", id)
}

// GetPlayerByEmail retrieves the player rostered under the given email.
func (s *SQLiteStore) GetPlayerByEmail(ctx context.Context, email string) (*models.Player, error) {
	return s.getPlayerBy(ctx, "email", email)
}

func (s *SQLiteStore) getPlayerBy(ctx context.Context, column, value string) (*models.Player, error) {
	query := fmt.Sprintf(
		"SELECT id, name, email, paid, is_admin, created_at FROM players WHERE %s = ?", column,
	)
	p := &models.Player{}
	err := s.db.QueryRowContext(ctx, query, value).
		Scan(&p.ID, &p.Name, &p.Email, &p.Paid, &p.IsAdmin, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

// CreatePlayer inserts a new player, generating ID and CreatedAt if unset.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	if player.CreatedAt == 0 {
		player.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO players (id, name, email, paid, is_admin, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		player.ID, player.Name, player.Email, player.Paid, player.IsAdmin, player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// AddPayment adds amount to the player's cumulative paid total.
func (s *SQLiteStore) AddPayment(ctx context.Context, playerID string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("payment amount must be positive")
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE players SET paid = paid + ? WHERE id = ?",
		amount, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check payment update: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeletePlayer removes a player from the roster. Event attendee and item
// purchaser rows referencing the player are intentionally left in place so
// historical allocations keep counting their share.
func (s *SQLiteStore) DeletePlayer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check player delete: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
