package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splatcrew/splattrack/internal/models"
	"github.com/splatcrew/splattrack/internal/storage"
)

// ListGearOrders returns all orders with their line items (in staged
// order) and purchaser sets, newest first.
func (s *SQLiteStore) ListGearOrders(ctx context.Context) ([]models.GearOrder, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, date, created_at FROM gear_orders ORDER BY date DESC, created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list gear orders: %w", err)
	}
	defer rows.Close()

	var orders []models.GearOrder
	for rows.Next() {
		var o models.GearOrder
		if err := rows.Scan(&o.ID, &o.Description, &o.Date, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gear order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gear orders: %w", err)
	}

	for i := range orders {
		items, err := s.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *SQLiteStore) orderItems(ctx context.Context, orderID string) ([]models.LineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, cost FROM line_items WHERE order_id = ? ORDER BY position",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get line items: %w", err)
	}
	defer rows.Close()

	var items []models.LineItem
	var itemIDs []string
	for rows.Next() {
		var item models.LineItem
		var itemID string
		if err := rows.Scan(&itemID, &item.Description, &item.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
		itemIDs = append(itemIDs, itemID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}

	for i, itemID := range itemIDs {
		purchasers, err := s.itemPurchasers(ctx, itemID)
		if err != nil {
			return nil, err
		}
		items[i].Purchasers = purchasers
	}
	return items, nil
}

func (s *SQLiteStore) itemPurchasers(ctx context.Context, itemID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT player_id FROM item_purchasers WHERE item_id = ? ORDER BY player_id",
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchasers: %w", err)
	}
	defer rows.Close()

	var purchasers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan purchaser: %w", err)
		}
		purchasers = append(purchasers, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchasers: %w", err)
	}
	return purchasers, nil
}

// CreateGearOrder persists an order, its line items and their purchaser
// sets in one transaction.
func (s *SQLiteStore) CreateGearOrder(ctx context.Context, order *models.GearOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt == 0 {
		order.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO gear_orders (id, description, date, created_at) VALUES (?, ?, ?, ?)",
		order.ID, order.Description, order.Date, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert gear order: %w", err)
	}

	for pos, item := range order.Items {
		itemID := uuid.New().String()
		_, err = tx.ExecContext(ctx,
			"INSERT INTO line_items (id, order_id, position, description, cost) VALUES (?, ?, ?, ?, ?)",
			itemID, order.ID, pos, item.Description, item.Cost,
		)
		if err != nil {
			return fmt.Errorf("failed to insert line item: %w", err)
		}

		for _, playerID := range item.Purchasers {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO item_purchasers (item_id, player_id) VALUES (?, ?)",
				itemID, playerID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert purchaser: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteGearOrder removes an order; line items and purchasers cascade.
func (s *SQLiteStore) DeleteGearOrder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM gear_orders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete gear order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check gear order delete: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
