package models

import "fmt"

// GearOrder represents a dated order of equipment. There is no order-level
// cost: every line item carries its own cost and its own purchaser subset,
// and the order total is simply the sum of its items.
type GearOrder struct {
	// ID is the unique identifier for the order (UUID format).
	ID string

	// Description names the order (e.g. "Spring PE Order").
	Description string

	// Date is the order date in YYYY-MM-DD form.
	Date string

	// Items are the line items, in the order they were staged.
	Items []LineItem

	// CreatedAt is the Unix timestamp when the order was committed.
	CreatedAt int64
}

// LineItem is a single priced entry within a gear order. Each item splits
// its own cost across its own purchasers; there is no cross-item sharing.
type LineItem struct {
	// Description names the item (e.g. "Jersey", "Case of paint").
	Description string

	// Cost is the price of this item. Always >= 0.
	Cost float64

	// Purchasers lists the player IDs splitting this item. Non-empty for
	// any committed item; each purchaser owes Cost / len(Purchasers).
	Purchasers []string
}

// Total returns the sum of the order's line item costs.
func (o *GearOrder) Total() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Cost
	}
	return sum
}

// Validate checks the fields required to commit a gear order.
func (o *GearOrder) Validate() error {
	if o.Description == "" {
		return fmt.Errorf("order description is required")
	}
	if o.Date == "" {
		return fmt.Errorf("order date is required")
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("order needs at least one line item")
	}
	for i := range o.Items {
		if err := o.Items[i].Validate(); err != nil {
			return fmt.Errorf("line item %d: %w", i+1, err)
		}
	}
	return nil
}

// Validate checks the fields required to stage a line item.
func (li *LineItem) Validate() error {
	if li.Description == "" {
		return fmt.Errorf("item description is required")
	}
	if li.Cost < 0 {
		return fmt.Errorf("item cost cannot be negative")
	}
	if len(li.Purchasers) == 0 {
		return fmt.Errorf("item needs at least one purchaser")
	}
	return nil
}
