// Package cart holds the cashier's in-progress, unsubmitted selection. The
// cart is optimistic: it performs no stock checks and reserves no inventory.
// Stock enforcement happens server-side when the cart is submitted as a sale.
package cart

import (
	"strconv"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"
)

// Cart is an ordered sequence of lines, at most one per distinct product ID.
// It has no internal locking: serialization of access is the checkout
// coordinator's responsibility.
type Cart struct {
	lines []models.CartLine
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of the product into the cart. If a line for the product
// already exists its quantity is incremented, otherwise a new line is
// appended with the product's name and price snapshotted at this instant.
// Add never fails.
func (c *Cart) Add(p models.Product) {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, models.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total recomputes the cart total from the current lines. It is never stored,
// so it cannot drift from the line set.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// FormatTotal renders the total to two decimal places for display. Rounding
// is formatting only; Total itself stays exact.
func (c *Cart) FormatTotal() string {
	return strconv.FormatFloat(c.Total(), 'f', 2, 64)
}

// IsEmpty reports whether the cart has no lines. Used to gate submission.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear empties the cart, after a confirmed sale or an explicit cancel.
func (c *Cart) Clear() {
	c.lines = nil
}

// SaleRequest snapshots the cart as a submission payload: product IDs and
// quantities only, stripped of the snapshotted prices and names.
func (c *Cart) SaleRequest() models.SaleRequest {
	items := make([]models.SaleItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, models.SaleItem{ID: line.ProductID, Quantity: line.Quantity})
	}
	return models.SaleRequest{Cart: items}
}
