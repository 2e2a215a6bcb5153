// Package cart holds the in-session cart: one line per product, kept in
// first-add order.
package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

// Cart is not safe for concurrent use. Callers serialize access per session.
type Cart struct {
	lines []domain.CartLine
}

func New() *Cart {
	return &Cart{}
}

// FromLines rebuilds a cart from stored lines. Duplicate product ids are
// merged into the first occurrence and non-positive quantities dropped.
func FromLines(lines []domain.CartLine) *Cart {
	c := New()
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i := c.index(l.ProductID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

// AddItem increments the product's line or appends a new one at quantity 1.
func (c *Cart) AddItem(p domain.Product) domain.Notification {
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity++
	} else {
		c.lines = append(c.lines, domain.LineFromProduct(p))
	}
	return domain.Notify("Added to Cart", fmt.Sprintf("%s has been added to your cart.", p.Name))
}

// SetQuantity replaces the line's quantity in place. Values below zero are
// clamped to zero and zero removes the line. Unknown ids are ignored.
func (c *Cart) SetQuantity(productID string, quantity int) {
	quantity = max(quantity, 0)
	if quantity == 0 {
		c.RemoveItem(productID)
		return
	}
	if i := c.index(productID); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

func (c *Cart) RemoveItem(productID string) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Total is computed from the current lines on every call.
func (c *Cart) Total() float64 {
	return Total(c.lines)
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy; mutating it does not affect the cart.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(productID string) (domain.CartLine, bool) {
	if i := c.index(productID); i >= 0 {
		return c.lines[i], true
	}
	return domain.CartLine{}, false
}

func (c *Cart) index(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Total sums price x quantity in decimal so float noise never reaches the
// displayed amount.
func Total(lines []domain.CartLine) float64 {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(Subtotal(l))
	}
	return sum.InexactFloat64()
}

func Subtotal(l domain.CartLine) decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}
