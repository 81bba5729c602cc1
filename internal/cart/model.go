package cart

import (
	"fmt"

	"shrimati-be/internal/product"
	"shrimati-be/internal/utils"
)

// SessionKey is the session storage key the cart mapping lives under.
const SessionKey = "cart"

// CartLine is one entry in the session cart, keyed by product and
// optional color. Name and price are snapshots taken at add time; cart
// views resolve the live catalog price.
type CartLine struct {
	Key       string `json:"key"`
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"price"`
	Quantity  int    `json:"quantity"`
	ColorID   *uint  `json:"color,omitempty"`
}

// CartState is the per-session cart mapping. It is a plain value
// object; persistence is the service's job.
type CartState map[string]*CartLine

// LineKey builds the composite cart key: "productID" for plain lines,
// "productID-colorID" for color variants.
func LineKey(productID uint, colorID *uint) string {
	if colorID != nil {
		return fmt.Sprintf("%d-%d", productID, *colorID)
	}
	return fmt.Sprintf("%d", productID)
}

// Add increments the quantity for an existing key or creates a new
// line with quantity 1, snapshotting name and price.
func (cs CartState) Add(p *product.Product, colorID *uint) *CartLine {
	key := LineKey(p.ID, colorID)

	if line, ok := cs[key]; ok {
		line.Quantity++
		return line
	}

	line := &CartLine{
		Key:       key,
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: utils.FormatPrice(p.Price),
		Quantity:  1,
		ColorID:   colorID,
	}
	cs[key] = line
	return line
}

// Decrement lowers the quantity by one, removing the line when it
// reaches zero. Returns the new quantity (0 if removed). Missing keys
// are a no-op.
func (cs CartState) Decrement(key string) int {
	line, ok := cs[key]
	if !ok {
		return 0
	}

	if line.Quantity > 1 {
		line.Quantity--
		return line.Quantity
	}

	delete(cs, key)
	return 0
}

// Remove deletes the line unconditionally; absent keys are a no-op.
func (cs CartState) Remove(key string) {
	delete(cs, key)
}

// TotalItemCount is the sum of quantities over all lines. It reads
// only the session state, never the catalog.
func (cs CartState) TotalItemCount() int {
	count := 0
	for _, line := range cs {
		count += line.Quantity
	}
	return count
}
