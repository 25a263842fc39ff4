package domain

import "github.com/google/uuid"

// CartItem is a product snapshot held in a customer's cart. LineID is
// derived from the product ID and, if present, the variation name, so a
// cart holds at most one line per distinct product+variation pair.
type CartItem struct {
	Product
	LineID            string     `json:"line_id"`
	Quantity          int        `json:"quantity"`
	SelectedVariation *Variation `json:"selected_variation,omitempty"`
}

// CartLineID builds the cart line identifier for a product and optional
// variation name.
func CartLineID(productID uuid.UUID, variationName string) string {
	if variationName == "" {
		return productID.String()
	}
	return productID.String() + "-" + variationName
}

// UnitPrice returns the authoritative price for this line: the selected
// variation's price when one is chosen, otherwise the base price.
func (c *CartItem) UnitPrice() int64 {
	if c.SelectedVariation != nil {
		return c.SelectedVariation.Price
	}
	return c.Price
}

// AvailableStock returns the stock the line is constrained by, per the
// snapshot the cart was built from. The reservation transaction re-checks
// against the store at checkout.
func (c *CartItem) AvailableStock() int {
	if c.SelectedVariation != nil {
		return c.SelectedVariation.Stock
	}
	return c.Stock
}

// CartLine is the minimal reservation input for one cart entry.
type CartLine struct {
	ProductID     uuid.UUID `json:"product_id"`
	VariationName string    `json:"variation_name,omitempty"`
	Quantity      int       `json:"quantity"`
}

// Line reduces a cart item to its reservation input.
func (c *CartItem) Line() CartLine {
	line := CartLine{ProductID: c.ID, Quantity: c.Quantity}
	if c.SelectedVariation != nil {
		line.VariationName = c.SelectedVariation.Name
	}
	return line
}
