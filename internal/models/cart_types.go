package models

import "github.com/shopspring/decimal"

// CartEntry is one line of the cart: a product and how many of it.
// The JSON tags match the persisted "cart" layout: [{"id":1,"quantity":2}].
type CartEntry struct {
	ProductID int64 `json:"id"`
	Quantity  int   `json:"quantity"`
}

// CartLine is a CartEntry joined with the product it resolved to.
type CartLine struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartView is what the storefront renders for the cart: resolved lines
// only, in cart order, plus totals.
type CartView struct {
	Lines      []CartLine      `json:"items"`
	Entries    []CartEntry     `json:"entries"`
	TotalItems int             `json:"totalItems"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Total      decimal.Decimal `json:"total"`
}

// Receipt is the checkout summary.
type Receipt struct {
	Address  string          `json:"address"`
	Items    []CartLine      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}
