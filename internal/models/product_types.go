package models

import (
	"github.com/shopspring/decimal"
)

// Product is a record of the external catalog service. It is never mutated locally.
type Product struct {
	ID                 int64           `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Thumbnail          string          `json:"thumbnail"`
	Category           string          `json:"category"`
	DiscountPercentage float64         `json:"discountPercentage"`
	Stock              int             `json:"stock"`
	Rating             float64         `json:"rating"`
}

// ProductList is the envelope the catalog returns for listings and searches.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// ProductPage is one page of a filtered catalog listing.
type ProductPage struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	Total      int       `json:"total"`
}
