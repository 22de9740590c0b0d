package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Shipping options offered at checkout.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
)

var shippingRates = map[string]decimal.Decimal{
	ShippingStandard: decimal.NewFromInt(5),
	ShippingExpress:  decimal.NewFromInt(10),
}

// ShippingCost returns the flat rate of a shipping option.
func ShippingCost(option string) (decimal.Decimal, error) {
	rate, ok := shippingRates[option]
	if !ok {
		return decimal.Zero, NewValidationError("shipping", "Unknown shipping option")
	}
	return rate, nil
}

// ShippingOptions lists the valid shipping options.
func ShippingOptions() []string {
	options := make([]string, 0, len(shippingRates))
	for name := range shippingRates {
		options = append(options, name)
	}
	sort.Strings(options)
	return options
}
