package pricing

import (
	"fmt"
	"strings"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/rates"
)

// Sides of a quote.
const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Products is the fixed catalog the administrator configures markups for.
var Products = []string{
	"Gold",
	"Gold RTGS",
	"Gold (995)",
	"Gold RTGS (995)",
	"Gold Coin - 1gm",
	"Gold Coin - 2gm",
	"Gold Coin - 5gm",
	"Gold Coin - 10gm",
	"Gold Coin - 50gm",
	"Gold Coin - 100gm",
	"Silver",
	"Silver RTGS",
}

// SideConfig is the administrator-defined markup for one product side.
// A nonzero Manual is a fixed price that overrides the formula outright;
// zero means "unset" since the admin form defaults every field to zero.
type SideConfig struct {
	Percentage float64 `json:"percentage"`
	Extra      float64 `json:"extra"`
	Manual     float64 `json:"manual"`
}

// ProductConfig holds both sides of one product's markup.
type ProductConfig struct {
	Buy  SideConfig `json:"buy"`
	Sell SideConfig `json:"sell"`
}

// Config maps product names to their markup configuration. Products
// absent from the map price with an all-zero config.
type Config map[string]ProductConfig

// Price converts a raw market rate into a customer-facing price.
// The result is not clamped; a negative markup producing a negative
// price is the administrator's call, not the engine's.
func Price(raw float64, cfg SideConfig) float64 {
	if cfg.Manual != 0 {
		return cfg.Manual
	}
	return raw + raw*cfg.Percentage/100 + cfg.Extra
}

// IsKnownProduct reports whether name is part of the catalog.
func IsKnownProduct(name string) bool {
	for _, p := range Products {
		if p == name {
			return true
		}
	}
	return false
}

// instrumentKey selects which bundle instrument feeds a product's price.
// All gold products derive from the gold futures quote, silver products
// from the silver futures quote.
func instrumentKey(product string) string {
	if strings.HasPrefix(product, "Silver") {
		return "silver"
	}
	return "gold"
}

// ProductPrice derives the customer price for one product and side from
// a rate bundle and the admin markup configuration.
func ProductPrice(bundle rates.Bundle, cfg Config, product, side string) (float64, error) {
	if !IsKnownProduct(product) {
		return 0, fmt.Errorf("unknown product %q", product)
	}

	quote, ok := bundle[instrumentKey(product)]
	if !ok {
		return 0, fmt.Errorf("no quote for product %q in rate bundle", product)
	}

	pc := cfg[product]
	switch side {
	case SideBuy:
		return Price(quote.Buy, pc.Buy), nil
	case SideSell:
		return Price(quote.Sell, pc.Sell), nil
	default:
		return 0, fmt.Errorf("invalid side %q", side)
	}
}
