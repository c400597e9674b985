package models

import "gorm.io/gorm"

// MarkupRule is the stored markup configuration for one product side.
// Administrator edits merge per product and never clobber other rows.
type MarkupRule struct {
	gorm.Model
	Product    string  `gorm:"uniqueIndex:idx_product_side" json:"product"`
	Side       string  `gorm:"uniqueIndex:idx_product_side" json:"side"` // "buy" or "sell"
	Percentage float64 `json:"percentage"`
	Extra      float64 `json:"extra"`
	Manual     float64 `json:"manual"`
}
