package models

import "gorm.io/gorm"

// Quote is one instrument's row of the persisted rate document.
// The five rows together form the full bundle; they are only ever
// replaced as a whole.
type Quote struct {
	gorm.Model
	Key    string  `gorm:"uniqueIndex;not null" json:"key"`
	Buy    float64 `json:"buy"`
	Sell   float64 `json:"sell"`
	Change float64 `json:"chg"`
	Rate   float64 `json:"rate"`
}
