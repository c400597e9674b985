package models

import "gorm.io/gorm"

// User is a staff-managed customer or administrator account.
type User struct {
	gorm.Model
	DisplayName string `json:"displayName"`
	Phone       string `gorm:"uniqueIndex;not null" json:"phoneNumber"`
	Email       string `json:"email,omitempty"`
	Allowed     bool   `gorm:"default:true" json:"allowed"`
	Admin       bool   `gorm:"default:false" json:"admin"`
}
