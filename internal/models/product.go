package models

import (
	"gorm.io/gorm"
)

// Product is a catalog item sold through the storefront.
type Product struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	Category    string  `gorm:"index" json:"category"`
	Image       string  `json:"image"`
}
