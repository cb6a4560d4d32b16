package models

import "gorm.io/gorm"

// Category groups menus.
type Category struct {
	gorm.Model
	Name string `gorm:"size:255;not null" json:"name"`
}
