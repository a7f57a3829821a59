package models

import "gorm.io/gorm"

// Tag represents a game tag (e.g., "RPG", "Puzzle", "Roguelike").
// Names are unique and case-sensitive.
type Tag struct {
	gorm.Model
	Name string `gorm:"size:100;uniqueIndex;not null"`
}
