package models

import "gorm.io/gorm"

// User represents a registered account. A user authors games and owns
// comments and favorites.
type User struct {
	gorm.Model
	Name         string `gorm:"size:255;not null;index"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Avatar       string `gorm:"size:512"`

	Games     []Game     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Comments  []Comment  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Favorites []Favorite `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
