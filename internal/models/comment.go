package models

import "gorm.io/gorm"

// Comment is a user's note on a game. Comments are never edited.
type Comment struct {
	gorm.Model
	Content string `gorm:"type:text;not null"`
	UserID  uint   `gorm:"not null;index"`
	GameID  uint   `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID"`
}
