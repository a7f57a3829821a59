package models

import "time"

// Favorite marks a game as bookmarked by a user.
// The primary key is a composite of (UserID, GameID) to ensure uniqueness,
// and there is no soft delete so a removed favorite can be added again.
type Favorite struct {
	UserID    uint `gorm:"primaryKey"`
	GameID    uint `gorm:"primaryKey;index"`
	CreatedAt time.Time

	Game Game `gorm:"foreignKey:GameID"`
}
