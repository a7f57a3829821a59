package models

import "gorm.io/gorm"

// Game represents an uploaded game in the catalog.
type Game struct {
	gorm.Model
	Title        string   `gorm:"size:255;not null"`
	Description  string   `gorm:"type:text;not null"`
	ThumbnailURL string   `gorm:"size:512;not null"`
	FileURL      string   `gorm:"size:512;not null"`
	Downloads    int64    `gorm:"not null;default:0"`
	Rating       *float64 // not computed anywhere yet
	AuthorID     uint     `gorm:"not null;index"`

	Author    User       `gorm:"foreignKey:AuthorID"`
	Tags      []*Tag     `gorm:"many2many:game_tags;"`
	Comments  []Comment  `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Favorites []Favorite `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
