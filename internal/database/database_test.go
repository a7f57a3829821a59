package database_test

import (
	"testing"

	"gamehub/backend/internal/database"
	"gamehub/backend/internal/database/dbtest"
	"gamehub/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := database.Connect("mysql", "whatever")
	assert.EqualError(t, err, `unsupported database driver "mysql"`)
}

func TestMigrateCreatesTables(t *testing.T) {
	db := dbtest.New(t)

	for _, table := range []string{"users", "games", "tags", "game_tags", "comments", "favorites"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestUniqueConstraintsAreTranslated(t *testing.T) {
	db := dbtest.New(t)

	user := models.User{Name: "Ann", Email: "ann@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	dupe := models.User{Name: "Ann 2", Email: "ann@example.com", PasswordHash: "x"}
	assert.ErrorIs(t, db.Create(&dupe).Error, gorm.ErrDuplicatedKey)

	require.NoError(t, db.Create(&models.Tag{Name: "Puzzle"}).Error)
	assert.ErrorIs(t, db.Create(&models.Tag{Name: "Puzzle"}).Error, gorm.ErrDuplicatedKey)
	assert.NoError(t, db.Create(&models.Tag{Name: "puzzle"}).Error, "tag names are case-sensitive")

	game := models.Game{Title: "Orbit", Description: "d", ThumbnailURL: "/t.png", FileURL: "/f.zip", AuthorID: user.ID}
	require.NoError(t, db.Create(&game).Error)

	require.NoError(t, db.Create(&models.Favorite{UserID: user.ID, GameID: game.ID}).Error)
	assert.ErrorIs(t, db.Create(&models.Favorite{UserID: user.ID, GameID: game.ID}).Error, gorm.ErrDuplicatedKey)
}
