// Package seed resets a database to a small demo catalog.
package seed

import (
	"context"
	"fmt"

	"gamehub/backend/internal/account"
	"gamehub/backend/internal/catalog"
	"gamehub/backend/internal/logging"
	"gamehub/backend/internal/models"

	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password123"

// Tags are created even when no demo game uses them.
var Tags = []string{"Action", "Adventure", "RPG", "Strategy", "Simulation", "Puzzle", "Sports", "Racing"}

type demoUser struct {
	name  string
	email string
}

type demoGame struct {
	title       string
	description string
	fileURL     string
	author      int
	downloads   int64
	rating      float64
	tags        []string
}

type demoComment struct {
	user    int
	game    int
	content string
}

var demoUsers = []demoUser{
	{name: "John Doe", email: "john@example.com"},
	{name: "Jane Smith", email: "jane@example.com"},
}

var demoGames = []demoGame{
	{
		title:       "Space Adventure",
		description: "An exciting space exploration game with stunning graphics and immersive gameplay.",
		fileURL:     "/games/space-adventure.zip",
		author:      0,
		downloads:   1250,
		rating:      4.7,
		tags:        []string{"Action", "Adventure"},
	},
	{
		title:       "Medieval Kingdom",
		description: "Build your own medieval kingdom and defend it against invaders.",
		fileURL:     "/games/medieval-kingdom.zip",
		author:      1,
		downloads:   980,
		rating:      4.5,
		tags:        []string{"Strategy", "Simulation"},
	},
	{
		title:       "Puzzle Master",
		description: "A challenging puzzle game that will test your problem-solving skills.",
		fileURL:     "/games/puzzle-master.zip",
		author:      0,
		downloads:   750,
		rating:      4.2,
		tags:        []string{"Puzzle"},
	},
}

var demoComments = []demoComment{
	{user: 1, game: 0, content: "This game is amazing! The graphics are stunning."},
	{user: 0, game: 1, content: "I love the gameplay mechanics. Very intuitive."},
	{user: 1, game: 2, content: "The puzzles are challenging but not impossible. Great balance!"},
}

const placeholderThumbnail = "/images/placeholder.jpg"

// Result counts what Run created.
type Result struct {
	Users    int
	Tags     int
	Games    int
	Comments int
}

// Run clears every table and writes the demo data through the account and
// catalog services, so passwords are hashed and tags go through the same
// get-or-create path as user uploads.
func Run(ctx context.Context, db *gorm.DB, accounts *account.Service, catalogSvc *catalog.Service) (*Result, error) {
	if err := Clear(ctx, db); err != nil {
		return nil, err
	}
	logging.Info().Msg("Cleared existing data")

	tags, err := catalogSvc.EnsureTags(ctx, Tags)
	if err != nil {
		return nil, fmt.Errorf("create tags: %w", err)
	}

	userIDs := make([]uint, len(demoUsers))
	for i, u := range demoUsers {
		session, err := accounts.Register(ctx, u.name, u.email, DemoPassword)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", u.email, err)
		}
		userIDs[i] = session.User.ID
	}

	gameIDs := make([]uint, len(demoGames))
	for i, g := range demoGames {
		game, err := catalogSvc.CreateGame(ctx, catalog.NewGame{
			Title:        g.title,
			Description:  g.description,
			ThumbnailURL: placeholderThumbnail,
			FileURL:      g.fileURL,
			AuthorID:     userIDs[g.author],
			Tags:         g.tags,
		})
		if err != nil {
			return nil, fmt.Errorf("create game %q: %w", g.title, err)
		}
		// Demo counters; the API only ever increments downloads.
		err = db.WithContext(ctx).Model(&models.Game{}).Where("id = ?", game.ID).
			Updates(map[string]interface{}{"downloads": g.downloads, "rating": g.rating}).Error
		if err != nil {
			return nil, fmt.Errorf("set stats of %q: %w", g.title, err)
		}
		gameIDs[i] = game.ID
	}

	for _, c := range demoComments {
		if _, err := catalogSvc.AddComment(ctx, userIDs[c.user], gameIDs[c.game], c.content); err != nil {
			return nil, fmt.Errorf("add comment: %w", err)
		}
	}

	res := &Result{Users: len(userIDs), Tags: len(tags), Games: len(gameIDs), Comments: len(demoComments)}
	logging.Info().
		Int("users", res.Users).
		Int("tags", res.Tags).
		Int("games", res.Games).
		Int("comments", res.Comments).
		Msg("Database seeded")
	return res, nil
}

// Clear hard-deletes every row, children before parents.
func Clear(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM game_tags").Error; err != nil {
			return fmt.Errorf("clear game tags: %w", err)
		}
		all := tx.Unscoped().Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []interface{}{&models.Favorite{}, &models.Comment{}, &models.Game{}, &models.Tag{}, &models.User{}} {
			if err := all.Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}
