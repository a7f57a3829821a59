package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/metrics"
	"gamehub/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewGame is the input of CreateGame.
type NewGame struct {
	Title        string
	Description  string
	ThumbnailURL string
	FileURL      string
	AuthorID     uint
	Tags         []string
}

func (g *NewGame) validate() error {
	g.Title = strings.TrimSpace(g.Title)
	g.Description = strings.TrimSpace(g.Description)
	g.ThumbnailURL = strings.TrimSpace(g.ThumbnailURL)
	g.FileURL = strings.TrimSpace(g.FileURL)

	switch {
	case g.Title == "":
		return apperror.ValidationFailed("title", "title is required")
	case g.Description == "":
		return apperror.ValidationFailed("description", "description is required")
	case g.ThumbnailURL == "":
		return apperror.ValidationFailed("thumbnailUrl", "thumbnailUrl is required")
	case g.FileURL == "":
		return apperror.ValidationFailed("fileUrl", "fileUrl is required")
	case g.AuthorID == 0:
		return apperror.ValidationFailed("authorId", "authorId is required")
	}
	return nil
}

// CreateGame stores a new game, attaching each named tag and creating the
// tags that do not exist yet.
func (s *Service) CreateGame(ctx context.Context, input NewGame) (*models.Game, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var gameID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("id = ?", input.AuthorID).Count(&n).Error; err != nil {
			return fmt.Errorf("look up author: %w", err)
		}
		if n == 0 {
			return apperror.ValidationFailed("authorId", "author does not exist")
		}

		tags, err := getOrCreateTags(tx, input.Tags)
		if err != nil {
			return err
		}

		game := models.Game{
			Title:        input.Title,
			Description:  input.Description,
			ThumbnailURL: input.ThumbnailURL,
			FileURL:      input.FileURL,
			AuthorID:     input.AuthorID,
			Tags:         tags,
		}
		// Tags already exist at this point; only the join rows are written.
		if err := tx.Omit("Tags.*").Create(&game).Error; err != nil {
			return fmt.Errorf("create game: %w", err)
		}
		gameID = game.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.GamesCreated.Inc()

	var game models.Game
	if err := preloadListing(s.db.WithContext(ctx)).First(&game, gameID).Error; err != nil {
		return nil, fmt.Errorf("reload game %d: %w", gameID, err)
	}
	return &game, nil
}

// normalizeTagNames trims names and drops blanks and repeats, keeping order.
func normalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// getOrCreateTags inserts missing tags with ON CONFLICT DO NOTHING and reads
// back whichever row won, so concurrent creators of the same name converge
// on a single tag.
func getOrCreateTags(tx *gorm.DB, names []string) ([]*models.Tag, error) {
	names = normalizeTagNames(names)
	tags := make([]*models.Tag, 0, len(names))
	for _, name := range names {
		tag := &models.Tag{Name: name}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(tag)
		if res.Error != nil {
			return nil, fmt.Errorf("create tag %q: %w", name, res.Error)
		}
		if res.RowsAffected == 0 {
			tag = &models.Tag{}
			if err := tx.Where("name = ?", name).First(tag).Error; err != nil {
				return nil, fmt.Errorf("fetch tag %q: %w", name, err)
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// EnsureTags creates whichever of the named tags are missing and returns all
// of them in the order given, blanks and repeats dropped.
func (s *Service) EnsureTags(ctx context.Context, names []string) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		tags, err = getOrCreateTags(tx, names)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// RecordDownload adds one to the game's download counter and returns the new
// value. The increment happens in the UPDATE statement itself so concurrent
// downloads are never lost.
func (s *Service) RecordDownload(ctx context.Context, gameID uint) (int64, error) {
	var downloads int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Game{}).
			Where("id = ?", gameID).
			UpdateColumn("downloads", gorm.Expr("downloads + ?", 1))
		if res.Error != nil {
			return fmt.Errorf("increment downloads of game %d: %w", gameID, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("game", gameID)
		}
		// The updated row stays locked until commit, so this reads our own increment.
		var game models.Game
		if err := tx.Select("id", "downloads").First(&game, gameID).Error; err != nil {
			return fmt.Errorf("read downloads of game %d: %w", gameID, err)
		}
		downloads = game.Downloads
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.Downloads.Inc()
	return downloads, nil
}

// AddComment appends a comment by userID to the game.
func (s *Service) AddComment(ctx context.Context, userID, gameID uint, content string) (*models.Comment, error) {
	if userID == 0 {
		return nil, apperror.Unauthorized("Unauthorized. Please sign in to comment.")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "Comment content is required")
	}
	if err := s.gameExists(ctx, gameID); err != nil {
		return nil, err
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	comment := models.Comment{Content: content, UserID: userID, GameID: gameID}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if err := s.db.WithContext(ctx).Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, fmt.Errorf("reload comment %d: %w", comment.ID, err)
	}

	metrics.Comments.Inc()
	return &comment, nil
}

// AddFavorite bookmarks the game for the user. Favoriting the same game
// twice is a conflict.
func (s *Service) AddFavorite(ctx context.Context, userID, gameID uint) (*models.Favorite, error) {
	if err := checkFavoriteInput(userID, gameID); err != nil {
		return nil, err
	}
	if err := s.gameExists(ctx, gameID); err != nil {
		return nil, err
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	favorite := models.Favorite{UserID: userID, GameID: gameID}
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&favorite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperror.Conflict("Game is already in favorites")
	}
	if err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	metrics.Favorites.WithLabelValues("add").Inc()
	return &favorite, nil
}

// RemoveFavorite deletes the bookmark. Removing a favorite that does not
// exist succeeds.
func (s *Service) RemoveFavorite(ctx context.Context, userID, gameID uint) error {
	if err := checkFavoriteInput(userID, gameID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("delete favorite: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		metrics.Favorites.WithLabelValues("remove").Inc()
	}
	return nil
}

// IsFavorite reports whether the user has favorited the game.
func (s *Service) IsFavorite(ctx context.Context, userID, gameID uint) (bool, error) {
	if err := checkFavoriteInput(userID, gameID); err != nil {
		return false, err
	}
	if err := s.gameExists(ctx, gameID); err != nil {
		return false, err
	}

	var n int64
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return n > 0, nil
}

func checkFavoriteInput(userID, gameID uint) error {
	if userID == 0 {
		return apperror.Unauthorized("Unauthorized. Please sign in to manage favorites.")
	}
	if gameID == 0 {
		return apperror.ValidationFailed("gameId", "Game ID is required")
	}
	return nil
}
