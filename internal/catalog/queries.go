package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/models"

	"gorm.io/gorm"
)

// TagUsage is a tag with the number of games it is attached to.
type TagUsage struct {
	ID        uint
	Name      string
	GameCount int64
}

// AuthoredGame is a game listed on its author's dashboard.
type AuthoredGame struct {
	models.Game
	CommentCount  int64
	FavoriteCount int64
}

// ListGames returns the catalog, newest first unless opts says otherwise.
func (s *Service) ListGames(ctx context.Context, opts ListOptions) (*GameList, error) {
	return s.listGames(ctx, opts, nil)
}

// SearchGames returns games whose title, description, any tag name or author
// name contains query, ignoring case. All matches rank equally.
func (s *Service) SearchGames(ctx context.Context, query string, opts ListOptions) (*GameList, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.ValidationFailed("q", "Search query is required")
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	tagged := s.db.Table("game_tags").
		Select("game_tags.game_id").
		Joins("JOIN tags ON tags.id = game_tags.tag_id").
		Where(`LOWER(tags.name) LIKE ? ESCAPE '\'`, pattern)
	authored := s.db.Model(&models.User{}).
		Select("users.id").
		Where(`LOWER(users.name) LIKE ? ESCAPE '\'`, pattern)

	match := s.db.Where(`LOWER(games.title) LIKE ? ESCAPE '\'`, pattern).
		Or(`LOWER(games.description) LIKE ? ESCAPE '\'`, pattern).
		Or("games.id IN (?)", tagged).
		Or("games.author_id IN (?)", authored)

	return s.listGames(ctx, opts, func(db *gorm.DB) *gorm.DB {
		return db.Where(match)
	})
}

// GamesByTag returns games carrying a tag with exactly this name.
// An unknown tag yields an empty list.
func (s *Service) GamesByTag(ctx context.Context, name string, opts ListOptions) (*GameList, error) {
	tagged := s.db.Table("game_tags").
		Select("game_tags.game_id").
		Joins("JOIN tags ON tags.id = game_tags.tag_id").
		Where("tags.name = ?", name)

	return s.listGames(ctx, opts, func(db *gorm.DB) *gorm.DB {
		return db.Where("games.id IN (?)", tagged)
	})
}

func (s *Service) listGames(ctx context.Context, opts ListOptions, filter func(*gorm.DB) *gorm.DB) (*GameList, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = func(db *gorm.DB) *gorm.DB { return db }
	}

	var games []models.Game
	query := s.db.WithContext(ctx).Model(&models.Game{}).Scopes(filter, orderGames(opts.Sort))
	if opts.Limit > 0 {
		query = query.Offset((opts.Page - 1) * opts.Limit).Limit(opts.Limit)
	}
	if err := preloadListing(query).Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	total := int64(len(games))
	if opts.Limit > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Game{}).Scopes(filter).Count(&total).Error; err != nil {
			return nil, fmt.Errorf("count games: %w", err)
		}
	}
	return &GameList{Games: games, Total: total}, nil
}

func orderGames(sort Sort) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if sort == SortPopular {
			db = db.Order("games.downloads DESC")
		}
		return db.Order("games.created_at DESC").Order("games.id DESC")
	}
}

func orderTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.name ASC")
}

func preloadListing(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Tags", orderTags)
}

// ListTags returns every tag with a live count of the games using it.
// sort "popular" orders by that count; anything else orders by name.
func (s *Service) ListTags(ctx context.Context, sort string) ([]TagUsage, error) {
	query := s.db.WithContext(ctx).Model(&models.Tag{}).
		Select("tags.id, tags.name, COUNT(games.id) AS game_count").
		Joins("LEFT JOIN game_tags ON game_tags.tag_id = tags.id").
		Joins("LEFT JOIN games ON games.id = game_tags.game_id AND games.deleted_at IS NULL").
		Group("tags.id, tags.name")

	switch sort {
	case "", "name":
	case string(SortPopular):
		query = query.Order("game_count DESC")
	default:
		return nil, apperror.ValidationFailed("sort", fmt.Sprintf("unknown sort %q, expected name or popular", sort))
	}

	var tags []TagUsage
	if err := query.Order("tags.name ASC").Scan(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// GetGame returns a game with its author, tags and comments, newest comment first.
func (s *Service) GetGame(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags", orderTags).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC").Order("comments.id DESC")
		}).
		Preload("Comments.User").
		First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("game", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get game %d: %w", id, err)
	}
	return &game, nil
}

// GamesByAuthor returns the user's own games, newest first, with comment and
// favorite counts.
func (s *Service) GamesByAuthor(ctx context.Context, userID uint) ([]AuthoredGame, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	var games []models.Game
	err := preloadListing(s.db.WithContext(ctx).Where("games.author_id = ?", userID).Scopes(orderGames(SortLatest))).
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("list games by author %d: %w", userID, err)
	}
	if len(games) == 0 {
		return []AuthoredGame{}, nil
	}

	ids := make([]uint, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	comments, err := s.countByGame(ctx, &models.Comment{}, ids)
	if err != nil {
		return nil, err
	}
	favorites, err := s.countByGame(ctx, &models.Favorite{}, ids)
	if err != nil {
		return nil, err
	}

	result := make([]AuthoredGame, len(games))
	for i, g := range games {
		result[i] = AuthoredGame{Game: g, CommentCount: comments[g.ID], FavoriteCount: favorites[g.ID]}
	}
	return result, nil
}

func (s *Service) countByGame(ctx context.Context, model interface{}, gameIDs []uint) (map[uint]int64, error) {
	var rows []struct {
		GameID uint
		Total  int64
	}
	err := s.db.WithContext(ctx).Model(model).
		Select("game_id, COUNT(*) AS total").
		Where("game_id IN ?", gameIDs).
		Group("game_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count by game: %w", err)
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.GameID] = r.Total
	}
	return counts, nil
}

// FavoriteGames returns the games the user favorited, most recent first.
func (s *Service) FavoriteGames(ctx context.Context, userID uint) ([]models.Game, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	var games []models.Game
	err := preloadListing(s.db.WithContext(ctx).Model(&models.Game{})).
		Joins("JOIN favorites ON favorites.game_id = games.id AND favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Order("games.id DESC").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites of user %d: %w", userID, err)
	}
	return games, nil
}

func (s *Service) userExists(ctx context.Context, userID uint) error {
	return s.exists(ctx, &models.User{}, "user", userID)
}

func (s *Service) gameExists(ctx context.Context, gameID uint) error {
	return s.exists(ctx, &models.Game{}, "game", gameID)
}

func (s *Service) exists(ctx context.Context, model interface{}, resource string, id uint) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("look up %s %d: %w", resource, id, err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
