// Package catalog holds the game catalog: the read-side queries (browse,
// search, tag filter, tag usage, detail) and the mutations that change it
// (create, tag, download, comment, favorite).
//
// All consistency rules are delegated to the store. Download counts use an
// in-place increment, favorites rely on the (user_id, game_id) primary key
// and tag creation relies on the unique index on tags.name.
package catalog

import (
	"fmt"
	"strings"

	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/models"

	"gorm.io/gorm"
)

// MaxListLimit caps the page size of paginated listings.
const MaxListLimit = 100

// Sort selects the ordering of game listings.
type Sort string

const (
	// SortLatest orders by creation time, newest first.
	SortLatest Sort = "latest"
	// SortPopular orders by download count, highest first.
	SortPopular Sort = "popular"
)

// ListOptions controls ordering and optional pagination of game listings.
// A zero Limit returns every match.
type ListOptions struct {
	Sort  Sort
	Page  int
	Limit int
}

func (o ListOptions) normalize() (ListOptions, error) {
	switch o.Sort {
	case "":
		o.Sort = SortLatest
	case SortLatest, SortPopular:
	default:
		return o, apperror.ValidationFailed("sort", fmt.Sprintf("unknown sort %q, expected latest or popular", o.Sort))
	}
	if o.Limit < 0 {
		return o, apperror.ValidationFailed("limit", "limit must not be negative")
	}
	if o.Limit > MaxListLimit {
		o.Limit = MaxListLimit
	}
	if o.Page < 1 {
		o.Page = 1
	}
	return o, nil
}

// GameList is one page of games plus the number of matches overall.
type GameList struct {
	Games []models.Game
	Total int64
}

// Service implements the catalog on top of a GORM database.
type Service struct {
	db *gorm.DB
}

// New creates a Service. db must be a root handle, not a chained query.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// escapeLike makes s match literally inside a LIKE pattern using '\' as the
// escape character.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
