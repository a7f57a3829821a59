package catalog

import (
	"context"
	"testing"
	"time"

	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/database/dbtest"
	"gamehub/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := dbtest.New(t)
	return New(db), db
}

func seedUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: name + "@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// seedGame inserts a game created `age` after base so ordering is deterministic.
func seedGame(t *testing.T, db *gorm.DB, author models.User, title, description string, age time.Duration, tags ...string) models.Game {
	t.Helper()
	tagRows, err := getOrCreateTags(db, tags)
	require.NoError(t, err)

	game := models.Game{
		Title:        title,
		Description:  description,
		ThumbnailURL: "/t.png",
		FileURL:      "/f.zip",
		AuthorID:     author.ID,
		Tags:         tagRows,
	}
	game.CreatedAt = base.Add(age)
	require.NoError(t, db.Omit("Tags.*").Create(&game).Error)
	return game
}

func titles(games []models.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Title
	}
	return out
}

func TestListGamesNewestFirstWithAuthorAndTags(t *testing.T) {
	svc, db := newService(t)
	ann := seedUser(t, db, "Ann")
	seedGame(t, db, ann, "Old", "first", 0, "Puzzle")
	seedGame(t, db, ann, "New", "second", time.Hour, "RPG", "Action")

	list, err := svc.ListGames(context.Background(), ListOptions{})
	require.NoError(t, err)

	require.Equal(t, []string{"New", "Old"}, titles(list.Games))
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, "Ann", list.Games[0].Author.Name)
	require.Len(t, list.Games[0].Tags, 2)
	assert.Equal(t, "Action", list.Games[0].Tags[0].Name)
	assert.Equal(t, "RPG", list.Games[0].Tags[1].Name)
}

func TestListGamesSortAndPaginate(t *testing.T) {
	svc, db := newService(t)
	ann := seedUser(t, db, "Ann")
	a := seedGame(t, db, ann, "A", "a", 0)
	seedGame(t, db, ann, "B", "b", time.Hour)
	c := seedGame(t, db, ann, "C", "c", 2*time.Hour)
	require.NoError(t, db.Model(&a).UpdateColumn("downloads", 10).Error)
	require.NoError(t, db.Model(&c).UpdateColumn("downloads", 5).Error)

	ctx := context.Background()

	popular, err := svc.ListGames(ctx, ListOptions{Sort: SortPopular})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, titles(popular.Games))

	page2, err := svc.ListGames(ctx, ListOptions{Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, titles(page2.Games))
	assert.Equal(t, int64(3), page2.Total)

	_, err = svc.ListGames(ctx, ListOptions{Sort: "random"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestSearchGames(t *testing.T) {
	svc, db := newService(t)
	ann := seedUser(t, db, "Ann Lee")
	seedGame(t, db, seedUser(t, db, "Bob"), "Orbit", "A space puzzle", 0, "Puzzle")
	seedGame(t, db, ann, "Dungeon Crawl", "Dark corridors", time.Hour, "Roguelike")
	seedGame(t, db, ann, "Kart Rush", "Fast 100% racing", 2*time.Hour, "Racing")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "title, any case", query: "oRBit", want: []string{"Orbit"}},
		{name: "description", query: "CORRIDORS", want: []string{"Dungeon Crawl"}},
		{name: "tag name substring", query: "rogue", want: []string{"Dungeon Crawl"}},
		{name: "author name", query: "ann", want: []string{"Kart Rush", "Dungeon Crawl"}},
		{name: "several fields match", query: "puzzle", want: []string{"Orbit"}},
		{name: "percent is literal", query: "100%", want: []string{"Kart Rush"}},
		{name: "underscore is literal", query: "_", want: []string{}},
		{name: "no match", query: "zzz", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.SearchGames(context.Background(), tt.query, ListOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(list.Games))
		})
	}
}

func TestSearchGamesRejectsEmptyQuery(t *testing.T) {
	svc, _ := newService(t)

	for _, q := range []string{"", "   "} {
		_, err := svc.SearchGames(context.Background(), q, ListOptions{})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	}
}

func TestSearchGamesIsRepeatable(t *testing.T) {
	svc, db := newService(t)
	ann := seedUser(t, db, "Ann")
	for i, title := range []string{"Space One", "Space Two", "Space Three"} {
		seedGame(t, db, ann, title, "space", time.Duration(i)*time.Minute)
	}

	first, err := svc.SearchGames(context.Background(), "space", ListOptions{})
	require.NoError(t, err)
	second, err := svc.SearchGames(context.Background(), "space", ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, titles(first.Games), titles(second.Games))
	assert.Len(t, first.Games, 3)
}

func TestGamesByTag(t *testing.T) {
	svc, db := newService(t)
	ann := seedUser(t, db, "Ann")
	seedGame(t, db, ann, "Orbit", "d", 0, "Puzzle", "Space")
	seedGame(t, db, ann, "Blocks", "d", time.Hour, "Puzzle")
	seedGame(t, db, ann, "Racer", "d", 2*time.Hour, "Racing")

	ctx := context.Background()

	list, err := svc.GamesByTag(ctx, "Puzzle", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Blocks", "Orbit"}, titles(list.Games))

	lower, err := svc.GamesByTag(ctx, "puzzle", ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, lower.Games, "tag filter is case-sensitive")

	unknown, err := svc.GamesByTag(ctx, "Nope", ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, unknown.Games)
}

func TestListTagsCountsGames(t *testing.T) {
	svc, db := newService(t)
	ann := seedUser(t, db, "Ann")
	seedGame(t, db, ann, "Orbit", "d", 0, "Puzzle", "Space")
	seedGame(t, db, ann, "Blocks", "d", time.Hour, "Puzzle")
	_, err := getOrCreateTags(db, []string{"Unused"})
	require.NoError(t, err)

	ctx := context.Background()

	tags, err := svc.ListTags(ctx, "")
	require.NoError(t, err)
	counts := map[string]int64{}
	for _, tag := range tags {
		counts[tag.Name] = tag.GameCount
	}
	assert.Equal(t, map[string]int64{"Puzzle": 2, "Space": 1, "Unused": 0}, counts)

	popular, err := svc.ListTags(ctx, "popular")
	require.NoError(t, err)
	require.Len(t, popular, 3)
	assert.Equal(t, "Puzzle", popular[0].Name)
	assert.Equal(t, "Unused", popular[2].Name)

	_, err = svc.ListTags(ctx, "loudest")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestGetGame(t *testing.T) {
	svc, db := newService(t)
	ann := seedUser(t, db, "Ann")
	bob := seedUser(t, db, "Bob")
	game := seedGame(t, db, ann, "Orbit", "d", 0, "Puzzle")

	for i, c := range []struct {
		user models.User
		text string
	}{{ann, "first"}, {bob, "second"}, {ann, "third"}} {
		comment := models.Comment{Content: c.text, UserID: c.user.ID, GameID: game.ID}
		comment.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&comment).Error)
	}

	got, err := svc.GetGame(context.Background(), game.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ann", got.Author.Name)
	require.Len(t, got.Tags, 1)
	require.Len(t, got.Comments, 3)
	assert.Equal(t, "third", got.Comments[0].Content)
	assert.Equal(t, "second", got.Comments[1].Content)
	assert.Equal(t, "Bob", got.Comments[1].User.Name)
	assert.Equal(t, "first", got.Comments[2].Content)
}

func TestGetGameNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetGame(context.Background(), 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGamesByAuthorIncludesCounts(t *testing.T) {
	svc, db := newService(t)
	ann := seedUser(t, db, "Ann")
	bob := seedUser(t, db, "Bob")
	orbit := seedGame(t, db, ann, "Orbit", "d", 0)
	seedGame(t, db, ann, "Blocks", "d", time.Hour)
	seedGame(t, db, bob, "Not Ann's", "d", 2*time.Hour)

	ctx := context.Background()
	_, err := svc.AddComment(ctx, bob.ID, orbit.ID, "nice")
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, ann.ID, orbit.ID, "thanks")
	require.NoError(t, err)
	_, err = svc.AddFavorite(ctx, bob.ID, orbit.ID)
	require.NoError(t, err)

	games, err := svc.GamesByAuthor(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Blocks", games[0].Title)
	assert.Equal(t, int64(0), games[0].CommentCount)
	assert.Equal(t, "Orbit", games[1].Title)
	assert.Equal(t, int64(2), games[1].CommentCount)
	assert.Equal(t, int64(1), games[1].FavoriteCount)

	_, err = svc.GamesByAuthor(ctx, 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
