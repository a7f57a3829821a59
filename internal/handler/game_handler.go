package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/catalog"
	"gamehub/backend/internal/logging"
	"gamehub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// GameInput is the JSON body of POST /games.
type GameInput struct {
	Title        string   `json:"title" example:"Orbit"`
	Description  string   `json:"description" example:"Gravity puzzles in space"`
	ThumbnailURL string   `json:"thumbnailUrl" example:"/uploads/1f0c/thumbnail.png"`
	FileURL      string   `json:"fileUrl" example:"/uploads/1f0c/game.zip"`
	AuthorID     uint     `json:"authorId" example:"1"`
	Tags         []string `json:"tags" example:"Puzzle,Space"`
}

// UserSummary is the public part of a user embedded in games and comments.
type UserSummary struct {
	ID     uint   `json:"id" example:"1"`
	Name   string `json:"name" example:"Ann"`
	Avatar string `json:"avatar" example:"https://ui-avatars.com/api/?name=Ann&background=random"`
}

type CommentResponse struct {
	ID        uint        `json:"id" example:"3"`
	Content   string      `json:"content" example:"Great game"`
	GameID    uint        `json:"gameId" example:"7"`
	UserID    uint        `json:"userId" example:"1"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

// GameCounts holds per-game aggregates on the author's dashboard.
type GameCounts struct {
	Comments  int64 `json:"comments" example:"4"`
	Favorites int64 `json:"favorites" example:"2"`
}

type GameResponse struct {
	ID           uint          `json:"id" example:"7"`
	Title        string        `json:"title" example:"Orbit"`
	Description  string        `json:"description" example:"Gravity puzzles in space"`
	ThumbnailURL string        `json:"thumbnailUrl" example:"/uploads/1f0c/thumbnail.png"`
	FileURL      string        `json:"fileUrl" example:"/uploads/1f0c/game.zip"`
	Downloads    int64         `json:"downloads" example:"0"`
	Rating       *float64      `json:"rating"`
	AuthorID     uint          `json:"authorId" example:"1"`
	Author       UserSummary   `json:"author"`
	Tags         []TagResponse `json:"tags"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// GameDetailResponse is a game page: the game plus its comments, and whether
// the caller favorited it when a token was sent.
type GameDetailResponse struct {
	GameResponse
	Comments   []CommentResponse `json:"comments"`
	IsFavorite *bool             `json:"isFavorite,omitempty"`
}

// AuthoredGameResponse is a game on its author's dashboard.
type AuthoredGameResponse struct {
	GameResponse
	Count GameCounts `json:"_count"`
}

// DownloadResponse reports the counter after a download.
type DownloadResponse struct {
	Success   bool  `json:"success" example:"true"`
	Downloads int64 `json:"downloads" example:"42"`
}

// CommentInput is the JSON body of POST /games/{id}/comments.
type CommentInput struct {
	Content string `json:"content" example:"Great game"`
}

func newUserSummary(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

func newCommentResponse(c models.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		GameID:    c.GameID,
		UserID:    c.UserID,
		User:      newUserSummary(c.User),
		CreatedAt: c.CreatedAt,
	}
}

func newGameResponse(game models.Game) GameResponse {
	tags := make([]TagResponse, 0, len(game.Tags))
	for _, tag := range game.Tags {
		if tag != nil {
			tags = append(tags, newTagResponse(*tag))
		}
	}

	return GameResponse{
		ID:           game.ID,
		Title:        game.Title,
		Description:  game.Description,
		ThumbnailURL: game.ThumbnailURL,
		FileURL:      game.FileURL,
		Downloads:    game.Downloads,
		Rating:       game.Rating,
		AuthorID:     game.AuthorID,
		Author:       newUserSummary(game.Author),
		Tags:         tags,
		CreatedAt:    game.CreatedAt,
		UpdatedAt:    game.UpdatedAt,
	}
}

func newGameResponses(games []models.Game) []GameResponse {
	out := make([]GameResponse, len(games))
	for i, g := range games {
		out[i] = newGameResponse(g)
	}
	return out
}

func newGameDetailResponse(game models.Game) GameDetailResponse {
	comments := make([]CommentResponse, len(game.Comments))
	for i, c := range game.Comments {
		comments[i] = newCommentResponse(c)
	}
	return GameDetailResponse{GameResponse: newGameResponse(game), Comments: comments}
}

// endregion

// region --- Catalog Handlers ---

// ListGames godoc
// @Summary      List games
// @Description  Returns every game with its author and tags. Pass limit to paginate; the total is in X-Total-Count.
// @Tags         games
// @Produce      json
// @Param        sort  query     string  false  "latest or popular" default(latest)
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page, all when omitted"
// @Success      200   {array}   GameResponse
// @Header       200   {integer} X-Total-Count "Number of matching games"
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /games [get]
func (h *Handler) ListGames(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.catalog.ListGames(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	writeGameList(c, list)
}

// SearchGames godoc
// @Summary      Search games
// @Description  Case-insensitive substring match on title, description, tag names and author name.
// @Tags         games
// @Produce      json
// @Param        q     query     string  true   "Search text"
// @Param        sort  query     string  false  "latest or popular" default(latest)
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page, all when omitted"
// @Success      200   {array}   GameResponse
// @Failure      400   {object}  ErrorResponse "Missing q"
// @Failure      500   {object}  ErrorResponse
// @Router       /search [get]
func (h *Handler) SearchGames(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.catalog.SearchGames(c.Request.Context(), c.Query("q"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	writeGameList(c, list)
}

// GetGame godoc
// @Summary      Get a single game
// @Description  Returns the game with author, tags and comments (newest first). With a token the response includes isFavorite.
// @Tags         games
// @Produce      json
// @Param        id  path      int  true  "Game ID"
// @Success      200 {object}  GameDetailResponse
// @Failure      400 {object}  ErrorResponse
// @Failure      404 {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *Handler) GetGame(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	game, err := h.catalog.GetGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response := newGameDetailResponse(*game)

	if userID := currentUser(c); userID != 0 {
		isFav, err := h.catalog.IsFavorite(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		response.IsFavorite = &isFav
	}

	c.JSON(http.StatusOK, response)
}

// endregion

// region --- Mutation Handlers ---

// CreateGame godoc
// @Summary      Create a game
// @Description  Creates a game from already uploaded file URLs. Unknown tags are created.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input body      GameInput true "Game"
// @Success      201   {object}  GameResponse
// @Failure      400   {object}  ErrorResponse "Missing fields"
// @Failure      500   {object}  ErrorResponse
// @Router       /games [post]
func (h *Handler) CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if input.AuthorID == 0 {
		input.AuthorID = currentUser(c)
	}

	game, err := h.catalog.CreateGame(c.Request.Context(), catalog.NewGame{
		Title:        input.Title,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		FileURL:      input.FileURL,
		AuthorID:     input.AuthorID,
		Tags:         input.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newGameResponse(*game))
}

// UploadGame godoc
// @Summary      Upload a game
// @Description  Stores the thumbnail and game archive (10MB each at most) and creates the game for the signed in user.
// @Tags         games
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title       formData  string  true   "Title"
// @Param        description formData  string  true   "Description"
// @Param        tags        formData  []string false "Tag names, repeated or comma separated"
// @Param        thumbnail   formData  file    true   "Thumbnail image"
// @Param        gameFile    formData  file    true   "Game archive"
// @Success      200 {object}  GameResponse
// @Failure      400 {object}  ErrorResponse "Missing fields or file too large"
// @Failure      401 {object}  ErrorResponse
// @Failure      500 {object}  ErrorResponse
// @Router       /games/upload [post]
func (h *Handler) UploadGame(c *gin.Context) {
	userID := currentUser(c)
	if userID == 0 {
		respondError(c, apperror.Unauthorized("Unauthorized. Please sign in to upload games."))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploads.MaxRequestBytes())
	if _, err := c.MultipartForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, h.uploads.TooLarge())
			return
		}
		respondError(c, apperror.ValidationFailed("", "Invalid upload form"))
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	if title == "" || description == "" {
		respondError(c, apperror.ValidationFailed("", "Title and description are required"))
		return
	}

	thumbnail, _ := c.FormFile("thumbnail")
	gameFile, _ := c.FormFile("gameFile")
	upload, err := h.uploads.SaveGame(thumbnail, gameFile)
	if err != nil {
		respondError(c, err)
		return
	}

	var tags []string
	for _, v := range c.PostFormArray("tags") {
		tags = append(tags, strings.Split(v, ",")...)
	}

	game, err := h.catalog.CreateGame(c.Request.Context(), catalog.NewGame{
		Title:        title,
		Description:  description,
		ThumbnailURL: upload.ThumbnailURL,
		FileURL:      upload.FileURL,
		AuthorID:     userID,
		Tags:         tags,
	})
	if err != nil {
		if rmErr := h.uploads.Remove(upload.ID); rmErr != nil {
			logging.FromGin(c).Warn().Err(rmErr).Str("upload_id", upload.ID).Msg("Failed to remove orphaned upload")
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*game))
}

// RecordDownload godoc
// @Summary      Record a download
// @Description  Atomically increments the download counter and returns the new value.
// @Tags         games
// @Produce      json
// @Param        id  path      int  true  "Game ID"
// @Success      200 {object}  DownloadResponse
// @Failure      404 {object}  ErrorResponse "Game not found"
// @Failure      500 {object}  ErrorResponse
// @Router       /games/{id}/download [post]
func (h *Handler) RecordDownload(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	downloads, err := h.catalog.RecordDownload(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DownloadResponse{Success: true, Downloads: downloads})
}

// AddComment godoc
// @Summary      Comment on a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Game ID"
// @Param        input body      CommentInput true  "Comment"
// @Success      200   {object}  CommentResponse
// @Failure      400   {object}  ErrorResponse "Empty content"
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Game or user not found"
// @Failure      500   {object}  ErrorResponse
// @Router       /games/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	gameID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	comment, err := h.catalog.AddComment(c.Request.Context(), currentUser(c), gameID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(*comment))
}

// endregion
