package handler

import (
	"net/http"
	"time"

	"gamehub/backend/internal/apperror"

	"github.com/gin-gonic/gin"
)

// FavoriteInput is the JSON body of POST /user/favorites.
type FavoriteInput struct {
	GameID uint `json:"gameId" example:"7"`
}

type FavoriteResponse struct {
	UserID    uint      `json:"userId" example:"1"`
	GameID    uint      `json:"gameId" example:"7"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddFavoriteResponse struct {
	Success  bool             `json:"success" example:"true"`
	Favorite FavoriteResponse `json:"favorite"`
}

type CheckFavoriteResponse struct {
	IsFavorite bool `json:"isFavorite" example:"true"`
}

// AddFavorite godoc
// @Summary      Favorite a game
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body      FavoriteInput true "Game to favorite"
// @Success      200   {object}  AddFavoriteResponse
// @Failure      400   {object}  ErrorResponse "Missing game id or already favorited"
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Game or user not found"
// @Failure      500   {object}  ErrorResponse
// @Router       /user/favorites [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	var input FavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	fav, err := h.catalog.AddFavorite(c.Request.Context(), currentUser(c), input.GameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AddFavoriteResponse{
		Success: true,
		Favorite: FavoriteResponse{
			UserID:    fav.UserID,
			GameID:    fav.GameID,
			CreatedAt: fav.CreatedAt,
		},
	})
}

// RemoveFavorite godoc
// @Summary      Unfavorite a game
// @Description  Removing a game that is not a favorite also succeeds.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        gameId query     int  true  "Game ID"
// @Success      200    {object}  SuccessResponse
// @Failure      400    {object}  ErrorResponse "Missing game id"
// @Failure      401    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /user/favorites [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	gameID, err := queryGameID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.catalog.RemoveFavorite(c.Request.Context(), currentUser(c), gameID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// CheckFavorite godoc
// @Summary      Is a game favorited
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        gameId query     int  true  "Game ID"
// @Success      200    {object}  CheckFavoriteResponse
// @Failure      400    {object}  ErrorResponse "Missing game id"
// @Failure      401    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse "Game not found"
// @Router       /user/favorites/check [get]
func (h *Handler) CheckFavorite(c *gin.Context) {
	gameID, err := queryGameID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	isFav, err := h.catalog.IsFavorite(c.Request.Context(), currentUser(c), gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CheckFavoriteResponse{IsFavorite: isFav})
}

// FavoriteGames godoc
// @Summary      My favorite games
// @Description  Games the signed in user favorited, most recent first.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}   GameResponse
// @Failure      401 {object}  ErrorResponse
// @Failure      404 {object}  ErrorResponse "User not found"
// @Failure      500 {object}  ErrorResponse
// @Router       /user/favorites [get]
func (h *Handler) FavoriteGames(c *gin.Context) {
	games, err := h.catalog.FavoriteGames(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponses(games))
}

func queryGameID(c *gin.Context) (uint, error) {
	raw := c.Query("gameId")
	if raw == "" {
		return 0, apperror.ValidationFailed("gameId", "Game ID is required")
	}
	return parseID("gameId", raw)
}
