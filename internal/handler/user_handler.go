package handler

import (
	"net/http"
	"time"

	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Name     string `json:"name" example:"Ann"`
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"secret1"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"secret1"`
}

// UserResponse is a user as seen by themselves. The password hash is never
// serialized.
type UserResponse struct {
	ID        uint      `json:"id" example:"1"`
	Name      string    `json:"name" example:"Ann"`
	Email     string    `json:"email" example:"ann@example.com"`
	Avatar    string    `json:"avatar" example:"https://ui-avatars.com/api/?name=Ann&background=random"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is the user plus a bearer token for subsequent requests.
type AuthResponse struct {
	UserResponse
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

func newUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, CreatedAt: u.CreatedAt}
}

// endregion

// region --- Auth Handlers ---

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user and returns it with an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body      RegisterInput true "Registration Info"
// @Success      201   {object}  AuthResponse
// @Failure      400   {object}  ErrorResponse "Missing fields, bad email, short password or email taken"
// @Failure      429   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	session, err := h.accounts.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{UserResponse: newUserResponse(session.User), Token: session.Token})
}

// Login godoc
// @Summary      Log in a user
// @Description  Checks email and password and returns the user with a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body      LoginInput true "Login Info"
// @Success      200   {object}  AuthResponse
// @Failure      400   {object}  ErrorResponse "Missing fields"
// @Failure      401   {object}  ErrorResponse "Invalid credentials"
// @Failure      429   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	session, err := h.accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{UserResponse: newUserResponse(session.User), Token: session.Token})
}

// endregion

// region --- User Handlers ---

// Me godoc
// @Summary      Current user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object}  UserResponse
// @Failure      401 {object}  ErrorResponse
// @Failure      404 {object}  ErrorResponse
// @Router       /user/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, err := h.accounts.GetUser(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(*user))
}

// UserGames godoc
// @Summary      My games
// @Description  Games uploaded by the signed in user, newest first, with comment and favorite counts.
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}   AuthoredGameResponse
// @Failure      401 {object}  ErrorResponse
// @Failure      404 {object}  ErrorResponse "User not found"
// @Failure      500 {object}  ErrorResponse
// @Router       /user/games [get]
func (h *Handler) UserGames(c *gin.Context) {
	userID := currentUser(c)
	if userID == 0 {
		respondError(c, apperror.Unauthorized("Unauthorized. Please sign in to view your games."))
		return
	}

	games, err := h.catalog.GamesByAuthor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AuthoredGameResponse, len(games))
	for i, g := range games {
		response[i] = AuthoredGameResponse{
			GameResponse: newGameResponse(g.Game),
			Count:        GameCounts{Comments: g.CommentCount, Favorites: g.FavoriteCount},
		}
	}
	c.JSON(http.StatusOK, response)
}

// endregion
