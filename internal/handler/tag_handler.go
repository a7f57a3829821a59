package handler

import (
	"net/http"

	"gamehub/backend/internal/catalog"
	"gamehub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type TagResponse struct {
	ID   uint   `json:"id" example:"2"`
	Name string `json:"name" example:"Puzzle"`
}

type TagCounts struct {
	Games int64 `json:"games" example:"12"`
}

// TagUsageResponse is a tag with the number of games using it.
type TagUsageResponse struct {
	ID    uint      `json:"id" example:"2"`
	Name  string    `json:"name" example:"Puzzle"`
	Count TagCounts `json:"_count"`
}

func newTagResponse(tag models.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name}
}

func newTagUsageResponse(tag catalog.TagUsage) TagUsageResponse {
	return TagUsageResponse{ID: tag.ID, Name: tag.Name, Count: TagCounts{Games: tag.GameCount}}
}

// ListTags godoc
// @Summary      List tags
// @Description  Returns every tag with a live count of games using it.
// @Tags         tags
// @Produce      json
// @Param        sort query     string  false  "name or popular" default(name)
// @Success      200  {array}   TagUsageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.catalog.ListTags(c.Request.Context(), c.Query("sort"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TagUsageResponse, len(tags))
	for i, tag := range tags {
		response[i] = newTagUsageResponse(tag)
	}
	c.JSON(http.StatusOK, response)
}

// GamesByTag godoc
// @Summary      Games with a tag
// @Description  Exact, case-sensitive tag name. An unknown tag returns an empty list.
// @Tags         tags
// @Produce      json
// @Param        name  path      string  true   "Tag name"
// @Param        sort  query     string  false  "latest or popular" default(latest)
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page, all when omitted"
// @Success      200   {array}   GameResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /tags/{name} [get]
func (h *Handler) GamesByTag(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.catalog.GamesByTag(c.Request.Context(), c.Param("name"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	writeGameList(c, list)
}
