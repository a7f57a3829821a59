package handler

import (
	"net/http"
	"strconv"

	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/catalog"

	"github.com/gin-gonic/gin"
)

// TotalCountHeader carries the number of matches of a paginated listing.
const TotalCountHeader = "X-Total-Count"

// listOptions reads ?sort=, ?page= and ?limit=. Without a limit the whole
// result set is returned.
func listOptions(c *gin.Context) (catalog.ListOptions, error) {
	opts := catalog.ListOptions{Sort: catalog.Sort(c.Query("sort"))}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return opts, apperror.ValidationFailed("page", "page must be a positive integer")
		}
		opts.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return opts, apperror.ValidationFailed("limit", "limit must be a positive integer")
		}
		opts.Limit = limit
	}
	return opts, nil
}

// writeGameList responds with the games as a JSON array. The total goes in a
// header so the body keeps the same shape with and without pagination.
func writeGameList(c *gin.Context, list *catalog.GameList) {
	c.Header(TotalCountHeader, strconv.FormatInt(list.Total, 10))
	c.JSON(http.StatusOK, newGameResponses(list.Games))
}
