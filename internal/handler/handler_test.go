package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", apperror.ValidationFailed("title", "title is required"), http.StatusBadRequest, `{"error":"title is required"}`},
		{"conflict", apperror.Conflict("Game is already in favorites"), http.StatusBadRequest, `{"error":"Game is already in favorites"}`},
		{"unauthorized", apperror.Unauthorized("sign in"), http.StatusUnauthorized, `{"error":"sign in"}`},
		{"not found", apperror.NotFound("game", 9), http.StatusNotFound, `{"error":"game not found with id 9"}`},
		{"wrapped not found", fmt.Errorf("load: %w", apperror.NotFound("game", 9)), http.StatusNotFound, `{"error":"game not found with id 9"}`},
		{"store failure is hidden", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestListOptions(t *testing.T) {
	tests := []struct {
		query   string
		want    catalog.ListOptions
		wantErr bool
	}{
		{query: "", want: catalog.ListOptions{}},
		{query: "sort=popular&page=3&limit=20", want: catalog.ListOptions{Sort: catalog.SortPopular, Page: 3, Limit: 20}},
		{query: "page=0", wantErr: true},
		{query: "limit=-1", wantErr: true},
		{query: "limit=ten", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/games?"+tt.query, nil)

			got, err := listOptions(c)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperror.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("id", "42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "99999999999"} {
		_, err := parseID("id", raw)
		assert.ErrorIs(t, err, apperror.ErrValidation, raw)
	}
}
