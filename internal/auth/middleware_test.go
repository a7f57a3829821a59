package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamehub/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func newTestRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", mw, func(c *gin.Context) {
		id, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware(t *testing.T) {
	token, err := jwt.GenerateToken(7, testSecret, time.Hour)
	require.NoError(t, err)
	router := newTestRouter(Middleware(testSecret))

	t.Run("valid token", func(t *testing.T) {
		w := doRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"ok":true}`, w.Body.String())
	})

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"bad token":      "Bearer nope",
		"extra parts":    "Bearer " + token + " extra",
	} {
		t.Run(name, func(t *testing.T) {
			w := doRequest(router, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestOptionalMiddleware(t *testing.T) {
	token, err := jwt.GenerateToken(3, testSecret, time.Hour)
	require.NoError(t, err)
	router := newTestRouter(OptionalMiddleware(testSecret))

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"ok":true}`, w.Body.String())

	w = doRequest(router, "Bearer invalid")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0,"ok":false}`, w.Body.String())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Now()

	assert.True(t, rl.allow("1.2.3.4", now))
	assert.True(t, rl.allow("1.2.3.4", now))
	assert.False(t, rl.allow("1.2.3.4", now), "burst exhausted")
	assert.True(t, rl.allow("5.6.7.8", now), "other clients have their own bucket")
	assert.True(t, rl.allow("1.2.3.4", now.Add(time.Second)), "bucket refills")
}

func TestRateLimiterHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", NewRateLimiter(1, 1).Handler(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
