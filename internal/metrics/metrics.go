// Package metrics exposes Prometheus collectors for the HTTP layer and
// catalog events.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests.
	// Labels: method, route (gin's full path template), status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamehub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration measures handler latency.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gamehub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// Downloads counts recorded game downloads.
	Downloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamehub_game_downloads_total",
		Help: "Total number of recorded game downloads",
	})

	// Comments counts created comments.
	Comments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamehub_comments_created_total",
		Help: "Total number of comments created",
	})

	// Favorites counts favorite changes.
	// Labels: action ("add", "remove").
	Favorites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamehub_favorites_total",
			Help: "Total number of favorite additions and removals",
		},
		[]string{"action"},
	)

	// GamesCreated counts new catalog entries.
	GamesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamehub_games_created_total",
		Help: "Total number of games created",
	})
)

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
