package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/PratikDhanave/event-feed-service/internal/auth"
	"github.com/PratikDhanave/event-feed-service/internal/config"
	"github.com/PratikDhanave/event-feed-service/internal/handlers"
)

// Archive is the optional durable store behind the feed.
type Archive interface {
	handlers.SeenArchive
	Ping(ctx context.Context) error
}

// PollStatus reports how many polls have been applied.
type PollStatus interface {
	Successful() int64
}

// Deps are the collaborators the router serves. Archive may be nil.
type Deps struct {
	Events   handlers.EventStore
	Provider handlers.Acknowledger
	Archive  Archive
	Messages handlers.Renderer
	Poller   PollStatus
	Log      logrus.FieldLogger
}

// NewRouter wires public endpoints and authenticated APIs.
// Public: /health, /ready
// Authenticated: /events, /events/:id, /events/seen, /messages/render
func NewRouter(cfg config.Config, d Deps) *gin.Engine {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Log))

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: the first poll has landed and the archive, if any, answers.
	r.GET("/ready", func(c *gin.Context) {
		if d.Poller.Successful() == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": "no successful poll yet"})
			return
		}

		if d.Archive != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()

			if err := d.Archive.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// Auth group identifies the console user via X-API-Key.
	authGroup := r.Group("/")
	authGroup.Use(auth.APIKeyMiddleware(cfg.APIKeys))

	var seen handlers.SeenArchive
	if d.Archive != nil {
		seen = d.Archive
	}
	handlers.RegisterEventRoutes(authGroup, d.Events, d.Provider, seen, d.Messages, d.Log)
	handlers.RegisterMessageRoutes(authGroup, d.Messages)

	return r
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("[api] request")
	}
}
