package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/PratikDhanave/event-feed-service/internal/auth"
	"github.com/PratikDhanave/event-feed-service/internal/events"
	"github.com/PratikDhanave/event-feed-service/internal/models"
)

// EventStore is the in-memory event state.
type EventStore interface {
	Snapshot(ctx context.Context) (events.State, error)
	MarkAllSeen(ctx context.Context) (events.State, error)
}

// Acknowledger confirms seen events with the provider.
type Acknowledger interface {
	MarkSeen(ctx context.Context, id int64) error
}

// SeenArchive mirrors acknowledgements into the archive.
type SeenArchive interface {
	MarkSeen(ctx context.Context, maxID int64) (int64, error)
}

// Renderer turns an event into display text.
type Renderer interface {
	Message(e models.Event) string
}

// RegisterEventRoutes registers the event feed endpoints.
//
// GET  /events      - retained events, most recent first, with rendered text
// GET  /events/:id  - one retained event
// POST /events/seen - acknowledge everything with the provider, then locally
//
// archive may be nil.
func RegisterEventRoutes(r gin.IRoutes, st EventStore, ack Acknowledger, archive SeenArchive, msgs Renderer, log logrus.FieldLogger) {
	r.GET("/events", func(c *gin.Context) {
		state, err := st.Snapshot(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event store unavailable"})
			return
		}

		views := make([]models.EventView, 0, len(state.Events))
		for _, e := range state.Events {
			views = append(views, models.EventView{Event: e, Rendered: msgs.Message(e)})
		}

		c.JSON(http.StatusOK, models.EventListResponse{
			Events:              views,
			CountUnseen:         state.CountUnseenEvents,
			MostRecentEventTime: state.MostRecentEventTime,
			InProgress:          state.InProgressEvents,
		})
	})

	r.GET("/events/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
			return
		}

		state, err := st.Snapshot(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event store unavailable"})
			return
		}

		e, ok := state.Event(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusOK, models.EventView{Event: e, Rendered: msgs.Message(e)})
	})

	r.POST("/events/seen", func(c *gin.Context) {
		ctx := c.Request.Context()

		state, err := st.Snapshot(ctx)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event store unavailable"})
			return
		}

		maxID := state.MaxEventID()
		if maxID == 0 {
			c.JSON(http.StatusOK, models.MarkSeenResponse{})
			return
		}

		// Local state only changes once the provider has accepted the
		// acknowledgement, so the unseen count never runs ahead of it.
		if err := ack.MarkSeen(ctx, maxID); err != nil {
			log.WithError(err).WithField("user", auth.User(c)).Warn("[api] provider rejected mark seen")
			c.JSON(http.StatusBadGateway, gin.H{"error": "provider mark seen failed"})
			return
		}

		next, err := st.MarkAllSeen(ctx)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event store unavailable"})
			return
		}

		if archive != nil {
			if _, err := archive.MarkSeen(ctx, maxID); err != nil {
				log.WithError(err).Warn("[api] archive mark seen failed")
			}
		}

		c.JSON(http.StatusOK, models.MarkSeenResponse{
			SeenThrough: maxID,
			CountUnseen: next.CountUnseenEvents,
		})
	})
}
