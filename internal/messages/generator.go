// Package messages turns provider events into short human-readable lines
// with inline links and emphasis for console clients.
package messages

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

var (
	// ErrUnknownEvent means no template exists for the action and status.
	ErrUnknownEvent = errors.New("messages: no template for action and status")
	// ErrMissingEntity is returned by templates that need an absent entity.
	ErrMissingEntity = errors.New("messages: event has no entity")
)

// Template renders one (action, status) combination.
type Template func(e models.Event) (string, error)

// Reporter receives template failures.
type Reporter interface {
	Report(err error, e models.Event)
}

// LogReporter reports template failures to a logger.
type LogReporter struct {
	Log logrus.FieldLogger
}

func (r LogReporter) Report(err error, e models.Event) {
	r.Log.WithFields(logrus.Fields{
		"event_id": e.ID,
		"action":   e.Action,
		"status":   e.Status,
	}).WithError(err).Error("[messages] template failed")
}

// Render runs the template for e without any decoration. It never panics.
func Render(e models.Event) (msg string, err error) {
	fn := templates[e.Action][e.Status]
	if fn == nil {
		return "", ErrUnknownEvent
	}
	defer func() {
		if r := recover(); r != nil {
			msg, err = "", fmt.Errorf("messages: template %s/%s panicked: %v", e.Action, e.Status, r)
		}
	}()
	return fn(e)
}

// Fallback describes an event no template knows about.
func Fallback(e models.Event) string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Action, e.Message)
	}
	if label := e.EntityLabel(); label != "" {
		return fmt.Sprintf("%s on %s", e.Action, label)
	}
	return string(e.Action)
}

// Generator renders events and handles the failures Render reports.
type Generator struct {
	Log      logrus.FieldLogger
	Reporter Reporter
	// Links resolves console targets; LinkTarget when nil.
	Links LinkResolver
	// Production silences unknown-event logging.
	Production bool
}

// NewGenerator returns a Generator that reports failures to log.
func NewGenerator(log logrus.FieldLogger, production bool) *Generator {
	return &Generator{
		Log:        log,
		Reporter:   LogReporter{Log: log},
		Links:      LinkTarget,
		Production: production,
	}
}

// Message returns the display text for e. Unknown events get the fallback
// text; a failing template yields "".
func (g *Generator) Message(e models.Event) string {
	msg, err := Render(e)
	switch {
	case errors.Is(err, ErrUnknownEvent):
		if !g.Production && g.Log != nil {
			g.Log.WithFields(logrus.Fields{
				"event_id": e.ID,
				"action":   e.Action,
				"status":   e.Status,
			}).Warn("[messages] unknown event")
		}
		return Fallback(e)
	case err != nil:
		if g.Reporter != nil {
			g.Reporter.Report(err, e)
		}
		msg = ""
	}

	links := g.Links
	if links == nil {
		links = LinkTarget
	}

	msg = AppendUsername(msg, e.Username)
	msg = ApplyLinking(msg, e, links)
	return ApplyBolding(msg)
}
