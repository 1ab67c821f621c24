package events

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

// ErrStopped is returned by Service calls once Run has returned.
var ErrStopped = errors.New("events: service stopped")

// Listener is called after a batch is applied with the events that were not
// known before and are not part of the initial fetch. It runs on the
// service goroutine and must not call back into the Service.
type Listener func(fresh []models.Event, state State)

// Service owns the event store. All transitions go through Run's goroutine
// and are applied in the order they are received.
type Service struct {
	log      logrus.FieldLogger
	listener Listener

	add  chan addRequest
	seen chan chan State
	snap chan chan State
	done chan struct{}
}

type addRequest struct {
	batch []models.Event
	reply chan State
}

// NewService creates a Service. listener may be nil.
func NewService(log logrus.FieldLogger, listener Listener) *Service {
	return &Service{
		log:      log,
		listener: listener,
		add:      make(chan addRequest),
		seen:     make(chan chan State),
		snap:     make(chan chan State),
		done:     make(chan struct{}),
	}
}

// Run applies transitions until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	defer close(s.done)

	state := InitialState()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case req := <-s.add:
			next := state.AddEvents(req.batch)
			fresh := freshEvents(state, next)
			state = next
			req.reply <- state.Clone()

			s.log.WithFields(logrus.Fields{
				"batch":       len(req.batch),
				"fresh":       len(fresh),
				"retained":    len(state.Events),
				"unseen":      state.CountUnseenEvents,
				"in_progress": len(state.InProgressEvents),
			}).Debug("[events] batch applied")

			if s.listener != nil && len(fresh) > 0 {
				s.listener(fresh, state)
			}

		case reply := <-s.seen:
			state = state.MarkAllSeen()
			reply <- state.Clone()

		case reply := <-s.snap:
			reply <- state.Clone()
		}
	}
}

// AddEvents applies a fetched batch and returns the resulting state.
func (s *Service) AddEvents(ctx context.Context, batch []models.Event) (State, error) {
	reply := make(chan State, 1)
	if err := send(ctx, s.done, s.add, addRequest{batch: batch, reply: reply}); err != nil {
		return State{}, err
	}
	return <-reply, nil
}

// MarkAllSeen flags every retained event as seen. Callers confirm the
// acknowledgement with the provider first.
func (s *Service) MarkAllSeen(ctx context.Context) (State, error) {
	reply := make(chan State, 1)
	if err := send(ctx, s.done, s.seen, reply); err != nil {
		return State{}, err
	}
	return <-reply, nil
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot(ctx context.Context) (State, error) {
	reply := make(chan State, 1)
	if err := send(ctx, s.done, s.snap, reply); err != nil {
		return State{}, err
	}
	return <-reply, nil
}

// send hands v to the Run loop. Once accepted the loop always replies.
func send[T any](ctx context.Context, done <-chan struct{}, ch chan<- T, v T) error {
	select {
	case ch <- v:
		return nil
	case <-done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// freshEvents lists retained events in next that prev did not know,
// leaving out those from the initial fetch.
func freshEvents(prev, next State) []models.Event {
	known := make(map[int64]struct{}, len(prev.Events))
	for _, e := range prev.Events {
		known[e.ID] = struct{}{}
	}
	var fresh []models.Event
	for _, e := range next.Events {
		if _, ok := known[e.ID]; ok || e.Initial {
			continue
		}
		fresh = append(fresh, e)
	}
	return fresh
}
