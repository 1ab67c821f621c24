package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/PratikDhanave/event-feed-service/internal/config"
	"github.com/PratikDhanave/event-feed-service/internal/events"
	"github.com/PratikDhanave/event-feed-service/internal/httpserver"
	"github.com/PratikDhanave/event-feed-service/internal/messages"
	"github.com/PratikDhanave/event-feed-service/internal/models"
	"github.com/PratikDhanave/event-feed-service/internal/poller"
	"github.com/PratikDhanave/event-feed-service/internal/provider"
	"github.com/PratikDhanave/event-feed-service/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll the provider and serve the event feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// serve boots the service: config → archive → event store → poller → HTTP server.
func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := log.StandardLogger()
	if !cfg.Production() {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The archive is optional; without DB_URL the feed lives in memory only.
	var db *store.PostgresStore
	if cfg.DBURL != "" {
		db, err = store.NewPostgresStore(cfg.DBURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	gen := messages.NewGenerator(logger, cfg.Production())
	svc := events.NewService(logger, func(fresh []models.Event, _ events.State) {
		for _, e := range fresh {
			logger.WithFields(log.Fields{
				"event_id": e.ID,
				"action":   e.Action,
				"status":   e.Status,
			}).Info("[events] " + gen.Message(e))
		}
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return svc.Run(ctx) })

	var archive poller.Archive
	deps := httpserver.Deps{Events: svc, Messages: gen, Log: logger}
	if db != nil {
		archive, deps.Archive = db, db
		if err := seedFromArchive(ctx, db, svc); err != nil {
			logger.WithError(err).Warn("[events] could not seed from archive")
		}
	}

	client := provider.NewClient(cfg.ProviderURL, cfg.ProviderToken, nil)
	p := poller.New(client, svc, archive, cfg.PollInterval, logger)
	deps.Provider, deps.Poller = client, p
	g.Go(func() error { return p.Run(ctx) })

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpserver.NewRouter(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		logger.Printf("server started on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

// seedFromArchive loads the most recent archived events as the first batch,
// so they count as initial and raise no notifications.
func seedFromArchive(ctx context.Context, db *store.PostgresStore, svc *events.Service) error {
	recent, err := db.RecentEvents(ctx, events.MaxEvents)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		return nil
	}
	state, err := svc.AddEvents(ctx, recent)
	if err != nil {
		return err
	}
	log.WithField("events", len(state.Events)).Info("[events] seeded from archive")
	return nil
}
