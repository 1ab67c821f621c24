package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

// schemaSQL is embedded so the service can self-bootstrap its database schema.
//
//go:embed schema.sql
var schemaSQL string

// PostgresStore archives every event the service ingests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool and fails fast if DB is unreachable.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaSQL)
	return err
}

// Ping is used by readiness endpoint to validate DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// ArchiveEvents upserts events by id and returns how many were new.
//
// Re-delivered events overwrite the stored status and payload, so the
// archive always holds the latest known version of each event. The derived
// _initial flag is not stored.
func (p *PostgresStore) ArchiveEvents(ctx context.Context, events []models.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, e := range events {
		created, err := e.CreatedAt()
		if err != nil {
			return 0, fmt.Errorf("event %d: created: %w", e.ID, err)
		}

		e.Initial = false
		payload, err := json.Marshal(e)
		if err != nil {
			return 0, fmt.Errorf("event %d: %w", e.ID, err)
		}
		var entity []byte
		if e.Entity != nil {
			if entity, err = json.Marshal(e.Entity); err != nil {
				return 0, fmt.Errorf("event %d: entity: %w", e.ID, err)
			}
		}

		// xmax = 0 only for rows this statement inserted.
		batch.Queue(`
			INSERT INTO account_events(id, action, status, created, percent_complete, entity, seen, payload)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (id) DO UPDATE SET
				status           = EXCLUDED.status,
				percent_complete = EXCLUDED.percent_complete,
				entity           = EXCLUDED.entity,
				seen             = account_events.seen OR EXCLUDED.seen,
				payload          = EXCLUDED.payload,
				updated_at       = now()
			RETURNING (xmax = 0)
		`, e.ID, string(e.Action), string(e.Status), created, e.PercentComplete, entity, e.Seen, payload)
	}

	results := p.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range events {
		var isNew bool
		if err := results.QueryRow().Scan(&isNew); err != nil {
			return inserted, err
		}
		if isNew {
			inserted++
		}
	}
	return inserted, results.Close()
}

// RecentEvents returns up to limit archived events, most recent first.
func (p *PostgresStore) RecentEvents(ctx context.Context, limit int) ([]models.Event, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT payload
		FROM account_events
		ORDER BY created DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Event, error) {
		var e models.Event
		var payload []byte
		if err := row.Scan(&payload); err != nil {
			return e, err
		}
		return e, json.Unmarshal(payload, &e)
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// MarkSeen flags archived events up to and including maxID as seen and
// returns how many rows changed.
func (p *PostgresStore) MarkSeen(ctx context.Context, maxID int64) (int64, error) {
	tag, err := p.pool.Exec(ctx, `
		UPDATE account_events
		SET seen = TRUE,
		    payload = jsonb_set(payload, '{seen}', 'true'),
		    updated_at = now()
		WHERE id <= $1 AND NOT seen
	`, maxID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
