package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"log/slog"

	"leadbot/internal/domain"
	"leadbot/internal/logger"
)

// LeadRepo persists leads in the SQLite store.
type LeadRepo struct {
	db *sqlx.DB
}

// NewLeadRepo wraps an open database handle.
func NewLeadRepo(db *sqlx.DB) *LeadRepo {
	return &LeadRepo{db: db}
}

// Insert appends a lead record and returns its id. The creation timestamp is
// assigned here; callers never supply it.
func (r *LeadRepo) Insert(ctx context.Context, lead domain.Lead) (int64, error) {
	createdAt := time.Now().UTC()

	start := time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO leads (name, phone, comment, created_at) VALUES (?, ?, ?, ?)`,
		lead.Name, lead.Phone, lead.Comment, createdAt,
	)
	if err != nil {
		logger.DB.Error("lead insert failed",
			slog.String("event", "lead.insert"),
			slog.String("status", "fail"),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("insert lead: %w: %v", domain.ErrStorageUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert lead id: %w: %v", domain.ErrStorageUnavailable, err)
	}

	logger.DB.Debug("lead inserted",
		slog.String("event", "lead.insert"),
		slog.String("status", "ok"),
		slog.Int64("lead_id", id),
		slog.Duration("duration", logger.Took(start)),
	)
	return id, nil
}

// ListRecent returns up to limit leads, newest first. The id acts as a
// tiebreaker for records created within the same instant.
func (r *LeadRepo) ListRecent(ctx context.Context, limit int) ([]domain.Lead, error) {
	if limit <= 0 {
		return []domain.Lead{}, nil
	}

	leads := []domain.Lead{}
	err := r.db.SelectContext(ctx, &leads,
		`SELECT id, name, phone, comment, created_at
		   FROM leads
		  ORDER BY created_at DESC, id DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		logger.DB.Error("lead listing failed",
			slog.String("event", "lead.list"),
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("list leads: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return leads, nil
}
