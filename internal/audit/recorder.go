// Package audit persists one row per privileged admin mutation attempt.
//
// Writes never fail the caller: errors are logged as admin_audit_failed and
// counted. The backing table is created lazily on first use.
package audit

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/logger"
	"github.com/zainmh-10/CreateAILab/internal/metrics"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS "AdminAuditLog" (
  id BIGSERIAL PRIMARY KEY,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  user_id TEXT NOT NULL,
  action TEXT NOT NULL,
  entity TEXT NOT NULL,
  target_id TEXT,
  status TEXT NOT NULL,
  message TEXT,
  meta JSONB
)`

const insertSQL = `INSERT INTO "AdminAuditLog" (user_id, action, entity, target_id, status, message, meta)
VALUES (?, ?, ?, ?, ?, ?, ?::jsonb)`

// ErrTableMissing is returned by queries before the first audit row was ever written.
var ErrTableMissing = errors.New("audit table not found")

type Recorder struct {
	db       *gorm.DB
	log      logger.Logger
	disabled bool
	ready    atomic.Bool
}

// NewRecorder builds a recorder. A nil db or disabled=true turns Record into a no-op.
func NewRecorder(db *gorm.DB, disabled bool, log logger.Logger) *Recorder {
	return &Recorder{db: db, log: log, disabled: disabled}
}

// Enabled reports whether Record will attempt to write.
func (r *Recorder) Enabled() bool {
	return !r.disabled && r.db != nil
}

// Record appends e. It never returns an error.
func (r *Recorder) Record(ctx context.Context, e domain.AuditEntry) {
	if r.disabled {
		return
	}
	if r.db == nil {
		r.log.Debug("audit skipped, no database", logger.String("entity", string(e.Entity)))
		return
	}

	if err := r.write(ctx, e); err != nil {
		metrics.IncAuditFailure()
		r.log.Error("admin_audit_failed",
			logger.String("user_id", e.UserID),
			logger.String("action", string(e.Action)),
			logger.String("entity", string(e.Entity)),
			logger.Error(err),
		)
	}
}

func (r *Recorder) write(ctx context.Context, e domain.AuditEntry) error {
	conn := r.db.WithContext(ctx)
	if err := r.ensureTable(conn); err != nil {
		return err
	}

	meta := datatypes.JSONMap(e.Meta)
	if meta == nil {
		meta = datatypes.JSONMap{}
	}
	return conn.Exec(insertSQL,
		e.UserID, string(e.Action), string(e.Entity), e.TargetID, string(e.Status), e.Message, meta,
	).Error
}

// ensureTable runs the idempotent DDL until it succeeds once. Concurrent first
// callers may all run it.
func (r *Recorder) ensureTable(conn *gorm.DB) error {
	if r.ready.Load() {
		return nil
	}
	if err := conn.Exec(createTableSQL).Error; err != nil {
		return err
	}
	r.ready.Store(true)
	return nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	return strings.Contains(err.Error(), "does not exist")
}
