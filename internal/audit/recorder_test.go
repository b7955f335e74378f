package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/logger"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"empty", "", 50},
		{"garbage", "abc", 50},
		{"zero", "0", 50},
		{"negative", "-3", 50},
		{"in range", "10", 10},
		{"upper bound", "200", 200},
		{"above bound", "201", 50},
		{"fraction floors", "12.9", 12},
		{"whitespace", " 25 ", 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLimit(tt.raw))
		})
	}
}

func TestRecordDisabledIsNoop(t *testing.T) {
	r := NewRecorder(nil, true, logger.NewNop())
	assert.False(t, r.Enabled())

	// Must not panic or block without a database.
	r.Record(context.Background(), domain.AuditEntry{UserID: "u1", Action: domain.VerbCreate, Entity: domain.EntityTool})
	assert.False(t, r.ready.Load())
}

func TestRecordWithoutDatabaseIsNoop(t *testing.T) {
	r := NewRecorder(nil, false, logger.NewNop())
	assert.False(t, r.Enabled())
	r.Record(context.Background(), domain.AuditEntry{UserID: "u1"})
}

// closedDB returns a gorm handle whose pool is already closed, so every
// statement fails without a server.
func closedDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=x dbname=x sslmode=disable"), &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return gdb
}

func auditFailures(t *testing.T) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "creatorailab_audit_failures_total" {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatal("creatorailab_audit_failures_total not registered")
	return 0
}

func TestRecordSwallowsWriteFailure(t *testing.T) {
	r := NewRecorder(closedDB(t), false, logger.NewNop())
	require.True(t, r.Enabled())
	before := auditFailures(t)

	msg := "Record not found"
	assert.NotPanics(t, func() {
		r.Record(context.Background(), domain.AuditEntry{
			UserID: "user_admin", Action: domain.VerbDelete, Entity: domain.EntityTool,
			Status: domain.AuditError, Message: &msg,
		})
	})

	assert.Equal(t, before+1, auditFailures(t))
	assert.False(t, r.ready.Load(), "a failed DDL leaves the latch open")

	r.Record(context.Background(), domain.AuditEntry{UserID: "user_admin", Action: domain.VerbCreate, Entity: domain.EntityTool})
	assert.Equal(t, before+2, auditFailures(t))
}

func TestListWithoutDatabase(t *testing.T) {
	r := NewRecorder(nil, false, logger.NewNop())

	_, err := r.List(context.Background(), Filter{})
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)

	facets, err := r.Facets(context.Background())
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Empty(t, facets.Entities)
}

func TestIsUndefinedTable(t *testing.T) {
	assert.True(t, isUndefinedTable(&pgconn.PgError{Code: "42P01"}))
	assert.True(t, isUndefinedTable(errors.New(`relation "AdminAuditLog" does not exist`)))
	assert.False(t, isUndefinedTable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUndefinedTable(errors.New("connection refused")))
}

func TestDistinctSkipsEmptyAndDuplicates(t *testing.T) {
	rows := []facetRow{
		{Entity: "tool", Action: "create", Status: "success"},
		{Entity: "tool", Action: "delete", Status: "error"},
		{Entity: "", Action: "create", Status: "success"},
		{Entity: "prompt", Action: "update", Status: "success"},
	}
	assert.Equal(t, []string{"tool", "prompt"}, distinct(rows, func(r facetRow) string { return r.Entity }))
	assert.Equal(t, []string{"create", "delete", "update"}, distinct(rows, func(r facetRow) string { return r.Action }))
}
