//go:build integration

package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/logger"
	"github.com/zainmh-10/CreateAILab/internal/testutil/containers"
)

type RecorderSuite struct {
	suite.Suite
	pg *containers.PostgresContainer
}

func TestRecorderSuite(t *testing.T) {
	suite.Run(t, new(RecorderSuite))
}

func (s *RecorderSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
}

func (s *RecorderSuite) SetupTest() {
	s.Require().NoError(s.pg.DB.Exec(`DROP TABLE IF EXISTS "AdminAuditLog"`).Error)
}

func (s *RecorderSuite) TestListBeforeFirstWrite() {
	r := NewRecorder(s.pg.DB, false, logger.NewNop())
	_, err := r.List(context.Background(), Filter{})
	s.ErrorIs(err, ErrTableMissing)
}

func (s *RecorderSuite) TestRecordCreatesTableAndRoundTrips() {
	ctx := context.Background()
	r := NewRecorder(s.pg.DB, false, logger.NewNop())

	target := "tool-1"
	msg := "Missing tool id"
	r.Record(ctx, domain.AuditEntry{
		UserID: "admin-1", Action: domain.VerbCreate, Entity: domain.EntityTool,
		Status: domain.AuditSuccess, Meta: map[string]any{"slug": "zoom-ai"},
	})
	r.Record(ctx, domain.AuditEntry{
		UserID: "admin-1", Action: domain.VerbDelete, Entity: domain.EntityTool,
		TargetID: &target, Status: domain.AuditError, Message: &msg,
	})

	rows, err := r.List(ctx, Filter{})
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(domain.VerbDelete, rows[0].Action, "newest first")
	s.Equal("tool-1", *rows[0].TargetID)
	s.Empty(rows[0].Meta)
	s.Equal("zoom-ai", rows[1].Meta["slug"])

	rows, err = r.List(ctx, Filter{Status: "error"})
	s.Require().NoError(err)
	s.Len(rows, 1)

	facets, err := r.Facets(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"tool"}, facets.Entities)
	s.ElementsMatch([]string{"create", "delete"}, facets.Actions)
}

func (s *RecorderSuite) TestConcurrentFirstWrites() {
	ctx := context.Background()
	r := NewRecorder(s.pg.DB, false, logger.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Record(ctx, domain.AuditEntry{UserID: "admin", Action: domain.VerbUpdate, Entity: domain.EntityPrompt, Status: domain.AuditSuccess})
		}()
	}
	wg.Wait()

	// Racing CREATE TABLE IF NOT EXISTS statements can lose a row; the latch must still be set.
	rows, err := r.List(ctx, Filter{Limit: 200})
	require.NoError(s.T(), err)
	s.NotEmpty(rows)
	s.True(r.ready.Load())
}
