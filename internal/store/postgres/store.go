package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zainmh-10/CreateAILab/internal/db"
	"github.com/zainmh-10/CreateAILab/internal/domain"
)

// Store groups the content repositories over one gorm handle.
// A nil handle is valid: every call then fails with domain.ErrStorageUnavailable.
type Store struct {
	db *gorm.DB

	Tools       *ToolRepository
	Workflows   *WorkflowRepository
	Prompts     *PromptRepository
	Comparisons *ComparisonRepository
	Subscribers *SubscriberRepository
}

// NewStore creates the repositories. conn may be nil when no database is configured.
func NewStore(conn *db.DB) *Store {
	var gdb *gorm.DB
	if conn != nil {
		gdb = conn.DB
	}
	b := base{db: gdb}
	return &Store{
		db:          gdb,
		Tools:       &ToolRepository{base: b},
		Workflows:   &WorkflowRepository{base: b},
		Prompts:     &PromptRepository{base: b},
		Comparisons: &ComparisonRepository{base: b},
		Subscribers: &SubscriberRepository{base: b},
	}
}

// Configured reports whether a database handle is present.
func (s *Store) Configured() bool { return s.db != nil }

type base struct {
	db *gorm.DB
}

func (b base) conn(ctx context.Context) (*gorm.DB, error) {
	if b.db == nil {
		return nil, domain.ErrStorageUnavailable
	}
	return b.db.WithContext(ctx), nil
}

// expectOne turns a zero-row mutation into ErrNotFound.
func expectOne(res *gorm.DB) error {
	if res.Error != nil {
		return db.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// returningSlug makes a delete scan the removed row's slug back into its model.
func returningSlug(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Returning{Columns: []clause.Column{{Name: "slug"}}})
}
