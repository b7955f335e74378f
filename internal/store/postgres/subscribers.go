package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/zainmh-10/CreateAILab/internal/db"
	"github.com/zainmh-10/CreateAILab/internal/domain"
)

type SubscriberRepository struct {
	base
}

// Upsert inserts s or, when the email already exists, refreshes its source and tags.
func (r *SubscriberRepository) Upsert(ctx context.Context, s *domain.Subscriber) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	err = conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"source", "tags", "updatedAt"}),
	}).Create(s).Error
	if err != nil {
		return fmt.Errorf("upsert subscriber: %w", db.Classify(err))
	}
	return nil
}

