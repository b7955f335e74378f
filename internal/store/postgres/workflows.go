package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/zainmh-10/CreateAILab/internal/db"
	"github.com/zainmh-10/CreateAILab/internal/domain"
)

var workflowColumns = []string{"title", "slug", "summary", "content", "featuredImage", "updatedAt"}

type WorkflowRepository struct {
	base
}

// Create inserts w and links it to toolIDs in one transaction.
func (r *WorkflowRepository) Create(ctx context.Context, w *domain.Workflow, toolIDs []string) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ToolsUsed").Create(w).Error; err != nil {
			return err
		}
		return replaceTools(tx, w, "ToolsUsed", toolIDs)
	})
	if err != nil {
		return fmt.Errorf("create workflow: %w", db.Classify(err))
	}
	return nil
}

// Update overwrites the scalar fields of workflow id and replaces its tool set.
func (r *WorkflowRepository) Update(ctx context.Context, id string, w *domain.Workflow, toolIDs []string) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	err = conn.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Workflow{ID: id}).Select(workflowColumns).Updates(w)
		if err := expectOne(res); err != nil {
			return err
		}
		w.ID = id
		return replaceTools(tx, w, "ToolsUsed", toolIDs)
	})
	if err != nil {
		return fmt.Errorf("update workflow %s: %w", id, db.Classify(err))
	}
	return nil
}

// Delete unlinks the workflow's tools, removes it and returns its slug.
func (r *WorkflowRepository) Delete(ctx context.Context, id string) (string, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return "", err
	}
	var deleted domain.Workflow
	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Workflow{ID: id}).Association("ToolsUsed").Clear(); err != nil {
			return err
		}
		return expectOne(returningSlug(tx).Where("id = ?", id).Delete(&deleted))
	})
	if err != nil {
		return "", fmt.Errorf("delete workflow %s: %w", id, db.Classify(err))
	}
	return deleted.Slug, nil
}

func (r *WorkflowRepository) List(ctx context.Context) ([]domain.Workflow, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var workflows []domain.Workflow
	if err := conn.Order(`"createdAt" DESC`).Find(&workflows).Error; err != nil {
		return nil, fmt.Errorf("list workflows: %w", db.Classify(err))
	}
	return workflows, nil
}

// BySlug loads one workflow with the tools it uses.
func (r *WorkflowRepository) BySlug(ctx context.Context, slug string) (*domain.Workflow, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var w domain.Workflow
	if err := conn.Preload("ToolsUsed").Where("slug = ?", slug).First(&w).Error; err != nil {
		return nil, fmt.Errorf("get workflow %s: %w", slug, db.Classify(err))
	}
	return &w, nil
}

// replaceTools swaps the many-to-many tool set of owner for the tools in ids.
// Ids that no longer exist are skipped.
func replaceTools(tx *gorm.DB, owner any, field string, ids []string) error {
	tools := []domain.Tool{}
	if len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Find(&tools).Error; err != nil {
			return err
		}
	}
	err := tx.Model(owner).Association(field).Replace(tools)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
