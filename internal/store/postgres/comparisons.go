package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/zainmh-10/CreateAILab/internal/db"
	"github.com/zainmh-10/CreateAILab/internal/domain"
)

var comparisonColumns = []string{"title", "slug", "verdict", "content", "updatedAt"}

type ComparisonRepository struct {
	base
}

func (r *ComparisonRepository) Create(ctx context.Context, c *domain.Comparison, toolIDs []string) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tools").Create(c).Error; err != nil {
			return err
		}
		return replaceTools(tx, c, "Tools", toolIDs)
	})
	if err != nil {
		return fmt.Errorf("create comparison: %w", db.Classify(err))
	}
	return nil
}

func (r *ComparisonRepository) Update(ctx context.Context, id string, c *domain.Comparison, toolIDs []string) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	err = conn.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Comparison{ID: id}).Select(comparisonColumns).Updates(c)
		if err := expectOne(res); err != nil {
			return err
		}
		c.ID = id
		return replaceTools(tx, c, "Tools", toolIDs)
	})
	if err != nil {
		return fmt.Errorf("update comparison %s: %w", id, db.Classify(err))
	}
	return nil
}

// Delete unlinks the comparison's tools, removes it and returns its slug.
func (r *ComparisonRepository) Delete(ctx context.Context, id string) (string, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return "", err
	}
	var deleted domain.Comparison
	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Comparison{ID: id}).Association("Tools").Clear(); err != nil {
			return err
		}
		return expectOne(returningSlug(tx).Where("id = ?", id).Delete(&deleted))
	})
	if err != nil {
		return "", fmt.Errorf("delete comparison %s: %w", id, db.Classify(err))
	}
	return deleted.Slug, nil
}

func (r *ComparisonRepository) List(ctx context.Context) ([]domain.Comparison, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var comparisons []domain.Comparison
	if err := conn.Order(`"createdAt" DESC`).Find(&comparisons).Error; err != nil {
		return nil, fmt.Errorf("list comparisons: %w", db.Classify(err))
	}
	return comparisons, nil
}

func (r *ComparisonRepository) BySlug(ctx context.Context, slug string) (*domain.Comparison, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var c domain.Comparison
	if err := conn.Preload("Tools").Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, fmt.Errorf("get comparison %s: %w", slug, db.Classify(err))
	}
	return &c, nil
}
