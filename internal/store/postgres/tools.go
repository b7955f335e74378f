package postgres

import (
	"context"
	"fmt"

	"github.com/zainmh-10/CreateAILab/internal/db"
	"github.com/zainmh-10/CreateAILab/internal/domain"
)

// toolColumns are the columns written on update. Listing them keeps zero values
// (featured=false, empty pros) from being skipped by gorm.
var toolColumns = []string{
	"name", "slug", "description", "category", "pricingType", "pricingDetails",
	"pros", "cons", "bestFor", "affiliateUrl", "featured", "updatedAt",
}

type ToolRepository struct {
	base
}

func (r *ToolRepository) Create(ctx context.Context, t *domain.Tool) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	if err := conn.Create(t).Error; err != nil {
		return fmt.Errorf("create tool: %w", db.Classify(err))
	}
	return nil
}

func (r *ToolRepository) Update(ctx context.Context, id string, t *domain.Tool) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	res := conn.Model(&domain.Tool{ID: id}).Select(toolColumns).Updates(t)
	if err := expectOne(res); err != nil {
		return fmt.Errorf("update tool %s: %w", id, err)
	}
	t.ID = id
	return nil
}

// Delete removes the tool and returns its slug.
func (r *ToolRepository) Delete(ctx context.Context, id string) (string, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return "", err
	}
	var deleted domain.Tool
	if err := expectOne(returningSlug(conn).Where("id = ?", id).Delete(&deleted)); err != nil {
		return "", fmt.Errorf("delete tool %s: %w", id, err)
	}
	return deleted.Slug, nil
}

// BySlugs returns the tools whose slug is in slugs. Unknown slugs are ignored.
func (r *ToolRepository) BySlugs(ctx context.Context, slugs []string) ([]domain.Tool, error) {
	if len(slugs) == 0 {
		return []domain.Tool{}, nil
	}
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var tools []domain.Tool
	if err := conn.Where("slug IN ?", slugs).Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("find tools by slug: %w", db.Classify(err))
	}
	return tools, nil
}

// List returns all tools, featured first.
func (r *ToolRepository) List(ctx context.Context) ([]domain.Tool, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var tools []domain.Tool
	if err := conn.Order(`"featured" DESC`).Order(`"name" ASC`).Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("list tools: %w", db.Classify(err))
	}
	return tools, nil
}

func (r *ToolRepository) BySlug(ctx context.Context, slug string) (*domain.Tool, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var tool domain.Tool
	if err := conn.Where("slug = ?", slug).First(&tool).Error; err != nil {
		return nil, fmt.Errorf("get tool %s: %w", slug, db.Classify(err))
	}
	return &tool, nil
}

func (r *ToolRepository) Featured(ctx context.Context, limit int) ([]domain.Tool, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var tools []domain.Tool
	if err := conn.Where("featured = ?", true).Limit(limit).Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("list featured tools: %w", db.Classify(err))
	}
	return tools, nil
}

// IDsBySlugs resolves slugs to tool ids. Unknown slugs are dropped; the
// result follows the order of slugs.
func (r *ToolRepository) IDsBySlugs(ctx context.Context, slugs []string) ([]string, error) {
	tools, err := r.BySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]string, len(tools))
	for _, t := range tools {
		bySlug[t.Slug] = t.ID
	}
	ids := make([]string, 0, len(tools))
	seen := make(map[string]struct{}, len(tools))
	for _, s := range slugs {
		id, ok := bySlug[s]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
