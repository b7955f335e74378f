package postgres

import (
	"context"
	"fmt"

	"github.com/zainmh-10/CreateAILab/internal/db"
	"github.com/zainmh-10/CreateAILab/internal/domain"
)

var promptColumns = []string{"title", "category", "content", "gated", "updatedAt"}

type PromptRepository struct {
	base
}

func (r *PromptRepository) Create(ctx context.Context, p *domain.Prompt) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	if err := conn.Create(p).Error; err != nil {
		return fmt.Errorf("create prompt: %w", db.Classify(err))
	}
	return nil
}

func (r *PromptRepository) Update(ctx context.Context, id string, p *domain.Prompt) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	if err := expectOne(conn.Model(&domain.Prompt{ID: id}).Select(promptColumns).Updates(p)); err != nil {
		return fmt.Errorf("update prompt %s: %w", id, err)
	}
	p.ID = id
	return nil
}

func (r *PromptRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	if err := expectOne(conn.Delete(&domain.Prompt{}, "id = ?", id)); err != nil {
		return fmt.Errorf("delete prompt %s: %w", id, err)
	}
	return nil
}

func (r *PromptRepository) List(ctx context.Context) ([]domain.Prompt, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var prompts []domain.Prompt
	if err := conn.Order(`"createdAt" DESC`).Find(&prompts).Error; err != nil {
		return nil, fmt.Errorf("list prompts: %w", db.Classify(err))
	}
	return prompts, nil
}
