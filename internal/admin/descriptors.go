package admin

import (
	"context"

	"github.com/lib/pq"

	"github.com/zainmh-10/CreateAILab/internal/domain"
)

type ToolStore interface {
	Create(ctx context.Context, t *domain.Tool) error
	Update(ctx context.Context, id string, t *domain.Tool) error
	Delete(ctx context.Context, id string) (slug string, err error)
	IDsBySlugs(ctx context.Context, slugs []string) ([]string, error)
}

type WorkflowStore interface {
	Create(ctx context.Context, w *domain.Workflow, toolIDs []string) error
	Update(ctx context.Context, id string, w *domain.Workflow, toolIDs []string) error
	Delete(ctx context.Context, id string) (slug string, err error)
}

type PromptStore interface {
	Create(ctx context.Context, p *domain.Prompt) error
	Update(ctx context.Context, id string, p *domain.Prompt) error
	Delete(ctx context.Context, id string) error
}

type ComparisonStore interface {
	Create(ctx context.Context, c *domain.Comparison, toolIDs []string) error
	Update(ctx context.Context, id string, c *domain.Comparison, toolIDs []string) error
	Delete(ctx context.Context, id string) (slug string, err error)
}

func slugMeta(slug string) map[string]any {
	return map[string]any{"slug": slug}
}

func ToolDescriptor(tools ToolStore) Descriptor[ToolInput] {
	build := func(in ToolInput) *domain.Tool {
		return &domain.Tool{
			Name:           in.Name,
			Slug:           in.Slug,
			Description:    in.Description,
			Category:       in.Category,
			PricingType:    in.PricingType,
			PricingDetails: in.PricingDetails,
			Pros:           pq.StringArray(in.Pros),
			Cons:           pq.StringArray(in.Cons),
			BestFor:        in.BestFor,
			AffiliateURL:   in.AffiliateURL,
			Featured:       in.Featured,
		}
	}
	return Descriptor[ToolInput]{
		Entity: domain.EntityTool,
		Decode: DecodeTool,
		Create: func(ctx context.Context, in ToolInput) (string, map[string]any, error) {
			t := build(in)
			if err := tools.Create(ctx, t); err != nil {
				return "", nil, err
			}
			return t.ID, slugMeta(t.Slug), nil
		},
		Update: func(ctx context.Context, id string, in ToolInput) (map[string]any, error) {
			if err := tools.Update(ctx, id, build(in)); err != nil {
				return nil, err
			}
			return slugMeta(in.Slug), nil
		},
		Delete: tools.Delete,
		Slug:   func(in ToolInput) string { return in.Slug },
	}
}

// WorkflowDescriptor resolves toolSlugs through tools; unknown slugs are dropped.
func WorkflowDescriptor(workflows WorkflowStore, tools ToolStore) Descriptor[WorkflowInput] {
	build := func(in WorkflowInput) *domain.Workflow {
		return &domain.Workflow{
			Title:         in.Title,
			Slug:          in.Slug,
			Summary:       in.Summary,
			Content:       in.Content,
			FeaturedImage: in.FeaturedImage,
		}
	}
	return Descriptor[WorkflowInput]{
		Entity: domain.EntityWorkflow,
		Decode: DecodeWorkflow,
		Create: func(ctx context.Context, in WorkflowInput) (string, map[string]any, error) {
			ids, err := tools.IDsBySlugs(ctx, in.ToolSlugs)
			if err != nil {
				return "", nil, err
			}
			w := build(in)
			if err := workflows.Create(ctx, w, ids); err != nil {
				return "", nil, err
			}
			return w.ID, slugMeta(w.Slug), nil
		},
		Update: func(ctx context.Context, id string, in WorkflowInput) (map[string]any, error) {
			ids, err := tools.IDsBySlugs(ctx, in.ToolSlugs)
			if err != nil {
				return nil, err
			}
			if err := workflows.Update(ctx, id, build(in), ids); err != nil {
				return nil, err
			}
			return slugMeta(in.Slug), nil
		},
		Delete: workflows.Delete,
		Slug:   func(in WorkflowInput) string { return in.Slug },
	}
}

// PromptDescriptor records the category on create and no meta on update.
func PromptDescriptor(prompts PromptStore) Descriptor[PromptInput] {
	build := func(in PromptInput) *domain.Prompt {
		return &domain.Prompt{Title: in.Title, Category: in.Category, Content: in.Content, Gated: in.Gated}
	}
	return Descriptor[PromptInput]{
		Entity: domain.EntityPrompt,
		Decode: DecodePrompt,
		Create: func(ctx context.Context, in PromptInput) (string, map[string]any, error) {
			p := build(in)
			if err := prompts.Create(ctx, p); err != nil {
				return "", nil, err
			}
			return p.ID, map[string]any{"category": p.Category}, nil
		},
		Update: func(ctx context.Context, id string, in PromptInput) (map[string]any, error) {
			return nil, prompts.Update(ctx, id, build(in))
		},
		Delete: func(ctx context.Context, id string) (string, error) {
			return "", prompts.Delete(ctx, id)
		},
	}
}

func ComparisonDescriptor(comparisons ComparisonStore, tools ToolStore) Descriptor[ComparisonInput] {
	build := func(in ComparisonInput) *domain.Comparison {
		return &domain.Comparison{Title: in.Title, Slug: in.Slug, Verdict: in.Verdict, Content: in.Content}
	}
	return Descriptor[ComparisonInput]{
		Entity: domain.EntityComparison,
		Decode: DecodeComparison,
		Create: func(ctx context.Context, in ComparisonInput) (string, map[string]any, error) {
			ids, err := tools.IDsBySlugs(ctx, in.ToolSlugs)
			if err != nil {
				return "", nil, err
			}
			c := build(in)
			if err := comparisons.Create(ctx, c, ids); err != nil {
				return "", nil, err
			}
			return c.ID, slugMeta(c.Slug), nil
		},
		Update: func(ctx context.Context, id string, in ComparisonInput) (map[string]any, error) {
			ids, err := tools.IDsBySlugs(ctx, in.ToolSlugs)
			if err != nil {
				return nil, err
			}
			if err := comparisons.Update(ctx, id, build(in), ids); err != nil {
				return nil, err
			}
			return slugMeta(in.Slug), nil
		},
		Delete: comparisons.Delete,
		Slug:   func(in ComparisonInput) string { return in.Slug },
	}
}
