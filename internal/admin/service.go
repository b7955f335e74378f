package admin

import (
	"context"
	"net/url"

	"github.com/zainmh-10/CreateAILab/internal/cache"
	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/logger"
)

// Stores are the repositories the admin surface writes to.
type Stores struct {
	Tools       ToolStore
	Workflows   WorkflowStore
	Prompts     PromptStore
	Comparisons ComparisonStore
}

// Service dispatches admin actions by route segment ("tools", "workflows", ...).
type Service struct {
	runners map[string]Runner
}

func NewService(s Stores, audit Auditor, pages cache.Pages, log logger.Logger) *Service {
	if pages == nil {
		pages = cache.Noop{}
	}
	log = log.With(logger.String("component", "admin"))
	return &Service{runners: map[string]Runner{
		"tools":       newAction(ToolDescriptor(s.Tools), audit, pages, log),
		"workflows":   newAction(WorkflowDescriptor(s.Workflows, s.Tools), audit, pages, log),
		"prompts":     newAction(PromptDescriptor(s.Prompts), audit, pages, log),
		"comparisons": newAction(ComparisonDescriptor(s.Comparisons, s.Tools), audit, pages, log),
	}}
}

// ParseVerb maps a route segment onto a verb.
func ParseVerb(raw string) (domain.Verb, bool) {
	switch v := domain.Verb(raw); v {
	case domain.VerbCreate, domain.VerbUpdate, domain.VerbDelete:
		return v, true
	}
	return "", false
}

// Run executes verb on the entity named by segment. ok is false for an
// unknown entity or verb.
func (s *Service) Run(ctx context.Context, segment, rawVerb string, form url.Values) (Result, bool) {
	runner, ok := s.runners[segment]
	if !ok {
		return Result{}, false
	}
	verb, ok := ParseVerb(rawVerb)
	if !ok {
		return Result{}, false
	}
	return runner.Run(ctx, verb, form), true
}
