// Package admin runs privileged content mutations: authorize, validate,
// mutate, audit, invalidate cached pages, and report the outcome as a
// redirect target for the admin page.
package admin

import (
	"context"
	"net/url"
	"strings"

	"github.com/zainmh-10/CreateAILab/internal/auth"
	"github.com/zainmh-10/CreateAILab/internal/cache"
	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/logger"
	"github.com/zainmh-10/CreateAILab/internal/metrics"
)

// Auditor appends audit rows. It must not fail the caller.
type Auditor interface {
	Record(ctx context.Context, e domain.AuditEntry)
}

// Result is the outcome of one admin action.
type Result struct {
	Status  domain.AuditStatus
	Action  string
	Message string
}

// Location is the admin page URL carrying the outcome.
func (r Result) Location() string {
	var b strings.Builder
	b.WriteString("/admin?status=")
	b.WriteString(url.QueryEscape(string(r.Status)))
	b.WriteString("&action=")
	b.WriteString(url.QueryEscape(r.Action))
	if r.Message != "" {
		b.WriteString("&message=")
		b.WriteString(url.QueryEscape(r.Message))
	}
	return b.String()
}

// Descriptor binds one entity to its decoder and repository calls.
// Create returns the new id; Create and Update may return audit meta.
// Delete returns the slug of the removed row, or "".
type Descriptor[In any] struct {
	Entity domain.Entity
	Decode func(url.Values) (In, error)
	Create func(ctx context.Context, in In) (id string, meta map[string]any, err error)
	Update func(ctx context.Context, id string, in In) (meta map[string]any, err error)
	Delete func(ctx context.Context, id string) (slug string, err error)
	// Slug is the public slug affected by in, or "".
	Slug func(in In) string
}

// Runner executes any verb for one entity.
type Runner interface {
	Entity() domain.Entity
	Run(ctx context.Context, verb domain.Verb, form url.Values) Result
}

type action[In any] struct {
	d     Descriptor[In]
	audit Auditor
	pages cache.Pages
	log   logger.Logger
}

func newAction[In any](d Descriptor[In], audit Auditor, pages cache.Pages, log logger.Logger) *action[In] {
	return &action[In]{d: d, audit: audit, pages: pages, log: log}
}

func (a *action[In]) Entity() domain.Entity { return a.d.Entity }

// Run executes verb. Once started it runs to completion: the mutation, its
// audit row and the invalidation do not observe cancellation of ctx.
func (a *action[In]) Run(ctx context.Context, verb domain.Verb, form url.Values) Result {
	ctx = context.WithoutCancel(ctx)
	name := domain.ActionName(verb, a.d.Entity)
	id := strings.TrimSpace(form.Get("id"))

	actor, err := auth.RequireAdmin(ctx)
	if err != nil {
		// Denied attempts are audited when the caller is known.
		if caller, ok := auth.FromContext(ctx); ok {
			actor = caller.UserID
		}
		return a.fail(ctx, verb, name, actor, id, err)
	}

	targetID, meta, slug, err := a.mutate(ctx, verb, id, form)
	if err != nil {
		return a.fail(ctx, verb, name, actor, id, err)
	}

	a.audit.Record(ctx, domain.AuditEntry{
		UserID:   actor,
		Action:   verb,
		Entity:   a.d.Entity,
		TargetID: strPtr(targetID),
		Status:   domain.AuditSuccess,
		Meta:     meta,
	})
	a.invalidate(ctx, slug)

	metrics.ObserveAdminMutation(name, string(domain.AuditSuccess))
	a.log.Info("admin action",
		logger.String("action", name),
		logger.String("user_id", actor),
		logger.String("target_id", targetID))

	return Result{Status: domain.AuditSuccess, Action: name}
}

func (a *action[In]) mutate(ctx context.Context, verb domain.Verb, id string, form url.Values) (targetID string, meta map[string]any, slug string, err error) {
	if verb != domain.VerbCreate && id == "" {
		return "", nil, "", MissingIDError{Entity: a.d.Entity}
	}

	if verb == domain.VerbDelete {
		slug, err = a.d.Delete(ctx, id)
		return id, nil, slug, err
	}

	in, err := a.d.Decode(form)
	if err != nil {
		return "", nil, "", err
	}
	if a.d.Slug != nil {
		slug = a.d.Slug(in)
	}

	switch verb {
	case domain.VerbCreate:
		targetID, meta, err = a.d.Create(ctx, in)
	case domain.VerbUpdate:
		targetID = id
		meta, err = a.d.Update(ctx, id, in)
	default:
		err = domain.ErrValidation
	}
	return targetID, meta, slug, err
}

func (a *action[In]) fail(ctx context.Context, verb domain.Verb, name, actor, id string, err error) Result {
	msg := errorMessage(err)
	if actor != "" {
		var target *string
		if verb != domain.VerbCreate {
			target = strPtr(id)
		}
		a.audit.Record(ctx, domain.AuditEntry{
			UserID:   actor,
			Action:   verb,
			Entity:   a.d.Entity,
			TargetID: target,
			Status:   domain.AuditError,
			Message:  &msg,
		})
	}

	metrics.ObserveAdminMutation(name, string(domain.AuditError))
	a.log.Warn("admin action failed",
		logger.String("action", name),
		logger.String("user_id", actor),
		logger.Error(err))

	return Result{Status: domain.AuditError, Action: name, Message: msg}
}

// invalidate drops the cached listing pages and, when known, the detail pages for slug.
func (a *action[In]) invalidate(ctx context.Context, slug string) {
	if err := a.pages.Invalidate(ctx, InvalidationPaths(slug)...); err != nil {
		a.log.Warn("page cache invalidation failed", logger.Error(err))
	}
}

// InvalidationPaths lists the public pages an admin write can change.
func InvalidationPaths(slug string) []string {
	paths := []string{"/admin", "/tools", "/workflows", "/prompts"}
	if slug != "" {
		paths = append(paths, "/tools/"+slug, "/workflows/"+slug, "/compare/"+slug)
	}
	return paths
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
