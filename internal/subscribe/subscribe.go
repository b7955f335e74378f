// Package subscribe captures newsletter leads from the public sign-up form:
// validate, filter bots, rate limit per IP and per email, upsert the
// subscriber, then optionally send the newsletter.
package subscribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/logger"
	"github.com/zainmh-10/CreateAILab/internal/metrics"
	"github.com/zainmh-10/CreateAILab/internal/ratelimit"
)

const (
	DefaultSource  = "unknown"
	DefaultTag     = "lead"
	DefaultMinFill = 1200 * time.Millisecond
)

type Store interface {
	Upsert(ctx context.Context, s *domain.Subscriber) error
}

type Mailer interface {
	SendNewsletter(ctx context.Context, to string) error
}

// Policies are the two rate-limit axes.
type Policies struct {
	IP    ratelimit.Policy
	Email ratelimit.Policy
}

func DefaultPolicies() Policies {
	return Policies{
		IP:    ratelimit.Policy{Name: "subscribe_ip", Limit: 5, Window: 10 * time.Minute},
		Email: ratelimit.Policy{Name: "subscribe_email", Limit: 3, Window: 24 * time.Hour},
	}
}

type Options struct {
	Policies    Policies
	MinFillTime time.Duration
	Now         func() time.Time // defaults to time.Now
}

// Outcome labels how a request ended. Suppressed requests look like
// successes to the caller.
type Outcome string

const (
	OutcomeSubscribed  Outcome = "subscribed"
	OutcomeSuppressed  Outcome = "suppressed"
	OutcomeInvalid     Outcome = "invalid"
	OutcomeRateLimited Outcome = "rate_limited"
	OutcomeStoreFailed Outcome = "store_failed"
	OutcomeEmailFailed Outcome = "email_failed"
)

type Service struct {
	store   Store
	limiter ratelimit.Limiter // nil => rate limiting skipped
	mailer  Mailer            // nil => no email
	opts    Options
	log     logger.Logger
}

func NewService(store Store, limiter ratelimit.Limiter, mailer Mailer, opts Options, log logger.Logger) *Service {
	if opts.Policies == (Policies{}) {
		opts.Policies = DefaultPolicies()
	}
	if opts.MinFillTime <= 0 {
		opts.MinFillTime = DefaultMinFill
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:   store,
		limiter: limiter,
		mailer:  mailer,
		opts:    opts,
		log:     log.With(logger.String("component", "subscribe")),
	}
}

// Subscribe runs one sign-up. The returned error wraps domain.ErrValidation,
// domain.ErrRateLimited or domain.ErrDispatchFailed, or is a storage error.
func (s *Service) Subscribe(ctx context.Context, req Request, c Client) (Outcome, error) {
	outcome, err := s.subscribe(ctx, req, c)
	metrics.ObserveSubscribe(string(outcome))
	return outcome, err
}

func (s *Service) subscribe(ctx context.Context, req Request, c Client) (Outcome, error) {
	in, err := req.validate()
	if err != nil {
		return OutcomeInvalid, err
	}

	if reason := s.botReason(in, c); reason != "" {
		s.log.Info("subscription suppressed",
			logger.String("reason", reason),
			logger.String("remote_ip", c.IP))
		return OutcomeSuppressed, nil
	}

	if err := s.checkLimits(ctx, in, c); err != nil {
		return OutcomeRateLimited, err
	}

	source := in.source
	if source == "" {
		source = DefaultSource
	}
	sub := &domain.Subscriber{
		Email:  in.email,
		Source: source,
		Tags:   pq.StringArray{DefaultTag},
	}
	if err := s.store.Upsert(ctx, sub); err != nil {
		s.log.Error("subscriber upsert failed", logger.Error(err))
		return OutcomeStoreFailed, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendNewsletter(ctx, in.email); err != nil {
			s.log.Warn("newsletter send failed", logger.Error(err))
			if !errors.Is(err, domain.ErrDispatchFailed) {
				err = fmt.Errorf("%w: %v", domain.ErrDispatchFailed, err)
			}
			return OutcomeEmailFailed, err
		}
	}

	s.log.Info("subscriber captured", logger.String("source", source))
	return OutcomeSubscribed, nil
}

func (s *Service) botReason(in input, c Client) string {
	switch {
	case in.honeypot != "":
		return "honeypot"
	case likelyBot(c.UserAgent):
		return "user_agent"
	case in.startedAt > 0 && s.opts.Now().UnixMilli()-in.startedAt < s.opts.MinFillTime.Milliseconds():
		return "fill_time"
	}
	return ""
}

// checkLimits consults the IP counter, then the email counter. A backend
// error lets the request through.
func (s *Service) checkLimits(ctx context.Context, in input, c Client) error {
	if s.limiter == nil {
		return nil
	}
	checks := []struct {
		key    string
		policy ratelimit.Policy
	}{
		{"subscribe:ip:" + c.IP, s.opts.Policies.IP},
		{"subscribe:email:" + strings.ToLower(in.email), s.opts.Policies.Email},
	}
	for _, chk := range checks {
		res, err := s.limiter.Allow(ctx, chk.key, chk.policy)
		if err != nil {
			s.log.Warn("rate limiter unavailable, allowing request",
				logger.String("policy", chk.policy.Name),
				logger.Error(err))
			continue
		}
		if !res.Allowed {
			metrics.IncRateLimitRejection(chk.policy.Name)
			return fmt.Errorf("%w: %s", domain.ErrRateLimited, chk.policy.Name)
		}
	}
	return nil
}
