package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/zainmh-10/CreateAILab/internal/domain"
)

var ErrEmptyCatalog = errors.New("no valid tools found in catalog")

// DefaultNewsletterHook is used for entries without their own hook.
const DefaultNewsletterHook = "Use one focused workflow this week and track the quality lift."

// Map converts catalog entries into tools, in file order. Entries without a
// name or with an invalid affiliate URL are skipped; later duplicates of a
// slug are dropped.
func Map(f File) ([]domain.Tool, error) {
	now := time.Now()
	tools := make([]domain.Tool, 0, len(f.Tools))
	seen := make(map[string]struct{}, len(f.Tools))

	for _, e := range f.Tools {
		name := strings.TrimSpace(e.Name)
		if name == "" || !validURL(e.AffiliateURL) {
			continue
		}
		slug := strings.TrimSpace(e.Slug)
		if slug == "" {
			slug = domain.Slugify(name)
		}
		if !domain.ValidSlug(slug) {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}

		hook := strings.TrimSpace(e.NewsletterHook)
		if hook == "" {
			hook = DefaultNewsletterHook
		}

		tools = append(tools, domain.Tool{
			ID:             catalogID(slug),
			Name:           name,
			Slug:           slug,
			Description:    strings.TrimSpace(e.Description),
			Category:       domain.ParseToolCategory(e.Category),
			PricingType:    domain.ParsePricingType(e.PricingType),
			PricingDetails: optional(e.PricingDetails),
			Pros:           pq.StringArray(nonEmpty(e.Pros)),
			Cons:           pq.StringArray(nonEmpty(e.Cons)),
			BestFor:        optional(e.BestFor),
			AffiliateURL:   strings.TrimSpace(e.AffiliateURL),
			Featured:       e.Featured,
			CreatedAt:      now,
			UpdatedAt:      now,
			NewsletterHook: hook,
		})
	}

	if len(tools) == 0 {
		return nil, ErrEmptyCatalog
	}
	return tools, nil
}

// catalogID derives a stable id from the slug so catalog entries keep their
// identity across reloads.
func catalogID(slug string) string {
	sum := sha256.Sum256([]byte("catalog:" + slug))
	return "catalog-" + hex.EncodeToString(sum[:])[:16]
}

func validURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
