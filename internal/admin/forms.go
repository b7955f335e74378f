package admin

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/zainmh-10/CreateAILab/internal/domain"
)

// ToolInput is the normalized tool form.
type ToolInput struct {
	Name           string
	Slug           string
	Description    string
	Category       domain.ToolCategory
	PricingType    domain.PricingType
	PricingDetails *string
	Pros           []string
	Cons           []string
	BestFor        *string
	AffiliateURL   string
	Featured       bool
}

type WorkflowInput struct {
	Title         string
	Slug          string
	Summary       string
	Content       string
	FeaturedImage *string
	ToolSlugs     []string
}

type PromptInput struct {
	Title    string
	Category string
	Content  string
	Gated    bool
}

type ComparisonInput struct {
	Title     string
	Slug      string
	Verdict   string
	Content   string
	ToolSlugs []string
}

func DecodeTool(form url.Values) (ToolInput, error) {
	in := ToolInput{
		Name:           field(form, "name"),
		Slug:           field(form, "slug"),
		Description:    field(form, "description"),
		Category:       domain.ParseToolCategory(form.Get("category")),
		PricingType:    domain.ParsePricingType(form.Get("pricingType")),
		PricingDetails: optional(form, "pricingDetails"),
		Pros:           splitList(form.Get("pros")),
		Cons:           splitList(form.Get("cons")),
		BestFor:        optional(form, "bestFor"),
		AffiliateURL:   field(form, "affiliateUrl"),
		Featured:       checkbox(form, "featured"),
	}
	return in, checkSlug(in.Slug)
}

func DecodeWorkflow(form url.Values) (WorkflowInput, error) {
	in := WorkflowInput{
		Title:         field(form, "title"),
		Slug:          field(form, "slug"),
		Summary:       field(form, "summary"),
		Content:       field(form, "content"),
		FeaturedImage: optional(form, "featuredImage"),
		ToolSlugs:     splitList(form.Get("toolSlugs")),
	}
	return in, checkSlug(in.Slug)
}

func DecodePrompt(form url.Values) (PromptInput, error) {
	return PromptInput{
		Title:    field(form, "title"),
		Category: field(form, "category"),
		Content:  field(form, "content"),
		Gated:    checkbox(form, "gated"),
	}, nil
}

func DecodeComparison(form url.Values) (ComparisonInput, error) {
	in := ComparisonInput{
		Title:     field(form, "title"),
		Slug:      field(form, "slug"),
		Verdict:   field(form, "verdict"),
		Content:   field(form, "content"),
		ToolSlugs: splitList(form.Get("toolSlugs")),
	}
	return in, checkSlug(in.Slug)
}

func field(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

// optional returns nil for a blank value.
func optional(form url.Values, key string) *string {
	v := field(form, key)
	if v == "" {
		return nil
	}
	return &v
}

// checkbox follows HTML form semantics: a checked box submits "on".
func checkbox(form url.Values, key string) bool {
	return form.Get(key) == "on"
}

// splitList turns "a, b,,c " into [a b c].
func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func checkSlug(slug string) error {
	if !domain.ValidSlug(slug) {
		return fmt.Errorf("%w: slug must match ^[a-z0-9-]+$", domain.ErrValidation)
	}
	return nil
}
