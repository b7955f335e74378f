//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"github.com/zainmh-10/CreateAILab/internal/db"
	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/store/postgres"
	"github.com/zainmh-10/CreateAILab/internal/testutil/containers"
)

type StoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *postgres.Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = postgres.NewStore(&db.DB{DB: s.pg.DB})
	s.ctx = context.Background()
}

func (s *StoreSuite) SetupTest() {
	for _, table := range []string{`"_ToolToWorkflow"`, `"_ComparisonToTool"`, `"Workflow"`, `"Comparison"`, `"Prompt"`, `"Subscriber"`, `"Tool"`} {
		s.Require().NoError(s.pg.DB.Exec("DELETE FROM " + table).Error)
	}
}

func (s *StoreSuite) tool(slug string, featured bool) *domain.Tool {
	t := &domain.Tool{
		Name:         slug,
		Slug:         slug,
		Description:  "d",
		Category:     domain.CategoryWriting,
		PricingType:  domain.PricingFreemium,
		Pros:         pq.StringArray{"fast"},
		Cons:         pq.StringArray{},
		AffiliateURL: "https://example.com/" + slug,
		Featured:     featured,
	}
	s.Require().NoError(s.store.Tools.Create(s.ctx, t))
	return t
}

func (s *StoreSuite) TestToolLifecycle() {
	t := s.tool("zoom-ai", true)
	s.NotEmpty(t.ID)

	t.Featured = false
	t.Pros = pq.StringArray{}
	s.Require().NoError(s.store.Tools.Update(s.ctx, t.ID, t))

	got, err := s.store.Tools.BySlug(s.ctx, "zoom-ai")
	s.Require().NoError(err)
	s.False(got.Featured, "zero values are written")
	s.Empty(got.Pros)

	slug, err := s.store.Tools.Delete(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal("zoom-ai", slug)
	_, err = s.store.Tools.Delete(s.ctx, t.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(s.store.Tools.Update(s.ctx, "missing", t), domain.ErrNotFound)
}

func (s *StoreSuite) TestDuplicateSlugIsConstraint() {
	s.tool("dup", false)
	err := s.store.Tools.Create(s.ctx, &domain.Tool{Name: "x", Slug: "dup", Category: domain.CategoryWriting, PricingType: domain.PricingFree})
	s.ErrorIs(err, domain.ErrConstraint)
}

func (s *StoreSuite) TestListAndFeatured() {
	s.tool("b-tool", false)
	s.tool("a-tool", true)

	all, err := s.store.Tools.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("a-tool", all[0].Slug, "featured first")

	featured, err := s.store.Tools.Featured(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(featured, 1)
}

func (s *StoreSuite) TestIDsBySlugsKeepsOrderAndDropsUnknown() {
	a := s.tool("a", false)
	b := s.tool("b", false)

	ids, err := s.store.Tools.IDsBySlugs(s.ctx, []string{"b", "nope", "a", "b"})
	s.Require().NoError(err)
	s.Equal([]string{b.ID, a.ID}, ids)
}

func (s *StoreSuite) TestWorkflowToolsReplacedWholesale() {
	a := s.tool("a", false)
	b := s.tool("b", false)

	w := &domain.Workflow{Title: "t", Slug: "wf", Summary: "s", Content: "c"}
	s.Require().NoError(s.store.Workflows.Create(s.ctx, w, []string{a.ID, b.ID}))

	got, err := s.store.Workflows.BySlug(s.ctx, "wf")
	s.Require().NoError(err)
	s.Len(got.ToolsUsed, 2)

	s.Require().NoError(s.store.Workflows.Update(s.ctx, w.ID, &domain.Workflow{Title: "t2", Slug: "wf"}, []string{b.ID}))
	got, err = s.store.Workflows.BySlug(s.ctx, "wf")
	s.Require().NoError(err)
	s.Equal("t2", got.Title)
	s.Require().Len(got.ToolsUsed, 1)
	s.Equal("b", got.ToolsUsed[0].Slug)

	var edges int64
	s.Require().NoError(s.pg.DB.Table("_ToolToWorkflow").Where(`"B" = ?`, w.ID).Count(&edges).Error)
	s.EqualValues(1, edges)

	slug, err := s.store.Workflows.Delete(s.ctx, w.ID)
	s.Require().NoError(err)
	s.Equal("wf", slug)
	s.Require().NoError(s.pg.DB.Table("_ToolToWorkflow").Count(&edges).Error)
	s.Zero(edges)
}

func (s *StoreSuite) TestComparisonWithTools() {
	a := s.tool("a", false)
	c := &domain.Comparison{Title: "A vs B", Slug: "a-vs-b", Verdict: "tie", Content: "c"}
	s.Require().NoError(s.store.Comparisons.Create(s.ctx, c, []string{a.ID}))

	got, err := s.store.Comparisons.BySlug(s.ctx, "a-vs-b")
	s.Require().NoError(err)
	s.Require().Len(got.Tools, 1)
	s.Equal(a.ID, got.Tools[0].ID)

	var edges int64
	s.Require().NoError(s.pg.DB.Table("_ComparisonToTool").Where(`"A" = ? AND "B" = ?`, c.ID, a.ID).Count(&edges).Error)
	s.EqualValues(1, edges)

	slug, err := s.store.Comparisons.Delete(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("a-vs-b", slug)
}

func (s *StoreSuite) TestPromptCRUD() {
	p := &domain.Prompt{Title: "Hook", Category: "writing", Content: "Write", Gated: true}
	s.Require().NoError(s.store.Prompts.Create(s.ctx, p))

	p.Gated = false
	s.Require().NoError(s.store.Prompts.Update(s.ctx, p.ID, p))

	list, err := s.store.Prompts.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.False(list[0].Gated)

	s.Require().NoError(s.store.Prompts.Delete(s.ctx, p.ID))
}

func (s *StoreSuite) TestSubscriberUpsertIsIdempotent() {
	first := &domain.Subscriber{Email: "a@b.com", Source: "footer", Tags: pq.StringArray{"lead"}}
	s.Require().NoError(s.store.Subscribers.Upsert(s.ctx, first))
	second := &domain.Subscriber{Email: "a@b.com", Source: "tool-page", Tags: pq.StringArray{"lead"}}
	s.Require().NoError(s.store.Subscribers.Upsert(s.ctx, second))

	var n int64
	s.Require().NoError(s.pg.DB.Model(&domain.Subscriber{}).Count(&n).Error)
	s.EqualValues(1, n)

	var row domain.Subscriber
	s.Require().NoError(s.pg.DB.Where("email = ?", "a@b.com").First(&row).Error)
	s.Equal("tool-page", row.Source)
}

func TestStoreWithoutDatabase(t *testing.T) {
	store := postgres.NewStore(nil)
	if store.Configured() {
		t.Fatal("nil connection must not be configured")
	}
	if _, err := store.Tools.List(context.Background()); err != domain.ErrStorageUnavailable {
		t.Fatalf("want ErrStorageUnavailable, got %v", err)
	}
}
