package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Workflow is a long-form guide that references the tools it uses.
type Workflow struct {
	ID            string    `json:"id" gorm:"column:id;primaryKey"`
	Title         string    `json:"title" gorm:"column:title;not null"`
	Slug          string    `json:"slug" gorm:"column:slug;uniqueIndex;not null"`
	Summary       string    `json:"summary" gorm:"column:summary;not null"`
	Content       string    `json:"content" gorm:"column:content;not null"`
	FeaturedImage *string   `json:"featuredImage,omitempty" gorm:"column:featuredImage"`
	CreatedAt     time.Time `json:"createdAt" gorm:"column:createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"column:updatedAt"`

	// Implicit join table: A = Tool.id, B = Workflow.id.
	ToolsUsed []Tool `json:"toolsUsed,omitempty" gorm:"many2many:_ToolToWorkflow;joinForeignKey:B;joinReferences:A"`
}

func (Workflow) TableName() string { return "Workflow" }

func (w *Workflow) BeforeCreate(*gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// Prompt is a reusable prompt. Gated prompts are only revealed after an unlock action.
type Prompt struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey"`
	Title     string    `json:"title" gorm:"column:title;not null"`
	Category  string    `json:"category" gorm:"column:category;not null"`
	Content   string    `json:"content" gorm:"column:content;not null"`
	Gated     bool      `json:"gated" gorm:"column:gated;not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:createdAt"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updatedAt"`
}

func (Prompt) TableName() string { return "Prompt" }

func (p *Prompt) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Redacted returns a copy safe for public listings: gated content is withheld.
func (p Prompt) Redacted() Prompt {
	if p.Gated {
		p.Content = ""
	}
	return p
}

// Comparison pits several tools against each other with a short verdict.
type Comparison struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey"`
	Title     string    `json:"title" gorm:"column:title;not null"`
	Slug      string    `json:"slug" gorm:"column:slug;uniqueIndex;not null"`
	Verdict   string    `json:"verdict" gorm:"column:verdict;not null"`
	Content   string    `json:"content" gorm:"column:content;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:createdAt"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updatedAt"`

	// Implicit join table: A = Comparison.id, B = Tool.id.
	Tools []Tool `json:"tools,omitempty" gorm:"many2many:_ComparisonToTool;joinForeignKey:A;joinReferences:B"`
}

func (Comparison) TableName() string { return "Comparison" }

func (c *Comparison) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Subscriber is a newsletter lead. Email is unique; repeated sign-ups upsert.
type Subscriber struct {
	ID        string         `json:"id" gorm:"column:id;primaryKey"`
	Email     string         `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Source    string         `json:"source" gorm:"column:source;not null"`
	Tags      pq.StringArray `json:"tags" gorm:"column:tags;type:text[]"`
	CreatedAt time.Time      `json:"createdAt" gorm:"column:createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"column:updatedAt"`
}

func (Subscriber) TableName() string { return "Subscriber" }

func (s *Subscriber) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ToolToWorkflow is the implicit join table: A = Tool.id, B = Workflow.id.
type ToolToWorkflow struct {
	A string `gorm:"column:A;primaryKey"`
	B string `gorm:"column:B;primaryKey"`
}

func (ToolToWorkflow) TableName() string { return "_ToolToWorkflow" }

// ComparisonToTool is the implicit join table: A = Comparison.id, B = Tool.id.
type ComparisonToTool struct {
	A string `gorm:"column:A;primaryKey"`
	B string `gorm:"column:B;primaryKey"`
}

func (ComparisonToTool) TableName() string { return "_ComparisonToTool" }

// SetupJoinTables binds the many-to-many associations to the join tables
// above so their upper-case A/B columns are used verbatim.
func SetupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Workflow{}, "ToolsUsed", &ToolToWorkflow{}); err != nil {
		return err
	}
	return db.SetupJoinTable(&Comparison{}, "Tools", &ComparisonToTool{})
}
