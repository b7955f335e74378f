package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ToolCategory mirrors the "ToolCategory" Postgres enum.
type ToolCategory string

const (
	CategoryWriting      ToolCategory = "writing"
	CategoryImage        ToolCategory = "image"
	CategoryVideo        ToolCategory = "video"
	CategoryAudio        ToolCategory = "audio"
	CategoryAutomation   ToolCategory = "automation"
	CategoryProductivity ToolCategory = "productivity"
	CategoryMarketing    ToolCategory = "marketing"
	CategoryCoding       ToolCategory = "coding"
)

var toolCategories = []ToolCategory{
	CategoryWriting, CategoryImage, CategoryVideo, CategoryAudio,
	CategoryAutomation, CategoryProductivity, CategoryMarketing, CategoryCoding,
}

// ParseToolCategory returns the matching category, or CategoryWriting for unknown input.
func ParseToolCategory(raw string) ToolCategory {
	candidate := ToolCategory(strings.TrimSpace(raw))
	for _, c := range toolCategories {
		if c == candidate {
			return c
		}
	}
	return CategoryWriting
}

// PricingType mirrors the "PricingType" Postgres enum.
type PricingType string

const (
	PricingFree         PricingType = "free"
	PricingFreemium     PricingType = "freemium"
	PricingPaid         PricingType = "paid"
	PricingSubscription PricingType = "subscription"
)

var pricingTypes = []PricingType{PricingFree, PricingFreemium, PricingPaid, PricingSubscription}

// ParsePricingType returns the matching pricing type, or PricingFreemium for unknown input.
func ParsePricingType(raw string) PricingType {
	candidate := PricingType(strings.TrimSpace(raw))
	for _, p := range pricingTypes {
		if p == candidate {
			return p
		}
	}
	return PricingFreemium
}

// Tool is a directory entry with an affiliate link.
//
// Table and column names follow the existing "Tool" table so the service
// can run against the database the frontend already uses.
type Tool struct {
	ID             string         `json:"id" gorm:"column:id;primaryKey"`
	Name           string         `json:"name" gorm:"column:name;not null"`
	Slug           string         `json:"slug" gorm:"column:slug;uniqueIndex;not null"`
	Description    string         `json:"description" gorm:"column:description;not null"`
	Category       ToolCategory   `json:"category" gorm:"column:category;not null"`
	PricingType    PricingType    `json:"pricingType" gorm:"column:pricingType;not null"`
	PricingDetails *string        `json:"pricingDetails,omitempty" gorm:"column:pricingDetails"`
	Pros           pq.StringArray `json:"pros" gorm:"column:pros;type:text[]"`
	Cons           pq.StringArray `json:"cons" gorm:"column:cons;type:text[]"`
	BestFor        *string        `json:"bestFor,omitempty" gorm:"column:bestFor"`
	AffiliateURL   string         `json:"affiliateUrl" gorm:"column:affiliateUrl;not null"`
	Featured       bool           `json:"featured" gorm:"column:featured;not null;default:false"`
	CreatedAt      time.Time      `json:"createdAt" gorm:"column:createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt" gorm:"column:updatedAt"`

	// NewsletterHook is only populated for catalog entries.
	NewsletterHook string `json:"-" gorm:"-"`
}

func (Tool) TableName() string { return "Tool" }

func (t *Tool) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
