package catalog

// File is the top-level structure of catalog.yaml.
type File struct {
	Tools []ToolEntry `yaml:"tools"`
}

// ToolEntry is one curated tool.
type ToolEntry struct {
	Name           string   `yaml:"name"`
	Slug           string   `yaml:"slug,omitempty"`
	Description    string   `yaml:"description"`
	Category       string   `yaml:"category,omitempty"`
	PricingType    string   `yaml:"pricingType,omitempty"`
	PricingDetails string   `yaml:"pricingDetails,omitempty"`
	Pros           []string `yaml:"pros,omitempty"`
	Cons           []string `yaml:"cons,omitempty"`
	BestFor        string   `yaml:"bestFor,omitempty"`
	AffiliateURL   string   `yaml:"affiliateUrl"`
	Featured       bool     `yaml:"featured,omitempty"`
	NewsletterHook string   `yaml:"newsletterHook,omitempty"`
}
