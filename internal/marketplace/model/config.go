package model

// ================ Component config ================

// MapperConfig holds the values the item mappers need from the environment.
type MapperConfig struct {
	AssetBaseURL    string  `envconfig:"MARKETPLACE_ASSET_BASE_URL" default:"https://assets.sme-marketplace.ae"`
	DefaultLogoPath string  `envconfig:"MARKETPLACE_DEFAULT_LOGO" default:"/images/providers/default-logo.png"`
	DefaultCurrency string  `envconfig:"MARKETPLACE_DEFAULT_CURRENCY" default:"AED"`
	CourseCost      float64 `envconfig:"MARKETPLACE_DEFAULT_COURSE_COST" default:"1500"`
}

// ================ Category config ================

// Formatter names understood by the comparison view.
const (
	FormatText     = "text"
	FormatCurrency = "currency"
	FormatList     = "list"
	FormatRating   = "rating"
	FormatCount    = "count"
	FormatDuration = "duration"
)

// AttributeConfig declares one comparable attribute of a category.
type AttributeConfig struct {
	Key    string `yaml:"key" json:"key"`
	Label  string `yaml:"label" json:"label"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// TabConfig declares one detail-page tab.
type TabConfig struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// FilterOption is one selectable value of a filter category.
type FilterOption struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// FilterCategoryConfig is one filter group in the sidebar. Field names the
// CanonicalItem key the filter matches against; it defaults to ID.
type FilterCategoryConfig struct {
	ID      string         `yaml:"id" json:"id"`
	Title   string         `yaml:"title" json:"title"`
	Field   string         `yaml:"field,omitempty" json:"field,omitempty"`
	Multi   bool           `yaml:"multi,omitempty" json:"multi,omitempty"`
	Options []FilterOption `yaml:"options" json:"options"`
}

// MatchField returns the item field this filter is evaluated against.
func (f FilterCategoryConfig) MatchField() string {
	if f.Field != "" {
		return f.Field
	}
	return f.ID
}

// HasOption reports whether id is one of the declared options.
func (f FilterCategoryConfig) HasOption(id string) bool {
	for _, o := range f.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// FilterDependency makes the options of ChildID depend on the selection of
// ParentID. AllowList maps a parent option id to the child option ids it permits.
type FilterDependency struct {
	ParentID  string              `yaml:"parent" json:"parent"`
	ChildID   string              `yaml:"child" json:"child"`
	AllowList map[string][]string `yaml:"allow" json:"allow"`
}

// FallbackDataset is the curated data used when live data is missing.
// Item fills gaps in mapped items and stands in for absent records; Items is
// the curated list shown when the upstream list is unavailable. The static
// filter option catalog is CategoryConfig.Filters.
type FallbackDataset struct {
	Item  CanonicalItem   `yaml:"item" json:"item"`
	Items []CanonicalItem `yaml:"items,omitempty" json:"items,omitempty"`
}

// CategoryConfig is the immutable declarative configuration of a category.
// Mapping behaviour is provided separately by a mapper strategy.
type CategoryConfig struct {
	ID                Category               `yaml:"id" json:"id"`
	Title             string                 `yaml:"title" json:"title"`
	Description       string                 `yaml:"description" json:"description"`
	ItemName          string                 `yaml:"itemName" json:"itemName"`
	ItemNamePlural    string                 `yaml:"itemNamePlural" json:"itemNamePlural"`
	PrimaryCTA        string                 `yaml:"primaryCta" json:"primaryCta"`
	SecondaryCTA      string                 `yaml:"secondaryCta" json:"secondaryCta"`
	SearchPlaceholder string                 `yaml:"searchPlaceholder" json:"searchPlaceholder"`
	Attributes        []AttributeConfig      `yaml:"attributes" json:"attributes"`
	Tabs              []TabConfig            `yaml:"tabs" json:"tabs"`
	Filters           []FilterCategoryConfig `yaml:"filters" json:"filters"`
	Dependency        *FilterDependency      `yaml:"dependency,omitempty" json:"dependency,omitempty"`
	Fallback          FallbackDataset        `yaml:"fallback" json:"fallback"`
}

// Filter returns the filter category with the given id.
func (c CategoryConfig) Filter(id string) (FilterCategoryConfig, bool) {
	for _, f := range c.Filters {
		if f.ID == id {
			return f, true
		}
	}
	return FilterCategoryConfig{}, false
}
