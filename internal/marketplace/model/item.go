package model

// Provider identifies who offers a listing.
type Provider struct {
	Name    string `json:"name" yaml:"name"`
	LogoURL string `json:"logoUrl" yaml:"logoUrl"`
}

// Step is one ordered stage of an application process or course schedule.
type Step struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Cost        *float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
}

// CanonicalItem is the unified representation of a marketplace listing,
// independent of the upstream schema it was mapped from. Optional scalars are
// pointers so that an absent value and a zero value stay distinguishable.
// Fields that do not apply to a category are left empty.
type CanonicalItem struct {
	ID            string `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	Category      string `json:"category,omitempty" yaml:"category,omitempty"`
	BusinessStage string `json:"businessStage,omitempty" yaml:"businessStage,omitempty"`
	ServiceType   string `json:"serviceType,omitempty" yaml:"serviceType,omitempty"`
	MediaType     string `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`
	Format        string `json:"format,omitempty" yaml:"format,omitempty"`

	// Provider is never taken from fallback data.
	Provider Provider `json:"provider" yaml:"provider" merge:"mapped"`

	Price    *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Currency string   `json:"currency,omitempty" yaml:"currency,omitempty"`
	Duration string   `json:"duration,omitempty" yaml:"duration,omitempty"`

	Tags               []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Details            []string `json:"details,omitempty" yaml:"details,omitempty"`
	Highlights         []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	LearningOutcomes   []string `json:"learningOutcomes,omitempty" yaml:"learningOutcomes,omitempty"`
	SkillsGained       []string `json:"skillsGained,omitempty" yaml:"skillsGained,omitempty"`
	Eligibility        string   `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`
	RequiredDocuments  []string `json:"requiredDocuments,omitempty" yaml:"requiredDocuments,omitempty"`
	ApplicationProcess []Step   `json:"applicationProcess,omitempty" yaml:"applicationProcess,omitempty"`
	FormURL            string   `json:"formUrl,omitempty" yaml:"formUrl,omitempty"`

	Rating      *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	ReviewCount *int     `json:"reviewCount,omitempty" yaml:"reviewCount,omitempty"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate   string   `json:"startDate,omitempty" yaml:"startDate,omitempty"`
}

// Float returns a pointer to v, for populating optional numeric fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
