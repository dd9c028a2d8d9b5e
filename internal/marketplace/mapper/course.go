package mapper

import (
	"fmt"
	"math"

	errx "github.com/sme-marketplace/server/internal/core/error"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	logx "github.com/sme-marketplace/server/pkg/logger"
)

// DefaultCourseCost replaces course costs that are missing, non-finite or
// below 1 when no configured default is available.
const DefaultCourseCost = 1500.0

// CourseMapper maps upstream course records.
type CourseMapper struct {
	cfg model.MapperConfig
}

func (m *CourseMapper) Category() model.Category { return model.Courses }

func (m *CourseMapper) MapList(raw model.RawRecord) *model.CanonicalItem {
	return m.mapRecord(raw)
}

func (m *CourseMapper) MapDetail(raw model.RawRecord) *model.CanonicalItem {
	return m.mapRecord(raw)
}

func (m *CourseMapper) MapFilters(facets []Facet, declared []model.FilterCategoryConfig) []model.FilterCategoryConfig {
	return mapFilters(facets, declared)
}

func (m *CourseMapper) mapRecord(raw model.RawRecord) *model.CanonicalItem {
	rec, ok := raw.(*model.CourseRecord)
	if !ok || rec == nil {
		logx.Debug().
			Str("component", "course_mapper").
			Str("record_type", fmt.Sprintf("%T", raw)).
			Err(errx.ErrMappingFailure).
			Msg("no usable course record")
		return nil
	}
	props := rec.Properties

	item := &model.CanonicalItem{
		ID:            rec.ID,
		Title:         firstNonEmpty(rec.Title, props.Text("Title")),
		Description:   firstNonEmpty(rec.Summary, props.Text("Description", "Overview")),
		Category:      props.Text("Category"),
		BusinessStage: props.Text("BusinessStage"),
		ServiceType:   props.Text("ServiceType", "DeliveryMode"),
		Provider: model.Provider{
			Name:    firstNonEmpty(rec.Provider, props.Text("ProviderName", "Provider"), PlaceholderProviderName),
			LogoURL: AbsoluteURL(m.cfg.AssetBaseURL, firstNonEmpty(props.Text("ProviderLogo", "LogoUrl"), m.cfg.DefaultLogoPath)),
		},
		Price:            model.Float(m.normalizeCost(valueOf(props, "Cost", "Price", "Fee"))),
		Currency:         firstNonEmpty(props.Text("Currency"), m.cfg.DefaultCurrency),
		Duration:         props.Text("Duration"),
		Tags:             SplitList(valueOf(props, "Tags")),
		Highlights:       SplitList(valueOf(props, "Highlights")),
		LearningOutcomes: SplitList(valueOf(props, "LearningOutcomes", "Outcomes")),
		SkillsGained:     SplitList(valueOf(props, "SkillsGained", "Skills")),
		Eligibility:      NormalizeEligibility(valueOf(props, "Eligibility", "Prerequisites")),
		FormURL:          props.Text("FormUrl", "RegistrationUrl"),
		Location:         props.Text("Location"),
		StartDate:        props.Text("StartDate"),
	}
	if item.ID == "" {
		item.ID = StableID(model.Courses, item.Title)
	}
	if n, ok := props.Number("Rating"); ok && n >= 0 && n <= 5 {
		item.Rating = model.Float(n)
	}
	if n, ok := props.Number("ReviewCount"); ok {
		if c, ok := reviewCount(n); ok {
			item.ReviewCount = model.Int(c)
		}
	}

	if payload, ok := props.Value("Timeline"); ok {
		tl, err := ParseCourseTimeline(payload)
		if err != nil {
			// schedule is optional; the rest of the item still renders
			logx.Debug().
				Str("component", "course_mapper").
				Str("course_id", item.ID).
				Err(err).
				Msg("timeline dropped")
		} else {
			item.ApplicationProcess = tl.Steps()
			if item.Duration == "" && len(tl.Weeks) > 0 {
				item.Duration = pluralWeeks(len(tl.Weeks))
			}
		}
	}
	return item
}

// normalizeCost accepts a finite cost of at least 1. Zero is treated as
// missing here, unlike product prices.
func (m *CourseMapper) normalizeCost(v any) float64 {
	if n, ok := model.ParseNumber(v); ok && !math.IsNaN(n) && !math.IsInf(n, 0) && n >= 1 {
		return n
	}
	if m.cfg.CourseCost >= 1 {
		return m.cfg.CourseCost
	}
	return DefaultCourseCost
}

func pluralWeeks(n int) string {
	if n == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", n)
}
