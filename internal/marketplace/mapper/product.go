package mapper

import (
	"fmt"
	"math"
	"strings"

	errx "github.com/sme-marketplace/server/internal/core/error"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	logx "github.com/sme-marketplace/server/pkg/logger"
)

// ProductMapper maps the generic product shape used by the financial,
// non-financial and knowledge-hub feeds.
type ProductMapper struct {
	category    model.Category
	cfg         model.MapperConfig
	augmentList bool
}

func (m *ProductMapper) Category() model.Category { return m.category }

func (m *ProductMapper) MapList(raw model.RawRecord) *model.CanonicalItem {
	item := m.mapRecord(raw)
	if m.augmentList {
		return Augment(item)
	}
	return item
}

func (m *ProductMapper) MapDetail(raw model.RawRecord) *model.CanonicalItem {
	return m.mapRecord(raw)
}

func (m *ProductMapper) MapFilters(facets []Facet, declared []model.FilterCategoryConfig) []model.FilterCategoryConfig {
	return mapFilters(facets, declared)
}

func (m *ProductMapper) mapRecord(raw model.RawRecord) *model.CanonicalItem {
	rec, ok := raw.(*model.ProductRecord)
	if !ok || rec == nil {
		logx.Debug().
			Str("component", "product_mapper").
			Str("category", m.category.String()).
			Str("record_type", fmt.Sprintf("%T", raw)).
			Err(errx.ErrMappingFailure).
			Msg("no usable product record")
		return nil
	}
	bag := rec.CustomFields

	item := &model.CanonicalItem{
		ID:            rec.ID,
		Title:         firstNonEmpty(rec.Name, bag.Text("Title", "Name")),
		Description:   firstNonEmpty(rec.Description, bag.Text("Description", "Summary")),
		Category:      bag.Text("Category", "category"),
		BusinessStage: bag.Text("BusinessStage", "businessStage"),
		ServiceType:   bag.Text("ServiceType", "serviceType"),
		MediaType:     bag.Text("MediaType", "mediaType"),
		Format:        bag.Text("Format", "format"),
		Provider: model.Provider{
			Name:    firstNonEmpty(bag.Text("Provider", "ProviderName", "PartnerName"), PlaceholderProviderName),
			LogoURL: m.resolveLogo(rec),
		},
		Currency:           bag.Text("Currency"),
		Duration:           bag.Text("Duration", "Tenure", "RepaymentPeriod"),
		Tags:               LineList(valueOf(bag, "Tags")),
		Details:            productDetails(bag),
		Eligibility:        NormalizeEligibility(valueOf(bag, "Eligibility", "EligibilityCriteria")),
		RequiredDocuments:  documentNames(bag),
		ApplicationProcess: applicationSteps(bag),
		FormURL:            bag.Text("FormUrl", "ApplicationUrl", "formUrl"),
		Location:           bag.Text("Location"),
	}
	if item.ID == "" {
		item.ID = StableID(m.category, item.Title)
	}
	if n, ok := bag.Number("Amount", "Price", "Cost"); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
		item.Price = model.Float(n)
	}
	if item.Price != nil && item.Currency == "" {
		item.Currency = m.cfg.DefaultCurrency
	}
	if n, ok := bag.Number("Rating"); ok && n >= 0 && n <= 5 {
		item.Rating = model.Float(n)
	}
	if n, ok := bag.Number("ReviewCount", "Reviews"); ok {
		if c, ok := reviewCount(n); ok {
			item.ReviewCount = model.Int(c)
		}
	}
	return item
}

// resolveLogo tries the explicit logo URL, then the first element of an
// array-valued Logo field, then an object-valued Logo field, then the default
// asset. Relative results are made absolute against the asset base URL.
func (m *ProductMapper) resolveLogo(rec *model.ProductRecord) string {
	bag := rec.CustomFields
	logo := firstNonEmpty(rec.LogoURL, bag.Text("LogoUrl", "logoUrl"))
	if logo == "" {
		if v, ok := bag.Value("Logo"); ok {
			switch t := v.(type) {
			case []any:
				if len(t) > 0 {
					if obj, ok := t[0].(map[string]any); ok {
						logo = model.FieldBag(obj).Text("source")
					}
				}
			case map[string]any:
				logo = model.FieldBag(t).Text("source")
			}
		}
	}
	if logo == "" {
		logo = m.cfg.DefaultLogoPath
	}
	return AbsoluteURL(m.cfg.AssetBaseURL, logo)
}

// productDetails takes the first non-empty of: highlights, steps, terms of service.
func productDetails(bag model.FieldBag) []string {
	if hs := LineList(valueOf(bag, "Highlights", "KeyFeatures")); len(hs) > 0 {
		return hs
	}
	if v, ok := bag.Value("Steps"); ok {
		var out []string
		if steps := bag.Objects("Steps"); len(steps) > 0 {
			for _, s := range steps {
				title, desc := s.Text("title", "name"), s.Text("description")
				switch {
				case title != "" && desc != "":
					out = append(out, title+": "+desc)
				case title != "" || desc != "":
					out = append(out, title+desc)
				}
			}
		} else {
			out = LineList(v)
		}
		if len(out) > 0 {
			return out
		}
	}
	return LineList(valueOf(bag, "TermsOfService", "Terms"))
}

func documentNames(bag model.FieldBag) []string {
	v, ok := bag.Value("RequiredDocuments")
	if !ok {
		v, ok = bag.Value("Documents")
	}
	if !ok {
		return nil
	}

	var refs []string
	if arr, isArr := v.([]any); isArr {
		for _, el := range arr {
			switch t := el.(type) {
			case string:
				refs = append(refs, t)
			case map[string]any:
				obj := model.FieldBag(t)
				if name := obj.Text("name", "title"); name != "" {
					refs = append(refs, name)
				} else {
					refs = append(refs, obj.Text("url", "source", "href"))
				}
			}
		}
	} else {
		refs = LineList(v)
	}

	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if name := NormalizeDocumentName(r); name != "" {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func applicationSteps(bag model.FieldBag) []model.Step {
	objs := bag.Objects("ApplicationProcess")
	if len(objs) == 0 {
		objs = bag.Objects("Steps")
	}
	steps := make([]model.Step, 0, len(objs))
	for _, o := range objs {
		step := model.Step{
			Title:       o.Text("title", "name", "step"),
			Description: o.Text("description", "details"),
		}
		if step.Title == "" && step.Description == "" {
			continue
		}
		if c, ok := o.Number("cost", "fee"); ok && !math.IsNaN(c) && !math.IsInf(c, 0) {
			step.Cost = model.Float(c)
		}
		steps = append(steps, step)
	}
	if len(steps) == 0 {
		return nil
	}
	return steps
}

// valueOf returns the first present value among keys.
func valueOf(bag model.FieldBag, keys ...string) any {
	for _, k := range keys {
		if v, ok := bag.Value(k); ok {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			return v
		}
	}
	return nil
}

// reviewCount accepts whole, non-negative counts that fit in an int32.
func reviewCount(n float64) (int, bool) {
	if math.IsNaN(n) || n < 0 || n > math.MaxInt32 || n != math.Trunc(n) {
		return 0, false
	}
	return int(n), true
}
