package registry

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"

	errx "github.com/sme-marketplace/server/internal/core/error"
	"github.com/sme-marketplace/server/internal/marketplace/filters"
	"github.com/sme-marketplace/server/internal/marketplace/mapper"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	"github.com/sme-marketplace/server/internal/marketplace/synth"
	logx "github.com/sme-marketplace/server/pkg/logger"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Options configures a Registry. Catalog replaces the embedded catalog when set.
type Options struct {
	Mapper  model.MapperConfig
	Catalog []byte
}

type catalogFile struct {
	Categories []model.CategoryConfig `yaml:"categories"`
}

type entry struct {
	config   model.CategoryConfig
	mapper   mapper.Mapper
	resolver *filters.Resolver
}

// Registry is the read-only table of category configurations. It is built once
// and may be shared between goroutines without locking.
type Registry struct {
	entries map[model.Category]entry
	order   []model.Category
}

// New parses the catalog and binds a mapping strategy to each category.
func New(opts Options) (*Registry, error) {
	src := opts.Catalog
	if len(src) == 0 {
		src = defaultCatalog
	}

	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	fillable := synth.Default().Fields()
	r := &Registry{entries: make(map[model.Category]entry, len(file.Categories))}
	for _, cfg := range file.Categories {
		if !cfg.ID.Valid() {
			return nil, errx.UnknownCategory(cfg.ID.String())
		}
		if _, dup := r.entries[cfg.ID]; dup {
			return nil, fmt.Errorf("category %s declared twice", cfg.ID)
		}
		if err := validate(cfg, fillable); err != nil {
			return nil, fmt.Errorf("category %s: %w", cfg.ID, err)
		}
		absolutizeLogos(&cfg.Fallback, opts.Mapper.AssetBaseURL)
		r.entries[cfg.ID] = entry{
			config:   cfg,
			mapper:   mapper.New(cfg.ID, opts.Mapper),
			resolver: filters.ForCategory(cfg),
		}
		r.order = append(r.order, cfg.ID)
	}

	for _, c := range model.Categories {
		if _, ok := r.entries[c]; !ok {
			return nil, fmt.Errorf("category %s missing from catalog", c)
		}
	}

	logx.Debug().Str("component", "registry").Int("categories", len(r.order)).Msg("catalog loaded")
	return r, nil
}

// MustNew is New that panics on error. Intended for the embedded catalog.
func MustNew(opts Options) *Registry {
	r, err := New(opts)
	if err != nil {
		panic(err)
	}
	return r
}

// Categories returns the category ids in catalog order.
func (r *Registry) Categories() []model.Category {
	return slices.Clone(r.order)
}

// Get returns a copy of the configuration of category c. Mutating the copy
// does not affect the registry.
func (r *Registry) Get(c model.Category) (model.CategoryConfig, error) {
	e, ok := r.entries[c]
	if !ok {
		return model.CategoryConfig{}, errx.UnknownCategory(c.String())
	}
	return e.config.Clone(), nil
}

// Mapper returns the mapping strategy bound to category c.
func (r *Registry) Mapper(c model.Category) (mapper.Mapper, error) {
	e, ok := r.entries[c]
	if !ok {
		return nil, errx.UnknownCategory(c.String())
	}
	return e.mapper, nil
}

// Resolver returns the dependent filter resolver of category c.
func (r *Registry) Resolver(c model.Category) (*filters.Resolver, error) {
	e, ok := r.entries[c]
	if !ok {
		return nil, errx.UnknownCategory(c.String())
	}
	return e.resolver, nil
}

// absolutizeLogos resolves relative fallback logo paths the same way the
// mappers resolve record logos.
func absolutizeLogos(fb *model.FallbackDataset, base string) {
	fb.Item.Provider.LogoURL = mapper.AbsoluteURL(base, fb.Item.Provider.LogoURL)
	for i := range fb.Items {
		fb.Items[i].Provider.LogoURL = mapper.AbsoluteURL(base, fb.Items[i].Provider.LogoURL)
	}
}

// validate checks one category. Attribute keys must name an item field or a
// field the placeholder generator can fill.
func validate(cfg model.CategoryConfig, fillable []string) error {
	var errs []error

	if cfg.Title == "" {
		errs = append(errs, errors.New("title is empty"))
	}
	for _, a := range cfg.Attributes {
		switch {
		case a.Key == "":
			errs = append(errs, fmt.Errorf("attribute %q has no key", a.Label))
		case !model.HasField(a.Key) && !slices.Contains(fillable, a.Key):
			errs = append(errs, fmt.Errorf("attribute %s is neither an item field nor fillable", a.Key))
		}
		if !knownFormat(a.Format) {
			errs = append(errs, fmt.Errorf("attribute %s: unknown format %q", a.Key, a.Format))
		}
	}

	seen := make(map[string]bool, len(cfg.Filters))
	for _, f := range cfg.Filters {
		if seen[f.ID] {
			errs = append(errs, fmt.Errorf("filter %s declared twice", f.ID))
		}
		seen[f.ID] = true
		if !model.HasField(f.MatchField()) {
			errs = append(errs, fmt.Errorf("filter %s matches unknown item field %q", f.ID, f.MatchField()))
		}
	}

	if d := cfg.Dependency; d != nil {
		parent, okParent := cfg.Filter(d.ParentID)
		child, okChild := cfg.Filter(d.ChildID)
		switch {
		case !okParent:
			errs = append(errs, fmt.Errorf("dependency parent %q is not a declared filter", d.ParentID))
		case !okChild:
			errs = append(errs, fmt.Errorf("dependency child %q is not a declared filter", d.ChildID))
		default:
			for pv, allowed := range d.AllowList {
				if !parent.HasOption(pv) {
					errs = append(errs, fmt.Errorf("dependency allow-list key %q is not a %s option", pv, parent.ID))
				}
				for _, cv := range allowed {
					if !child.HasOption(cv) {
						errs = append(errs, fmt.Errorf("dependency allows %q which is not a %s option", cv, child.ID))
					}
				}
			}
		}
	}

	if cfg.Fallback.Item.ID == "" || cfg.Fallback.Item.Title == "" {
		errs = append(errs, errors.New("fallback item needs an id and a title"))
	}
	return errors.Join(errs...)
}

func knownFormat(f string) bool {
	switch f {
	case "", model.FormatText, model.FormatCurrency, model.FormatList,
		model.FormatRating, model.FormatCount, model.FormatDuration:
		return true
	}
	return false
}
