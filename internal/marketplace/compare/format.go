package compare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sme-marketplace/server/internal/marketplace/model"
)

// Formatter renders an attribute value for display. It reports false when the
// value has nothing to show.
type Formatter func(v any, item model.CanonicalItem) (string, bool)

var formatters = map[string]Formatter{
	model.FormatText:     formatText,
	model.FormatCurrency: formatCurrency,
	model.FormatList:     formatList,
	model.FormatRating:   formatRating,
	model.FormatCount:    formatCount,
	model.FormatDuration: formatText,
}

// FormatterFor returns the named formatter, or the text formatter for an
// empty or unknown name.
func FormatterFor(name string) Formatter {
	if f, ok := formatters[name]; ok {
		return f
	}
	return formatText
}

func formatText(v any, _ model.CanonicalItem) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		t = strings.TrimSpace(t)
		return t, t != ""
	case []string:
		return formatList(t, model.CanonicalItem{})
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case []model.Step:
		titles := make([]string, 0, len(t))
		for _, s := range t {
			if s.Title != "" {
				titles = append(titles, s.Title)
			}
		}
		return formatList(titles, model.CanonicalItem{})
	case model.Provider:
		return formatText(t.Name, model.CanonicalItem{})
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	return s, s != ""
}

func formatList(v any, item model.CanonicalItem) (string, bool) {
	list, ok := v.([]string)
	if !ok {
		return formatText(v, item)
	}
	kept := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ", "), len(kept) > 0
}

func formatCurrency(v any, item model.CanonicalItem) (string, bool) {
	amount, ok := v.(float64)
	if !ok {
		return formatText(v, item)
	}
	if amount == 0 {
		return "Free", true
	}
	s := humanize.Commaf(amount)
	if item.Currency != "" {
		s = item.Currency + " " + s
	}
	return s, true
}

func formatRating(v any, item model.CanonicalItem) (string, bool) {
	var r float64
	switch t := v.(type) {
	case float64:
		r = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return formatText(v, item)
		}
		r = parsed
	default:
		return formatText(v, item)
	}
	return fmt.Sprintf("%.1f / 5", r), true
}

func formatCount(v any, item model.CanonicalItem) (string, bool) {
	switch t := v.(type) {
	case int:
		return humanize.Comma(int64(t)), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return humanize.Comma(int64(n)), true
		}
	}
	return formatText(v, item)
}
