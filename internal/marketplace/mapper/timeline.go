package mapper

import (
	"encoding/json"
	"fmt"
	"strings"

	errx "github.com/sme-marketplace/server/internal/core/error"
	"github.com/sme-marketplace/server/internal/marketplace/model"
)

// Timeline is the course schedule embedded in upstream course records.
type Timeline struct {
	Weeks []TimelineWeek
}

// TimelineWeek is one week of a course schedule.
type TimelineWeek struct {
	Number      int
	Title       string
	Description string
	Topics      []string
}

// ParseCourseTimeline decodes the embedded timeline payload. The payload is
// often double-escaped or wrapped in noise, so decoding is attempted on the
// value as-is, then with \" unescaped, then on the text between the first '{'
// and the last '}' of the raw and of the unescaped value. Only an object with
// a "weeks" array is accepted; anything else yields errx.ErrTimelineParse.
func ParseCourseTimeline(v any) (*Timeline, error) {
	switch t := v.(type) {
	case map[string]any:
		return timelineFromObject(t)
	case model.FieldBag:
		return timelineFromObject(t)
	case string:
		attempts := []func(string) string{
			func(s string) string { return s },
			unescapeQuotes,
			outerObject,
			func(s string) string { return outerObject(unescapeQuotes(s)) },
		}
		for _, attempt := range attempts {
			candidate := strings.TrimSpace(attempt(t))
			if candidate == "" {
				continue
			}
			var decoded any
			if err := json.Unmarshal([]byte(candidate), &decoded); err != nil {
				continue
			}
			if obj, ok := decoded.(map[string]any); ok {
				if tl, err := timelineFromObject(obj); err == nil {
					return tl, nil
				}
			}
		}
		return nil, errx.ErrTimelineParse
	case nil:
		return nil, errx.ErrTimelineParse
	}
	return nil, fmt.Errorf("%w: unsupported payload %T", errx.ErrTimelineParse, v)
}

func unescapeQuotes(s string) string { return strings.ReplaceAll(s, `\"`, `"`) }

func outerObject(s string) string {
	start, end := strings.Index(s, "{"), strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func timelineFromObject(obj map[string]any) (*Timeline, error) {
	rawWeeks, ok := obj["weeks"].([]any)
	if !ok {
		return nil, errx.ErrTimelineParse
	}
	tl := &Timeline{Weeks: make([]TimelineWeek, 0, len(rawWeeks))}
	for i, rw := range rawWeeks {
		week := TimelineWeek{Number: i + 1}
		switch w := rw.(type) {
		case string:
			week.Title = strings.TrimSpace(w)
		case map[string]any:
			bag := model.FieldBag(w)
			if n, ok := bag.Number("week", "weekNumber", "number"); ok && n >= 1 {
				week.Number = int(n)
			}
			week.Title = bag.Text("title", "topic", "name")
			week.Description = bag.Text("description", "summary", "content")
			if topics, ok := bag.Value("topics"); ok {
				week.Topics = SplitList(topics)
			}
		default:
			continue
		}
		tl.Weeks = append(tl.Weeks, week)
	}
	return tl, nil
}

// Steps renders the timeline as ordered schedule steps.
func (t *Timeline) Steps() []model.Step {
	if t == nil || len(t.Weeks) == 0 {
		return nil
	}
	steps := make([]model.Step, 0, len(t.Weeks))
	for _, w := range t.Weeks {
		title := fmt.Sprintf("Week %d", w.Number)
		if w.Title != "" {
			title += ": " + w.Title
		}
		desc := w.Description
		if desc == "" && len(w.Topics) > 0 {
			desc = strings.Join(w.Topics, ", ")
		}
		steps = append(steps, model.Step{Title: title, Description: desc})
	}
	return steps
}
