package mapper

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	errx "github.com/sme-marketplace/server/internal/core/error"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCourseTimeline(t *testing.T) {
	cases := []struct {
		name  string
		in    any
		weeks int
	}{
		{name: "plain json", in: `{"weeks":[{"title":"Intro"},{"title":"Pricing"}]}`, weeks: 2},
		{name: "escaped quotes", in: `{\"weeks\":[{\"title\":\"Intro\"}]}`, weeks: 1},
		{name: "escaped quotes inside noise", in: `x {\"weeks\":[{\"title\":\"Intro\"}]} y`, weeks: 1},
		{name: "escaped empty weeks inside noise", in: `x {\"weeks\":[]} y`, weeks: 0},
		{name: "leading and trailing noise", in: `timeline: {"weeks":["Intro","Sales","Close"]} -- end`, weeks: 3},
		{name: "already decoded", in: map[string]any{"weeks": []any{"Intro"}}, weeks: 1},
		{name: "empty weeks", in: `{"weeks":[]}`, weeks: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tl, err := ParseCourseTimeline(tc.in)
			require.NoError(t, err)
			assert.Len(t, tl.Weeks, tc.weeks)
		})
	}
}

func TestParseCourseTimelineRejects(t *testing.T) {
	for _, in := range []any{
		"not json at all",
		`x {\"modules\":[]} y`,
		`{"modules":[1,2]}`,
		`{"weeks":"soon"}`,
		`[1,2,3]`,
		"",
		nil,
		42.0,
	} {
		tl, err := ParseCourseTimeline(in)
		assert.Nil(t, tl, "%v", in)
		assert.True(t, errors.Is(err, errx.ErrTimelineParse), "%v", in)
	}
}

func TestTimelineSteps(t *testing.T) {
	tl, err := ParseCourseTimeline(`{"weeks":[
		{"week": 1, "title": "Foundations", "description": "Why plans fail"},
		{"title": "Marketing", "topics": "SEO, Social"},
		{"week": "Week 4"}
	]}`)
	require.NoError(t, err)

	want := []model.Step{
		{Title: "Week 1: Foundations", Description: "Why plans fail"},
		{Title: "Week 2: Marketing", Description: "SEO, Social"},
		{Title: "Week 4"},
	}
	if diff := cmp.Diff(want, tl.Steps()); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}

	var none *Timeline
	assert.Nil(t, none.Steps())
}
