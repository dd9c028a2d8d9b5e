package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashKnownValues(t *testing.T) {
	assert.Equal(t, uint32(0), Hash(""))
	assert.Equal(t, uint32(97), Hash("a"))
	assert.Equal(t, uint32(99162322), Hash("hello"))
	// wraps to math.MinInt32 before the sign flip
	assert.Equal(t, uint32(2147483648), Hash("polygenelubricants"))
}

func TestHashIsOrderDependent(t *testing.T) {
	assert.NotEqual(t, Hash("ab"), Hash("ba"))
}

func TestHashUsesUTF16CodeUnits(t *testing.T) {
	// U+1F600 is the surrogate pair D83D DE00
	want := uint32(0xD83D*31 + 0xDE00)
	assert.Equal(t, want, Hash("\U0001F600"))
}

func TestPickDeterministic(t *testing.T) {
	candidates := []string{"a", "b", "c", "d", "e"}
	seed := Seed("course-17", "rating")
	require.Equal(t, "course-17:rating", seed)

	first, ok := Pick(seed, candidates)
	require.True(t, ok)
	for i := 0; i < 50; i++ {
		again, _ := Pick(seed, candidates)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, candidates[Hash(seed)%5], first)
}

func TestPickEmpty(t *testing.T) {
	v, ok := Pick[int]("x", nil)
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestGeneratorFill(t *testing.T) {
	g := NewGenerator(map[string][]string{"supportLevel": {"Email", "Phone"}})

	v, ok := g.Fill("svc-1", "supportLevel")
	require.True(t, ok)
	assert.Contains(t, []string{"Email", "Phone"}, v)

	again, _ := Default().Fill("svc-1", "supportLevel")
	fresh, _ := Default().Fill("svc-1", "supportLevel")
	assert.Equal(t, again, fresh, "independent generators agree")

	_, ok = g.Fill("svc-1", "unknown")
	assert.False(t, ok)
	assert.Equal(t, []string{"supportLevel"}, g.Fields())
}

func TestGeneratorCopiesCatalogs(t *testing.T) {
	cat := map[string][]string{"x": {"one"}}
	g := NewGenerator(cat)
	cat["x"][0] = "two"

	v, _ := g.Fill("id", "x")
	assert.Equal(t, "one", v)
}

func TestFillerFunc(t *testing.T) {
	var f Filler = FillerFunc(func(itemID, field string) (string, bool) {
		return itemID + "/" + field, true
	})
	v, ok := f.Fill("a", "b")
	assert.True(t, ok)
	assert.Equal(t, "a/b", v)
}
