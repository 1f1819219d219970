package aspen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrsCloneIsIndependent(t *testing.T) {
	a := Attrs{"r": 5.0}
	b := a.Clone()
	b["r"] = 9.0
	assert.Equal(t, 5.0, a["r"])
}

func TestAttrsMergeLaterWins(t *testing.T) {
	out := Attrs{}.Merge(
		Attrs{"fill": "red", "r": 4.0},
		Attrs{"fill": "blue"},
	)
	assert.Equal(t, "blue", out["fill"])
	assert.Equal(t, 4.0, out["r"])
}

func TestAttrDeltaChangedAndRemoved(t *testing.T) {
	src := Attrs{"fill": "red", "r": 5.0, "opacity": 1.0}
	dst := Attrs{"fill": "red", "r": 8.0, "stroke": "black"}

	changed, removed := attrDelta(src, dst)

	assert.Equal(t, Attrs{"r": 8.0, "stroke": "black"}, changed)
	assert.Equal(t, []string{"opacity"}, removed)
}

func TestAttrDeltaNumericCoercion(t *testing.T) {
	// 5 (int) and 5.0 (float64) are the same attribute value.
	changed, removed := attrDelta(Attrs{"r": 5}, Attrs{"r": 5.0})
	assert.Empty(t, changed)
	assert.Empty(t, removed)
}

func TestAttrDeltaIdentical(t *testing.T) {
	a := Attrs{"points": []Vec2{{1, 2}, {3, 4}}, "stroke": "red"}
	changed, removed := attrDelta(a, a.Clone())
	assert.Empty(t, changed)
	assert.Empty(t, removed)
}

func TestStateStyleResolveStatic(t *testing.T) {
	ss := StateStyle{Attrs: Attrs{"opacity": 0.3}}
	assert.Equal(t, Attrs{"opacity": 0.3}, ss.Resolve(nil))
}

func TestStateStyleResolveComputedWins(t *testing.T) {
	ss := StateStyle{
		Attrs: Attrs{"opacity": 0.3},
		Build: func(el *Element) Attrs {
			return Attrs{"opacity": 0.9}
		},
	}
	assert.Equal(t, Attrs{"opacity": 0.9}, ss.Resolve(nil))
}

func TestStateOptionStyleForFallsBackToWildcard(t *testing.T) {
	opt := StateOption{Style: map[string]StateStyle{
		"edge": {Attrs: Attrs{"lineWidth": 3.0}},
		"*":    {Attrs: Attrs{"opacity": 0.5}},
	}}

	ss, ok := opt.styleFor("edge")
	require.True(t, ok)
	assert.Equal(t, 3.0, ss.Attrs["lineWidth"])

	ss, ok = opt.styleFor("0")
	require.True(t, ok)
	assert.Equal(t, 0.5, ss.Attrs["opacity"])
}

func TestResolveShapeStylePrecedence(t *testing.T) {
	size := 6.0
	m := &Model{
		DefaultStyle: Attrs{"fill": "default", "opacity": 0.8},
		Color:        "green",
		Size:         &size,
		Style:        Attrs{"opacity": 0.4},
	}
	out := resolveShapeStyle(Attrs{"fill": "theme", "r": 4.0, "opacity": 1.0}, m, "fill", "r")

	// theme < default style < color/size shorthand < explicit style
	assert.Equal(t, "green", out["fill"])
	assert.Equal(t, 6.0, out["r"])
	assert.Equal(t, 0.4, out["opacity"])
}

func TestResolveShapeStyleWithoutShorthand(t *testing.T) {
	m := &Model{}
	out := resolveShapeStyle(Attrs{"fill": "theme", "r": 4.0}, m, "fill", "r")
	assert.Equal(t, "theme", out["fill"])
	assert.Equal(t, 4.0, out["r"])
}
