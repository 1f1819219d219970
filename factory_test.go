package aspen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointFactory() *Factory {
	return &Factory{GeometryType: "point", Coordinate: "rect", Theme: DefaultTheme()}
}

func TestDrawShapeAttachesToContainer(t *testing.T) {
	f := pointFactory()
	container := NewGroup("container")

	s := f.DrawShape("point", &Model{X: 10, Y: 20, Color: "red"}, container)
	require.NotNil(t, s)
	assert.Equal(t, container, s.Parent)
	assert.Equal(t, 1, container.NumChildren())
	assert.Equal(t, "point", s.Name)
}

func TestDrawShapeUnknownGeometryReturnsNil(t *testing.T) {
	f := &Factory{GeometryType: "no-such-geometry"}
	container := NewGroup("container")
	assert.Nil(t, f.DrawShape("whatever", &Model{}, container))
	assert.Equal(t, 0, container.NumChildren())
}

func TestDrawShapeUnknownNameFallsBackToDefault(t *testing.T) {
	f := pointFactory()
	container := NewGroup("container")
	s := f.DrawShape("no-such-shape", &Model{X: 1, Y: 2}, container)
	require.NotNil(t, s)
	assert.Equal(t, ShapeCircle, s.Type)
}

func TestBuildPointMergesThemeAndModel(t *testing.T) {
	f := pointFactory()
	size := 7.0
	s := f.DrawShape("point", &Model{
		X: 5, Y: 6,
		Color: "crimson",
		Size:  &size,
		Style: Attrs{"opacity": 0.5},
	}, NewGroup("c"))
	require.NotNil(t, s)

	assert.Equal(t, 5.0, s.AttrFloat("x", 0))
	assert.Equal(t, 6.0, s.AttrFloat("y", 0))
	assert.Equal(t, "crimson", s.Attr("fill"))
	assert.Equal(t, 7.0, s.AttrFloat("r", 0))
	assert.Equal(t, 0.5, s.AttrFloat("opacity", 0))
}

func TestBuildHollowPointMapsColorToStroke(t *testing.T) {
	f := pointFactory()
	s := f.DrawShape("hollow-point", &Model{X: 1, Y: 2, Color: "green"}, NewGroup("c"))
	require.NotNil(t, s)
	assert.Equal(t, "green", s.Attr("stroke"))
	assert.Nil(t, s.Attr("fill"))
}

func TestBuildIntervalFromCornerPoints(t *testing.T) {
	f := &Factory{GeometryType: "interval", Coordinate: "rect", Theme: DefaultTheme()}
	s := f.DrawShape("interval", &Model{
		Points: []Vec2{{X: 30, Y: 100}, {X: 10, Y: 40}},
		Color:  "steelblue",
	}, NewGroup("c"))
	require.NotNil(t, s)

	assert.Equal(t, ShapeRect, s.Type)
	assert.Equal(t, 10.0, s.AttrFloat("x", -1))
	assert.Equal(t, 40.0, s.AttrFloat("y", -1))
	assert.Equal(t, 20.0, s.AttrFloat("width", -1))
	assert.Equal(t, 60.0, s.AttrFloat("height", -1))
}

func TestBuildIntervalTooFewPointsReturnsNil(t *testing.T) {
	f := &Factory{GeometryType: "interval", Coordinate: "rect", Theme: DefaultTheme()}
	container := NewGroup("c")
	assert.Nil(t, f.DrawShape("interval", &Model{Points: []Vec2{{X: 1, Y: 2}}}, container))
	assert.Equal(t, 0, container.NumChildren())
}

func TestBuildLineSingleSegment(t *testing.T) {
	f := &Factory{GeometryType: "line", Coordinate: "rect", Theme: DefaultTheme()}
	s := f.DrawShape("line", &Model{
		Points: []Vec2{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 3}},
		Color:  "orange",
	}, NewGroup("c"))
	require.NotNil(t, s)

	assert.Equal(t, ShapePolyline, s.Type)
	assert.Equal(t, "orange", s.Attr("stroke"))
	pts := s.Attr("points").([]Vec2)
	assert.Len(t, pts, 3)
}

func TestBuildLineSplitsOnGaps(t *testing.T) {
	f := &Factory{GeometryType: "line", Coordinate: "rect", Theme: DefaultTheme()}
	gap := Vec2{X: 15, Y: math.NaN()}
	s := f.DrawShape("line", &Model{
		Points: []Vec2{{X: 0, Y: 0}, {X: 10, Y: 5}, gap, {X: 20, Y: 3}, {X: 30, Y: 8}},
	}, NewGroup("c"))
	require.NotNil(t, s)

	require.True(t, s.IsGroup())
	require.Equal(t, 2, s.NumChildren())
	assert.Len(t, s.ChildAt(0).Attr("points"), 2)
	assert.Len(t, s.ChildAt(1).Attr("points"), 2)
}

func TestBuildLineConnectNullsBridgesGaps(t *testing.T) {
	f := &Factory{GeometryType: "line", Coordinate: "rect", Theme: DefaultTheme()}
	gap := Vec2{X: 15, Y: math.NaN()}
	s := f.DrawShape("line", &Model{
		Points:       []Vec2{{X: 0, Y: 0}, {X: 10, Y: 5}, gap, {X: 20, Y: 3}},
		ConnectNulls: true,
	}, NewGroup("c"))
	require.NotNil(t, s)

	assert.Equal(t, ShapePolyline, s.Type)
	assert.Len(t, s.Attr("points"), 3)
}

func TestBuildLineAllGapsReturnsNil(t *testing.T) {
	f := &Factory{GeometryType: "line", Coordinate: "rect", Theme: DefaultTheme()}
	gap := Vec2{X: 0, Y: math.NaN()}
	assert.Nil(t, f.DrawShape("line", &Model{Points: []Vec2{gap, gap}}, NewGroup("c")))
}

func TestBuildLineInCircleClosesLoop(t *testing.T) {
	f := &Factory{GeometryType: "line", Coordinate: "polar", Theme: DefaultTheme()}
	s := f.DrawShape("line", &Model{
		Points:   []Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}},
		InCircle: true,
	}, NewGroup("c"))
	require.NotNil(t, s)

	pts := s.Attr("points").([]Vec2)
	require.Len(t, pts, 4)
	assert.Equal(t, pts[0], pts[3])
}

func TestBuildAreaProducesFillAndEdge(t *testing.T) {
	f := &Factory{GeometryType: "area", Coordinate: "rect", Theme: DefaultTheme()}
	s := f.DrawShape("area", &Model{
		Points: []Vec2{{X: 0, Y: 10}, {X: 10, Y: 4}, {X: 20, Y: 6}, {X: 20, Y: 30}, {X: 0, Y: 30}},
		Color:  "steelblue",
	}, NewGroup("c"))
	require.NotNil(t, s)

	require.True(t, s.IsGroup())
	require.Equal(t, 2, s.NumChildren())

	fill := s.ChildAt(0)
	edge := s.ChildAt(1)
	assert.Equal(t, "fill", fill.Name)
	assert.Equal(t, ShapePolygon, fill.Type)
	assert.Equal(t, "steelblue", fill.Attr("fill"))
	assert.Nil(t, fill.Attr("stroke"))

	assert.Equal(t, "edge", edge.Name)
	assert.Equal(t, ShapePolyline, edge.Type)
	assert.NotNil(t, edge.Attr("stroke"))
}

func TestRegisterShapeNilBuilderPanics(t *testing.T) {
	assert.Panics(t, func() { RegisterShape("x", "y", nil) })
}
