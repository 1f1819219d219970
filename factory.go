package aspen

// ShapeBuilder turns a model into a detached shape tree (a leaf or a
// group). Returning nil is legitimate: a builder may choose to render
// nothing for some inputs, leaving the element shape-less.
type ShapeBuilder func(f *Factory, m *Model) *Shape

// --- Builder registry ---

// builders is the global registry, keyed by geometry type then shape name.
// Plain map, no lock — aspen is single-threaded and registration happens
// at init time.
var builders = map[string]map[string]ShapeBuilder{}

// RegisterShape registers a builder for a shape name under a geometry
// type. Re-registering a name replaces the previous builder.
func RegisterShape(geometryType, name string, b ShapeBuilder) {
	if b == nil {
		panic("aspen: RegisterShape called with nil builder")
	}
	byName := builders[geometryType]
	if byName == nil {
		byName = map[string]ShapeBuilder{}
		builders[geometryType] = byName
	}
	byName[name] = b
}

// lookupBuilder finds a builder for (geometryType, name), falling back to
// the geometry's default shape when the name is unknown.
func lookupBuilder(geometryType, name string) ShapeBuilder {
	byName := builders[geometryType]
	if byName == nil {
		return nil
	}
	if b, ok := byName[name]; ok {
		return b
	}
	return byName[defaultShapeName(geometryType)]
}

// defaultShapeName is the canonical shape per geometry type.
func defaultShapeName(geometryType string) string {
	switch geometryType {
	case "point":
		return "point"
	case "interval":
		return "interval"
	case "line":
		return "line"
	case "area":
		return "area"
	default:
		return geometryType
	}
}

// --- Factory ---

// Factory builds shapes for one geometry. GeometryType and Coordinate
// also key the animation-config defaults; the element passes them through
// opaquely.
type Factory struct {
	GeometryType string
	Coordinate   string
	Theme        *Theme
}

// DrawShape builds the named shape from the model and attaches it to
// container. container may be a live scene group or a detached scratch
// group; the builder cannot tell the difference. Returns nil (and attaches
// nothing) when no builder exists or the builder declines to render.
func (f *Factory) DrawShape(name string, m *Model, container *Shape) *Shape {
	b := lookupBuilder(f.GeometryType, name)
	if b == nil {
		logger.Warn().
			Str("geometry", f.GeometryType).
			Str("shape", name).
			Msg("no shape builder registered")
		return nil
	}
	s := b(f, m)
	if s == nil {
		return nil
	}
	if s.Name == "" {
		s.Name = name
	}
	container.AddChild(s)
	return s
}

// themeDefaults returns the theme's default attributes for a shape name.
func (f *Factory) themeDefaults(name string) Attrs {
	if f.Theme == nil {
		return nil
	}
	return f.Theme.Shapes[name]
}

// --- Built-in builders ---

func init() {
	RegisterShape("point", "point", buildPoint)
	RegisterShape("point", "hollow-point", buildHollowPoint)
	RegisterShape("interval", "interval", buildInterval)
	RegisterShape("interval", "rect", buildInterval)
	RegisterShape("line", "line", buildLine)
	RegisterShape("area", "area", buildArea)
}

func buildPoint(f *Factory, m *Model) *Shape {
	attrs := resolveShapeStyle(f.themeDefaults("point"), m, "fill", "r")
	attrs["x"] = m.X
	attrs["y"] = m.Y
	return NewLeaf("", ShapeCircle, attrs)
}

func buildHollowPoint(f *Factory, m *Model) *Shape {
	attrs := resolveShapeStyle(f.themeDefaults("hollow-point"), m, "stroke", "r")
	attrs["x"] = m.X
	attrs["y"] = m.Y
	return NewLeaf("", ShapeCircle, attrs)
}

// buildInterval renders a bar. The model's first two points are opposite
// corners; with fewer than two points nothing is rendered.
func buildInterval(f *Factory, m *Model) *Shape {
	if len(m.Points) < 2 {
		return nil
	}
	a, b := m.Points[0], m.Points[1]
	attrs := resolveShapeStyle(f.themeDefaults("interval"), m, "fill", "width")
	attrs["x"] = min(a.X, b.X)
	attrs["y"] = min(a.Y, b.Y)
	if _, ok := attrs["width"]; !ok {
		attrs["width"] = max(a.X, b.X) - min(a.X, b.X)
	}
	attrs["height"] = max(a.Y, b.Y) - min(a.Y, b.Y)
	return NewLeaf("", ShapeRect, attrs)
}

// buildLine renders a point sequence. Gap markers (NaN) split the line
// into segments unless the model connects nulls; multiple segments become
// a group of polylines so reconciliation sees a stable tree per model.
func buildLine(f *Factory, m *Model) *Shape {
	segs := splitPoints(m.Points, m.ConnectNulls)
	if len(segs) == 0 {
		return nil
	}
	attrs := resolveShapeStyle(f.themeDefaults("line"), m, "stroke", "lineWidth")
	if len(segs) == 1 {
		attrs["points"] = closeLoop(segs[0], m.InCircle)
		return NewLeaf("", ShapePolyline, attrs)
	}
	g := NewGroup("")
	for _, seg := range segs {
		segAttrs := attrs.Clone()
		segAttrs["points"] = closeLoop(seg, m.InCircle)
		g.AddChild(NewLeaf("", ShapePolyline, segAttrs))
	}
	return g
}

// buildArea renders a filled region with a stroked top edge: a group of
// a polygon leaf named "fill" and a polyline leaf named "edge".
func buildArea(f *Factory, m *Model) *Shape {
	segs := splitPoints(m.Points, true)
	if len(segs) == 0 {
		return nil
	}
	pts := closeLoop(segs[0], m.InCircle)

	fillAttrs := resolveShapeStyle(f.themeDefaults("area"), m, "fill", "lineWidth")
	edgeAttrs := Attrs{
		"points":    pts,
		"stroke":    fillAttrs["stroke"],
		"lineWidth": fillAttrs["lineWidth"],
	}
	delete(fillAttrs, "stroke")
	delete(fillAttrs, "lineWidth")
	fillAttrs["points"] = pts

	g := NewGroup("")
	g.AddChild(NewLeaf("fill", ShapePolygon, fillAttrs))
	g.AddChild(NewLeaf("edge", ShapePolyline, edgeAttrs))
	return g
}

// splitPoints drops gap markers and, unless connectNulls, splits the
// sequence at each gap. Segments shorter than two points are dropped.
func splitPoints(points []Vec2, connectNulls bool) [][]Vec2 {
	var segs [][]Vec2
	var cur []Vec2
	flush := func() {
		if len(cur) >= 2 {
			segs = append(segs, cur)
		}
		cur = nil
	}
	for _, p := range points {
		if isMissing(p) {
			if !connectNulls {
				flush()
			}
			continue
		}
		cur = append(cur, p)
	}
	flush()
	return segs
}

// closeLoop appends the first point when the model sits on a circular
// coordinate, closing the ring.
func closeLoop(pts []Vec2, inCircle bool) []Vec2 {
	if !inCircle || len(pts) < 2 {
		return pts
	}
	out := make([]Vec2, len(pts)+1)
	copy(out, pts)
	out[len(pts)] = pts[0]
	return out
}
