package aspen

import "math"

// Model is the per-draw instruction set for one data unit: which shape to
// build, where, and with what styling. Models are produced upstream (by
// whatever maps data space to screen space) and consumed here; the element
// treats the latest model as the single source of truth, so attributes
// omitted by a new model do not carry over from the previous one.
type Model struct {
	// Shape holds the shape-type name, or an ordered list of candidates
	// of which the first is canonical. Empty means the factory's default.
	Shape []string

	// Style is the caller's explicit attribute override; DefaultStyle sits
	// beneath it (and beneath the color/size shorthand) in the merge order.
	Style        Attrs
	DefaultStyle Attrs

	// Color and Size are shorthand: each builder maps them onto the
	// attribute that makes sense for its shape kind. A nil Size means
	// "not specified" rather than zero.
	Color string
	Size  *float64

	// Geometry, already in screen space.
	X, Y   float64
	Points []Vec2

	// Datum is the raw data record this model was derived from.
	Datum any

	// ConnectNulls controls gap handling in point sequences: when false a
	// missing point (NaN Y) splits the line into segments, when true it is
	// skipped and the neighbors connect.
	ConnectNulls bool

	// InCircle marks models laid out on a circular coordinate; sequence
	// builders close the loop back to the first point.
	InCircle bool

	// Hidden marks the element invisible immediately after drawing.
	Hidden bool
}

// shapeName returns the canonical shape-type name, or fallback when the
// model does not specify one.
func (m *Model) shapeName(fallback string) string {
	if len(m.Shape) > 0 && m.Shape[0] != "" {
		return m.Shape[0]
	}
	return fallback
}

// MissingY is the Y value marking a missing point in Model.Points.
var MissingY = math.NaN()

// isMissing reports whether a point is a gap marker.
func isMissing(p Vec2) bool {
	return math.IsNaN(p.Y) || math.IsNaN(p.X)
}
