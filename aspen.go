package aspen

// Vec2 is a 2D point used for positions and polyline vertices.
type Vec2 struct {
	X, Y float64
}

// BBox is an axis-aligned bounding box. X/Y duplicate MinX/MinY and
// Width/Height are derived from the min/max extents, matching the shape
// the rest of the API reports boxes in.
type BBox struct {
	X, Y                   float64
	MinX, MinY, MaxX, MaxY float64
	Width, Height          float64
}

// bboxFromExtents builds a BBox with the derived fields filled in.
func bboxFromExtents(minX, minY, maxX, maxY float64) BBox {
	return BBox{
		X: minX, Y: minY,
		MinX: minX, MinY: minY,
		MaxX: maxX, MaxY: maxY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Union returns the smallest BBox containing both b and other.
func (b BBox) Union(other BBox) BBox {
	return bboxFromExtents(
		min(b.MinX, other.MinX),
		min(b.MinY, other.MinY),
		max(b.MaxX, other.MaxX),
		max(b.MaxY, other.MaxY),
	)
}

// ShapeType distinguishes how a Shape is measured and rendered.
type ShapeType uint8

const (
	ShapeGroup    ShapeType = iota // container node, no drawable attributes of its own
	ShapeCircle                    // x, y, r
	ShapeRect                      // x, y, width, height
	ShapePolyline                  // points, stroked
	ShapePolygon                   // points, filled (closed implicitly)
	ShapeText                      // x, y, text
)

// Built-in state names. SetState accepts any name; these two additionally
// adjust the shape's paint order within its container.
const (
	StateActive   = "active"
	StateSelected = "selected"
	StateInactive = "inactive"
)

// EventStateChange is the event name emitted on an Element's container
// after SetState changes the state membership set. It bubbles to ancestor
// containers.
const EventStateChange = "statechange"

// Event carries event data delivered to Shape listeners.
type Event struct {
	Name        string
	State       string   // state name, for statechange events
	StateStatus bool     // new on/off status of State
	Element     *Element // the element whose state changed
	Target      *Shape   // the shape the event was raised on
}

// EventHandler receives events raised on, or bubbled through, a Shape.
type EventHandler func(*Event)
