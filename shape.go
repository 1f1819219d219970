package aspen

// --- ID counter ---

// shapeIDCounter is a plain counter (no atomic — aspen is single-threaded).
var shapeIDCounter uint32

func nextShapeID() uint32 {
	shapeIDCounter++
	return shapeIDCounter
}

// --- Shape ---

// Shape is the scene graph node. A single flat struct is used for groups
// and every leaf kind to avoid interface dispatch on the hot path; Type
// selects measurement and rendering behavior.
//
// Drawable appearance lives entirely in the attribute map (fill, stroke,
// r, x, y, width, height, points, opacity, ...), which is what element
// reconciliation diffs and what tweens mutate.
type Shape struct {
	// Identity
	ID   uint32
	Name string
	Type ShapeType

	// Hierarchy
	Parent   *Shape
	children []*Shape

	// Drawable attributes
	attrs Attrs

	// Generic key-value tag store (back-references, user data)
	tags map[string]any

	// Visibility
	visible bool

	// Event listeners, keyed by event name. Events bubble to ancestors.
	listeners map[string][]EventHandler

	// Internal
	disposed bool
}

// shapeDefaults sets the common default field values shared by all constructors.
func shapeDefaults(s *Shape) {
	s.ID = nextShapeID()
	s.visible = true
}

// NewGroup creates a group shape with no drawable attributes of its own.
func NewGroup(name string) *Shape {
	s := &Shape{Name: name, Type: ShapeGroup}
	shapeDefaults(s)
	return s
}

// NewLeaf creates a leaf shape of the given kind with the given attributes.
// The attribute map is taken over by the shape; callers must not retain it.
func NewLeaf(name string, kind ShapeType, attrs Attrs) *Shape {
	if kind == ShapeGroup {
		panic("aspen: NewLeaf called with ShapeGroup; use NewGroup")
	}
	if attrs == nil {
		attrs = Attrs{}
	}
	s := &Shape{Name: name, Type: kind, attrs: attrs}
	shapeDefaults(s)
	return s
}

// IsGroup reports whether this shape is a group node.
func (s *Shape) IsGroup() bool {
	return s.Type == ShapeGroup
}

// --- Attributes ---

// Attr returns the value of a single attribute, or nil if unset.
func (s *Shape) Attr(key string) any {
	return s.attrs[key]
}

// AttrFloat returns a numeric attribute coerced to float64.
// Unset or non-numeric attributes return the given fallback.
func (s *Shape) AttrFloat(key string, fallback float64) float64 {
	if v, ok := toFloat(s.attrs[key]); ok {
		return v
	}
	return fallback
}

// SetAttr sets a single attribute.
func (s *Shape) SetAttr(key string, value any) {
	if s.attrs == nil {
		s.attrs = Attrs{}
	}
	s.attrs[key] = value
}

// SetAttrs merges the given attributes over the shape's current ones.
func (s *Shape) SetAttrs(attrs Attrs) {
	if s.attrs == nil {
		s.attrs = Attrs{}
	}
	for k, v := range attrs {
		s.attrs[k] = v
	}
}

// DeleteAttr removes an attribute entirely (distinct from setting a zero value).
func (s *Shape) DeleteAttr(key string) {
	delete(s.attrs, key)
}

// Attrs returns the live attribute map. The returned map MUST NOT be
// mutated by the caller; use SetAttr/SetAttrs/DeleteAttr instead.
func (s *Shape) Attrs() Attrs {
	return s.attrs
}

// --- Tags ---

// SetTag stores an arbitrary value under key in the shape's tag store.
func (s *Shape) SetTag(key string, value any) {
	if s.tags == nil {
		s.tags = map[string]any{}
	}
	s.tags[key] = value
}

// Tag returns the value stored under key, or nil.
func (s *Shape) Tag(key string) any {
	return s.tags[key]
}

// --- Tree manipulation ---

// AddChild appends child to this shape's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, this shape is not a group, or adding would
// create a cycle.
func (s *Shape) AddChild(child *Shape) {
	if child == nil {
		panic("aspen: cannot add nil child")
	}
	if !s.IsGroup() {
		panic("aspen: cannot add a child to a leaf shape")
	}
	if isAncestor(child, s) {
		panic("aspen: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = s
	s.children = append(s.children, child)
}

// RemoveChild detaches child from this shape.
// Panics if child.Parent != s.
func (s *Shape) RemoveChild(child *Shape) {
	if child.Parent != s {
		panic("aspen: child's parent is not this shape")
	}
	s.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildren detaches all children. Children are NOT disposed.
func (s *Shape) RemoveChildren() {
	for _, child := range s.children {
		child.Parent = nil
	}
	s.children = s.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated
// by the caller.
func (s *Shape) Children() []*Shape {
	return s.children
}

// NumChildren returns the number of children.
func (s *Shape) NumChildren() int {
	return len(s.children)
}

// ChildAt returns the child at the given index.
func (s *Shape) ChildAt(index int) *Shape {
	return s.children[index]
}

// Index returns this shape's position among its siblings, or -1 if detached.
func (s *Shape) Index() int {
	if s.Parent == nil {
		return -1
	}
	for i, c := range s.Parent.children {
		if c == s {
			return i
		}
	}
	return -1
}

// ToFront moves this shape to the last position among its siblings, so it
// paints above them. No-op if detached or already frontmost.
func (s *Shape) ToFront() {
	p := s.Parent
	if p == nil {
		return
	}
	p.removeChildByPtr(s)
	p.children = append(p.children, s)
}

// ToBack moves this shape to the first position among its siblings, so it
// paints below them. No-op if detached or already backmost.
func (s *Shape) ToBack() {
	p := s.Parent
	if p == nil {
		return
	}
	p.removeChildByPtr(s)
	p.children = append(p.children, nil)
	copy(p.children[1:], p.children)
	p.children[0] = s
}

// --- Visibility ---

// Show makes the shape (and, transitively, its subtree) renderable again.
func (s *Shape) Show() {
	s.visible = true
}

// Hide makes the shape invisible without detaching it. Hidden shapes keep
// their attributes and children and continue to accept attribute changes.
func (s *Shape) Hide() {
	s.visible = false
}

// Visible reports the shape's own visibility flag.
func (s *Shape) Visible() bool {
	return s.visible
}

// --- Events ---

// On registers a handler for the named event on this shape. Events raised
// on descendants bubble up through ancestors, so container-level listeners
// observe their whole subtree.
func (s *Shape) On(event string, fn EventHandler) {
	if s.listeners == nil {
		s.listeners = map[string][]EventHandler{}
	}
	s.listeners[event] = append(s.listeners[event], fn)
}

// Emit raises the named event on this shape and then on each ancestor in
// turn. ev.Target is set to this shape if unset.
func (s *Shape) Emit(event string, ev *Event) {
	if ev.Target == nil {
		ev.Target = s
	}
	for n := s; n != nil; n = n.Parent {
		for _, fn := range n.listeners[event] {
			fn(ev)
		}
	}
}

// --- Removal & disposal ---

// Remove detaches this shape from its parent. When dispose is true the
// whole subtree is disposed as well; when false the shape stays usable
// and can be re-attached.
func (s *Shape) Remove(dispose bool) {
	if s.Parent != nil {
		s.Parent.RemoveChild(s)
	}
	if dispose {
		s.dispose()
	}
}

// Dispose removes this shape from its parent, marks it as disposed, and
// recursively disposes all descendants.
func (s *Shape) Dispose() {
	if s.disposed {
		return
	}
	s.Remove(true)
}

func (s *Shape) dispose() {
	s.disposed = true
	s.ID = 0
	for _, child := range s.children {
		child.Parent = nil
		child.dispose()
	}
	s.children = nil
	s.Parent = nil
	s.attrs = nil
	s.tags = nil
	s.listeners = nil
}

// IsDisposed returns true if this shape has been disposed.
func (s *Shape) IsDisposed() bool {
	return s.disposed
}

// --- Bounding boxes ---

// BBox returns the shape's axis-aligned bounding box in container
// coordinates (attributes carry absolute positions; there is no transform
// hierarchy). Group boxes are the union of their visible children; an
// empty or invisible subtree yields a zero box.
func (s *Shape) BBox() BBox {
	box, _ := s.bbox()
	return box
}

func (s *Shape) bbox() (BBox, bool) {
	if s.IsGroup() {
		var acc BBox
		found := false
		for _, child := range s.children {
			if !child.visible {
				continue
			}
			b, ok := child.bbox()
			if !ok {
				continue
			}
			if !found {
				acc = b
				found = true
			} else {
				acc = acc.Union(b)
			}
		}
		return acc, found
	}
	switch s.Type {
	case ShapeCircle:
		x := s.AttrFloat("x", 0)
		y := s.AttrFloat("y", 0)
		r := s.AttrFloat("r", 0)
		return bboxFromExtents(x-r, y-r, x+r, y+r), true
	case ShapeRect:
		x := s.AttrFloat("x", 0)
		y := s.AttrFloat("y", 0)
		w := s.AttrFloat("width", 0)
		h := s.AttrFloat("height", 0)
		return bboxFromExtents(x, y, x+w, y+h), true
	case ShapePolyline, ShapePolygon:
		pts, _ := s.attrs["points"].([]Vec2)
		if len(pts) == 0 {
			return BBox{}, false
		}
		minX, minY := pts[0].X, pts[0].Y
		maxX, maxY := pts[0].X, pts[0].Y
		for _, p := range pts[1:] {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
		return bboxFromExtents(minX, minY, maxX, maxY), true
	case ShapeText:
		// Text metrics live in the renderer; report the anchor point.
		x := s.AttrFloat("x", 0)
		y := s.AttrFloat("y", 0)
		return bboxFromExtents(x, y, x, y), true
	default:
		return BBox{}, false
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of shape.
func isAncestor(candidate, shape *Shape) bool {
	for p := shape; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from s.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (s *Shape) removeChildByPtr(child *Shape) {
	for i, c := range s.children {
		if c == child {
			copy(s.children[i:], s.children[i+1:])
			s.children[len(s.children)-1] = nil
			s.children = s.children[:len(s.children)-1]
			return
		}
	}
}

// eachLeaf calls fn for every leaf in the subtree rooted at s, in
// flattened positional order.
func eachLeaf(s *Shape, fn func(*Shape)) {
	if s.IsGroup() {
		for _, child := range s.children {
			eachLeaf(child, fn)
		}
		return
	}
	fn(s)
}
