package aspen

import "slices"

// Tag keys for the back-references annotated onto every node of an
// element's live shape tree after each rebuild. Event delegation and
// introspection code reads these off the shape it hit.
const (
	TagElement = "element"
	TagOrigin  = "origin"
)

// ElementConfig wires an element to its collaborators at construction.
type ElementConfig struct {
	// Factory builds shape trees from models (required).
	Factory *Factory

	// Container is the live scene group the element renders into (required).
	Container *Shape

	// Animator drives tween transitions. Optional; without one the
	// element applies every change synchronously.
	Animator *Animator

	// Animate is the ambient animation switch for this element's
	// geometry. Ignored (treated as off) when Animator is nil.
	Animate bool

	// AnimateOption is the user's per-kind animation configuration,
	// resolved against the built-in defaults for the factory's
	// geometry/coordinate pair.
	AnimateOption AnimateOption

	// States declares element-level state styles, consulted before the
	// theme's. Keyed by state name.
	States map[string]StateOption
}

// Element owns exactly one rendered shape tree for one data unit and
// orchestrates draw, update, state toggling, and destroy over it.
type Element struct {
	factory   *Factory
	container *Shape
	animator  *Animator

	animate    bool
	animOption AnimateOption
	stateOpts  map[string]StateOption

	model     *Model
	datum     any
	shapeType string

	shape  *Shape
	labels []*Shape

	// states is the ordered active-state set: insertion order is
	// activation order, duplicates are forbidden.
	states []string

	visible bool

	// scratch hosts throwaway shape builds for diffing. Lazily created,
	// never attached to the live tree, reused across every update/state
	// call on this element.
	scratch *Shape

	destroyed bool
}

// NewElement creates an element bound to a factory, a container, and an
// animation context. The element renders nothing until Draw.
func NewElement(cfg ElementConfig) *Element {
	if cfg.Factory == nil {
		panic("aspen: ElementConfig.Factory is required")
	}
	if cfg.Container == nil {
		panic("aspen: ElementConfig.Container is required")
	}
	return &Element{
		factory:    cfg.Factory,
		container:  cfg.Container,
		animator:   cfg.Animator,
		animate:    cfg.Animate && cfg.Animator != nil,
		animOption: cfg.AnimateOption,
		stateOpts:  cfg.States,
		visible:    true,
	}
}

// --- Accessors ---

// Shape returns the live shape tree, or nil before the first draw and
// after destroy.
func (e *Element) Shape() *Shape { return e.shape }

// Container returns the live scene group the element renders into.
func (e *Element) Container() *Shape { return e.container }

// Model returns the last model passed to Draw or Update.
func (e *Element) Model() *Model { return e.model }

// Data returns the raw datum of the last model.
func (e *Element) Data() any { return e.datum }

// Visible reports the element's visibility flag.
func (e *Element) Visible() bool { return e.visible }

// Destroyed reports whether Destroy has run.
func (e *Element) Destroyed() bool { return e.destroyed }

// HasState reports whether the named state is currently active.
func (e *Element) HasState(name string) bool {
	return slices.Contains(e.states, name)
}

// States returns the active state names in activation order. The returned
// slice is a copy.
func (e *Element) States() []string {
	return slices.Clone(e.states)
}

// AttachLabels associates label shapes with the element. Labels are built
// and owned by an external label layer; the element only folds them into
// visibility toggles and bounding-box queries.
func (e *Element) AttachLabels(labels ...*Shape) {
	e.labels = append(e.labels, labels...)
}

// Labels returns the attached label shapes. The returned slice MUST NOT
// be mutated by the caller.
func (e *Element) Labels() []*Shape { return e.labels }

// BBox returns the union of the shape tree's bounding box and every
// attached label's box. A shape-less element with no labels reports a
// zero box.
func (e *Element) BBox() BBox {
	var acc BBox
	found := false
	add := func(b BBox) {
		if !found {
			acc = b
			found = true
		} else {
			acc = acc.Union(b)
		}
	}
	if e.shape != nil {
		add(e.shape.BBox())
	}
	for _, l := range e.labels {
		add(l.BBox())
	}
	return acc
}

// --- Lifecycle ---

// Draw performs the first render of a model: builds the shape tree on the
// live container, annotates it, and plays the entrance transition when
// one is configured. isUpdate selects the enter transition (redraw during
// a data update) over appear (true first render).
//
// A factory that returns nothing leaves the element shape-less; Update
// and SetState then no-op until a future Draw supplies a shape.
func (e *Element) Draw(m *Model, isUpdate bool) {
	e.model = m
	e.datum = m.Datum
	e.shapeType = m.shapeName(defaultShapeName(e.factory.GeometryType))
	e.destroyed = false

	shape := e.factory.DrawShape(e.shapeType, m, e.container)
	e.shape = shape
	if shape == nil {
		return
	}
	e.annotate(shape, m)

	kind := AnimAppear
	if isUpdate {
		kind = AnimEnter
	}
	if cfg := e.animConfig(kind); cfg != nil {
		e.animator.Appear(shape, cfg)
	}
	if m.Hidden {
		e.ChangeVisible(false)
	}
}

// Update re-renders the element from a new model. The live shape objects
// are reused: a scratch tree is built off-screen from the new model,
// diffed against the live tree, and discarded; only attributes move.
// A shape-type change swaps the owned shape instead (immediate removal,
// enter-draw of the replacement).
//
// No-op on a shape-less element — an element that never rendered cannot
// be updated.
func (e *Element) Update(m *Model) {
	if e.shape == nil {
		return
	}

	newType := m.shapeName(defaultShapeName(e.factory.GeometryType))
	if newType != e.shapeType {
		e.shape.Remove(true)
		e.shape = nil
		e.Draw(m, true)
		return
	}

	e.model = m
	e.datum = m.Datum
	// Re-annotate before the visual transition so in-flight consumers
	// already see the new model.
	e.annotate(e.shape, m)

	target := e.factory.DrawShape(newType, m, e.scratchGroup())
	if target == nil {
		return
	}
	e.syncTree(e.shape, target, "", e.animConfig(AnimUpdate), false)
	target.Remove(true)
}

// ChangeVisible toggles the element's visibility, showing or hiding the
// shape tree and every attached label. Styles, states, and the model are
// untouched; a hidden shape stays in the tree.
func (e *Element) ChangeVisible(v bool) {
	e.visible = v
	toggle := func(s *Shape) {
		if v {
			s.Show()
		} else {
			s.Hide()
		}
	}
	if e.shape != nil {
		toggle(e.shape)
	}
	for _, l := range e.labels {
		toggle(l)
	}
}

// Destroy tears the element down. With a leave transition configured the
// shape fades out and is removed when the tween completes; otherwise it
// is removed immediately. The state set is cleared unconditionally and
// the scratch container is disposed. Callers must not Draw again before
// a pending leave transition has removed the shape.
func (e *Element) Destroy() {
	if e.shape != nil {
		if cfg := e.animConfig(AnimLeave); cfg != nil {
			e.animator.Leave(e.shape, cfg)
		} else {
			e.shape.Remove(true)
		}
		e.shape = nil
	}
	if e.scratch != nil {
		e.scratch.Remove(true)
		e.scratch = nil
	}
	e.states = nil
	e.destroyed = true
}

// --- State management ---

// SetState toggles a named state. Enabling an already-enabled state (or
// disabling a disabled one) is a no-op. The active and selected states
// additionally raise the shape to the front of its container's paint
// order on enable and lower it to the back on disable.
//
// After the membership change, a scratch tree is rebuilt from the current
// model and reconciled against the live tree once per active state in
// activation order (later states win conflicting attributes), or once
// with no state to restore the base style when none remain. Emits a
// statechange event on the container, bubbling to ancestors.
//
// No-op on a shape-less element.
func (e *Element) SetState(name string, on bool) {
	if e.shape == nil {
		return
	}
	has := slices.Contains(e.states, name)
	if on == has {
		return
	}

	if on {
		e.states = append(e.states, name)
	} else {
		i := slices.Index(e.states, name)
		e.states = slices.Delete(e.states, i, i+1)
	}

	if name == StateActive || name == StateSelected {
		if on {
			e.shape.ToFront()
		} else {
			e.shape.ToBack()
		}
	}

	target := e.factory.DrawShape(e.shapeType, e.model, e.scratchGroup())
	if target != nil {
		if len(e.states) > 0 {
			for _, st := range e.states {
				cfg, off := e.stateAnimConfig(st)
				e.syncTree(e.shape, target, st, cfg, off)
			}
		} else {
			e.syncTree(e.shape, target, "", nil, false)
		}
		target.Remove(true)
	}

	logger.Debug().
		Str("state", name).
		Bool("status", on).
		Str("geometry", e.factory.GeometryType).
		Msg("element state change")

	e.container.Emit(EventStateChange, &Event{
		Name:        EventStateChange,
		State:       name,
		StateStatus: on,
		Element:     e,
		Target:      e.container,
	})
}

// ClearStates disables every active state, one at a time in current
// order, ending with an empty state set and base styling.
func (e *Element) ClearStates() {
	for _, name := range slices.Clone(e.states) {
		e.SetState(name, false)
	}
}

// stateOption resolves a state declaration: element-level overrides win
// over the theme's wholesale.
func (e *Element) stateOption(name string) (StateOption, bool) {
	if opt, ok := e.stateOpts[name]; ok {
		return opt, true
	}
	if e.factory.Theme != nil {
		return e.factory.Theme.stateOption(name)
	}
	return StateOption{}, false
}

// stateAnimConfig returns the transition override for a state toggle and
// whether the state explicitly disables animation.
func (e *Element) stateAnimConfig(name string) (*AnimConfig, bool) {
	opt, ok := e.stateOption(name)
	if !ok {
		return nil, false
	}
	if opt.AnimateOff {
		return nil, true
	}
	if opt.Animate != nil && e.canAnimate() {
		cfg := *opt.Animate
		return &cfg, false
	}
	return nil, false
}

// --- Internals ---

// canAnimate reports whether the ambient animation policy is on for this
// element.
func (e *Element) canAnimate() bool {
	return e.animate && e.animator != nil
}

// animConfig resolves the animation configuration for a transition kind
// through the full precedence chain.
func (e *Element) animConfig(kind string) *AnimConfig {
	return resolveAnimConfig(e.animOption, e.factory.GeometryType, e.factory.Coordinate, kind, e.canAnimate())
}

// annotate stamps the element and model back-references onto every node
// of a shape tree. Must run again after any rebuild.
func (e *Element) annotate(root *Shape, m *Model) {
	root.SetTag(TagElement, e)
	root.SetTag(TagOrigin, m)
	for _, child := range root.Children() {
		e.annotate(child, m)
	}
}

// scratchGroup returns the off-screen scratch container, creating it on
// first use. The scratch group is never attached to the live tree and is
// drained (its built tree disposed) at the end of every reconciliation
// pass, so reuse is safe as long as callers do not reenter update/state
// calls from reconciliation callbacks.
func (e *Element) scratchGroup() *Shape {
	if e.scratch == nil || e.scratch.IsDisposed() {
		e.scratch = NewGroup("scratch")
	}
	return e.scratch
}
