package aspen

import "reflect"

// Attrs is a flat drawable attribute set. Values are free-form; numeric
// values (stored as float64) are the ones tween transitions interpolate.
type Attrs map[string]any

// Clone returns a shallow copy of the attribute set.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge copies every entry of each overlay into a, later overlays winning.
// Returns a for chaining.
func (a Attrs) Merge(overlays ...Attrs) Attrs {
	for _, o := range overlays {
		for k, v := range o {
			a[k] = v
		}
	}
	return a
}

// toFloat coerces the numeric types an attribute value may arrive as
// (literal ints from user style maps, float64 from YAML, float32 from
// tween output) into float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// attrEqual compares two attribute values. Numeric values compare by
// float64 value so 5 and 5.0 are the same attribute; everything else
// falls back to reflect.DeepEqual (points slices, strings, bools).
func attrEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// attrDelta computes the mutation that turns src into dst: the changed
// set holds every attribute whose value in dst differs from src (including
// attributes new in dst), and removed lists every attribute present on src
// but absent from dst. Reconciliation depends on removals being explicit;
// an attribute dropped by a new model must not survive on the live shape.
func attrDelta(src, dst Attrs) (changed Attrs, removed []string) {
	for k, dv := range dst {
		if sv, ok := src[k]; !ok || !attrEqual(sv, dv) {
			if changed == nil {
				changed = Attrs{}
			}
			changed[k] = dv
		}
	}
	for k := range src {
		if _, ok := dst[k]; !ok {
			removed = append(removed, k)
		}
	}
	return changed, removed
}

// applyAttrs applies a delta to a shape synchronously.
func applyAttrs(s *Shape, changed Attrs, removed []string) {
	s.SetAttrs(changed)
	for _, k := range removed {
		s.DeleteAttr(k)
	}
}

// --- State styles ---

// StateStyle is a per-state style override: either a static attribute set
// or a function computing one from the element (the dynamic escape hatch
// for data-dependent state styling). When both are set, Build wins.
type StateStyle struct {
	Attrs Attrs
	Build func(*Element) Attrs
}

// Resolve evaluates the style against the element it is being applied to.
func (ss StateStyle) Resolve(el *Element) Attrs {
	if ss.Build != nil {
		return ss.Build(el)
	}
	return ss.Attrs
}

// StateOption declares how one named state styles and animates the leaves
// of an element's shape tree.
//
// Style is keyed by leaf identity: a leaf's declared Name when it has one,
// otherwise its position in the flattened leaf order of the whole tree
// (as a decimal string). The "*" key matches any leaf not matched by a
// more specific key.
//
// Animate overrides the transition used when this state toggles;
// AnimateOff disables animation for this state entirely (a stronger
// statement than a nil Animate, which defers to the ambient policy).
type StateOption struct {
	Style      map[string]StateStyle
	Animate    *AnimConfig
	AnimateOff bool
}

// styleFor returns the state style for a leaf key, falling back to "*".
func (so *StateOption) styleFor(key string) (StateStyle, bool) {
	if ss, ok := so.Style[key]; ok {
		return ss, true
	}
	ss, ok := so.Style["*"]
	return ss, ok
}

// resolveShapeStyle is the style resolver used by shape builders: theme
// defaults for the shape name, then the model's default style, then the
// color/size shorthand, then the model's explicit style, later layers
// winning per attribute. colorAttr and sizeAttr name where the shorthand
// lands for this shape kind (fill vs stroke, r vs lineWidth).
func resolveShapeStyle(defaults Attrs, m *Model, colorAttr, sizeAttr string) Attrs {
	out := Attrs{}
	out.Merge(defaults, m.DefaultStyle)
	if m.Color != "" {
		out[colorAttr] = m.Color
	}
	if m.Size != nil {
		out[sizeAttr] = *m.Size
	}
	out.Merge(m.Style)
	return out
}
