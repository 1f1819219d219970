package aspen

import "strconv"

// syncTree reconciles the live shape tree against a freshly built target
// tree: groups recurse pairwise over children in positional order (there
// is no key-based diffing), leaves compute and apply the attribute delta
// that turns the live leaf into the target leaf.
//
// state, when non-empty, names the state whose style overrides are layered
// onto the target leaves before diffing. cfg, when non-nil, hands deltas
// to the animator as transition targets; noAnim forces synchronous
// application (a state that explicitly disables animation).
//
// The two trees are expected to be structurally parallel — the same shape
// type produces the same tree shape for compatible models. A child-count
// mismatch reconciles the common prefix and logs a warning; keeping the
// shape-type-to-tree-shape mapping stable per model is the caller's
// contract.
func (e *Element) syncTree(src, dst *Shape, state string, cfg *AnimConfig, noAnim bool) {
	// The flattened leaf index spans the whole traversal, not one group:
	// theme state styles key unnamed leaves by flat leaf order.
	idx := 0
	e.syncNode(src, dst, state, cfg, noAnim, &idx)
}

func (e *Element) syncNode(src, dst *Shape, state string, cfg *AnimConfig, noAnim bool, idx *int) {
	if src.IsGroup() {
		n := src.NumChildren()
		if m := dst.NumChildren(); m != n {
			logger.Warn().
				Int("live", n).
				Int("target", m).
				Str("geometry", e.factory.GeometryType).
				Msg("reconcile: child count mismatch, pairing common prefix")
			if m < n {
				n = m
			}
		}
		for i := 0; i < n; i++ {
			e.syncNode(src.ChildAt(i), dst.ChildAt(i), state, cfg, noAnim, idx)
		}
		return
	}

	if state != "" {
		key := src.Name
		if key == "" {
			key = strconv.Itoa(*idx)
		}
		if opt, ok := e.stateOption(state); ok {
			if ss, ok := opt.styleFor(key); ok {
				dst.SetAttrs(ss.Resolve(e))
			}
		}
	}
	*idx++

	changed, removed := attrDelta(src.Attrs(), dst.Attrs())
	if len(changed) == 0 && len(removed) == 0 {
		return
	}

	switch {
	case cfg != nil:
		e.animator.Animate(src, changed, removed, cfg)
	case noAnim:
		applyAttrs(src, changed, removed)
	case e.canAnimate():
		// Starting the tween implicitly stops one already running on
		// this leaf (a state change or update arriving mid-animation).
		ambient := stateTransitionConfig
		e.animator.Animate(src, changed, removed, &ambient)
	default:
		applyAttrs(src, changed, removed)
	}
}
