package aspen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition kinds, in the order an element's lifecycle meets them.
const (
	AnimAppear = "appear" // first draw with no prior visible state
	AnimEnter  = "enter"  // draw replacing a prior state during an update-triggered redraw
	AnimUpdate = "update" // attribute transition on a data update
	AnimLeave  = "leave"  // removal transition on destroy
)

// Effects understood by the animator for appear/leave transitions.
const (
	EffectFadeIn  = "fadeIn"
	EffectFadeOut = "fadeOut"
)

// AnimConfig describes one transition. Zero fields mean "use the value
// from the built-in default for this kind" when the config is a user
// override, so partial configs compose per-field.
type AnimConfig struct {
	Duration float32 `yaml:"duration"` // seconds
	Delay    float32 `yaml:"delay"`    // seconds before the tween starts
	Easing   string  `yaml:"easing"`   // name into the easing table; "" = quadOut
	Effect   string  `yaml:"effect"`   // appear/leave effect; "" = plain attribute tween
}

// AnimateOption is the per-element user animation configuration, keyed by
// transition kind. A kind missing from the map falls back to the built-in
// default; a kind present with a nil config is explicitly disabled.
type AnimateOption map[string]*AnimConfig

// --- Easing table ---

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"quadIn":     ease.InQuad,
	"quadOut":    ease.OutQuad,
	"quadInOut":  ease.InOutQuad,
	"cubicIn":    ease.InCubic,
	"cubicOut":   ease.OutCubic,
	"cubicInOut": ease.InOutCubic,
	"elasticOut": ease.OutElastic,
	"backOut":    ease.OutBack,
	"bounceOut":  ease.OutBounce,
}

// easingFunc resolves an easing name, defaulting to quadOut for unknown
// or empty names.
func easingFunc(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.OutQuad
}

// --- Built-in defaults ---

// baseAnimDefaults applies to every geometry/coordinate combination unless
// a more specific entry overrides it.
var baseAnimDefaults = map[string]AnimConfig{
	AnimAppear: {Duration: 0.45, Easing: "quadOut", Effect: EffectFadeIn},
	AnimEnter:  {Duration: 0.3, Easing: "quadOut", Effect: EffectFadeIn},
	AnimUpdate: {Duration: 0.3, Easing: "quadOut"},
	AnimLeave:  {Duration: 0.3, Easing: "quadIn", Effect: EffectFadeOut},
}

// geomAnimDefaults refines the base defaults per geometry type, and per
// geometry/coordinate pair (keyed "geometry/coordinate", which wins over
// the bare geometry key).
var geomAnimDefaults = map[string]map[string]AnimConfig{
	"interval": {
		AnimAppear: {Duration: 0.6, Easing: "backOut", Effect: EffectFadeIn},
	},
	"interval/polar": {
		AnimAppear: {Duration: 0.6, Easing: "bounceOut", Effect: EffectFadeIn},
	},
	"line": {
		AnimAppear: {Duration: 0.6, Easing: "quadOut", Effect: EffectFadeIn},
	},
	"area": {
		AnimAppear: {Duration: 0.6, Easing: "quadOut", Effect: EffectFadeIn},
	},
}

// defaultAnimConfig returns the built-in default for a transition, or nil
// when no default exists for the combination.
func defaultAnimConfig(geometryType, coordinate, kind string) *AnimConfig {
	cfg, ok := baseAnimDefaults[kind]
	if byGeom, found := geomAnimDefaults[geometryType]; found {
		if c, found := byGeom[kind]; found {
			cfg, ok = c, true
		}
	}
	if byPair, found := geomAnimDefaults[geometryType+"/"+coordinate]; found {
		if c, found := byPair[kind]; found {
			cfg, ok = c, true
		}
	}
	if !ok {
		return nil
	}
	out := cfg
	return &out
}

// resolveAnimConfig runs the full precedence chain for one transition:
// ambient switch off means no animation; an explicit nil entry in the user
// option means no animation; otherwise the built-in default for the
// (geometry, coordinate, kind) combination merged with the user override,
// user fields winning; no default and no override means no animation.
func resolveAnimConfig(opt AnimateOption, geometryType, coordinate, kind string, ambientOn bool) *AnimConfig {
	if !ambientOn {
		return nil
	}
	user, declared := opt[kind]
	if declared && user == nil {
		return nil
	}
	def := defaultAnimConfig(geometryType, coordinate, kind)
	if def == nil {
		if user == nil {
			return nil
		}
		out := *user
		return &out
	}
	out := *def
	if user != nil {
		if user.Duration != 0 {
			out.Duration = user.Duration
		}
		if user.Delay != 0 {
			out.Delay = user.Delay
		}
		if user.Easing != "" {
			out.Easing = user.Easing
		}
		if user.Effect != "" {
			out.Effect = user.Effect
		}
	}
	return &out
}

// stateTransitionConfig is the fixed-duration tween used when a state
// toggle or reconciliation pass has no explicit config but the ambient
// animation policy is on.
var stateTransitionConfig = AnimConfig{Duration: 0.3, Easing: "quadOut"}

// --- Animator ---

// Animator drives attribute tweens on shapes. There is no global
// animation manager — users call Update themselves each frame (or let
// Scene.Update do it). Starting a tween on a shape stops any tween
// already running on that shape; a disposed shape's tween stops on the
// next Update without writing.
type Animator struct {
	active map[*Shape]*attrTween
}

// NewAnimator creates an empty animator.
func NewAnimator() *Animator {
	return &Animator{active: map[*Shape]*attrTween{}}
}

// attrTween tweens the numeric attributes of one shape toward a target set.
type attrTween struct {
	shape      *Shape
	keys       []string
	tweens     []*gween.Tween
	delay      float32
	onComplete func()
}

// Animate transitions shape's attributes to the changed set and removes
// the removed keys. Numeric attributes interpolate over cfg's duration;
// non-numeric values and removals apply immediately at start (tweens only
// make sense over numbers). Fire-and-forget: the visual catch-up happens
// over subsequent Update calls.
func (a *Animator) Animate(shape *Shape, changed Attrs, removed []string, cfg *AnimConfig) {
	a.animate(shape, changed, removed, cfg, nil)
}

func (a *Animator) animate(shape *Shape, changed Attrs, removed []string, cfg *AnimConfig, onComplete func()) {
	a.StopAnimate(shape)

	for _, k := range removed {
		shape.DeleteAttr(k)
	}

	if cfg == nil {
		shape.SetAttrs(changed)
		if onComplete != nil {
			onComplete()
		}
		return
	}

	fn := easingFunc(cfg.Easing)
	t := &attrTween{shape: shape, delay: cfg.Delay, onComplete: onComplete}
	for k, v := range changed {
		to, ok := toFloat(v)
		if !ok {
			shape.SetAttr(k, v)
			continue
		}
		from := shape.AttrFloat(k, 0)
		t.keys = append(t.keys, k)
		t.tweens = append(t.tweens, gween.New(float32(from), float32(to), cfg.Duration, fn))
	}

	if len(t.tweens) == 0 {
		if onComplete != nil {
			onComplete()
		}
		return
	}
	a.active[shape] = t
}

// StopAnimate cancels any in-flight tween on shape synchronously, leaving
// attributes at their current mid-transition values.
func (a *Animator) StopAnimate(shape *Shape) {
	delete(a.active, shape)
}

// Animating reports whether a tween is currently running on shape.
func (a *Animator) Animating(shape *Shape) bool {
	_, ok := a.active[shape]
	return ok
}

// Len returns the number of shapes with a running tween.
func (a *Animator) Len() int {
	return len(a.active)
}

// Update advances every running tween by dt seconds and writes the values
// into the shape attributes. Completed tweens land exactly on their target
// and fire their completion callback. Tweens whose shape has been disposed
// are dropped without writing.
func (a *Animator) Update(dt float32) {
	var finished []*Shape
	for shape, t := range a.active {
		if shape.IsDisposed() {
			finished = append(finished, shape)
			continue
		}
		step := dt
		if t.delay > 0 {
			t.delay -= dt
			if t.delay > 0 {
				continue
			}
			// Spend the overshoot on the first tween step.
			step = -t.delay
			t.delay = 0
			if step == 0 {
				continue
			}
		}
		allDone := true
		for i, tw := range t.tweens {
			val, done := tw.Update(step)
			shape.SetAttr(t.keys[i], float64(val))
			if !done {
				allDone = false
			}
		}
		if allDone {
			finished = append(finished, shape)
			if t.onComplete != nil {
				t.onComplete()
			}
		}
	}
	for _, shape := range finished {
		delete(a.active, shape)
	}
}

// --- Lifecycle effects ---

// Appear plays the entrance transition on a freshly built shape tree: each
// leaf starts fully transparent and tweens to the opacity its attributes
// already carry (default 1).
func (a *Animator) Appear(root *Shape, cfg *AnimConfig) {
	eachLeaf(root, func(leaf *Shape) {
		target := leaf.AttrFloat("opacity", 1)
		leaf.SetAttr("opacity", 0.0)
		a.animate(leaf, Attrs{"opacity": target}, nil, cfg, nil)
	})
}

// Leave plays the removal transition on a shape tree and removes and
// disposes the tree once every leaf has finished fading. With no leaves
// the tree is removed immediately.
func (a *Animator) Leave(root *Shape, cfg *AnimConfig) {
	var leaves []*Shape
	eachLeaf(root, func(leaf *Shape) { leaves = append(leaves, leaf) })
	if len(leaves) == 0 {
		root.Remove(true)
		return
	}
	remaining := len(leaves)
	done := func() {
		remaining--
		if remaining == 0 {
			root.Remove(true)
		}
	}
	for _, leaf := range leaves {
		a.animate(leaf, Attrs{"opacity": 0.0}, nil, cfg, done)
	}
}
