// Package aspen is a data-bound element engine for retained-mode scene
// graphs, built for [Ebitengine].
//
// Aspen renders one logical data unit (a point, a bar, a line, a grouped
// shape cluster) as an [Element] owning a tree of [Shape] nodes, and keeps
// that rendering synchronized across first draws, data updates, and
// independently togglable interaction states (active, selected, inactive,
// or any custom name) — each stylable through a [Theme] and animatable
// through tween transitions (via [gween]).
//
// # Quick start
//
//	scene := aspen.NewScene()
//	factory := &aspen.Factory{
//		GeometryType: "point",
//		Coordinate:   "rect",
//		Theme:        aspen.DefaultTheme(),
//	}
//	el := aspen.NewElement(aspen.ElementConfig{
//		Factory:   factory,
//		Container: scene.Root(),
//		Animator:  scene.Animator(),
//		Animate:   true,
//	})
//	el.Draw(&aspen.Model{
//		Shape: []string{"point"},
//		X:     120, Y: 80,
//		Color: "#1890ff",
//		Datum: map[string]any{"city": "Tokyo", "temp": 21.5},
//	}, false)
//
// Subsequent data arrives through [Element.Update]; interaction toggles
// through [Element.SetState]. Both rebuild a throwaway shape tree on an
// off-screen scratch container, diff it against the live tree, and apply
// the attribute delta — tweened when animation is configured, synchronous
// otherwise. Pump [Animator.Update] (or [Scene.Update]) every frame.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package aspen
