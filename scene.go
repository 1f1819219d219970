package aspen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene bundles a root container and an animator into the minimal host an
// element-based chart needs: call Update every tick and Draw every frame
// from the ebiten game loop.
type Scene struct {
	root     *Shape
	animator *Animator

	// ClearColor fills the screen before drawing. The zero value skips
	// clearing.
	ClearColor color.NRGBA
}

// NewScene creates a scene with a pre-created root container and a fresh
// animator.
func NewScene() *Scene {
	return &Scene{
		root:     NewGroup("root"),
		animator: NewAnimator(),
	}
}

// Root returns the scene's root container shape.
func (s *Scene) Root() *Shape {
	return s.root
}

// Animator returns the scene's animator, for wiring into ElementConfig.
func (s *Scene) Animator() *Animator {
	return s.animator
}

// Update advances running tweens by one tick.
func (s *Scene) Update() {
	s.animator.Update(float32(1.0 / float64(ebiten.TPS())))
}

// Draw renders the scene tree onto the screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor)
	}
	DrawTree(screen, s.root)
}
