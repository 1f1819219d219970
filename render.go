package aspen

import (
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteSubImage is the texture source for polygon triangles. The 1px
// inset avoids bleeding at the texture border when antialiasing samples
// neighboring texels.
var whiteSubImage *ebiten.Image

func init() {
	whiteImage := ebiten.NewImage(3, 3)
	whiteImage.Fill(color.White)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// DrawTree renders a shape tree onto dst. Groups contribute nothing of
// their own; leaves draw from their attributes (fill, stroke, lineWidth,
// opacity, fillOpacity, strokeOpacity). Hidden subtrees are skipped.
// Text leaves are measured and drawn by the host application; this
// renderer ignores them.
func DrawTree(dst *ebiten.Image, root *Shape) {
	if !root.Visible() {
		return
	}
	if root.IsGroup() {
		for _, child := range root.Children() {
			DrawTree(dst, child)
		}
		return
	}
	drawLeaf(dst, root)
}

func drawLeaf(dst *ebiten.Image, s *Shape) {
	opacity := clamp01(s.AttrFloat("opacity", 1))
	if opacity == 0 {
		return
	}
	fillClr, hasFill := leafColor(s, "fill", "fillOpacity", opacity)
	strokeClr, hasStroke := leafColor(s, "stroke", "strokeOpacity", opacity)
	lineWidth := float32(s.AttrFloat("lineWidth", 1))

	switch s.Type {
	case ShapeCircle:
		cx := float32(s.AttrFloat("x", 0))
		cy := float32(s.AttrFloat("y", 0))
		r := float32(s.AttrFloat("r", 0))
		if r <= 0 {
			return
		}
		if hasFill {
			vector.DrawFilledCircle(dst, cx, cy, r, fillClr, true)
		}
		if hasStroke {
			vector.StrokeCircle(dst, cx, cy, r, lineWidth, strokeClr, true)
		}
	case ShapeRect:
		x := float32(s.AttrFloat("x", 0))
		y := float32(s.AttrFloat("y", 0))
		w := float32(s.AttrFloat("width", 0))
		h := float32(s.AttrFloat("height", 0))
		if w <= 0 || h <= 0 {
			return
		}
		if hasFill {
			vector.DrawFilledRect(dst, x, y, w, h, fillClr, true)
		}
		if hasStroke {
			vector.StrokeRect(dst, x, y, w, h, lineWidth, strokeClr, true)
		}
	case ShapePolyline:
		pts, _ := s.Attrs()["points"].([]Vec2)
		if len(pts) < 2 || !hasStroke {
			return
		}
		for i := 1; i < len(pts); i++ {
			vector.StrokeLine(dst,
				float32(pts[i-1].X), float32(pts[i-1].Y),
				float32(pts[i].X), float32(pts[i].Y),
				lineWidth, strokeClr, true)
		}
	case ShapePolygon:
		pts, _ := s.Attrs()["points"].([]Vec2)
		if len(pts) < 3 || !hasFill {
			return
		}
		fillPolygon(dst, pts, fillClr)
	}
}

// fillPolygon tessellates and fills a closed polygon via DrawTriangles.
func fillPolygon(dst *ebiten.Image, pts []Vec2, clr color.NRGBA) {
	var p vector.Path
	p.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	p.Close()

	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	a := float32(clr.A) / 255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		FillRule:       ebiten.FillRuleNonZero,
	}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

// leafColor resolves a paint attribute to a concrete color, folding in
// the per-paint opacity attribute and the shape opacity.
func leafColor(s *Shape, attr, opacityAttr string, opacity float64) (color.NRGBA, bool) {
	raw, _ := s.Attr(attr).(string)
	if raw == "" {
		return color.NRGBA{}, false
	}
	clr, ok := ParseColor(raw)
	if !ok {
		return color.NRGBA{}, false
	}
	alpha := opacity * clamp01(s.AttrFloat(opacityAttr, 1))
	clr.A = uint8(float64(clr.A) * alpha)
	return clr, clr.A > 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// namedColors covers the names the built-in theme and tests use; anything
// fancier should arrive as a hex string.
var namedColors = map[string]color.NRGBA{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"grey":        {128, 128, 128, 255},
	"gray":        {128, 128, 128, 255},
	"orange":      {255, 165, 0, 255},
	"yellow":      {255, 255, 0, 255},
	"purple":      {128, 0, 128, 255},
	"steelblue":   {70, 130, 180, 255},
	"crimson":     {220, 20, 60, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a CSS-style color: #rgb, #rrggbb, #rrggbbaa, or one
// of a small set of named colors.
func ParseColor(s string) (color.NRGBA, bool) {
	if clr, ok := namedColors[s]; ok {
		return clr, true
	}
	if len(s) == 0 || s[0] != '#' {
		return color.NRGBA{}, false
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		var out [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(string(hex[i]), 16, 8)
			if err != nil {
				return color.NRGBA{}, false
			}
			out[i] = uint8(v*16 + v)
		}
		return color.NRGBA{out[0], out[1], out[2], 255}, true
	case 6, 8:
		var out [4]uint8
		out[3] = 255
		for i := 0; i*2 < len(hex); i++ {
			v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return color.NRGBA{}, false
			}
			out[i] = uint8(v)
		}
		return color.NRGBA{out[0], out[1], out[2], out[3]}, true
	default:
		return color.NRGBA{}, false
	}
}
