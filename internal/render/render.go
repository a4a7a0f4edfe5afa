// SPDX-License-Identifier: MIT

// Package render draws ticker frames for two chained 64x64 panels.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Frame geometry: two 64x64 panels side by side.
const (
	FrameWidth  = 128
	FrameHeight = 64
)

// Palette. LED panels want saturated primaries.
var (
	White  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Yellow = color.RGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}
	Green  = color.RGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}
	Red    = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
)

var face = basicfont.Face7x13

// NewFrame allocates a black frame canvas.
func NewFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}

// anchor mirrors displayio label anchoring: (0,0) is top-left of the text
// box, (0.5,0.5) its center, (1,1) bottom-right.
type anchor struct {
	x, y float64
}

var (
	anchorTopCenter    = anchor{0.5, 0.0}
	anchorCenter       = anchor{0.5, 0.5}
	anchorBottomCenter = anchor{0.5, 1.0}
)

// drawText renders s with its anchor point placed at (x, y).
func drawText(dst *image.RGBA, s string, c color.Color, a anchor, x, y int) {
	width := font.MeasureString(face, s).Ceil()
	height := face.Metrics().Height.Ceil()
	ascent := face.Metrics().Ascent.Ceil()

	originX := x - int(a.x*float64(width))
	originY := y - int(a.y*float64(height)) + ascent

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(originX, originY),
	}
	d.DrawString(s)
}

// drawLogo copies a pre-scaled logo with its top-left at (x, y), clipped to
// the frame.
func drawLogo(dst *image.RGBA, logo image.Image, x, y int) {
	if logo == nil {
		return
	}
	r := logo.Bounds().Sub(logo.Bounds().Min).Add(image.Pt(x, y))
	draw.Draw(dst, r.Intersect(dst.Bounds()), logo, logo.Bounds().Min, draw.Over)
}
