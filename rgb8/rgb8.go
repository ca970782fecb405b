package rgb8

import (
	"image"
	"image/color"
	"iter"
)

// RGB8 is a color with three 8-bit channels and no alpha.
type RGB8 struct {
	R, G, B uint8
}

// RGBA implements color.Color. RGB8 is always fully opaque.
func (c RGB8) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xFFFF
}

// toRGB8 converts any color.Color to RGB8.
//
// The conversion goes through the non-premultiplied form, so alpha is
// dropped rather than applied to the channels. A nil color is black.
func toRGB8(c color.Color) color.Color {
	if c == nil {
		return RGB8{}
	}
	if v, ok := c.(RGB8); ok {
		return v
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB8{R: n.R, G: n.G, B: n.B}
}

// Convert returns c as RGB8. A nil color is black.
func Convert(c color.Color) RGB8 {
	switch v := c.(type) {
	case RGB8:
		return v
	case color.NRGBA:
		return RGB8{R: v.R, G: v.G, B: v.B}
	}
	return toRGB8(c).(RGB8)
}

// Model converts colors to RGB8.
var Model = color.ModelFunc(toRGB8)

// Strip is an RGB8 image stored as packed R, G, B bytes.
type Strip struct {
	Pix    []byte          // Pixel data (3 bytes per pixel)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewStrip creates a new Strip with the given bounds.
func NewStrip(r image.Rectangle) *Strip {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Strip{Rect: r}
	}
	return &Strip{
		Pix:    make([]byte, 3*w*h),
		Stride: 3 * w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Strip) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Strip) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Strip) At(x, y int) color.Color {
	return p.RGB8At(x, y)
}

// RGB8At returns the RGB8 color of the pixel at (x, y).
func (p *Strip) RGB8At(x, y int) RGB8 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return RGB8{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return RGB8{R: s[0], G: s[1], B: s[2]}
}

// Set sets the color of the pixel at (x, y).
func (p *Strip) Set(x, y int, c color.Color) {
	p.SetRGB8(x, y, Convert(c))
}

// SetRGB8 sets the RGB8 color of the pixel at (x, y).
func (p *Strip) SetRGB8(x, y int, c RGB8) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (p *Strip) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// All yields every pixel in row-major order.
func (p *Strip) All() iter.Seq[RGB8] {
	return func(yield func(RGB8) bool) {
		for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
			for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
				if !yield(p.RGB8At(x, y)) {
					return
				}
			}
		}
	}
}
