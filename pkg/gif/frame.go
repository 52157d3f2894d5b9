package gif

import (
	"image"
	"image/color"
)

// Frame is a single palette-indexed image ready for muxing.
// Palette is nil when the frame relies on the stream's global color table.
type Frame struct {
	W, H uint16
	// Transparent is the palette index of the transparent color, -1 for none.
	Transparent int
	// Palette holds RGB triples of the local color table.
	Palette []byte
	// Pix holds one palette index per pixel.
	Pix []byte
}

// FromPaletted converts a paletted image into a muxable frame with a
// local color table.
func FromPaletted(img *image.Paletted) *Frame {
	b := img.Bounds()
	f := &Frame{
		W:           uint16(b.Dx()),
		H:           uint16(b.Dy()),
		Transparent: transparentIndex(img.Palette),
		Palette:     paletteRGB(img.Palette),
		Pix:         img.Pix,
	}
	return f
}

// FromIndexed wraps already palette-indexed pixels which resolve against
// the stream's global color table. transparent is the table's transparent
// entry, -1 when it has none.
func FromIndexed(w, h uint16, pix []byte, transparent int) *Frame {
	return &Frame{W: w, H: h, Transparent: transparent, Pix: pix}
}

// paletteRGB flattens a palette into RGB triples, dropping alpha.
func paletteRGB(p color.Palette) []byte {
	rgb := make([]byte, 0, len(p)*3)
	for _, c := range p {
		r, g, b, _ := c.RGBA()
		rgb = append(rgb, byte(r>>8), byte(g>>8), byte(b>>8))
	}
	return rgb
}

// transparentIndex finds the first fully transparent palette entry.
func transparentIndex(p color.Palette) int {
	for i, c := range p {
		if _, _, _, a := c.RGBA(); a == 0 {
			return i
		}
	}
	return -1
}

// wrapRGBA views raw pixel bytes as an RGBA image without copying.
func wrapRGBA(raw []byte, w, h int) *image.RGBA {
	return &image.RGBA{Pix: raw, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
}
