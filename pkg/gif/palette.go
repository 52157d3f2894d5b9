package gif

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

// GlobalPalette is a color table shared by every frame of a stream.
// Frames indexed against it skip their local tables, which shrinks each
// chunk and keeps colors stable between frames.
type GlobalPalette struct {
	palette     color.Palette
	rgb         []byte
	transparent int
}

// NewGlobalPalette quantizes the given image down to at most colors
// entries. colors must be between 2 and 256. A transparent entry is
// reserved when the image carries fully transparent pixels.
func NewGlobalPalette(colors int, img image.Image) *GlobalPalette {
	q := quantize.MedianCutQuantizer{Aggregation: quantize.Mean, AddTransparent: true}
	p := q.Quantize(make(color.Palette, 0, colors), img)
	return &GlobalPalette{palette: p, rgb: paletteRGB(p), transparent: transparentIndex(p)}
}

// RGB returns the table as RGB triples for the screen descriptor.
func (g *GlobalPalette) RGB() []byte { return g.rgb }

// Transparent is the index of the transparent entry, -1 when the table
// has none.
func (g *GlobalPalette) Transparent() int { return g.transparent }

// Indexed maps a whole image onto the table. Fully transparent pixels go
// straight to the transparent entry when the table reserves one.
func (g *GlobalPalette) Indexed(img image.Image) []byte {
	b := img.Bounds()
	pix := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			if _, _, _, a := c.RGBA(); a == 0 && g.transparent >= 0 {
				pix = append(pix, byte(g.transparent))
				continue
			}
			pix = append(pix, byte(g.palette.Index(c)))
		}
	}
	return pix
}
