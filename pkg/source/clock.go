package source

import (
	"context"
	"image"
	"image/color"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pixelcast/gifcast/pkg/stream"
)

var (
	clockBg = color.RGBA{R: 24, G: 24, B: 24, A: 255}
	clockFg = color.RGBA{R: 240, G: 240, B: 240, A: 255}
)

// Clock returns a source rendering the current wall-clock time, centered,
// in the 7x13 basic face. It is the demo default.
func Clock(w, h int) stream.Source {
	return func(context.Context, any) ([]byte, error) {
		img := fill(w, h, clockBg)
		label(img, time.Now().Format("15:04:05"))
		return img.Pix, nil
	}
}

func label(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	b := img.Bounds()
	x := (b.Dx() - len(text)*face.Advance) / 2
	y := (b.Dy() + face.Height) / 2
	(&font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(clockFg),
		Face: face,
		Dot:  fixed.P(x, y),
	}).DrawString(text)
}
