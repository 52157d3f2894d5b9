// Package source provides frame generators for GIF streams: a solid
// color fill, a wall-clock renderer and a directory watcher that serves
// the most recently dropped image.
package source

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"github.com/pixelcast/gifcast/pkg/stream"
)

// Solid returns a source producing a constant fill of the given color.
func Solid(w, h int, c color.RGBA) stream.Source {
	img := fill(w, h, c)
	return func(context.Context, any) ([]byte, error) { return img.Pix, nil }
}

func fill(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}
