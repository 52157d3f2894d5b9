package gif

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/ericpauley/go-quantize/quantize"
)

// ErrDimensionMismatch is returned when a raw frame's byte length does
// not match the configured geometry.
var ErrDimensionMismatch = errors.New("gif: raw frame size does not match stream dimensions")

const (
	// bytesPerPixel of the raw input format (RGBA).
	bytesPerPixel = 4
	// MinDelay is the shortest representable inter-frame gap most
	// decoders honor.
	MinDelay = 10 * time.Millisecond
	// MaxDelay is the longest gap the 16-bit delay field can carry.
	MaxDelay = 65535 * 10 * time.Millisecond
)

// DelayCentis converts a duration into the hundredths of a second the
// graphic control extension carries, clamped to the representable range.
func DelayCentis(d time.Duration) uint16 {
	if d < MinDelay {
		d = MinDelay
	}
	if d > MaxDelay {
		d = MaxDelay
	}
	return uint16(d.Milliseconds() / 10)
}

// Compressor turns raw RGBA buffers into self-contained GIF image blocks:
// graphic control extension, image descriptor, optional local color table
// and LZW-compressed indexed pixels.
type Compressor struct {
	w, h       int
	colors     int
	dither     bool
	interlaced bool
	dispose    DisposalMethod
	global     *GlobalPalette
}

// CompressorOption tweaks a Compressor.
type CompressorOption func(*Compressor)

// WithColors caps the per-frame palette size, between 2 and 256.
func WithColors(n int) CompressorOption {
	return func(c *Compressor) {
		if n >= 2 && n <= 256 {
			c.colors = n
		}
	}
}

// WithDither enables Floyd-Steinberg dithering of quantized frames.
func WithDither(on bool) CompressorOption { return func(c *Compressor) { c.dither = on } }

// WithInterlaced marks emitted frames as interlaced.
func WithInterlaced(on bool) CompressorOption { return func(c *Compressor) { c.interlaced = on } }

// WithDispose sets the frame disposal method.
func WithDispose(d DisposalMethod) CompressorOption { return func(c *Compressor) { c.dispose = d } }

// WithGlobalPalette makes the compressor index frames against a shared
// table instead of quantizing a local one per frame.
func WithGlobalPalette(g *GlobalPalette) CompressorOption {
	return func(c *Compressor) { c.global = g }
}

// NewCompressor returns a compressor for w×h RGBA frames.
func NewCompressor(w, h int, opts ...CompressorOption) *Compressor {
	c := &Compressor{w: w, h: h, colors: 256, dispose: DisposalKeep}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compress encodes one raw RGBA frame into a GIF image block carrying the
// given delay. The raw buffer is only read for the duration of the call.
func (c *Compressor) Compress(raw []byte, delay time.Duration) ([]byte, error) {
	if len(raw) != c.w*c.h*bytesPerPixel {
		return nil, dimensionError(len(raw), c.w, c.h)
	}

	img := wrapRGBA(raw, c.w, c.h)
	var frame *Frame
	if c.global != nil {
		frame = FromIndexed(uint16(c.w), uint16(c.h), c.global.Indexed(img), c.global.Transparent())
	} else {
		frame = FromPaletted(c.quantize(img))
	}

	var buf bytes.Buffer
	WriteFrameHeader(&buf, frame, DelayCentis(delay), c.interlaced, c.dispose)
	if err := WriteImageBlock(&buf, frame.Pix); err != nil {
		return nil, fmt.Errorf("gif: frame compression: %w", err)
	}
	return buf.Bytes(), nil
}

func dimensionError(got, w, h int) error {
	return fmt.Errorf("%w: got %d bytes, want %d (%dx%dx%d)",
		ErrDimensionMismatch, got, w*h*bytesPerPixel, w, h, bytesPerPixel)
}

// quantize reduces an RGBA image to an at most c.colors paletted one.
func (c *Compressor) quantize(img *image.RGBA) *image.Paletted {
	q := quantize.MedianCutQuantizer{Aggregation: quantize.Mean, AddTransparent: true}
	p := q.Quantize(make(color.Palette, 0, c.colors), img)

	out := image.NewPaletted(img.Bounds(), p)
	if c.dither {
		draw.FloydSteinberg.Draw(out, img.Bounds(), img, image.Point{})
	} else {
		draw.Draw(out, img.Bounds(), img, image.Point{}, draw.Src)
	}
	return out
}
