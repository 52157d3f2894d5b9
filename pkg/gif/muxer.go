package gif

import (
	"bytes"
	"time"
)

// Muxer assembles an open-ended GIF bitstream. The first successful
// NextChunk carries the one-time preamble (signature plus logical screen
// descriptor) followed by a frame block; every later call yields exactly
// one frame block. No trailer is ever written, so the stream has no
// in-band end: closing the transport is what ends the logical file.
//
// A muxer belongs to a single producer and is not safe for concurrent
// use.
type Muxer struct {
	w, h uint16
	comp *Compressor

	// auto defers global palette construction to the first frame.
	auto      bool
	autoOpts  []CompressorOption
	preambled bool
}

// MuxerOption tweaks a Muxer.
type MuxerOption func(*Muxer)

// WithCompressor supplies a pre-configured frame compressor. The default
// quantizes a 256-color local palette per frame.
func WithCompressor(c *Compressor) MuxerOption { return func(m *Muxer) { m.comp = c } }

// WithAutoPalette samples a global color table of n colors from the first
// frame and indexes every frame against it.
func WithAutoPalette(n int, opts ...CompressorOption) MuxerOption {
	return func(m *Muxer) {
		m.auto = true
		m.autoOpts = append([]CompressorOption{WithColors(n)}, opts...)
	}
}

// NewMuxer returns a muxer for a w×h stream.
func NewMuxer(w, h int, opts ...MuxerOption) *Muxer {
	m := &Muxer{w: uint16(w), h: uint16(h)}
	for _, opt := range opts {
		opt(m)
	}
	if m.comp == nil && !m.auto {
		m.comp = NewCompressor(w, h)
	}
	return m
}

// NextChunk wraps one raw RGBA frame into the next chunk of the stream,
// prepending the preamble on first use. On failure no bytes are produced
// and the preamble state is left untouched, so a later call can still
// open the stream correctly.
func (m *Muxer) NextChunk(raw []byte, delay time.Duration) ([]byte, error) {
	if m.auto && m.comp == nil {
		if err := m.buildAutoPalette(raw); err != nil {
			return nil, err
		}
	}

	frame, err := m.comp.Compress(raw, delay)
	if err != nil {
		return nil, err
	}

	if m.preambled {
		return frame, nil
	}

	var buf bytes.Buffer
	if g := m.comp.global; g != nil {
		WriteScreenDesc(&buf, m.w, m.h, GlobalPaletteFlags(g.RGB()))
		WriteColorTable(&buf, g.RGB())
	} else {
		WriteScreenDesc(&buf, m.w, m.h, 0)
	}
	buf.Write(frame)
	m.preambled = true
	return buf.Bytes(), nil
}

// Preambled reports whether the one-time preamble has been emitted.
func (m *Muxer) Preambled() bool { return m.preambled }

func (m *Muxer) buildAutoPalette(raw []byte) error {
	w, h := int(m.w), int(m.h)
	if len(raw) != w*h*bytesPerPixel {
		return dimensionError(len(raw), w, h)
	}
	gp := NewGlobalPalette(autoColors(m.autoOpts), wrapRGBA(raw, w, h))
	m.comp = NewCompressor(w, h, append(m.autoOpts, WithGlobalPalette(gp))...)
	return nil
}

// autoColors extracts the configured palette size for auto mode.
func autoColors(opts []CompressorOption) int {
	probe := Compressor{colors: 256}
	for _, opt := range opts {
		opt(&probe)
	}
	return probe.colors
}
