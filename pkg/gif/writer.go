// Package gif implements container-level framing for open-ended GIF89a
// bitstreams: a low-level block writer, an RGBA frame compressor, and a
// muxer that emits the one-time preamble followed by self-delimited
// per-frame blocks without ever writing the trailer.
package gif

import (
	"bytes"
	"compress/lzw"
	"encoding/binary"
)

const (
	extensionIntroducer = 0x21
	extensionControl    = 0xF9
	extensionApp        = 0xFF
	imageSeparator      = 0x2C
	trailerMarker       = 0x3B
)

// DisposalMethod tells the decoder what to do with the previous frame
// before drawing the next one.
type DisposalMethod byte

const (
	DisposalAny DisposalMethod = iota
	DisposalKeep
	DisposalBackground
	DisposalPrevious
)

// WriteScreenDesc writes the GIF89a signature and the logical screen
// descriptor. It must appear exactly once per bitstream.
func WriteScreenDesc(buf *bytes.Buffer, w, h uint16, flags byte) {
	buf.WriteString("GIF89a")
	writeUint16(buf, w)
	writeUint16(buf, h)
	// flags, background color index, pixel aspect ratio
	buf.Write([]byte{flags, 0, 0})
}

// GlobalPaletteFlags builds the screen descriptor flags byte for a global
// color table of the given RGB palette.
func GlobalPaletteFlags(palette []byte) byte {
	flags := byte(1 << 7)
	size := flagSize(len(palette) / 3)
	flags |= size
	flags |= size << 4
	return flags
}

// WriteColorTable writes an RGB color table padded with black entries up
// to the nearest power-of-two size the format requires.
func WriteColorTable(buf *bytes.Buffer, table []byte) {
	n := len(table) / 3
	buf.Write(table[:n*3])
	for i := n; i < 2<<flagSize(n); i++ {
		buf.Write([]byte{0, 0, 0})
	}
}

// WriteLoop writes a NETSCAPE2.0 extension with infinite repetitions.
// The muxer never calls it since an endless stream has no use for looping,
// but finite-file writers do.
func WriteLoop(buf *bytes.Buffer) { WriteRepeat(buf, 0xFFFF) }

// WriteRepeat writes a NETSCAPE2.0 repetition extension. 0xFFFF means
// repeat forever, zero writes nothing.
func WriteRepeat(buf *bytes.Buffer, repeat uint16) {
	if repeat == 0 {
		return
	}
	if repeat == 0xFFFF {
		repeat = 0
	}
	buf.Write([]byte{extensionIntroducer, extensionApp, 11})
	buf.WriteString("NETSCAPE2.0")
	buf.Write([]byte{3, 1})
	writeUint16(buf, repeat)
	buf.WriteByte(0)
}

// WriteGraphicControl writes the graphic control extension carrying the
// frame delay in hundredths of a second.
func WriteGraphicControl(buf *bytes.Buffer, dispose DisposalMethod, delay uint16, transparent int) {
	flags := byte(dispose) << 2
	idx := byte(0)
	if transparent >= 0 {
		flags |= 1
		idx = byte(transparent)
	}
	buf.Write([]byte{extensionIntroducer, extensionControl, 4, flags})
	writeUint16(buf, delay)
	buf.WriteByte(idx)
	buf.WriteByte(0)
}

// WriteFrameHeader writes the graphic control extension and the image
// descriptor, with a local color table when the frame carries one.
func WriteFrameHeader(buf *bytes.Buffer, f *Frame, delay uint16, interlaced bool, dispose DisposalMethod) {
	WriteGraphicControl(buf, dispose, delay, f.Transparent)

	buf.WriteByte(imageSeparator)
	writeUint16(buf, 0) // left
	writeUint16(buf, 0) // top
	writeUint16(buf, f.W)
	writeUint16(buf, f.H)

	var flags byte
	if interlaced {
		flags |= 1 << 6
	}
	if len(f.Palette) > 0 {
		flags |= 1 << 7
		flags |= flagSize(len(f.Palette) / 3)
		buf.WriteByte(flags)
		WriteColorTable(buf, f.Palette)
	} else {
		buf.WriteByte(flags)
	}
}

// WriteImageBlock LZW-compresses palette-indexed pixels and writes them
// as the minimum code size byte followed by 255-byte data sub-blocks and
// a zero terminator.
func WriteImageBlock(buf *bytes.Buffer, indexed []byte) error {
	litWidth := minCodeSize(indexed)
	buf.WriteByte(byte(litWidth))

	var lzwBuf bytes.Buffer
	w := lzw.NewWriter(&lzwBuf, lzw.LSB, litWidth)
	if _, err := w.Write(indexed); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	writeSubBlocks(buf, lzwBuf.Bytes())
	return nil
}

// WriteTrailer writes the end-of-stream marker. Exposed for writers of
// finite files only; the streaming muxer deliberately never emits it.
func WriteTrailer(buf *bytes.Buffer) { buf.WriteByte(trailerMarker) }

func writeSubBlocks(buf *bytes.Buffer, data []byte) {
	for len(data) > 0xFF {
		buf.WriteByte(0xFF)
		buf.Write(data[:0xFF])
		data = data[0xFF:]
	}
	if len(data) > 0 {
		buf.WriteByte(byte(len(data)))
		buf.Write(data)
	}
	buf.WriteByte(0)
}

// minCodeSize derives the LZW minimum code size from the highest palette
// index in use. The format requires at least 2.
func minCodeSize(indexed []byte) int {
	max := byte(0)
	for _, v := range indexed {
		if v > max {
			max = v
		}
	}
	if n := int(flagSize(1+int(max))) + 1; n > 2 {
		return n
	}
	return 2
}

// flagSize converts a color table size to its descriptor flag bits.
func flagSize(n int) byte {
	size := byte(0)
	for s := 2; s < 256 && s < n; s <<= 1 {
		size++
	}
	return size
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}
