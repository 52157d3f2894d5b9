package gif

import (
	"bytes"
	"testing"
)

func TestFlagSize(t *testing.T) {
	tests := []struct {
		colors int
		size   byte
	}{
		{0, 0}, {1, 0}, {2, 0}, {3, 1}, {4, 1}, {5, 2}, {8, 2},
		{9, 3}, {16, 3}, {17, 4}, {64, 5}, {128, 6}, {129, 7},
		{256, 7}, {300, 7},
	}
	for _, test := range tests {
		if got := flagSize(test.colors); got != test.size {
			t.Errorf("flagSize(%d) = %d, want %d", test.colors, got, test.size)
		}
	}
}

func TestScreenDesc(t *testing.T) {
	var buf bytes.Buffer
	WriteScreenDesc(&buf, 400, 100, 0)

	out := buf.Bytes()
	if string(out[:6]) != "GIF89a" {
		t.Errorf("bad signature %q", out[:6])
	}
	if len(out) != 13 {
		t.Errorf("screen desc length = %d, want 13", len(out))
	}
	if w := int(out[6]) | int(out[7])<<8; w != 400 {
		t.Errorf("width = %d, want 400", w)
	}
	if h := int(out[8]) | int(out[9])<<8; h != 100 {
		t.Errorf("height = %d, want 100", h)
	}
}

func TestColorTablePadding(t *testing.T) {
	tests := []struct {
		colors  int
		entries int
	}{
		{1, 2}, {2, 2}, {3, 4}, {5, 8}, {200, 256},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		WriteColorTable(&buf, make([]byte, test.colors*3))
		if got := buf.Len() / 3; got != test.entries {
			t.Errorf("%d colors: table has %d entries, want %d", test.colors, got, test.entries)
		}
	}
}

func TestSubBlocks(t *testing.T) {
	var buf bytes.Buffer
	writeSubBlocks(&buf, make([]byte, 300))

	out := buf.Bytes()
	if out[0] != 0xFF {
		t.Errorf("first block size = %#x, want 0xFF", out[0])
	}
	if rem := out[256]; rem != 45 {
		t.Errorf("remainder block size = %d, want 45", rem)
	}
	if out[len(out)-1] != 0 {
		t.Errorf("missing block terminator")
	}
	if len(out) != 1+255+1+45+1 {
		t.Errorf("total length = %d, want %d", len(out), 1+255+1+45+1)
	}
}

func TestLoopExtension(t *testing.T) {
	var buf bytes.Buffer
	WriteLoop(&buf)

	out := buf.Bytes()
	if len(out) != 19 {
		t.Fatalf("loop extension length = %d, want 19", len(out))
	}
	if out[0] != 0x21 || out[1] != 0xFF {
		t.Errorf("bad extension introducer %#x %#x", out[0], out[1])
	}
	if string(out[3:14]) != "NETSCAPE2.0" {
		t.Errorf("bad application id %q", out[3:14])
	}

	buf.Reset()
	WriteRepeat(&buf, 0)
	if buf.Len() != 0 {
		t.Errorf("zero repetitions should write nothing, wrote %d bytes", buf.Len())
	}
}

func TestGraphicControlDelay(t *testing.T) {
	var buf bytes.Buffer
	WriteGraphicControl(&buf, DisposalKeep, 100, -1)

	out := buf.Bytes()
	if len(out) != 8 {
		t.Fatalf("graphic control length = %d, want 8", len(out))
	}
	if delay := int(out[4]) | int(out[5])<<8; delay != 100 {
		t.Errorf("delay = %d, want 100", delay)
	}
	if out[3]&1 != 0 {
		t.Errorf("transparency flag set without a transparent index")
	}
}

func TestMinCodeSize(t *testing.T) {
	tests := []struct {
		max  byte
		size int
	}{
		{0, 2}, {1, 2}, {3, 2}, {4, 3}, {15, 4}, {255, 8},
	}
	for _, test := range tests {
		if got := minCodeSize([]byte{0, test.max}); got != test.size {
			t.Errorf("minCodeSize(max=%d) = %d, want %d", test.max, got, test.size)
		}
	}
}
