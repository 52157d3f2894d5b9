package source

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixelcast/gifcast/pkg/logger"
)

func TestSolid(t *testing.T) {
	src := Solid(16, 8, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	raw, err := src(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 16*8*4 {
		t.Fatalf("frame is %d bytes, want %d", len(raw), 16*8*4)
	}
	if raw[0] != 1 || raw[1] != 2 || raw[2] != 3 || raw[3] != 255 {
		t.Errorf("first pixel = %v, want the fill color", raw[:4])
	}
}

func TestClockDrawsText(t *testing.T) {
	src := Clock(120, 40)
	raw, err := src(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	lit := 0
	for i := 0; i < len(raw); i += 4 {
		if raw[i] == clockFg.R && raw[i+1] == clockFg.G && raw[i+2] == clockFg.B {
			lit++
		}
	}
	if lit == 0 {
		t.Errorf("clock face has no foreground pixels")
	}
}

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDirWatchScansExisting(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), color.RGBA{R: 250, A: 255})

	d, err := NewDirWatch(dir, 8, 8, logger.Default())
	if err != nil {
		t.Fatal(err)
	}
	raw, err := d.Source()(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if raw[0] < 200 {
		t.Errorf("frame does not show the preexisting image, first pixel %v", raw[:4])
	}
}

func TestDirWatchPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDirWatch(dir, 8, 8, logger.Default())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Watch(ctx)
	time.Sleep(50 * time.Millisecond)

	writePNG(t, filepath.Join(dir, "b.png"), color.RGBA{G: 250, A: 255})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		raw, err := d.Source()(ctx, nil)
		if err != nil {
			t.Fatal(err)
		}
		if raw[1] > 200 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("dropped image never became the frame")
}

func TestDirWatchMissingDir(t *testing.T) {
	if _, err := NewDirWatch("/definitely/not/here", 8, 8, logger.Default()); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
