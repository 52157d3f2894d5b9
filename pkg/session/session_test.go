package session

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pixelcast/gifcast/pkg/logger"
	"github.com/pixelcast/gifcast/pkg/stream"
)

func testSource() stream.Source {
	raw := make([]byte, 8*8*4)
	return func(context.Context, any) ([]byte, error) { return raw, nil }
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(stream.Config{}, logger.Default())
	if err == nil {
		t.Fatal("expected an error for an empty config")
	}
}

func TestServeDeliversChunks(t *testing.T) {
	conf := stream.Config{
		Interval: 10 * time.Millisecond,
		Width:    8,
		Height:   8,
		Source:   testSource(),
	}
	s, err := New(conf, logger.Default())
	if err != nil {
		t.Fatal(err)
	}

	var delivered int
	s.OnChunk = func(int) { delivered++ }

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	if err := s.Serve(ctx, &buf); err != nil {
		t.Fatalf("clean cancellation must not error, got %v", err)
	}
	if delivered == 0 {
		t.Fatal("no chunks were delivered")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("GIF89a")) {
		t.Errorf("served stream misses the preamble")
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	conf := stream.Config{Interval: time.Second, Width: 8, Height: 8, Source: testSource()}
	a, err := New(conf, logger.Default())
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(conf, logger.Default())
	if err != nil {
		t.Fatal(err)
	}
	if a.ID() == b.ID() {
		t.Errorf("two sessions share the id %v", a.ID())
	}
}
