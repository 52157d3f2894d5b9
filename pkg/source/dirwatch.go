package source

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	xdraw "golang.org/x/image/draw"

	"github.com/pixelcast/gifcast/pkg/logger"
	"github.com/pixelcast/gifcast/pkg/stream"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

var imageExts = map[string]struct{}{".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}}

// DirWatch serves the most recent image dropped into a directory,
// rescaled to the stream geometry. Until something is dropped, it serves
// a dark fill.
type DirWatch struct {
	path string
	w, h int
	log  *logger.Logger

	mu    sync.RWMutex
	frame []byte
}

func NewDirWatch(path string, w, h int, log *logger.Logger) (*DirWatch, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	d := &DirWatch{path: path, w: w, h: h, log: log,
		frame: fill(w, h, color.RGBA{R: 16, G: 16, B: 16, A: 255}).Pix}
	d.scan()
	return d, nil
}

// Source exposes the latest frame as a stream source.
func (d *DirWatch) Source() stream.Source {
	return func(context.Context, any) ([]byte, error) {
		d.mu.RLock()
		defer d.mu.RUnlock()
		return d.frame, nil
	}
}

// Watch blocks, reloading the latest image on every create or write in
// the directory, until ctx is cancelled.
func (d *DirWatch) Watch(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		d.log.Error().Err(err).Msg("dir watcher has failed")
		return
	}
	defer func() { _ = watcher.Close() }()

	if err = watcher.Add(d.path); err != nil {
		d.log.Error().Err(err).Msg("dir watch error")
		return
	}

	for {
		select {
		case <-ctx.Done():
			d.log.Debug().Msg("dir watch has ended")
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				d.load(event.Name)
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// scan picks the newest image already present at startup.
func (d *DirWatch) scan() {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return
	}
	var latest string
	var latestMod int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if _, ok := imageExts[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		if mod := info.ModTime().UnixNano(); mod > latestMod {
			latest, latestMod = filepath.Join(d.path, e.Name()), mod
		}
	}
	if latest != "" {
		d.load(latest)
	}
}

func (d *DirWatch) load(path string) {
	if _, ok := imageExts[strings.ToLower(filepath.Ext(path))]; !ok {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		d.log.Warn().Err(err).Msgf("couldn't open %v", path)
		return
	}
	defer func() { _ = f.Close() }()

	src, _, err := image.Decode(f)
	if err != nil {
		// partially written file, most likely; the next Write event retries
		d.log.Debug().Err(err).Msgf("couldn't decode %v", path)
		return
	}

	dst := image.NewRGBA(image.Rect(0, 0, d.w, d.h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	d.mu.Lock()
	d.frame = dst.Pix
	d.mu.Unlock()
	d.log.Info().Msgf("now streaming %v", filepath.Base(path))
}
