package config

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	var conf Config
	if err := LoadConfig(&conf, "testdata"); err != nil {
		t.Fatal(err)
	}

	g := conf.Gifcast
	if !g.Debug || g.Tag != "test" {
		t.Errorf("base fields not loaded: %+v", g)
	}
	if g.Server.Tls.Cache != "/tmp/certs" {
		t.Errorf("tls cache dir not loaded: %+v", g.Server.Tls)
	}
	if g.Stream.Interval != 250*time.Millisecond {
		t.Errorf("interval = %v, want 250ms", g.Stream.Interval)
	}
	if g.Stream.Width != 64 || g.Stream.Height != 32 {
		t.Errorf("geometry = %dx%d, want 64x32", g.Stream.Width, g.Stream.Height)
	}
	if g.Stream.DelayPolicy != "nominal" || g.Stream.Palette != "auto" || !g.Stream.Dither {
		t.Errorf("stream knobs not loaded: %+v", g.Stream)
	}
	if g.Source.Type != "solid" || g.Source.Color != "#102030" {
		t.Errorf("source not loaded: %+v", g.Source)
	}
	if !g.Monitoring.MetricEnabled || g.Monitoring.ProfilingEnabled {
		t.Errorf("monitoring flags not loaded: %+v", g.Monitoring)
	}
	if !g.Monitoring.IsEnabled() {
		t.Errorf("monitoring should report enabled")
	}
	if err := conf.Validate(); err != nil {
		t.Errorf("loaded config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	var conf Config
	if err := conf.Validate(); err == nil {
		t.Errorf("zero config must not validate")
	}
	conf.Gifcast.Stream = Stream{Interval: time.Second, Width: 1, Height: 1}
	if err := conf.Validate(); err != nil {
		t.Errorf("minimal stream config should validate, got %v", err)
	}
}
