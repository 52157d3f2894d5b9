package caster

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gifcast_sessions_active",
		Help: "Streams currently being served.",
	})
	metFrames = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gifcast_frames_total",
		Help: "GIF frame blocks delivered to consumers.",
	})
	metBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gifcast_stream_bytes_total",
		Help: "Stream bytes delivered to consumers.",
	})
	metFrameGen = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gifcast_frame_generation_seconds",
		Help:    "Wall time of a single frame source invocation.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})
	metStreamErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gifcast_stream_errors_total",
		Help: "Streams ended by a terminal error.",
	})
)
