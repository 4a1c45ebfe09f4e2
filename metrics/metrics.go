// Package metrics exposes Prometheus counters for the frame loop, the
// viewport, background audio and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	frameDuration   prometheus.Histogram
	framesTotal     prometheus.Counter
	resizesTotal    prometheus.Counter
	audioAttempts   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	streamsActive   prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewCollector registers the collectors on reg. A nil reg uses a fresh
// registry, which is what tests want.
func NewCollector(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Collector{
		frameDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scene_frame_duration_seconds",
				Help:    "Time spent stepping and rendering one frame",
				Buckets: []float64{.0005, .001, .002, .004, .008, .016, .033, .066},
			},
		),
		framesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "scene_frames_total",
				Help: "Total number of frames rendered",
			},
		),
		resizesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "scene_viewport_resizes_total",
				Help: "Total number of viewport size changes applied",
			},
		),
		audioAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scene_audio_attempts_total",
				Help: "Background audio playback attempts",
			},
			[]string{"result"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "api_request_duration_seconds",
				Help: "Time spent processing request",
			},
			[]string{"route", "method"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_requests_total",
				Help: "Total number of requests",
			},
			[]string{"route", "method", "status"},
		),
		streamsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "api_streams_active",
				Help: "Open snapshot stream connections",
			},
		),
		gatherer: reg,
	}

	reg.MustRegister(m.frameDuration)
	reg.MustRegister(m.framesTotal)
	reg.MustRegister(m.resizesTotal)
	reg.MustRegister(m.audioAttempts)
	reg.MustRegister(m.requestDuration)
	reg.MustRegister(m.requestsTotal)
	reg.MustRegister(m.streamsActive)

	return m
}

func (m *Collector) FrameRendered(d time.Duration) {
	m.frameDuration.Observe(d.Seconds())
	m.framesTotal.Inc()
}

func (m *Collector) ViewportResized() {
	m.resizesTotal.Inc()
}

func (m *Collector) AudioAttempt(ok bool) {
	result := "rejected"
	if ok {
		result = "playing"
	}
	m.audioAttempts.WithLabelValues(result).Inc()
}

func (m *Collector) RecordRequest(route, method string, status int, duration time.Duration) {
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

func (m *Collector) StreamOpened() { m.streamsActive.Inc() }
func (m *Collector) StreamClosed() { m.streamsActive.Dec() }

// Handler serves the registered metrics in the Prometheus text format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
