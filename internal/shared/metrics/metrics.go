// Package metrics keeps process-local counters and histograms and renders
// them in the Prometheus text exposition format.
package metrics

import (
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// collector is one metric family. Families render in registration order.
type collector interface {
	write(w io.Writer)
}

var registry []collector

func register[C collector](c C) C {
	registry = append(registry, c)
	return c
}

type counter struct {
	name, help string
	v          atomic.Uint64
}

func newCounter(name, help string) *counter {
	return register(&counter{name: name, help: help})
}

func (c *counter) Inc() { c.v.Add(1) }

func (c *counter) write(w io.Writer) {
	header(w, c.name, c.help, "counter")
	writef(w, "%s %d\n", c.name, c.v.Load())
}

var (
	exportsRequested = newCounter("exports_requested_total", "Total exports requested")
	exportsCompleted = newCounter("exports_completed_total", "Total exports completed")
	exportsFailed    = newCounter("exports_failed_total", "Total exports failed")
	composeFailed    = newCounter("compose_failed_total", "Total compose errors")
	jobsReceived     = newCounter("export_jobs_received_total", "Total export jobs received by the worker")
	jobsDropped      = newCounter("export_jobs_deleted_unrecoverable_total", "Total export jobs dropped as unrecoverable")

	rateLimited = register(&family{
		name:   "http_rate_limited_total",
		help:   "Requests rejected by the rate limiter",
		label:  "group",
		values: map[string]uint64{},
	})

	composeDuration = register(&namedHistogram{
		name:      "compose_duration_ms",
		help:      "Compose duration in milliseconds",
		histogram: newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500}),
	})
	composePages = register(&namedHistogram{
		name:      "compose_pages",
		help:      "Pages per rendered document",
		histogram: newHistogram([]float64{1, 2, 3, 5, 8}),
	})
)

func IncExportRequested()                { exportsRequested.Inc() }
func IncExportCompleted()                { exportsCompleted.Inc() }
func IncExportFailed()                   { exportsFailed.Inc() }
func IncExportJobsReceived()             { jobsReceived.Inc() }
func IncExportJobsDeletedUnrecoverable() { jobsDropped.Inc() }

// IncComposeFailed counts composer errors, including synchronous composes.
func IncComposeFailed() { composeFailed.Inc() }

// IncRateLimited counts a request rejected by the limiter for group.
func IncRateLimited(group string) { rateLimited.Inc(group) }

// ObserveComposeDurationMs records a compose duration. Negative values clamp to 0.
func ObserveComposeDurationMs(ms float64) {
	composeDuration.Observe(max(ms, 0))
}

// ObserveComposePages records the page count of a rendered document.
func ObserveComposePages(pages int) {
	composePages.Observe(float64(pages))
}

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// Handler serves Render on GET /metrics.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; version=0.0.4", []byte(Render()))
	}
}

// Render returns every registered family.
func Render() string {
	var b strings.Builder
	for _, c := range registry {
		c.write(&b)
	}
	return b.String()
}
