package metrics

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"sync"
)

// family is a counter split by a single label.
type family struct {
	name, help, label string

	mu     sync.Mutex
	values map[string]uint64
}

func (f *family) Inc(value string) {
	f.mu.Lock()
	f.values[value]++
	f.mu.Unlock()
}

func (f *family) Snapshot() map[string]uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]uint64, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *family) write(w io.Writer) {
	header(w, f.name, f.help, "counter")
	snap := f.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		writef(w, "%s{%s=%q} %d\n", f.name, f.label, k, snap[k])
	}
}

// histogram keeps per-bucket hits; they are summed into cumulative
// Prometheus buckets on write.
type histogram struct {
	mu     sync.Mutex
	bounds []float64
	hits   []uint64
	sum    float64
	count  uint64
}

type histogramSnapshot struct {
	bounds []float64
	hits   []uint64
	sum    float64
	count  uint64
}

func newHistogram(bounds []float64) *histogram {
	return &histogram{bounds: bounds, hits: make([]uint64, len(bounds))}
}

func (h *histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += v
	if i, _ := slices.BinarySearch(h.bounds, v); i < len(h.bounds) {
		h.hits[i]++
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		bounds: slices.Clone(h.bounds),
		hits:   slices.Clone(h.hits),
		sum:    h.sum,
		count:  h.count,
	}
}

type namedHistogram struct {
	name, help string
	*histogram
}

func (n *namedHistogram) write(w io.Writer) {
	header(w, n.name, n.help, "histogram")
	snap := n.Snapshot()
	var running uint64
	for i, le := range snap.bounds {
		running += snap.hits[i]
		writef(w, "%s_bucket{le=%q} %d\n", n.name, formatFloat(le), running)
	}
	writef(w, "%s_bucket{le=\"+Inf\"} %d\n", n.name, snap.count)
	writef(w, "%s_sum %s\n", n.name, formatFloat(snap.sum))
	writef(w, "%s_count %d\n", n.name, snap.count)
}

func header(w io.Writer, name, help, kind string) {
	writef(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
