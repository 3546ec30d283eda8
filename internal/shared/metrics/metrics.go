package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	documentsUploadedTotal   atomic.Uint64
	documentChatsTotal       atomic.Uint64
	generalChatsTotal        atomic.Uint64
	agreementsGeneratedTotal atomic.Uint64
	artifactsServedTotal     atomic.Uint64

	requests        = newCounterVec()
	requestDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000})
)

// IncDocumentsUploaded counts accepted uploads.
func IncDocumentsUploaded() { documentsUploadedTotal.Add(1) }

// IncDocumentChats counts answered document questions.
func IncDocumentChats() { documentChatsTotal.Add(1) }

// IncGeneralChats counts answered general questions.
func IncGeneralChats() { generalChatsTotal.Add(1) }

// IncAgreementsGenerated counts rendered agreements.
func IncAgreementsGenerated() { agreementsGeneratedTotal.Add(1) }

// IncArtifactsServed counts successful artifact downloads.
func IncArtifactsServed() { artifactsServedTotal.Add(1) }

// ObserveRequest records one completed HTTP request.
func ObserveRequest(route string, status int, durationMs float64) {
	if durationMs < 0 {
		durationMs = 0
	}
	requests.Inc(fmt.Sprintf(`route=%q,status="%d"`, route, status))
	requestDuration.Observe(durationMs)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "legalease_documents_uploaded_total", "Documents accepted for analysis", documentsUploadedTotal.Load())
	writeCounter(&buf, "legalease_document_chats_total", "Document questions answered", documentChatsTotal.Load())
	writeCounter(&buf, "legalease_general_chats_total", "General questions answered", generalChatsTotal.Load())
	writeCounter(&buf, "legalease_agreements_generated_total", "Agreements rendered", agreementsGeneratedTotal.Load())
	writeCounter(&buf, "legalease_artifacts_served_total", "Artifacts downloaded", artifactsServedTotal.Load())
	writeCounterVec(&buf, "legalease_http_requests_total", "HTTP requests by route and status", requests.Snapshot())
	writeHistogram(&buf, "legalease_http_request_duration_ms", "HTTP request duration in milliseconds", requestDuration.Snapshot())
	return buf.String()
}

type counterVec struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newCounterVec() *counterVec {
	return &counterVec{values: make(map[string]uint64)}
}

func (v *counterVec) Inc(labels string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[labels]++
}

func (v *counterVec) Snapshot() map[string]uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]uint64, len(v.values))
	for k, n := range v.values {
		out[k] = n
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe counts value in the first bucket that holds it; rendering accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeCounterVec(buf *bytes.Buffer, name, help string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s} %d\n", name, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
