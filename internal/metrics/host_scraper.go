package metrics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/influxdata/tdigest"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// HostMetrics contains scraped metrics from a node_exporter on the
// benchmark host. A verdict produced on a loaded machine is suspect,
// so the harness samples host load while the pipeline runs.
type HostMetrics struct {
	CPUPercent float64
	MemUsed    int64
	MemTotal   int64
	MemPercent float64
	Load1      float64

	// Rolling window percentiles over CPUPercent
	CPUP50 float64
	CPUMax float64

	// Metadata
	LastUpdate time.Time
	Healthy    bool
	Error      string
}

// HostScraper scrapes a node_exporter endpoint on an interval.
// Uses atomic.Value for lock-free metric reads.
type HostScraper struct {
	url      string
	interval time.Duration
	logger   *slog.Logger
	client   *http.Client

	// Atomic storage (lock-free reads)
	metrics atomic.Value // *HostMetrics

	// Rolling window of CPU usage samples
	cpuDigest  *tdigest.TDigest
	cpuSamples []cpuSample
	cpuMu      sync.Mutex

	windowSize time.Duration
}

// cpuSample is one CPU usage observation with timestamp.
type cpuSample struct {
	value float64
	time  time.Time
}

// NewHostScraper creates a new host metrics scraper.
// Returns nil if the URL is empty (feature disabled).
func NewHostScraper(url string, interval, windowSize time.Duration, logger *slog.Logger) *HostScraper {
	if url == "" {
		return nil // Feature disabled
	}

	// Clamp window size (validation also done in config.Validate())
	if windowSize < 10*time.Second {
		windowSize = 10 * time.Second
	}
	if windowSize > 300*time.Second {
		windowSize = 300 * time.Second
	}

	s := &HostScraper{
		url:      url,
		interval: interval,
		logger:   logger,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		cpuDigest:  tdigest.NewWithCompression(100),
		windowSize: windowSize,
	}

	s.metrics.Store(&HostMetrics{
		Healthy: false,
		Error:   "Not yet scraped",
	})

	return s
}

// Run starts the scrape loop. Blocks until the context is cancelled.
func (s *HostScraper) Run(ctx context.Context) {
	if s == nil {
		return // Feature disabled
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Initial scrape
	s.scrape()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scrape()
		}
	}
}

// Snapshot returns the current metrics (thread-safe, lock-free).
func (s *HostScraper) Snapshot() *HostMetrics {
	if s == nil {
		return nil
	}
	return s.metrics.Load().(*HostMetrics)
}

// scrape fetches and parses the exporter output once.
func (s *HostScraper) scrape() {
	m := &HostMetrics{LastUpdate: time.Now()}

	if err := s.scrapeNodeExporter(m); err != nil {
		m.Healthy = false
		m.Error = err.Error()
		s.logger.Debug("host_scrape_failed", "url", s.url, "error", err)
		s.metrics.Store(m)
		return
	}

	m.CPUP50, m.CPUMax = s.recordCPU(m.CPUPercent, m.LastUpdate)
	m.Healthy = true
	s.metrics.Store(m)
}

// scrapeNodeExporter fetches the exporter and extracts the metrics of
// interest from the Prometheus text exposition format.
func (s *HostScraper) scrapeNodeExporter(m *HostMetrics) error {
	resp, err := s.client.Get(s.url)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http status %d", resp.StatusCode)
	}

	decoder := expfmt.NewDecoder(resp.Body, expfmt.FmtText)
	families := make(map[string]*dto.MetricFamily)

	for {
		var mf dto.MetricFamily
		if err := decoder.Decode(&mf); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("decode error: %w", err)
		}
		families[mf.GetName()] = &mf
	}

	m.CPUPercent = extractCPUUsage(families)
	m.MemUsed, m.MemTotal, m.MemPercent = extractMemory(families)
	m.Load1 = extractGauge(families, "node_load1")

	return nil
}

// recordCPU adds a CPU sample to the rolling window and returns the
// current window percentiles.
func (s *HostScraper) recordCPU(value float64, now time.Time) (p50, max float64) {
	s.cpuMu.Lock()
	defer s.cpuMu.Unlock()

	s.cpuSamples = append(s.cpuSamples, cpuSample{value: value, time: now})
	s.cpuDigest.Add(value, 1)

	// Evict expired samples; t-digest cannot remove, so rebuild when
	// anything ages out.
	cutoff := now.Add(-s.windowSize)
	firstValid := 0
	for firstValid < len(s.cpuSamples) && s.cpuSamples[firstValid].time.Before(cutoff) {
		firstValid++
	}
	if firstValid > 0 {
		s.cpuSamples = s.cpuSamples[firstValid:]
		s.cpuDigest = tdigest.NewWithCompression(100)
		for _, sample := range s.cpuSamples {
			s.cpuDigest.Add(sample.value, 1)
		}
	}

	max = 0
	for _, sample := range s.cpuSamples {
		if sample.value > max {
			max = sample.value
		}
	}
	return s.cpuDigest.Quantile(0.5), max
}

// extractCPUUsage extracts CPU usage percentage from node_cpu_seconds_total.
// Calculates: (1 - idle/total) * 100
func extractCPUUsage(families map[string]*dto.MetricFamily) float64 {
	mf, ok := families["node_cpu_seconds_total"]
	if !ok {
		return 0
	}

	var totalCPU, idleCPU float64
	for _, metric := range mf.GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() == "mode" {
				mode := label.GetValue()
				value := metric.GetCounter().GetValue()
				if mode == "idle" {
					idleCPU += value
				}
				totalCPU += value
			}
		}
	}

	if totalCPU == 0 {
		return 0
	}
	return (1 - idleCPU/totalCPU) * 100
}

// extractMemory extracts memory metrics from node_memory_*.
func extractMemory(families map[string]*dto.MetricFamily) (used, total int64, percent float64) {
	totalBytes := extractGauge(families, "node_memory_MemTotal_bytes")
	availBytes := extractGauge(families, "node_memory_MemAvailable_bytes")
	if totalBytes == 0 {
		return 0, 0, 0
	}

	used = int64(totalBytes - availBytes)
	total = int64(totalBytes)
	percent = float64(used) / totalBytes * 100
	return used, total, percent
}

// extractGauge returns the first gauge value of a family, or 0.
func extractGauge(families map[string]*dto.MetricFamily, name string) float64 {
	mf, ok := families[name]
	if !ok {
		return 0
	}
	metrics := mf.GetMetric()
	if len(metrics) == 0 {
		return 0
	}
	return metrics[0].GetGauge().GetValue()
}
