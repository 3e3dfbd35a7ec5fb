// Package metrics holds the process-wide Prometheus instruments shared
// across the summarizer packages.
package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// System metrics
	SystemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "summarizer_system_memory_bytes",
		Help: "Current heap allocation",
	})

	SystemGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "summarizer_system_goroutines",
		Help: "Number of goroutines",
	})

	// Request metrics
	ToolRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_tool_requests_total",
			Help: "Total tool invocations by tool name",
		},
		[]string{"tool"},
	)

	// Input metrics
	DocumentReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_document_reads_total",
			Help: "Documents read by source format",
		},
		[]string{"format"},
	)

	DatasetSamples = promauto.NewCounter(prometheus.CounterOpts{
		Name: "summarizer_dataset_samples_total",
		Help: "Dataset samples loaded",
	})

	// Output metrics
	ReportsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_reports_written_total",
			Help: "Reports written by output format",
		},
		[]string{"format"},
	)
)

// UpdateSystemMetrics refreshes the system-level gauges
func UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	SystemMemoryUsage.Set(float64(m.Alloc))
	SystemGoroutines.Set(float64(runtime.NumGoroutine()))
}

// StartSystemMetrics refreshes the system gauges on an interval until the
// context is canceled.
func StartSystemMetrics(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				UpdateSystemMetrics()
			}
		}
	}()
}
