package clusterq

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    searchCounter   *prometheus.CounterVec
//	    searchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSearch(st query.SearchType, results int, d time.Duration, err error) {
//	    p.searchCounter.WithLabelValues(string(st)).Inc()
//	    p.searchHistogram.Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordParse is called after each free-text or JSON parse.
	// err is nil if the input was valid.
	RecordParse(duration time.Duration, err error)

	// RecordSearch is called after each search.
	// searchType is the requested level, results is the number of matched ids.
	RecordSearch(searchType string, results int, duration time.Duration, err error)

	// RecordLoad is called after a dataset load.
	RecordLoad(regions int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordParse(time.Duration, error)               {}
func (NoopMetricsCollector) RecordSearch(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	ParseCount       atomic.Int64
	ParseErrors      atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchResults    atomic.Int64
	SearchTotalNanos atomic.Int64
	LoadCount        atomic.Int64
	LoadErrors       atomic.Int64
	LoadRegions      atomic.Int64
}

// RecordParse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordParse(duration time.Duration, err error) {
	b.ParseCount.Add(1)
	if err != nil {
		b.ParseErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(searchType string, results int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
		return
	}
	b.SearchResults.Add(int64(results))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(regions int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadRegions.Add(int64(regions))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ParseCount:     b.ParseCount.Load(),
		ParseErrors:    b.ParseErrors.Load(),
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchResults:  b.SearchResults.Load(),
		SearchAvgNanos: b.getAvgSearchNanos(),
		LoadCount:      b.LoadCount.Load(),
		LoadErrors:     b.LoadErrors.Load(),
		LoadRegions:    b.LoadRegions.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ParseCount     int64
	ParseErrors    int64
	SearchCount    int64
	SearchErrors   int64
	SearchResults  int64
	SearchAvgNanos int64
	LoadCount      int64
	LoadErrors     int64
	LoadRegions    int64
}
