package steamlogin

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricPollTicks)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricPollTicks); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		100 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		20 * time.Second,
		45 * time.Second,
	}

	for _, d := range observations {
		m.Observe(MetricLoginDuration, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricLoginDuration]
	if len(buckets) != histBucketCount {
		t.Fatalf("expected %d buckets, got %d", histBucketCount, len(buckets))
	}

	for i, v := range buckets {
		if v != 1 {
			t.Fatalf("bucket %d expected 1, got %d", i, v)
		}
	}
}

func TestMetricsHistogramBoundaries(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{250 * time.Millisecond, 0},
		{251 * time.Millisecond, 1},
		{500 * time.Millisecond, 1},
		{time.Second, 2},
		{2500 * time.Millisecond, 3},
		{5 * time.Second, 4},
		{10 * time.Second, 5},
		{30 * time.Second, 6},
		{30*time.Second + time.Millisecond, 7},
		{5 * time.Minute, 7},
	}

	for _, tc := range tests {
		if got := bucketIndex(tc.d); got != tc.want {
			t.Fatalf("bucketIndex(%v) expected %d, got %d", tc.d, tc.want, got)
		}
	}
}

func TestMetricsObserveRequiresLatencyEnabled(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Observe(MetricLoginDuration, time.Second)

	snap := m.Snapshot()
	if len(snap.Histograms) != 0 {
		t.Fatalf("expected no histograms without latency enabled, got %v", snap.Histograms)
	}
}

func TestMetricsObserveIgnoresCounterIDs(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Observe(MetricLoginSuccess, time.Second)

	snap := m.Snapshot()
	for i, v := range snap.Histograms[MetricLoginDuration] {
		if v != 0 {
			t.Fatalf("expected empty histogram, bucket %d has %d", i, v)
		}
	}
	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("expected counter untouched by Observe, got %d", got)
	}
}

func TestMetricsSnapshotDisabledEmpty(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricLoginStarted)

	snap := m.Snapshot()
	if snap.Counters == nil || snap.Histograms == nil {
		t.Fatal("expected non-nil empty maps from disabled snapshot")
	}
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("expected empty snapshot when disabled, got %v", snap)
	}
}

func TestMetricsSnapshotConsistency(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginFailure)
	m.Inc(MetricLoginFailure)
	m.Observe(MetricLoginDuration, 2*time.Millisecond)

	snap := m.Snapshot()

	if snap.Counters[MetricLoginSuccess] != 1 {
		t.Fatalf("expected MetricLoginSuccess=1 got %d", snap.Counters[MetricLoginSuccess])
	}
	if snap.Counters[MetricLoginFailure] != 2 {
		t.Fatalf("expected MetricLoginFailure=2 got %d", snap.Counters[MetricLoginFailure])
	}
	if len(snap.Histograms[MetricLoginDuration]) != histBucketCount {
		t.Fatalf("expected histogram length %d", histBucketCount)
	}
	if snap.Histograms[MetricLoginDuration][0] != 1 {
		t.Fatalf("expected first histogram bucket=1 got %d", snap.Histograms[MetricLoginDuration][0])
	}
}

func TestMetricsSharedRegistryAcrossSessions(t *testing.T) {
	shared := NewMetrics(MetricsConfig{Enabled: true})

	for i := 0; i < 2; i++ {
		clk := newFakeClock()
		session, err := New().
			WithConfig(loginTestConfig()).
			WithAuthClient(&fakeAuthClient{}).
			WithMetrics(shared).
			WithClock(clk).
			Build()
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		_, err = session.StartWithCredentials(context.Background(), StartLoginDetails{
			AccountName: "alice",
			Password:    "hunter2",
		})
		if err != nil {
			t.Fatalf("StartWithCredentials failed: %v", err)
		}
		session.Close()
	}

	if got := shared.Value(MetricLoginStarted); got != 2 {
		t.Fatalf("expected shared registry to count both sessions, got %d", got)
	}
}
