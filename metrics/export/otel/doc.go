// Package otel provides OpenTelemetry metric exporter bindings for steamlogin counters
// and histograms.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each steamlogin
// metric and Int64ObservableGauge per histogram bucket. A single callback reads
// [steamlogin.LoginSession.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate session state.
package otel
