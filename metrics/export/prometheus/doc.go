// Package prometheus provides Prometheus collectors for steamlogin metrics.
//
// [NewPrometheusExporter] accepts a [steamlogin.LoginSession] and exposes an
// [http.Handler] that renders all steamlogin counters and histograms in Prometheus
// text exposition format. Counter names are prefixed steamlogin_*_total; the single
// histogram is steamlogin_login_duration_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate session state.
package prometheus
