// Package prometheus renders sanctum counters in Prometheus text exposition
// format.
//
// [NewPrometheusExporter] accepts a [sanctum.Engine] and exposes an
// [http.Handler] that renders every engine counter. Counter names are
// prefixed sanctum_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry. Callers mount the
//     Handler.
//   - Mutate engine state.
package prometheus
