// Package metrics exports request metrics in Prometheus format.
//
// An Observer registers its collectors on a registry and is handed to
// provision.NewHandler with provision.WithObserver. Handler serves the
// registry, normally at /metrics.
//
// # Metrics
//
//   - phonexml_requests_total{operation, result}: handled requests; result is
//     "ok" or "error" (an error screen was rendered)
//   - phonexml_request_duration_seconds{operation}: time to resolve, build
//     and serialize a document
package metrics
