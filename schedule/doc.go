// Package schedule is the entry point of the filament scheduler: it takes a
// Job (layers, flush matrices, group capacities and optional printer state),
// splits the filaments between the two groups and orders every layer.
//
// Solve runs one job synchronously. Runner wraps Solve with a plan cache,
// Prometheus metrics and structured logging; it is what the CLI and the
// HTTP server use.
package schedule
