/*
Package observability provides Prometheus metrics and lifecycle hooks for the
templates component.

Metrics are fed from domain.LifecycleHooks, so any host that wires the hooks
gets invocation counts and render latency without touching the pipeline.
*/
package observability
