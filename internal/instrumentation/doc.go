// Package instrumentation provides OpenTelemetry-based observability for the
// MCP server.
//
// It wires a meter provider (Prometheus, OTLP or stdout exporters) and a
// tracer provider (OTLP, stdout or none) from environment-driven
// configuration, exposes a Metrics recorder for tool invocations, backend API
// operations and degraded-query fallbacks, and an audit logger that records
// every tool invocation as a structured log entry.
//
// Instrumentation is optional: a disabled provider returns no-op recorders,
// so callers never need to nil-check individual instruments.
package instrumentation
