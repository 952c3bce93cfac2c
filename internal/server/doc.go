// Package server holds the MCP server's shared runtime state and operational
// HTTP endpoints.
//
// ServerContext carries the backend client, metrics recorder and audit logger
// through tool registration, plus a cancellable lifecycle for graceful
// shutdown. HealthChecker and MetricsServer expose Kubernetes probes and the
// Prometheus scrape endpoint on a dedicated listener, away from the MCP
// transport.
package server
