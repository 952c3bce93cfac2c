// Package common provides shared helpers for MCP tool implementations,
// currently the instrumented handler wrapper that records metrics and audit
// log entries around every tool invocation.
package common
