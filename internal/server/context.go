package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/voxtools/fireflies-mcp/internal/fireflies"
	"github.com/voxtools/fireflies-mcp/internal/instrumentation"
)

// ServerContext holds the shared state for the MCP server: the backend
// client, observability hooks and the shutdown lifecycle. Tool handlers
// receive it instead of reaching for globals.
type ServerContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	firefliesClient *fireflies.Client
	metrics         *instrumentation.Metrics
	auditLogger     *instrumentation.AuditLogger
	mu              sync.RWMutex
	shutdown        bool
}

// NewServerContext creates a new server context around the given backend
// client.
func NewServerContext(ctx context.Context, client *fireflies.Client) (*ServerContext, error) {
	if client == nil {
		return nil, fmt.Errorf("fireflies client is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		firefliesClient: client,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// FirefliesClient returns the shared backend client. The client is immutable
// and safe for concurrent use.
func (sc *ServerContext) FirefliesClient() *fireflies.Client {
	return sc.firefliesClient
}

// Metrics returns the metrics recorder, or nil if instrumentation is not
// configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder used by tool instrumentation.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, or nil if not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger used by tool instrumentation.
func (sc *ServerContext) SetAuditLogger(a *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = a
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. It is safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()
	return nil
}
