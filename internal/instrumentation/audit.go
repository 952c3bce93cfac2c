package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// ToolInvocation captures all information about a tool invocation for audit
// logging. It provides an audit trail for every MCP tool call.
type ToolInvocation struct {
	// Tool name
	Tool string

	// Backend operation (listTranscripts, getTranscriptDetails, ...)
	Operation string

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Degraded  bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// Status returns "success" or "error" based on the Success field.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for structured logging. This provides a
// consistent set of fields for all tool invocation logs.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}

	if ti.Operation != "" {
		attrs = append(attrs, slog.String("operation", ti.Operation))
	}
	if ti.Degraded {
		attrs = append(attrs, slog.Bool("degraded", true))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}

	return attrs
}

// NewToolInvocation creates a new ToolInvocation with timing started.
// Call one of the Complete methods when the tool operation finishes.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithOperation sets the backend operation name.
func (ti *ToolInvocation) WithOperation(operation string) *ToolInvocation {
	ti.Operation = operation
	return ti
}

// WithSpanContext extracts trace and span IDs from the context, if a
// recording span is present.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		ti.TraceID = spanCtx.TraceID().String()
		ti.SpanID = spanCtx.SpanID().String()
	}
	return ti
}

// Complete marks the invocation finished with the given outcome.
func (ti *ToolInvocation) Complete(success bool, err error) {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
}

// CompleteSuccess marks the invocation finished successfully.
func (ti *ToolInvocation) CompleteSuccess() {
	ti.Complete(true, nil)
}

// CompleteWithError marks the invocation finished with an error.
func (ti *ToolInvocation) CompleteWithError(err error) {
	ti.Complete(false, err)
}

// AuditLogger writes tool invocation records to a structured log.
type AuditLogger struct {
	logger  *slog.Logger
	enabled bool
}

// NewAuditLogger creates an AuditLogger using the given logger. If logger is
// nil, slog.Default() is used.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: true})
}

// NewAuditLoggerWithConfig creates an AuditLogger with explicit configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:  logger,
		enabled: config.Enabled,
	}
}

// LogToolInvocation writes one audit record for a completed invocation.
func (a *AuditLogger) LogToolInvocation(invocation *ToolInvocation) {
	if a == nil || !a.enabled || invocation == nil {
		return
	}
	a.logger.LogAttrs(context.Background(), slog.LevelInfo, "tool invocation", invocation.LogAttrs()...)
}
