package modules

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"gitmcp/server/internal/middleware"
	"gitmcp/server/internal/observability"
)

// DefaultToolTimeout is the maximum duration for a single tool execution.
const DefaultToolTimeout = 30 * time.Second

// ErrUnknownTool is returned by Call for names no module registered.
var ErrUnknownTool = errors.New("unknown tool")

// =============================================================================
// Registry
// =============================================================================

// Registry holds the registered modules and routes tool calls to them.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
	owners  map[string]string // tool name -> module name
	order   []string

	timeout time.Duration
	logger  *zap.Logger
	tracer  trace.Tracer
}

// Option configures a Registry.
type Option func(*Registry)

// WithTimeout overrides DefaultToolTimeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(logger *zap.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		modules: make(map[string]Module),
		owners:  make(map[string]string),
		timeout: DefaultToolTimeout,
		logger:  logger,
		tracer:  otel.Tracer("gitmcp/modules"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a module. Tool names are global: a name already owned by
// another module is rejected.
func (r *Registry) Register(m Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[m.Name()]; exists {
		return errors.Errorf("module %q already registered", m.Name())
	}
	for _, t := range m.Tools() {
		if owner, exists := r.owners[t.Name]; exists {
			return errors.Errorf("tool %q of module %q already registered by %q", t.Name, m.Name(), owner)
		}
	}
	r.modules[m.Name()] = m
	for _, t := range m.Tools() {
		r.owners[t.Name] = m.Name()
	}
	r.order = append(r.order, m.Name())
	r.logger.Debug("module registered",
		zap.String("module", m.Name()),
		zap.Int("tools", len(m.Tools())),
	)
	return nil
}

// Module returns a module by name
func (r *Registry) Module(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// Modules returns all registered module names, sorted.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

// Tools returns every tool in registration order with its description
// resolved for lang.
func (r *Registry) Tools(lang string) []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Tool
	for _, name := range r.order {
		for _, t := range r.modules[name].Tools() {
			out = append(out, localize(t, lang))
		}
	}
	return out
}

func localize(t Tool, lang string) Tool {
	if d := t.Descriptions.Get(lang); d != "" {
		t.Description = d
	}
	t.Descriptions = nil // Don't expose all languages to client
	return t
}

// FindTool returns the tool registered under name and its module.
func (r *Registry) FindTool(name string) (Tool, Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[name]
	if !ok {
		return Tool{}, nil, false
	}
	m := r.modules[owner]
	t, ok := findTool(m.Tools(), name)
	return t, m, ok
}

// =============================================================================
// Tool Execution
// =============================================================================

// Call executes a tool. Only an unknown tool name is reported as an error;
// validation and execution failures come back as an isError result.
func (r *Registry) Call(ctx context.Context, name string, params map[string]any) (*ToolCallResult, error) {
	tool, m, ok := r.FindTool(name)
	if !ok {
		return nil, errors.Wrap(ErrUnknownTool, name)
	}

	start := time.Now()
	sessionID := middleware.GetSessionID(ctx)

	ctx, span := r.tracer.Start(ctx, "tool "+name, trace.WithAttributes(
		attribute.String("mcp.tool", name),
		attribute.String("mcp.module", m.Name()),
	))
	defer span.End()

	validated, err := ValidateParams(tool.InputSchema, params)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		r.record(sessionID, name, start, "invalid", err.Error())
		return ErrorResult(err.Error()), nil
	}
	format, _ := validated["format"].(string)
	delete(validated, "format")

	// Apply timeout to prevent external API calls from hanging indefinitely
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := m.ExecuteTool(ctx, name, validated)
	if err != nil {
		errMsg := err.Error()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			errMsg = fmt.Sprintf("Request for %s timed out after %s. The upstream service did not respond in time.", name, r.timeout)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, errMsg)
		r.record(sessionID, name, start, "error", errMsg)
		return ErrorResult(errMsg), nil
	}

	if format != "json" {
		if converter, ok := m.(CompactConverter); ok {
			result = converter.ToCompact(name, result)
		}
	}
	r.record(sessionID, name, start, "success", "")
	return TextResult(result), nil
}

func (r *Registry) record(sessionID, tool string, start time.Time, status, errMsg string) {
	elapsed := time.Since(start)
	observability.ToolCalls.WithLabelValues(tool, status).Inc()
	observability.ToolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
	observability.LogToolCall(sessionID, tool, elapsed.Milliseconds(), status, errMsg)

	fields := []zap.Field{
		zap.String("tool", tool),
		zap.String("status", status),
		zap.Duration("duration", elapsed),
	}
	if sessionID != "" {
		fields = append(fields, zap.String("session", sessionID))
	}
	if errMsg != "" {
		r.logger.Warn("tool call failed", append(fields, zap.String("error", errMsg))...)
		return
	}
	r.logger.Debug("tool call", fields...)
}

func findTool(tools []Tool, name string) (Tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
