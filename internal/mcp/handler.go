package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"gitmcp/server/internal/jsonrpc"
	"gitmcp/server/internal/middleware"
	"gitmcp/server/internal/modules"
)

// Handler answers MCP requests against a tool registry. It is shared by
// every session and transport.
type Handler struct {
	registry *modules.Registry
	info     ServerInfo
	lang     string
	logger   *zap.Logger
}

func NewHandler(registry *modules.Registry, info ServerInfo, lang string, logger *zap.Logger) *Handler {
	if lang == "" {
		lang = modules.DefaultLang
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry: registry,
		info:     info,
		lang:     lang,
		logger:   logger,
	}
}

// ProcessRequest routes a JSON-RPC request to the appropriate handler.
// A nil result with a nil error means there is nothing to send back.
// Called by the transports.
func (h *Handler) ProcessRequest(ctx context.Context, req *jsonrpc.Request) (interface{}, *jsonrpc.Error) {
	switch req.Method {
	case "initialize":
		return h.handleInitialize(ctx, req), nil
	case "initialized", "notifications/initialized":
		return nil, nil
	case "ping":
		return struct{}{}, nil
	case "tools/list":
		return &ToolsListResult{Tools: h.registry.Tools(h.lang)}, nil
	case "tools/call":
		return h.handleToolCall(ctx, req)
	}

	if strings.HasPrefix(req.Method, "notifications/") {
		return nil, nil
	}
	// Simple clients invoke tools by name.
	if _, _, ok := h.registry.FindTool(req.Method); ok {
		return h.callTool(ctx, req.Method, req.ParamsMap())
	}
	return nil, &jsonrpc.Error{Code: MethodNotFound, Message: fmt.Sprintf("Method not found: %s", req.Method)}
}

func (h *Handler) handleInitialize(ctx context.Context, req *jsonrpc.Request) *InitializeResult {
	var params InitializeParams
	if b, err := json.Marshal(req.Params); err == nil {
		json.Unmarshal(b, &params)
	}
	if params.ClientInfo.Name != "" {
		h.logger.Info("client initialized",
			zap.String("client", params.ClientInfo.Name),
			zap.String("client_version", params.ClientInfo.Version),
			zap.String("protocol", params.ProtocolVersion),
			zap.String("session", middleware.GetSessionID(ctx)),
		)
	}
	return &InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{},
		},
		ServerInfo: h.info,
	}
}

func (h *Handler) handleToolCall(ctx context.Context, req *jsonrpc.Request) (*ToolCallResult, *jsonrpc.Error) {
	paramsBytes, err := json.Marshal(req.Params)
	if err != nil {
		return nil, &jsonrpc.Error{Code: InvalidParams, Message: "Invalid params"}
	}

	var params ToolCallParams
	if err := json.Unmarshal(paramsBytes, &params); err != nil {
		return nil, &jsonrpc.Error{Code: InvalidParams, Message: "Invalid params structure"}
	}
	if params.Name == "" {
		return nil, &jsonrpc.Error{Code: InvalidParams, Message: "name is required"}
	}
	if params.Arguments == nil {
		params.Arguments = make(map[string]interface{})
	}
	return h.callTool(ctx, params.Name, params.Arguments)
}

func (h *Handler) callTool(ctx context.Context, name string, args map[string]interface{}) (*ToolCallResult, *jsonrpc.Error) {
	result, err := h.registry.Call(ctx, name, args)
	if errors.Is(err, modules.ErrUnknownTool) {
		return nil, &jsonrpc.Error{Code: InvalidParams, Message: fmt.Sprintf("Unknown tool: %s", name)}
	}
	if err != nil {
		return nil, &jsonrpc.Error{Code: InternalError, Message: err.Error()}
	}
	return result, nil
}
