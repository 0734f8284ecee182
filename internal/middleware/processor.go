package middleware

import (
	"context"

	"gitmcp/server/internal/jsonrpc"
)

// RequestProcessor processes JSON-RPC requests.
// Implemented by the MCP handler.
type RequestProcessor interface {
	ProcessRequest(ctx context.Context, req *jsonrpc.Request) (interface{}, *jsonrpc.Error)
}

// ProcessorFunc adapts a function to RequestProcessor.
type ProcessorFunc func(ctx context.Context, req *jsonrpc.Request) (interface{}, *jsonrpc.Error)

func (f ProcessorFunc) ProcessRequest(ctx context.Context, req *jsonrpc.Request) (interface{}, *jsonrpc.Error) {
	return f(ctx, req)
}
