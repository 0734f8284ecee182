package jsonrpc

import "strings"

// Version is the only protocol version this server speaks.
const Version = "2.0"

// Request is a JSON-RPC 2.0 Request
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 Response
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 Error
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// JSON-RPC 2.0 standard error codes
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// Transport error codes (-32000 ~ -32099: server-defined)
const (
	ErrSessionNotFound  = -32000 // Unknown or expired session id
	ErrConnectionClosed = -32001 // Session exists but its stream is closed
)

// NewError is shorthand for building an *Error.
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// IsNotification reports whether the request expects no response.
func (r *Request) IsNotification() bool {
	return r.ID == nil && strings.HasPrefix(r.Method, "notifications/")
}

// Normalize fills in the fields a client may omit. Requests without an id
// are given one from nextID so every reply has a correlation key;
// notifications are left without one.
func (r *Request) Normalize(nextID func() int64) {
	if r.JSONRPC == "" {
		r.JSONRPC = Version
	}
	if r.Params == nil {
		r.Params = map[string]interface{}{}
	}
	if r.ID == nil && !r.IsNotification() {
		r.ID = nextID()
	}
}

// ParamsMap returns the request params as an object, or an empty map.
func (r *Request) ParamsMap() map[string]interface{} {
	if m, ok := r.Params.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}
