package jsonrpc

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// ErrMissingMethod is returned by DecodeRequest for bodies without a method.
var ErrMissingMethod = errors.New("method is required")

// DecodeRequest parses a single JSON-RPC request object.
//
// Integer ids are kept as int64 and other numbers as float64 so they
// round-trip unchanged. Unknown fields (including any body-level sessionId)
// are skipped.
func DecodeRequest(data []byte) (*Request, error) {
	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return nil, errors.New("request must be a JSON object")
	}

	req := &Request{}
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "jsonrpc":
			if d.Next() != jx.String {
				return d.Skip()
			}
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "jsonrpc")
			}
			req.JSONRPC = v
		case "id":
			id, err := decodeID(d)
			if err != nil {
				return errors.Wrap(err, "id")
			}
			req.ID = id
		case "method":
			if d.Next() != jx.String {
				return errors.New("method must be a string")
			}
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "method")
			}
			req.Method = v
		case "params":
			raw, err := d.Raw()
			if err != nil {
				return errors.Wrap(err, "params")
			}
			if raw.Type() == jx.Null {
				return nil
			}
			var params interface{}
			if err := json.Unmarshal(raw, &params); err != nil {
				return errors.Wrap(err, "params")
			}
			req.Params = params
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if req.Method == "" {
		return nil, ErrMissingMethod
	}
	return req, nil
}

func decodeID(d *jx.Decoder) (interface{}, error) {
	switch d.Next() {
	case jx.Null:
		return nil, d.Null()
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return nil, err
		}
		if n.IsInt() {
			return n.Int64()
		}
		return n.Float64()
	default:
		return nil, errors.New("id must be a string, number or null")
	}
}

// EncodeError renders an error response without going through reflection.
// It is used on transport paths where the normal response encoder may be
// the thing that failed.
func EncodeError(id interface{}, rpcErr *Error) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("jsonrpc")
	e.Str(Version)
	e.FieldStart("id")
	encodeID(&e, id)
	e.FieldStart("error")
	e.ObjStart()
	e.FieldStart("code")
	e.Int(rpcErr.Code)
	e.FieldStart("message")
	e.Str(rpcErr.Message)
	e.ObjEnd()
	e.ObjEnd()
	return e.Bytes()
}

func encodeID(e *jx.Encoder, id interface{}) {
	switch v := id.(type) {
	case nil:
		e.Null()
	case string:
		e.Str(v)
	case int64:
		e.Int64(v)
	case int:
		e.Int(v)
	case float64:
		e.Float64(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			e.Null()
			return
		}
		e.Raw(b)
	}
}

// EncodeResponse marshals a response, falling back to an internal error
// envelope if the result cannot be encoded.
func EncodeResponse(resp *Response) []byte {
	b, err := json.Marshal(resp)
	if err != nil {
		return EncodeError(resp.ID, NewError(InternalError, "failed to encode response"))
	}
	return b
}
