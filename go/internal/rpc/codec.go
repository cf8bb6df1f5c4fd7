// Package rpc carries the connect plumbing shared by the roster services:
// the JSON codec their plain Go messages travel through, the handler and
// client options, the logging interceptor and the error translation.
package rpc

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// CodecName is registered in place of connect's protojson codec, so
// application/json and application/connect+json requests decode into the
// plain structs under go/internal/api.
const CodecName = "json"

// JSONCodec implements connect.Codec with encoding/json.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

func (JSONCodec) Name() string { return CodecName }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	// GET-style unary calls and empty POST bodies decode to the zero message
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

// HandlerOptions returns the options every service handler is mounted with.
func HandlerOptions(extra ...connect.HandlerOption) []connect.HandlerOption {
	opts := []connect.HandlerOption{
		connect.WithCodec(JSONCodec{}),
		connect.WithInterceptors(NewLoggingInterceptor()),
	}
	return append(opts, extra...)
}

// ClientOptions returns the options a client needs to talk to the handlers.
func ClientOptions(extra ...connect.ClientOption) []connect.ClientOption {
	opts := []connect.ClientOption{
		connect.WithCodec(JSONCodec{}),
	}
	return append(opts, extra...)
}
