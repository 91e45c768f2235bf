// Package apiconnect wires the famledger.v1 services to connect-go using a
// JSON codec over the plain structs in package api.
package apiconnect

import (
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Package is the RPC package name that prefixes every procedure.
const Package = "famledger.v1"

// Codec encodes messages as JSON. It replaces connect's protobuf JSON codec
// under the same "json" name, so clients use Content-Type application/json.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body leaves msg zero.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

// routes dispatches a service's procedures by exact path.
type routes map[string]http.Handler

func (r routes) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r[req.URL.Path]; ok {
		h.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}

func servicePath(service string) string {
	return "/" + Package + "." + service + "/"
}

func trimBase(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}
