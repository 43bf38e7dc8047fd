// Package apidoc embeds and validates the OpenAPI description of the HTTP
// surface exposed by pkg/server.
package apidoc

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

// Route is one documented method and path pair.
type Route struct {
	Method      string
	Path        string
	OperationID string
}

// Raw returns a copy of the embedded YAML document.
func Raw() []byte {
	return append([]byte(nil), document...)
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	return LoadFromData(ctx, document)
}

// LoadFromData parses and validates an OpenAPI document. External references
// are rejected.
func LoadFromData(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("apidoc: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("apidoc: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apidoc: validate document: %w", err)
	}
	return doc, nil
}

// Routes lists every documented operation sorted by path then method.
func Routes(doc *openapi3.T) []Route {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	var out []Route
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			out = append(out, Route{Method: method, Path: path, OperationID: op.OperationID})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Handler serves doc as JSON. The payload is encoded once.
func Handler(doc *openapi3.T) (http.Handler, error) {
	if doc == nil {
		return nil, fmt.Errorf("apidoc: document is nil")
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("apidoc: encode document: %w", err)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(payload)
	}), nil
}
