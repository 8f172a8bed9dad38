package spec

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMalformed is wrapped by every error reporting a document that does not
// have the expected structure.
var ErrMalformed = errors.New("malformed spec")

// StructureError points at the location of a structural problem.
type StructureError struct {
	Path string
	Line int
	Msg  string
}

func (e *StructureError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "document"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", loc, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

func (*StructureError) Unwrap() error {
	return ErrMalformed
}

func malformed(n *Node, format string, args ...any) error {
	return &StructureError{Path: n.Path(), Line: n.Line(), Msg: fmt.Sprintf(format, args...)}
}

// Parameter locations the generator knows how to place.
const (
	InPath  = "path"
	InQuery = "query"
)

var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

type Document struct {
	Version string
	Title   string
	Paths   []PathItem
}

type PathItem struct {
	Template   string
	Operations []Operation
	// Skipped lists path-item keys that are not HTTP methods.
	Skipped []string
}

type Operation struct {
	Method      string
	Summary     string
	Description string
	OperationID string
	Parameters  []Parameter
	RequestBody *RequestBody
	Responses   []Response
}

type Parameter struct {
	Name        string
	In          string
	Type        string
	Description string
}

type RequestBody struct {
	Content []MediaType
}

type MediaType struct {
	Name        string
	Description string
	Schema      *Node
	Example     *Node
}

type Response struct {
	Code        string
	Description string
	Content     []MediaType
}

// Load reads and decodes the spec document at path.
func Load(path string) (*Document, error) {
	// #nosec G304 - the spec path comes from the user's own config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load spec file %s: %w", path, err)
	}
	return doc, nil
}

// Decode builds a Document from YAML or JSON bytes.
func Decode(data []byte) (*Document, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if root.Kind() != KindMapping {
		return nil, malformed(root, "expected a mapping, got %s", root.Kind())
	}

	version, ok := root.Lookup("info", "version").Scalar()
	if !ok {
		return nil, malformed(root.Lookup("info", "version"), "missing value")
	}

	doc := &Document{
		Version: version,
		Title:   root.Lookup("info", "title").ScalarOr(""),
	}

	paths, ok := root.Get("paths")
	if !ok {
		return nil, malformed(root, "missing %q", "paths")
	}
	if paths.Kind() != KindMapping {
		return nil, malformed(paths, "expected a mapping, got %s", paths.Kind())
	}

	for _, p := range paths.Pairs() {
		item, err := decodePathItem(p.Key, p.Value)
		if err != nil {
			return nil, err
		}
		doc.Paths = append(doc.Paths, item)
	}
	return doc, nil
}

func decodePathItem(template string, n *Node) (PathItem, error) {
	item := PathItem{Template: template}
	if n.Kind() != KindMapping {
		return item, malformed(n, "expected a mapping, got %s", n.Kind())
	}

	for _, p := range n.Pairs() {
		method := strings.ToLower(p.Key)
		if !httpMethods[method] {
			item.Skipped = append(item.Skipped, p.Key)
			continue
		}
		op, err := decodeOperation(method, p.Value)
		if err != nil {
			return item, err
		}
		item.Operations = append(item.Operations, op)
	}
	return item, nil
}

func decodeOperation(method string, n *Node) (Operation, error) {
	op := Operation{Method: method}
	if n.Kind() != KindMapping {
		return op, malformed(n, "expected a mapping, got %s", n.Kind())
	}

	op.Summary = n.Lookup("summary").ScalarOr("")
	op.Description = n.Lookup("description").ScalarOr("")
	op.OperationID = n.Lookup("operationId").ScalarOr("")

	if params, ok := n.Get("parameters"); ok && params.Exists() {
		if params.Kind() != KindSequence {
			return op, malformed(params, "expected a sequence, got %s", params.Kind())
		}
		for _, item := range params.Items() {
			param, err := decodeParameter(item)
			if err != nil {
				return op, err
			}
			op.Parameters = append(op.Parameters, param)
		}
	}

	if body, ok := n.Get("requestBody"); ok && body.Exists() {
		if body.Kind() != KindMapping {
			return op, malformed(body, "expected a mapping, got %s", body.Kind())
		}
		content, err := decodeContent(body)
		if err != nil {
			return op, err
		}
		op.RequestBody = &RequestBody{Content: content}
	}

	if responses, ok := n.Get("responses"); ok && responses.Exists() {
		if responses.Kind() != KindMapping {
			return op, malformed(responses, "expected a mapping, got %s", responses.Kind())
		}
		for _, p := range responses.Pairs() {
			resp, err := decodeResponse(p.Key, p.Value)
			if err != nil {
				return op, err
			}
			op.Responses = append(op.Responses, resp)
		}
	}
	return op, nil
}

func decodeParameter(n *Node) (Parameter, error) {
	var param Parameter
	if n.Kind() != KindMapping {
		return param, malformed(n, "expected a mapping, got %s", n.Kind())
	}

	var ok bool
	if param.Name, ok = n.Lookup("name").Scalar(); !ok {
		return param, malformed(n, "missing %q", "name")
	}
	if param.In, ok = n.Lookup("in").Scalar(); !ok {
		return param, malformed(n, "missing %q", "in")
	}
	param.Description = n.Lookup("description").ScalarOr("")

	// Swagger 2.0 puts the type on the parameter itself.
	typ, ok := schemaType(n.Lookup("schema", "type"))
	if !ok {
		typ, ok = schemaType(n.Lookup("type"))
	}
	if !ok && (param.In == InPath || param.In == InQuery) {
		return param, malformed(n, "parameter %q has no schema type", param.Name)
	}
	param.Type = typ
	return param, nil
}

// schemaType accepts both `type: string` and the list form
// `type: [string, "null"]`, taking the first non-null entry of the latter.
func schemaType(n *Node) (string, bool) {
	if s, ok := n.Scalar(); ok {
		return s, true
	}
	for _, item := range n.Items() {
		if s, ok := item.Scalar(); ok && s != "null" {
			return s, true
		}
	}
	return "", false
}

func decodeResponse(code string, n *Node) (Response, error) {
	resp := Response{Code: code}
	if n.Kind() != KindMapping {
		return resp, malformed(n, "expected a mapping, got %s", n.Kind())
	}

	resp.Description = n.Lookup("description").ScalarOr("")
	content, err := decodeContent(n)
	if err != nil {
		return resp, err
	}
	resp.Content = content
	return resp, nil
}

func decodeContent(n *Node) ([]MediaType, error) {
	content, ok := n.Get("content")
	if !ok || !content.Exists() {
		return nil, nil
	}
	if content.Kind() != KindMapping {
		return nil, malformed(content, "expected a mapping, got %s", content.Kind())
	}

	var media []MediaType
	for _, p := range content.Pairs() {
		if p.Value.Kind() != KindMapping {
			return nil, malformed(p.Value, "expected a mapping, got %s", p.Value.Kind())
		}
		media = append(media, MediaType{
			Name:        p.Key,
			Description: p.Value.Lookup("description").ScalarOr(""),
			Schema:      p.Value.Lookup("schema"),
			Example:     p.Value.Lookup("example"),
		})
	}
	return media, nil
}

// RefName returns the last segment of a `$ref` pointer.
func RefName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
