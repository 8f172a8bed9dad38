package spec

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const petDoc = `openapi: 3.0.0
info:
  title: Pets
  version: 2.1.0
paths:
  /pets/{petId}:
    summary: One pet
    parameters:
      - name: petId
        in: path
    get:
      summary: Get a pet
      description: Returns one pet.
      operationId: getPet
      parameters:
        - name: petId
          in: path
          description: Pet id
          schema:
            type: integer
        - name: fields
          in: query
          schema:
            type: [string, "null"]
        - name: X-Trace
          in: header
      responses:
        '200':
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
        '404':
          description: Not found
    PUT:
      operationId: putPet
      requestBody:
        content:
          application/json:
            description: the pet
            schema:
              $ref: '#/components/schemas/Pet'
            example: {name: Rex}
`

func TestDecode(t *testing.T) {
	t.Parallel()

	doc, err := Decode([]byte(petDoc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if doc.Version != "2.1.0" || doc.Title != "Pets" {
		t.Errorf("info = %q %q", doc.Version, doc.Title)
	}
	if len(doc.Paths) != 1 {
		t.Fatalf("len(Paths) = %d, want 1", len(doc.Paths))
	}

	item := doc.Paths[0]
	if diff := cmp.Diff([]string{"summary", "parameters"}, item.Skipped); diff != "" {
		t.Errorf("Skipped mismatch (-want +got):\n%s", diff)
	}
	if len(item.Operations) != 2 {
		t.Fatalf("len(Operations) = %d, want 2", len(item.Operations))
	}

	get := item.Operations[0]
	want := Operation{
		Method:      "get",
		Summary:     "Get a pet",
		Description: "Returns one pet.",
		OperationID: "getPet",
		Parameters: []Parameter{
			{Name: "petId", In: InPath, Type: "integer", Description: "Pet id"},
			{Name: "fields", In: InQuery, Type: "string"},
			{Name: "X-Trace", In: "header"},
		},
		Responses: []Response{
			{Code: "200", Description: "OK", Content: []MediaType{{Name: "application/json"}}},
			{Code: "404", Description: "Not found"},
		},
	}
	opts := cmpopts.IgnoreFields(MediaType{}, "Schema", "Example")
	if diff := cmp.Diff(want, get, opts); diff != "" {
		t.Errorf("get operation mismatch (-want +got):\n%s", diff)
	}
	if ref := get.Responses[0].Content[0].Schema.Lookup("$ref").ScalarOr(""); ref != "#/components/schemas/Pet" {
		t.Errorf("response schema $ref = %q", ref)
	}

	put := item.Operations[1]
	if put.Method != "put" {
		t.Errorf("Method = %q, want put", put.Method)
	}
	if put.RequestBody == nil || len(put.RequestBody.Content) != 1 {
		t.Fatalf("RequestBody = %+v", put.RequestBody)
	}
	body := put.RequestBody.Content[0]
	if body.Description != "the pet" || body.Example.JSON() != `{"name":"Rex"}` {
		t.Errorf("request body media = %q %s", body.Description, body.Example.JSON())
	}
}

func TestDecode_Swagger2ParameterType(t *testing.T) {
	t.Parallel()

	doc, err := Decode([]byte(`swagger: "2.0"
info: {version: "1"}
paths:
  /users:
    get:
      parameters:
        - {name: limit, in: query, type: integer}
`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := doc.Paths[0].Operations[0].Parameters[0].Type; got != "integer" {
		t.Errorf("Type = %q, want integer", got)
	}
}

func TestDecode_JSON(t *testing.T) {
	t.Parallel()

	doc, err := Decode([]byte(`{"info": {"version": "3"}, "paths": {"/b": {"get": {}}, "/a": {"get": {}}}}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if doc.Paths[0].Template != "/b" || doc.Paths[1].Template != "/a" {
		t.Errorf("paths not in document order: %+v", doc.Paths)
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "empty document",
			src:     "",
			wantMsg: "document: expected a mapping, got absent",
		},
		{
			name:    "missing version",
			src:     "info: {title: x}\npaths: {}\n",
			wantMsg: "info.version: missing value",
		},
		{
			name:    "missing paths",
			src:     "info: {version: '1'}\n",
			wantMsg: `missing "paths"`,
		},
		{
			name:    "paths is a sequence",
			src:     "info: {version: '1'}\npaths: []\n",
			wantMsg: "paths (line 2): expected a mapping, got sequence",
		},
		{
			name:    "operation is a scalar",
			src:     "info: {version: '1'}\npaths:\n  /a:\n    get: nope\n",
			wantMsg: "paths./a.get (line 4): expected a mapping, got scalar",
		},
		{
			name:    "parameter without name",
			src:     "info: {version: '1'}\npaths:\n  /a:\n    get:\n      parameters:\n        - in: query\n",
			wantMsg: `paths./a.get.parameters[0] (line 6): missing "name"`,
		},
		{
			name:    "parameter without in",
			src:     "info: {version: '1'}\npaths:\n  /a:\n    get:\n      parameters:\n        - name: q\n",
			wantMsg: `missing "in"`,
		},
		{
			name:    "query parameter without type",
			src:     "info: {version: '1'}\npaths:\n  /a:\n    get:\n      parameters:\n        - {name: q, in: query}\n",
			wantMsg: `parameter "q" has no schema type`,
		},
		{
			name:    "parameters is a mapping",
			src:     "info: {version: '1'}\npaths:\n  /a:\n    get:\n      parameters: {q: 1}\n",
			wantMsg: "expected a sequence, got mapping",
		},
		{
			name:    "response content is a scalar",
			src:     "info: {version: '1'}\npaths:\n  /a:\n    get:\n      responses:\n        '200':\n          content: text\n",
			wantMsg: "paths./a.get.responses.200.content (line 7): expected a mapping, got scalar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode([]byte(tt.src))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Decode() error = %v, want ErrMalformed", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Decode() error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.yaml")
	if err := os.WriteFile(path, []byte(petDoc), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Version != "2.1.0" {
		t.Errorf("Version = %q", doc.Version)
	}

	if _, err := Load(filepath.Join(dir, "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestRefName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"#/components/schemas/Widget": "Widget",
		"#/definitions/Gadget":        "Gadget",
		"Plain":                       "Plain",
		"other.yaml#/Thing":           "Thing",
	}
	for ref, want := range tests {
		if got := RefName(ref); got != want {
			t.Errorf("RefName(%q) = %q, want %q", ref, got, want)
		}
	}
}
