package tsgen

import (
	"bytes"
	"cmp"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"text/template"

	"github.com/goatx/endpointgen/internal/config"
	"github.com/goatx/endpointgen/internal/spec"
	"github.com/goatx/endpointgen/internal/strcase"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var fileTemplate = template.Must(template.New("endpoints").Funcs(template.FuncMap{
	"comment":  comment,
	"jsString": jsString,
	"jsQuote":  jsQuote,
}).ParseFS(templateFS, "templates/*.tmpl"))

// FunctionSuffix is appended to every operationId.
const FunctionSuffix = "Endpoint"

// Options controls a generation run.
type Options struct {
	// Project is the display name written in the file header.
	Project string
	// Server is the value of the generated baseUrl constant.
	Server string
	// Sort emits endpoints ordered by path then method instead of
	// document order.
	Sort bool
	// Logger receives progress and warnings. Nil discards them.
	Logger *slog.Logger
}

// OptionsFromConfig copies the generation settings out of cfg.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		Project: cfg.Project,
		Server:  cfg.Server,
		Sort:    cfg.Sort,
		Logger:  logger,
	}
}

// fileData is the intermediate representation handed to the template.
type fileData struct {
	Project   string
	Title     string
	Version   string
	Server    string
	Endpoints []endpointDecl
}

// endpointDecl describes one generated endpoint builder.
type endpointDecl struct {
	Name        string
	Method      string
	Doc         []string
	Params      string
	QueryParams []param
	// Path is the body of the returned template literal.
	Path string
}

// Generate renders the TypeScript endpoint file for doc. Nothing is written;
// see WriteFile.
func Generate(ctx context.Context, doc *spec.Document, opts Options) ([]byte, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	data := fileData{
		Project: opts.Project,
		Title:   doc.Title,
		Version: doc.Version,
		Server:  opts.Server,
	}

	seen := make(map[string]string)
	for _, item := range orderedPaths(doc.Paths, opts.Sort) {
		for _, key := range item.Skipped {
			logger.Debug("skipping path item key", "path", item.Template, "key", key)
		}

		for i := range item.Operations {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			op := &item.Operations[i]
			decl := buildEndpoint(item.Template, op, logger)

			where := strings.ToUpper(op.Method) + " " + item.Template
			if prev, ok := seen[decl.Name]; ok {
				return nil, fmt.Errorf("duplicate endpoint function %s for %s and %s", decl.Name, prev, where)
			}
			seen[decl.Name] = where

			logger.Debug("generated endpoint", "function", decl.Name, "operation", where)
			data.Endpoints = append(data.Endpoints, decl)
		}
	}

	var buf bytes.Buffer
	if err := fileTemplate.ExecuteTemplate(&buf, "file", data); err != nil {
		return nil, fmt.Errorf("failed to render endpoints: %w", err)
	}
	return buf.Bytes(), nil
}

func orderedPaths(paths []spec.PathItem, sorted bool) []spec.PathItem {
	if !sorted {
		return paths
	}

	out := slices.Clone(paths)
	slices.SortStableFunc(out, func(a, b spec.PathItem) int {
		return cmp.Compare(a.Template, b.Template)
	})
	for i := range out {
		ops := slices.Clone(out[i].Operations)
		slices.SortStableFunc(ops, func(a, b spec.Operation) int {
			return cmp.Compare(a.Method, b.Method)
		})
		out[i].Operations = ops
	}
	return out
}

func buildEndpoint(urlTemplate string, op *spec.Operation, logger *slog.Logger) endpointDecl {
	pathParams, queryParams, ignored := splitParams(op.Parameters)
	for _, p := range ignored {
		logger.Debug("ignoring parameter", "path", urlTemplate, "method", op.Method, "name", p.Name, "in", p.In)
	}

	path := interpolatePath(urlTemplate, pathParams)
	decl := endpointDecl{
		Name:        functionName(urlTemplate, op, logger),
		Method:      strings.ToUpper(op.Method),
		Doc:         docLines(op, staticQuery(path, queryParams), pathParams, queryParams),
		Params:      paramList(pathParams, queryParams),
		QueryParams: queryParams,
	}

	switch {
	case len(pathParams) == 0 && len(queryParams) == 0:
		decl.Path = "${baseUrl}" + path
	case len(queryParams) == 0:
		decl.Path = path
	default:
		decl.Path = path + "${query}"
	}
	return decl
}

func functionName(urlTemplate string, op *spec.Operation, logger *slog.Logger) string {
	if op.OperationID != "" {
		return strcase.ToIdentifier(op.OperationID) + FunctionSuffix
	}

	id := operationIDFromPath(op.Method, urlTemplate)
	logger.Warn("operation has no operationId, using derived name",
		"path", urlTemplate, "method", op.Method, "operationId", id)
	return id + FunctionSuffix
}

// operationIDFromPath derives a name such as getItemsById from
// "get" and "/items/{id}".
func operationIDFromPath(method, urlTemplate string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, seg := range strings.Split(urlTemplate, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			b.WriteString("By")
			seg = seg[1 : len(seg)-1]
		}
		b.WriteString(strcase.ToPascalCase(strcase.ToLowerCamel(seg)))
	}
	return strcase.ToIdentifier(b.String())
}

func comment(s string) string {
	return strings.ReplaceAll(commentEscaper.Replace(s), "\n", " ")
}

func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

func jsQuote(s string) string {
	return "'" + quoteEscaper.Replace(s) + "'"
}
