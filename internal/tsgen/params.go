package tsgen

import (
	"strings"

	"github.com/goatx/endpointgen/internal/spec"
	"github.com/goatx/endpointgen/internal/strcase"
)

// param is a path or query parameter as it appears in generated code.
type param struct {
	// Name is the name used in the URL.
	Name string
	// Ident is the TypeScript argument name.
	Ident       string
	Type        string
	Description string
}

// generatedNames are identifiers the emitted function bodies use themselves.
var generatedNames = map[string]bool{
	"query":              true,
	"encodeURIComponent": true,
}

func newParam(p spec.Parameter) param {
	ident := strcase.ToIdentifier(p.Name)
	if generatedNames[ident] {
		ident += "_"
	}
	return param{
		Name:        p.Name,
		Ident:       ident,
		Type:        TypeOf(p.Type),
		Description: p.Description,
	}
}

// splitParams separates path and query parameters, keeping declaration
// order. Parameters in any other location are returned as ignored.
func splitParams(params []spec.Parameter) (pathParams, queryParams []param, ignored []spec.Parameter) {
	for _, p := range params {
		switch p.In {
		case spec.InPath:
			pathParams = append(pathParams, newParam(p))
		case spec.InQuery:
			queryParams = append(queryParams, newParam(p))
		default:
			ignored = append(ignored, p)
		}
	}
	return pathParams, queryParams, ignored
}

var templateEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"`", "\\`",
	"${", "\\${",
)

// interpolatePath turns a URL template into the body of a TypeScript
// template literal, replacing each {name} of a path parameter with ${name}.
// Placeholders of other parameters are left as they are.
func interpolatePath(template string, pathParams []param) string {
	out := templateEscaper.Replace(template)
	for _, p := range pathParams {
		out = strings.ReplaceAll(out, "{"+p.Name+"}", "${"+p.Ident+"}")
	}
	return out
}

// staticQuery appends every query parameter to path as name=${name}.
func staticQuery(path string, queryParams []param) string {
	pairs := make([]string, 0, len(queryParams))
	for _, p := range queryParams {
		pairs = append(pairs, p.Name+"=${"+p.Ident+"}")
	}
	if len(pairs) == 0 {
		return path
	}
	return path + "?" + strings.Join(pairs, "&")
}

// paramList renders the argument list: required path parameters followed by
// optional query parameters.
func paramList(pathParams, queryParams []param) string {
	parts := make([]string, 0, len(pathParams)+len(queryParams))
	for _, p := range pathParams {
		parts = append(parts, p.Ident+": "+p.Type)
	}
	for _, p := range queryParams {
		parts = append(parts, p.Ident+"?: "+p.Type)
	}
	return strings.Join(parts, ", ")
}
