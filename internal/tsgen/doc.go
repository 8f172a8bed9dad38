package tsgen

import (
	"strings"

	"github.com/goatx/endpointgen/internal/spec"
)

const defaultSummary = "No summary available"

var commentEscaper = strings.NewReplacer("*/", "*\\/")

// docLines builds the lines of an endpoint's comment block, without the
// leading " * ". Empty strings become bare " *" lines.
func docLines(op *spec.Operation, url string, pathParams, queryParams []param) []string {
	var lines []string

	summary := op.Summary
	if summary == "" {
		summary = defaultSummary
	}
	lines = appendText(lines, summary)
	lines = append(lines, "")

	if op.Description != "" {
		lines = appendText(lines, op.Description)
		lines = append(lines, "")
	}

	lines = append(lines,
		"type: "+strings.ToUpper(op.Method),
		"url: "+url,
	)

	if op.RequestBody != nil {
		for _, media := range op.RequestBody.Content {
			name, ok := schemaTypeName(media.Schema)
			if !ok {
				continue
			}
			line := "- " + name + " (required)"
			if media.Description != "" {
				line += ": " + media.Description
			}
			lines = append(lines, "", "request body ("+media.Name+"):")
			lines = appendText(lines, line)
			if media.Example.Exists() {
				lines = appendText(lines, "- example: "+media.Example.JSON())
			}
		}
	}

	if len(pathParams) > 0 {
		lines = append(lines, "", "path parameters:")
		for _, p := range pathParams {
			lines = appendText(lines, paramLine(p, " (required)"))
		}
	}

	if len(queryParams) > 0 {
		lines = append(lines, "", "query parameters:")
		for _, p := range queryParams {
			lines = appendText(lines, paramLine(p, ""))
		}
	}

	lines = append(lines, "", "responses:")
	for i := range op.Responses {
		resp := &op.Responses[i]
		lines = appendText(lines, strings.TrimRight("- "+resp.Code+": "+responseDescription(resp), " "))
	}

	return lines
}

func paramLine(p param, suffix string) string {
	if p.Description == "" {
		return "- " + p.Name + suffix
	}
	return "- " + p.Name + ": " + p.Description + suffix
}

// appendText splits multi-line text so every line gets its own comment
// prefix.
func appendText(lines []string, text string) []string {
	text = commentEscaper.Replace(text)
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		lines = append(lines, strings.TrimRight(l, " \t\r"))
	}
	return lines
}

// responseDescription names what a response returns: the referenced schema,
// an array of it, or the response's own description.
func responseDescription(resp *spec.Response) string {
	for _, media := range resp.Content {
		if name, ok := schemaTypeName(media.Schema); ok {
			return name
		}
	}
	return resp.Description
}

func schemaTypeName(schema *spec.Node) (string, bool) {
	if ref, ok := schema.Lookup("$ref").Scalar(); ok {
		return spec.RefName(ref), true
	}
	if ref, ok := schema.Lookup("items", "$ref").Scalar(); ok {
		return spec.RefName(ref) + "[]", true
	}
	return "", false
}
