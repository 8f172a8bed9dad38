package tsgen

// AnyType is used for schema types missing from the mapping table.
const AnyType = "any"

var typeTable = map[string]string{
	"integer": "bigint",
	"string":  "string",
	"boolean": "boolean",
	"array":   "any[]",
	"object":  "any",
	"number":  "number",
}

// TypeOf maps an OpenAPI schema type name to a TypeScript type.
func TypeOf(schemaType string) string {
	if ts, ok := typeTable[schemaType]; ok {
		return ts
	}
	return AnyType
}
