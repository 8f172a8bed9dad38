package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies which variant a Node holds.
type Kind int

const (
	KindAbsent Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "absent"
	}
}

// Node is a read-only view over one value of a parsed document.
//
// Accessors never fail: looking up something that is not there yields an
// absent Node, which still remembers the location it was looked up at so
// callers can report it.
type Node struct {
	raw  *yaml.Node
	path string
}

// Pair is a mapping entry in document order.
type Pair struct {
	Key   string
	Value *Node
}

// Parse decodes a YAML or JSON document into a Node tree.
func Parse(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return wrap(&doc, ""), nil
}

func wrap(n *yaml.Node, path string) *Node {
	return &Node{raw: resolve(n), path: path}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		case 0:
			return nil
		default:
			return n
		}
	}
	return nil
}

func (n *Node) Kind() Kind {
	if n == nil || n.raw == nil {
		return KindAbsent
	}
	switch n.raw.Kind {
	case yaml.ScalarNode:
		return KindScalar
	case yaml.SequenceNode:
		return KindSequence
	case yaml.MappingNode:
		return KindMapping
	default:
		return KindAbsent
	}
}

// Exists reports whether the node holds a value. An explicit null counts as
// absent.
func (n *Node) Exists() bool {
	k := n.Kind()
	return k != KindAbsent && !(k == KindScalar && n.raw.ShortTag() == "!!null")
}

// Path returns the dotted location of the node inside the document,
// e.g. "paths./items/{id}.get.parameters[0]".
func (n *Node) Path() string {
	if n == nil {
		return ""
	}
	return n.path
}

// Line returns the 1-based source line, or 0 for absent nodes.
func (n *Node) Line() int {
	if n.Kind() == KindAbsent {
		return 0
	}
	return n.raw.Line
}

// Get returns the value stored under key. The boolean is false when n is not
// a mapping or has no such key.
func (n *Node) Get(key string) (*Node, bool) {
	child := childPath(n.Path(), key)
	if n.Kind() != KindMapping {
		return &Node{path: child}, false
	}
	for i := 0; i+1 < len(n.raw.Content); i += 2 {
		if n.raw.Content[i].Value == key {
			return wrap(n.raw.Content[i+1], child), true
		}
	}
	return &Node{path: child}, false
}

// Lookup follows keys through nested mappings.
func (n *Node) Lookup(keys ...string) *Node {
	cur := n
	for _, key := range keys {
		cur, _ = cur.Get(key)
	}
	return cur
}

// Scalar returns the text of a non-null scalar.
func (n *Node) Scalar() (string, bool) {
	if n.Kind() != KindScalar || n.raw.ShortTag() == "!!null" {
		return "", false
	}
	return n.raw.Value, true
}

// ScalarOr returns the scalar text, or def when the node is not a scalar.
func (n *Node) ScalarOr(def string) string {
	if s, ok := n.Scalar(); ok {
		return s
	}
	return def
}

// Items returns the elements of a sequence, or nil.
func (n *Node) Items() []*Node {
	if n.Kind() != KindSequence {
		return nil
	}
	items := make([]*Node, 0, len(n.raw.Content))
	for i, c := range n.raw.Content {
		items = append(items, wrap(c, fmt.Sprintf("%s[%d]", n.path, i)))
	}
	return items
}

// Pairs returns the entries of a mapping in document order, or nil.
func (n *Node) Pairs() []Pair {
	if n.Kind() != KindMapping {
		return nil
	}
	pairs := make([]Pair, 0, len(n.raw.Content)/2)
	for i := 0; i+1 < len(n.raw.Content); i += 2 {
		key := n.raw.Content[i].Value
		pairs = append(pairs, Pair{
			Key:   key,
			Value: wrap(n.raw.Content[i+1], childPath(n.path, key)),
		})
	}
	return pairs
}

// JSON renders the node as single-line JSON, keeping mapping keys in
// document order. Absent nodes render as null.
func (n *Node) JSON() string {
	var b strings.Builder
	var raw *yaml.Node
	if n != nil {
		raw = n.raw
	}
	writeJSON(&b, raw)
	return b.String()
}

func writeJSON(b *strings.Builder, n *yaml.Node) {
	n = resolve(n)
	if n == nil {
		b.WriteString("null")
		return
	}

	switch n.Kind {
	case yaml.MappingNode:
		b.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteJSON(n.Content[i].Value))
			b.WriteByte(':')
			writeJSON(b, n.Content[i+1])
		}
		b.WriteByte('}')
	case yaml.SequenceNode:
		b.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, c)
		}
		b.WriteByte(']')
	default:
		writeScalarJSON(b, n)
	}
}

func writeScalarJSON(b *strings.Builder, n *yaml.Node) {
	switch n.ShortTag() {
	case "!!null":
		b.WriteString("null")
	case "!!bool":
		if v, err := strconv.ParseBool(strings.ToLower(n.Value)); err == nil {
			b.WriteString(strconv.FormatBool(v))
			return
		}
		b.WriteString(quoteJSON(n.Value))
	case "!!int", "!!float":
		if json.Valid([]byte(n.Value)) {
			b.WriteString(n.Value)
			return
		}
		b.WriteString(quoteJSON(n.Value))
	default:
		b.WriteString(quoteJSON(n.Value))
	}
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
