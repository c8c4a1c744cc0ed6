// Package jsondoc decodes JSON into a tree that keeps object members in the
// order they appear on the wire. Rendering a node document needs that order;
// map[string]any loses it.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Kind identifies the JSON type of a Node.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value *Node
}

// Node is a decoded JSON value. Only the fields relevant to Kind are set:
// Bool for booleans, Text for strings and the literal digits of numbers,
// Items for arrays, Members for objects.
type Node struct {
	Kind    Kind
	Bool    bool
	Text    string
	Items   []*Node
	Members []Member
}

// Get returns the value of the first member named key.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != Object {
		return nil, false
	}
	for _, m := range n.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys lists member names in document order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != Object {
		return nil
	}
	keys := make([]string, 0, len(n.Members))
	for _, m := range n.Members {
		keys = append(keys, m.Key)
	}
	return keys
}

// Decode parses a single JSON value. Trailing non-whitespace data is an error.
func Decode(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, errors.New("unexpected data after top-level value")
		}
		return nil, err
	}
	return node, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case nil:
		return &Node{Kind: Null}, nil
	case bool:
		return &Node{Kind: Bool, Bool: t}, nil
	case json.Number:
		return &Node{Kind: Number, Text: t.String()}, nil
	case string:
		return &Node{Kind: String, Text: t}, nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	node := &Node{Kind: Object}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not string", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
		node.Members = append(node.Members, Member{Key: key, Value: value})
	}
	// consume '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	node := &Node{Kind: Array}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("element [%d]: %w", len(node.Items), err)
		}
		node.Items = append(node.Items, item)
	}
	// consume ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

// Scalar returns the JSON text of a scalar node: quoted and escaped for
// strings, literal for numbers, booleans and null. Empty containers render
// as {} and [].
func (n *Node) Scalar() string {
	switch n.Kind {
	case Null:
		return "null"
	case Bool:
		if n.Bool {
			return "true"
		}
		return "false"
	case Number:
		return n.Text
	case String:
		return Quote(n.Text)
	case Array:
		if len(n.Items) == 0 {
			return "[]"
		}
	case Object:
		if len(n.Members) == 0 {
			return "{}"
		}
	}
	return ""
}

// IsContainer reports whether the node is a non-empty array or object.
func (n *Node) IsContainer() bool {
	switch n.Kind {
	case Array:
		return len(n.Items) > 0
	case Object:
		return len(n.Members) > 0
	default:
		return false
	}
}

// Quote returns s as a JSON string literal without HTML escaping.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Sprintf("%q", s)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
