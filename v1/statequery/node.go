package statequery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Node is a parsed client query value. It is one of *Object, *Array or *Literal;
// the set is closed by the unexported marker method.
type Node interface {
	queryNode()
}

// Member is a single key/value pair of an Object, kept in document order.
type Member struct {
	Key   string
	Value Node

	// resolved marks keys the compiler produced itself (already in store form).
	resolved bool
}

// Object is a JSON object whose members keep their original order.
type Object struct {
	Members []Member
}

// Array is a JSON array.
type Array struct {
	Items []Node
}

// LiteralKind identifies the JSON type of a Literal.
type LiteralKind int

const (
	StringLiteral LiteralKind = iota
	NumberLiteral
	BoolLiteral
	NullLiteral
)

// Literal is a JSON scalar. Numbers keep their source text.
type Literal struct {
	Kind LiteralKind
	Str  string
	Num  json.Number
	Bool bool
}

func (*Object) queryNode()  {}
func (*Array) queryNode()   {}
func (*Literal) queryNode() {}

// Get returns the value of the last member named key.
func (o *Object) Get(key string) (Node, bool) {
	for i := len(o.Members) - 1; i >= 0; i-- {
		if o.Members[i].Key == key {
			return o.Members[i].Value, true
		}
	}
	return nil, false
}

// Parse decodes a JSON document into a Node tree, preserving member order.
func Parse(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedJSON)
	}
	return node, nil
}

func parseValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return &Literal{Kind: StringLiteral, Str: t}, nil
	case json.Number:
		return &Literal{Kind: NumberLiteral, Num: t}, nil
	case bool:
		return &Literal{Kind: BoolLiteral, Bool: t}, nil
	case nil:
		return &Literal{Kind: NullLiteral}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseObject(dec *json.Decoder) (*Object, error) {
	obj := &Object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not string", tok)
		}

		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Members = append(obj.Members, Member{Key: key, Value: value})
	}

	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (*Array, error) {
	arr := &Array{}
	for dec.More() {
		item, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, item)
	}

	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
