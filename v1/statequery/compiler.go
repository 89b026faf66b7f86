package statequery

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// scope tells the compiler what kind of keys an object may contain.
type scope int

const (
	// documentScope objects hold field names and document level operators.
	documentScope scope = iota
	// operatorScope objects are the value of a field and hold operators only.
	operatorScope
)

// Compile translates a parsed client query into a store filter.
//
// The root must be an object. An empty object compiles to an empty filter,
// which matches every state document.
func Compile(root Node) (bson.D, error) {
	obj, ok := root.(*Object)
	if !ok {
		return nil, invalid("", "query must be a JSON object")
	}
	return compileObject(obj, documentScope, "")
}

// CompileJSON parses and compiles a raw JSON query.
func CompileJSON(data []byte) (bson.D, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, invalid("", "%v", err)
	}
	return Compile(root)
}

func compileObject(obj *Object, sc scope, op Operator) (bson.D, error) {
	if sc == documentScope {
		if rewritten, ok := expandLastModifiedShorthand(obj); ok {
			return compileObject(rewritten, documentScope, op)
		}
	}

	doc := bson.D{}
	var split bson.A
	for _, m := range obj.Members {
		key, value, err := compileMember(m, sc, op)
		if err != nil {
			return nil, err
		}
		if clauses, ok := value.(splitClauses); ok {
			split = append(split, clauses...)
			if !hasKey(doc, key) {
				doc = append(doc, bson.E{Key: key})
			}
			continue
		}
		doc = setKey(doc, key, value)
	}
	if len(split) > 0 {
		doc = joinAnd(doc, split)
	}
	return doc, nil
}

// splitClauses are the $and operands produced for a field with several
// conditions. They are collected across the object and never replaced by a
// later $and.
type splitClauses bson.A

// joinAnd appends split to the $and operands already in doc.
func joinAnd(doc bson.D, split bson.A) bson.D {
	key := OpAnd.storeKey()
	for i := range doc {
		if doc[i].Key != key {
			continue
		}
		existing, _ := doc[i].Value.(bson.A)
		operands := make(bson.A, 0, len(existing)+len(split))
		operands = append(operands, existing...)
		doc[i].Value = append(operands, split...)
		return doc
	}
	return append(doc, bson.E{Key: key, Value: split})
}

// expandLastModifiedShorthand rewrites {"<field>": v, "lastModified": c} into
// {"and": [{"<field>": v}, {"state.<field>.lastModified": c}]}.
func expandLastModifiedShorthand(obj *Object) (*Object, bool) {
	if len(obj.Members) != 2 {
		return nil, false
	}

	var field, lastModified *Member
	for i := range obj.Members {
		m := &obj.Members[i]
		if m.Key == LastModifiedField && !m.resolved {
			lastModified = m
		} else {
			field = m
		}
	}
	if field == nil || lastModified == nil || field.resolved || IsOperator(field.Key) || strings.HasPrefix(field.Key, "$") {
		return nil, false
	}

	clauses := &Array{Items: []Node{
		&Object{Members: []Member{*field}},
		&Object{Members: []Member{{
			Key:      LastModifiedKey(Normalize(field.Key)),
			Value:    lastModified.Value,
			resolved: true,
		}}},
	}}
	return &Object{Members: []Member{{Key: string(OpAnd), Value: clauses}}}, true
}

func compileMember(m Member, sc scope, parent Operator) (string, any, error) {
	switch {
	case m.resolved || m.Key == LastModifiedField:
		value, err := compileValue(m.Value, operatorScope, "")
		return m.Key, timestamps(value), err

	case IsOperator(m.Key):
		return compileOperator(Operator(m.Key), m.Value, sc, parent)

	case strings.HasPrefix(m.Key, "$"):
		return "", nil, invalid(m.Key, "unknown operator, use the bare operator name without '$'")

	case sc == operatorScope:
		return "", nil, invalid(m.Key, "unknown operator; nested fields are addressed with a dotted path such as \"a.b\"")

	default:
		return compileField(m)
	}
}

func compileOperator(op Operator, value Node, sc scope, parent Operator) (string, any, error) {
	spec := operators[op]
	// elemMatch conditions apply to array elements, which may be scalars.
	if sc == documentScope && !spec.documentLevel && parent != OpElemMatch {
		return "", nil, invalid(string(op), "operator must be applied to a field, e.g. {\"color\": {%q: ...}}", string(op))
	}

	switch spec.operand {
	case operandArray:
		if _, ok := value.(*Array); !ok {
			return "", nil, invalid(string(op), "operand must be an array")
		}
	case operandObject:
		if _, ok := value.(*Object); !ok {
			return "", nil, invalid(string(op), "operand must be an object")
		}
	}

	var inner scope
	switch op {
	case OpAnd, OpOr, OpNor, OpElemMatch:
		inner = documentScope
	default:
		inner = operatorScope
	}

	compiled, err := compileValue(value, inner, op)
	if err != nil {
		return "", nil, err
	}
	return op.storeKey(), compiled, nil
}

func compileField(m Member) (string, any, error) {
	path := Normalize(m.Key)

	if obj, ok := m.Value.(*Object); ok && len(obj.Members) > 1 {
		clauses := &Array{}
		for _, prop := range obj.Members {
			if prop.Key == LastModifiedField {
				clauses.Items = append(clauses.Items, &Object{Members: []Member{{
					Key:      LastModifiedKey(path),
					Value:    prop.Value,
					resolved: true,
				}}})
				continue
			}
			clauses.Items = append(clauses.Items, &Object{Members: []Member{{
				Key:   m.Key,
				Value: &Object{Members: []Member{prop}},
			}}})
		}

		compiled, err := compileValue(clauses, documentScope, OpAnd)
		if err != nil {
			return "", nil, err
		}
		return OpAnd.storeKey(), splitClauses(compiled.(bson.A)), nil
	}

	value, err := compileValue(m.Value, operatorScope, "")
	if err != nil {
		return "", nil, err
	}
	return ValueKey(path), value, nil
}

// compileValue compiles any node. sc applies to objects found at this level;
// op is the operator whose operand is being compiled, if any.
func compileValue(n Node, sc scope, op Operator) (any, error) {
	switch v := n.(type) {
	case *Object:
		return compileObject(v, sc, op)
	case *Array:
		arr := make(bson.A, 0, len(v.Items))
		for _, item := range v.Items {
			compiled, err := compileValue(item, sc, op)
			if err != nil {
				return nil, err
			}
			arr = append(arr, compiled)
		}
		return arr, nil
	case *Literal:
		return literalValue(v, op), nil
	default:
		return nil, invalid("", "unsupported node %T", n)
	}
}

// literalValue renders a scalar for the store. Leaf values are stored as their
// string rendering, so literals are compared as strings unless the operator
// needs a typed operand.
func literalValue(l *Literal, op Operator) any {
	if l.Kind == NullLiteral {
		return nil
	}

	if operators[op].typedOperand {
		switch l.Kind {
		case BoolLiteral:
			return l.Bool
		case NumberLiteral:
			if i, err := l.Num.Int64(); err == nil {
				return i
			}
			if f, err := l.Num.Float64(); err == nil {
				return f
			}
		case StringLiteral:
			if op == OpExists {
				if b, err := strconv.ParseBool(l.Str); err == nil {
					return b
				}
			}
		}
	}

	switch l.Kind {
	case BoolLiteral:
		return strconv.FormatBool(l.Bool)
	case NumberLiteral:
		return l.Num.String()
	default:
		return l.Str
	}
}

// timestamps converts RFC 3339 strings in a compiled lastModified condition to
// time.Time, the type the store writes modification times with. The instant
// and offset are kept as given.
func timestamps(v any) any {
	switch t := v.(type) {
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
		return t
	case bson.D:
		for i := range t {
			t[i].Value = timestamps(t[i].Value)
		}
		return t
	case bson.A:
		for i := range t {
			t[i] = timestamps(t[i])
		}
		return t
	default:
		return v
	}
}

func hasKey(doc bson.D, key string) bool {
	for _, e := range doc {
		if e.Key == key {
			return true
		}
	}
	return false
}

// setKey appends key to doc, or replaces the value in place if the key is
// already present.
func setKey(doc bson.D, key string, value any) bson.D {
	for i := range doc {
		if doc[i].Key == key {
			doc[i].Value = value
			return doc
		}
	}
	return append(doc, bson.E{Key: key, Value: value})
}
