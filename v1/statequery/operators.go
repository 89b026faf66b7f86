package statequery

// Operator is a query keyword that maps to a store operator of the same name
// prefixed with "$".
type Operator string

const (
	OpAnd       Operator = "and"
	OpOr        Operator = "or"
	OpNor       Operator = "nor"
	OpNot       Operator = "not"
	OpMod       Operator = "mod"
	OpWhere     Operator = "where"
	OpIn        Operator = "in"
	OpNin       Operator = "nin"
	OpAll       Operator = "all"
	OpEq        Operator = "eq"
	OpGt        Operator = "gt"
	OpGte       Operator = "gte"
	OpLt        Operator = "lt"
	OpLte       Operator = "lte"
	OpNe        Operator = "ne"
	OpExists    Operator = "exists"
	OpType      Operator = "type"
	OpSize      Operator = "size"
	OpRegex     Operator = "regex"
	OpExpr      Operator = "expr"
	OpElemMatch Operator = "elemMatch"
)

// operandKind describes what an operator accepts as its value.
type operandKind int

const (
	operandAny operandKind = iota
	operandArray
	operandObject
)

type operatorSpec struct {
	// documentLevel operators may appear outside a field, at the top of a
	// (sub)document. All others must be nested under a field.
	documentLevel bool
	operand       operandKind
	// typedOperand keeps the JSON type of literal operands instead of
	// rendering them as strings.
	typedOperand bool
}

var operators = map[Operator]operatorSpec{
	OpAnd:       {documentLevel: true, operand: operandArray},
	OpOr:        {documentLevel: true, operand: operandArray},
	OpNor:       {documentLevel: true, operand: operandArray},
	OpNot:       {documentLevel: true, operand: operandObject},
	OpWhere:     {documentLevel: true},
	OpExpr:      {documentLevel: true},
	OpMod:       {operand: operandArray, typedOperand: true},
	OpIn:        {operand: operandArray},
	OpNin:       {operand: operandArray},
	OpAll:       {operand: operandArray},
	OpEq:        {},
	OpGt:        {},
	OpGte:       {},
	OpLt:        {},
	OpLte:       {},
	OpNe:        {},
	OpExists:    {typedOperand: true},
	OpType:      {typedOperand: true},
	OpSize:      {typedOperand: true},
	OpRegex:     {},
	OpElemMatch: {operand: operandObject},
}

// IsOperator reports whether name is a recognized query keyword.
func IsOperator(name string) bool {
	_, ok := operators[Operator(name)]
	return ok
}

func (o Operator) storeKey() string {
	return "$" + string(o)
}
