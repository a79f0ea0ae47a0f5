package calc

import (
	"slices"

	"github.com/roach88/numtower/internal/numeric"
)

var binaryOps = map[string]func(*Calculator, any, any) (numeric.Value, error){
	"add":     (*Calculator).Add,
	"sub":     (*Calculator).Sub,
	"mul":     (*Calculator).Mul,
	"div":     (*Calculator).Div,
	"pow":     (*Calculator).Pow,
	"compare": (*Calculator).compareValue,
}

var unaryOps = map[string]func(*Calculator, any) (numeric.Value, error){
	"sqrt":       (*Calculator).Sqrt,
	"reciprocal": (*Calculator).Reciprocal,
	"ln":         (*Calculator).NatLog,
	"inc":        (*Calculator).Inc,
	"dec":        (*Calculator).Dec,
}

// Arity returns the operand count of a named operation and whether Apply
// knows it.
func Arity(op string) (int, bool) {
	if _, ok := binaryOps[op]; ok {
		return 2, true
	}
	if _, ok := unaryOps[op]; ok {
		return 1, true
	}
	return 0, false
}

// OpNames lists the operations Apply accepts, sorted.
func OpNames() []string {
	names := make([]string, 0, len(binaryOps)+len(unaryOps))
	for name := range binaryOps {
		names = append(names, name)
	}
	for name := range unaryOps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Apply runs a named operation. compare yields -1, 0 or 1 as an Int.
// Unknown names and wrong operand counts fail with UNKNOWN_OPERATION.
func (c *Calculator) Apply(op string, args ...any) (numeric.Value, error) {
	n, ok := Arity(op)
	if !ok {
		return nil, numeric.NewError(numeric.CodeUnknownOperation, op, "unknown operation %q", op)
	}
	if len(args) != n {
		return nil, numeric.NewError(numeric.CodeUnknownOperation, op, "%s takes %d operands, got %d", op, n, len(args))
	}
	if n == 2 {
		return binaryOps[op](c, args[0], args[1])
	}
	return unaryOps[op](c, args[0])
}

func (c *Calculator) compareValue(a, b any) (numeric.Value, error) {
	r, err := c.Compare(a, b)
	if err != nil {
		return nil, err
	}
	return numeric.NewInt(int64(r)), nil
}
