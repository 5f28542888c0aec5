package extensibility

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/comalice/fwgraph/internal/primitives"
	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/sm"
)

var ErrBadExpression = errors.New("bad guard expression")

// Expr is a parsed "key op value" comparison over a Context. Supported
// operators are ==, !=, <, <=, > and >=. Ordering operators need a numeric
// value; equality also accepts true, false, nil or a bare string.
type Expr struct {
	src   string
	key   string
	op    string
	lit   string
	num   float64
	isNum bool
}

// ParseExpr parses s once so that evaluation does no string work.
func ParseExpr(s string) (Expr, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return Expr{}, fmt.Errorf("%q: %w", s, ErrBadExpression)
	}
	e := Expr{src: s, key: parts[0], op: parts[1], lit: parts[2]}
	f, err := strconv.ParseFloat(e.lit, 64)
	if err == nil {
		e.num, e.isNum = f, true
	}
	switch e.op {
	case "==", "!=":
	case "<", "<=", ">", ">=":
		if !e.isNum {
			return Expr{}, fmt.Errorf("%q: operator %s needs a number: %w", s, e.op, ErrBadExpression)
		}
	default:
		return Expr{}, fmt.Errorf("%q: unknown operator %s: %w", s, e.op, ErrBadExpression)
	}
	return e, nil
}

func (e Expr) String() string { return e.src }

// Eval compares the value under the key with the literal. A missing key is
// false for every operator.
func (e Expr) Eval(ctx *primitives.Context) bool {
	if ctx == nil {
		return false
	}
	v, ok := ctx.Get(e.key)
	if !ok {
		return false
	}
	switch e.op {
	case "==":
		return e.equal(v)
	case "!=":
		return !e.equal(v)
	}
	f, ok := number(v)
	if !ok {
		return false
	}
	switch e.op {
	case "<":
		return f < e.num
	case "<=":
		return f <= e.num
	case ">":
		return f > e.num
	default:
		return f >= e.num
	}
}

func (e Expr) equal(v any) bool {
	switch e.lit {
	case "true":
		return v == true
	case "false":
		return v == false
	case "nil":
		return v == nil
	}
	if e.isNum {
		if f, ok := number(v); ok {
			return f == e.num
		}
	}
	s, ok := v.(string)
	return ok && s == e.lit
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ExpressionGuard parses expr into a guard that reads the *primitives.Context
// held as the machine's user data. Machines with other data see false.
func ExpressionGuard(expr string) (*sm.Guard, error) {
	e, err := ParseExpr(expr)
	if err != nil {
		return nil, err
	}
	return sm.NewGuard(expr, func(m *sm.Machine) bool {
		ctx, _ := m.Data().(*primitives.Context)
		return e.Eval(ctx)
	}), nil
}

// ExpressionFlowGuard is ExpressionGuard for procedures.
func ExpressionFlowGuard(expr string) (*pr.Guard, error) {
	e, err := ParseExpr(expr)
	if err != nil {
		return nil, err
	}
	return pr.NewGuard(expr, func(p *pr.Procedure) bool {
		ctx, _ := p.Data().(*primitives.Context)
		return e.Eval(ctx)
	}), nil
}
