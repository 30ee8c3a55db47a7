package script

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/yuin/gopher-lua/ast"
	"github.com/yuin/gopher-lua/parse"
)

// Literals parses a settings script into a flat key/value mapping.
// The script must consist solely of top-level assignments of literal
// values. Record-style tables become map[string]any, array-style tables
// become []any. Any non-literal construct is a parse error.
func Literals(data []byte, name string) (map[string]any, error) {
	chunk, err := parse.Parse(bytes.NewReader(data), name)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	result := make(map[string]any)
	for _, stmt := range chunk {
		assign, ok := stmt.(*ast.AssignStmt)
		if !ok {
			return nil, fmt.Errorf("%s: only literal assignments are allowed, found %T", name, stmt)
		}
		if len(assign.Lhs) != 1 || len(assign.Rhs) != 1 {
			return nil, fmt.Errorf("%s: multiple assignment is not allowed", name)
		}

		ident, ok := assign.Lhs[0].(*ast.IdentExpr)
		if !ok {
			return nil, fmt.Errorf("%s: assignment target must be a plain name", name)
		}

		value, err := evalLiteral(assign.Rhs[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", name, ident.Value, err)
		}
		result[ident.Value] = value
	}

	return result, nil
}

// evalLiteral evaluates a literal expression node to a Go value.
func evalLiteral(expr ast.Expr) (any, error) {
	switch e := expr.(type) {
	case *ast.NilExpr:
		return nil, nil
	case *ast.TrueExpr:
		return true, nil
	case *ast.FalseExpr:
		return false, nil
	case *ast.NumberExpr:
		return evalNumber(e.Value)
	case *ast.StringExpr:
		return e.Value, nil
	case *ast.UnaryMinusOpExpr:
		operand, err := evalLiteral(e.Expr)
		if err != nil {
			return nil, err
		}
		switch n := operand.(type) {
		case int64:
			return -n, nil
		case float64:
			return -n, nil
		default:
			return nil, fmt.Errorf("unary minus on non-number %T", operand)
		}
	case *ast.TableExpr:
		return evalTable(e)
	default:
		return nil, fmt.Errorf("non-literal expression %T", expr)
	}
}

// evalNumber parses a Lua number token. Integer-valued numbers become
// int64, everything else float64, matching the Lua-to-Go bridge.
func evalNumber(tok string) (any, error) {
	// Decimal first: Lua reads leading zeros as decimal, not octal.
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return n, nil
	}
	if n, err := strconv.ParseInt(tok, 0, 64); err == nil {
		return n, nil // hex literals
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", tok)
	}
	if f == float64(int64(f)) {
		return int64(f), nil
	}
	return f, nil
}

// evalTable evaluates a table literal. A table with only keyless fields
// is an array; a table with only string keys is a record. Mixed tables
// are rejected.
func evalTable(t *ast.TableExpr) (any, error) {
	var arr []any
	rec := make(map[string]any)

	for _, field := range t.Fields {
		value, err := evalLiteral(field.Value)
		if err != nil {
			return nil, err
		}

		if field.Key == nil {
			arr = append(arr, value)
			continue
		}

		key, ok := field.Key.(*ast.StringExpr)
		if !ok {
			return nil, fmt.Errorf("table key must be a string, found %T", field.Key)
		}
		rec[key.Value] = value
	}

	if len(arr) > 0 && len(rec) > 0 {
		return nil, fmt.Errorf("table mixes array and record fields")
	}
	if len(arr) > 0 {
		return arr, nil
	}
	return rec, nil
}
