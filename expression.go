package fieldx

import (
	"context"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Compute returns a PreDumpHook that evaluates expression against the
// attributes of the source and attaches the result as attribute name.
//
// The expression is compiled once. Attributes the source does not expose
// evaluate to nil.
//
//	hook, err := fieldx.Compute("big_hit", "num_sold > 1000000")
func Compute(name, expression string) (PreDumpHook, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewConfigurationError("computed attribute name cannot be empty")
	}
	program, err := compileExpression(expression)
	if err != nil {
		return nil, NewConfigurationError("compute '%s': %v", name, err)
	}

	return func(ctx context.Context, src Source) (Source, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := expr.Run(program, attributes(src))
		if err != nil {
			return nil, fmt.Errorf("compute '%s': %w", name, err)
		}
		return Extend(src, map[string]any{name: out}), nil
	}, nil
}

// MustCompute is like Compute but panics on error.
func MustCompute(name, expression string) PreDumpHook {
	hook, err := Compute(name, expression)
	if err != nil {
		panic(err)
	}
	return hook
}

func compileExpression(expression string) (*vm.Program, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("expression cannot be empty")
	}
	return expr.Compile(expression, expr.AllowUndefinedVariables())
}
