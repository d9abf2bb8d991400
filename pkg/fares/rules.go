package fares

import (
	"fmt"
	"math"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/hkmtr/pkg/network"
)

// RuleEnv is what a fare class rule can see
type RuleEnv struct {
	Adult        float64 `expr:"adult"`
	Stations     int     `expr:"stations"`
	Interchanges int     `expr:"interchanges"`
}

// Rules derive the fares of non adult classes from the adult fare
type Rules struct {
	programs map[Class]*vm.Program
	sources  map[Class]string
}

// CompileRules compiles one expression per fare class, the expression must evaluate to a number of dollars
func CompileRules(definitions map[Class]string) (*Rules, error) {
	rules := &Rules{
		programs: map[Class]*vm.Program{},
		sources:  map[Class]string{},
	}

	for class, code := range definitions {
		if class == ClassAdult {
			return nil, fmt.Errorf("adult fares cannot be derived from a rule: %w", network.ErrInvalidData)
		}

		program, err := expr.Compile(code, expr.Env(RuleEnv{}), expr.AsFloat64())
		if err != nil {
			return nil, fmt.Errorf("compiling %s fare rule %q: %v: %w", class, code, err, network.ErrInvalidData)
		}

		rules.programs[class] = program
		rules.sources[class] = code
	}

	return rules, nil
}

// Classes returns the classes that have a rule, sorted
func (r *Rules) Classes() []Class {
	if r == nil {
		return nil
	}

	classes := make([]Class, 0, len(r.programs))
	for class := range r.programs {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i] < classes[j]
	})

	return classes
}

// Source returns the expression text of a class rule
func (r *Rules) Source(class Class) string {
	if r == nil {
		return ""
	}

	return r.sources[class]
}

// Derive evaluates the rule for class, the result is rounded half up to unit
func (r *Rules) Derive(class Class, env RuleEnv, unit network.Cost) (network.Cost, error) {
	if r == nil {
		return 0, fmt.Errorf("no rule for %s fares: %w", class, network.ErrNotFound)
	}

	program, exists := r.programs[class]
	if !exists {
		return 0, fmt.Errorf("no rule for %s fares: %w", class, network.ErrNotFound)
	}

	output, err := expr.Run(program, env)
	if err != nil {
		return 0, fmt.Errorf("evaluating %s fare rule: %w", class, err)
	}

	value, ok := output.(float64)
	if !ok {
		return 0, fmt.Errorf("%s fare rule returned %T: %w", class, output, network.ErrInvalidData)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s fare rule returned negative fare %v: %w", class, value, network.ErrInvalidData)
	}
	if math.IsNaN(value) || value > network.MaxCost.Float64() {
		return 0, fmt.Errorf("%s fare rule returned %v, above %s: %w", class, value, network.MaxCost, network.ErrInvalidData)
	}

	return RoundDollarsHalfUp(value, unit), nil
}
