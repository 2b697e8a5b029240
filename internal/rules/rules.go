// Package rules compiles the reactor's two-argument combinator rules from
// their textual form, once, at soup construction.
package rules

import (
	"fmt"

	"github.com/arborist-labs/alchemy/pkg/lambda"
)

// DefaultRule is the canonical default reaction rule, function application:
// \x.\y.x y.
const DefaultRule = `\x.\y.x y`

// Compile parses each source string as a lambda term and validates that it
// is a closed two-argument combinator (two nested abstractions wrapping a
// body with no escaping free variables). Compile fails construction rather
// than reaction: an unparseable or ill-shaped rule can never be fixed by
// retrying at reaction time.
func Compile(sources []string) ([]lambda.Term, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("rules: at least one rule is required")
	}
	compiled := make([]lambda.Term, 0, len(sources))
	for i, src := range sources {
		term, err := lambda.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("rules: parsing rule %d (%q): %w", i, src, err)
		}
		if err := validateTwoArgCombinator(term); err != nil {
			return nil, fmt.Errorf("rules: rule %d (%q): %w", i, src, err)
		}
		compiled = append(compiled, term)
	}
	return compiled, nil
}

func validateTwoArgCombinator(term lambda.Term) error {
	outer, ok := term.(lambda.Abs)
	if !ok {
		return fmt.Errorf("rule must be a two-argument abstraction")
	}
	if _, ok := outer.Body.(lambda.Abs); !ok {
		return fmt.Errorf("rule must take exactly two arguments")
	}
	if lambda.HasFreeVariables(term) {
		return fmt.Errorf("rule must be closed")
	}
	return nil
}
