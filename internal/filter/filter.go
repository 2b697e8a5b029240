// Package filter implements the pure accept/reject predicates applied to a
// collision's reduced product, in the fixed order the specification
// requires: identity, then copy-of-parent, then free-variable.
package filter

import (
	"errors"

	"github.com/arborist-labs/alchemy/pkg/lambda"
)

// Sentinel errors for each rejection reason. They are deliberately
// comparable with errors.Is so callers can branch on rejection cause
// without string matching.
var (
	ErrIsIdentity       = errors.New("filter: product is identity")
	ErrIsParent         = errors.New("filter: product is a copy of a parent")
	ErrHasFreeVariables = errors.New("filter: product has free variables")
)

// identity is the single-abstraction identity function \x.x.
var identity = lambda.Abs{Body: lambda.Var{Index: 0}}

// Flags selects which predicates are active for a soup.
type Flags struct {
	DiscardIdentity                bool
	DiscardCopyActions             bool
	DiscardFreeVariableExpressions bool
}

// Apply runs the enabled predicates against product, in the fixed order
// identity -> copy-of-parent -> free-variable, returning the first
// rejection reason encountered, or nil if product survives every enabled
// filter.
func Apply(flags Flags, product, left, right lambda.Term) error {
	if flags.DiscardIdentity && lambda.IsIsomorphicTo(product, identity) {
		return ErrIsIdentity
	}
	if flags.DiscardCopyActions && (lambda.IsIsomorphicTo(product, left) || lambda.IsIsomorphicTo(product, right)) {
		return ErrIsParent
	}
	if flags.DiscardFreeVariableExpressions && lambda.HasFreeVariables(product) {
		return ErrHasFreeVariables
	}
	return nil
}
