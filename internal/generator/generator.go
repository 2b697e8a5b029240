// Package generator builds random seed terms for a soup. Two families are
// provided: BTree, a permutation-driven random binary tree shaped into a
// term, and Fontana, a depth-bounded stochastic grammar.
package generator

import "github.com/arborist-labs/alchemy/pkg/lambda"

// Generator produces one random closed-or-open term per call.
type Generator interface {
	Generate() (lambda.Term, error)
}

// Standardization controls how a BTree generator resolves a bound variable
// leaf to a binder, when it isn't made free.
type Standardization int

const (
	// StandardizationNone picks a uniformly random compatible binder.
	StandardizationNone Standardization = iota
	// StandardizationPrefix always picks the earliest (outermost) binder.
	StandardizationPrefix
	// StandardizationPostfix always picks the most recent (innermost) binder.
	StandardizationPostfix
)
