// Package reducer drives bounded beta reduction: repeated single HAP steps
// under both a reduction-step cap and a term-size cap.
package reducer

import (
	"errors"

	"github.com/arborist-labs/alchemy/pkg/lambda"
)

// Sentinel errors for the two ways a bounded reduction can fail. Neither
// represents a programming error; both are expected, counted outcomes.
var (
	ErrExceedsReductionLimit = errors.New("reducer: exceeds reduction limit")
	ErrExceedsDepthLimit     = errors.New("reducer: exceeds depth limit")
)

// Reduce performs up to rLimit individual head-applicative-order beta steps
// on term. If the term's size ever exceeds sLimit after a step, it fails
// with ErrExceedsDepthLimit. If term reaches normal form before the budget
// is exhausted, it returns the reduced term and the number of steps taken.
// If the budget is exhausted first, it fails with ErrExceedsReductionLimit.
func Reduce(term lambda.Term, rLimit, sLimit int) (lambda.Term, int, error) {
	for steps := 0; steps < rLimit; steps++ {
		next, changed := lambda.Step(term)
		if !changed {
			return term, steps, nil
		}
		if lambda.Size(next) > sLimit {
			return nil, steps + 1, ErrExceedsDepthLimit
		}
		term = next
	}
	return nil, rLimit, ErrExceedsReductionLimit
}
