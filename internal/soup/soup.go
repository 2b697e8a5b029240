// Package soup implements the reactor: a mutable population of lambda
// terms that evolves under randomized pairwise collisions. A Soup owns its
// population, its compiled rule set, its reduction bounds, its filter
// flags, and its own seeded random source; nothing about a soup's future is
// observable except through the methods in this package.
package soup

import (
	"errors"
	"fmt"

	"github.com/arborist-labs/alchemy/internal/filter"
	"github.com/arborist-labs/alchemy/internal/measure"
	"github.com/arborist-labs/alchemy/internal/reducer"
	"github.com/arborist-labs/alchemy/internal/rng"
	"github.com/arborist-labs/alchemy/internal/rules"
	"github.com/arborist-labs/alchemy/pkg/lambda"
)

// ErrNotEnoughExpressions is returned by React when the population has
// fewer than two expressions to draw a reacting pair from.
var ErrNotEnoughExpressions = errors.New("soup: not enough expressions to react")

// Config describes how to construct a Soup.
type Config struct {
	Rules []string

	ReductionLimit int
	SizeLimit      int

	DiscardCopyActions             bool
	DiscardIdentity                bool
	DiscardFreeVariableExpressions bool
	DiscardParents                 bool
	MaintainConstantPopulationSize bool

	// Seed pins the reactor's PRNG. A nil Seed draws from the OS CSPRNG.
	Seed *rng.Seed
}

// Soup is the reactor state machine.
type Soup struct {
	expressions []lambda.Term
	rules       []lambda.Term

	reductionLimit int
	sizeLimit      int
	flags          filter.Flags
	discardParents bool
	constantSize   bool

	rng        *rng.Rng
	collisions uint64
}

// New constructs an empty Soup from cfg. Rule compilation, and the
// reduction/size limits, are validated here; once constructed, rule
// application cannot fail for syntactic reasons.
func New(cfg Config) (*Soup, error) {
	if cfg.ReductionLimit <= 0 {
		return nil, fmt.Errorf("soup: reduction limit must be positive, got %d", cfg.ReductionLimit)
	}
	if cfg.SizeLimit <= 0 {
		return nil, fmt.Errorf("soup: size limit must be positive, got %d", cfg.SizeLimit)
	}
	compiled, err := rules.Compile(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("soup: compiling rules: %w", err)
	}

	seed := rng.Seed{}
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else {
		seed, err = rng.RandomSeed()
		if err != nil {
			return nil, fmt.Errorf("soup: drawing random seed: %w", err)
		}
	}

	return &Soup{
		rules:          compiled,
		reductionLimit: cfg.ReductionLimit,
		sizeLimit:      cfg.SizeLimit,
		flags: filter.Flags{
			DiscardIdentity:                cfg.DiscardIdentity,
			DiscardCopyActions:              cfg.DiscardCopyActions,
			DiscardFreeVariableExpressions: cfg.DiscardFreeVariableExpressions,
		},
		discardParents: cfg.DiscardParents,
		constantSize:   cfg.MaintainConstantPopulationSize,
		rng:            rng.New(seed),
	}, nil
}

// Perturb admits terms into the population. When the soup discards
// free-variable expressions, open terms are silently dropped at this
// admission point, matching product admission's behavior during React.
func (s *Soup) Perturb(terms ...lambda.Term) {
	for _, t := range terms {
		if s.flags.DiscardFreeVariableExpressions && lambda.HasFreeVariables(t) {
			continue
		}
		s.expressions = append(s.expressions, t)
	}
}

// Len returns the current population size.
func (s *Soup) Len() int { return len(s.expressions) }

// Collisions returns the number of rule applications attempted so far,
// across every React call. This is a workload proxy distinct from the
// number of reactions: it increases once per rule per React call, not once
// per React call.
func (s *Soup) Collisions() uint64 { return s.collisions }

// Expressions returns a copy of the current population. Callers must not
// rely on element order.
func (s *Soup) Expressions() []lambda.Term {
	out := make([]lambda.Term, len(s.expressions))
	copy(out, s.expressions)
	return out
}

// Clone returns an independent deep copy of the soup: its own population
// slice and its own cloned random source, so that mutating either soup
// afterward cannot affect the other. Tape relies on this for snapshotting.
func (s *Soup) Clone() *Soup {
	expressions := make([]lambda.Term, len(s.expressions))
	copy(expressions, s.expressions)
	rulesCopy := make([]lambda.Term, len(s.rules))
	copy(rulesCopy, s.rules)
	return &Soup{
		expressions:    expressions,
		rules:          rulesCopy,
		reductionLimit: s.reductionLimit,
		sizeLimit:      s.sizeLimit,
		flags:          s.flags,
		discardParents: s.discardParents,
		constantSize:   s.constantSize,
		rng:            s.rng.Clone(),
		collisions:     s.collisions,
	}
}

// CollisionResult records one rule's outcome within a reaction: the
// product's max depth and the number of reduction steps it took.
type CollisionResult struct {
	ProductDepth   int
	ReductionSteps int
}

// ReactionResult records the outcome of one successful React call.
type ReactionResult struct {
	Collisions []CollisionResult
	// LeftSize and RightSize are the max depths of the two drawn parents,
	// recorded before either rule ran.
	LeftSize  int
	RightSize int
}

// collide constructs ((rule left) right), reduces it under the soup's
// bounds, and filters the product in the fixed identity/parent/free-
// variable order. It does not mutate the soup.
func (s *Soup) collide(rule, left, right lambda.Term) (lambda.Term, int, error) {
	candidate := lambda.NewApp(lambda.NewApp(rule, left), right)
	product, steps, err := reducer.Reduce(candidate, s.reductionLimit, s.sizeLimit)
	if err != nil {
		return nil, 0, err
	}
	if err := filter.Apply(s.flags, product, left, right); err != nil {
		return nil, 0, err
	}
	return product, steps, nil
}

// React performs one reaction: draw two distinct parents without
// replacement, collide them against every rule in order, short-circuiting
// on the first rule's rejection, then admit all products on full success
// and regulate population size.
func (s *Soup) React() (ReactionResult, error) {
	n := len(s.expressions)
	if n < 2 {
		return ReactionResult{}, ErrNotEnoughExpressions
	}

	i := s.rng.IntN(n)
	left := s.swapRemove(i)
	j := s.rng.IntN(n - 1)
	right := s.swapRemove(j)

	leftSize := lambda.MaxDepth(left)
	rightSize := lambda.MaxDepth(right)

	products := make([]lambda.Term, 0, len(s.rules))
	collisions := make([]CollisionResult, 0, len(s.rules))

	for _, rule := range s.rules {
		s.collisions++
		product, steps, err := s.collide(rule, left, right)
		if err != nil {
			if !s.discardParents {
				s.expressions = append(s.expressions, left, right)
			}
			return ReactionResult{}, err
		}
		products = append(products, product)
		collisions = append(collisions, CollisionResult{
			ProductDepth:   lambda.MaxDepth(product),
			ReductionSteps: steps,
		})
	}

	s.expressions = append(s.expressions, products...)
	if !s.discardParents {
		s.expressions = append(s.expressions, left, right)
	}

	if s.constantSize {
		// Net back to the starting size: the products were added, and the
		// two parents stay removed only when they were not reinserted above.
		// With parents discarded and a single rule, the one product cannot
		// replace both parents, so the population shrinks by one.
		excess := len(products)
		if s.discardParents {
			excess -= 2
		}
		s.trim(excess)
	}

	return ReactionResult{Collisions: collisions, LeftSize: leftSize, RightSize: rightSize}, nil
}

// swapRemove removes and returns the expression at index i in O(1) by
// swapping it with the last element.
func (s *Soup) swapRemove(i int) lambda.Term {
	last := len(s.expressions) - 1
	t := s.expressions[i]
	s.expressions[i] = s.expressions[last]
	s.expressions = s.expressions[:last]
	return t
}

// trim removes n expressions uniformly at random by swap-removal, clamped
// to the current population size.
func (s *Soup) trim(n int) {
	if n > len(s.expressions) {
		n = len(s.expressions)
	}
	for k := 0; k < n; k++ {
		idx := s.rng.IntN(len(s.expressions))
		s.swapRemove(idx)
	}
}

// ExpressionCounts returns the exact multiplicity of each distinct term in
// the current population.
func (s *Soup) ExpressionCounts() map[lambda.Term]uint32 {
	return measure.ExpressionCounts(s.expressions)
}

// UniqueExpressions returns the set of distinct terms in the current
// population.
func (s *Soup) UniqueExpressions() map[lambda.Term]struct{} {
	return measure.UniqueExpressions(s.expressions)
}

// KMostFrequentExprs returns the top-k terms in the current population by
// multiplicity, ties broken by first-seen order.
func (s *Soup) KMostFrequentExprs(k int) []lambda.Term {
	return measure.KMostFrequentExprs(s.expressions, k)
}

// PopulationEntropy returns the base-10 Shannon entropy of the current
// population's term-frequency distribution.
func (s *Soup) PopulationEntropy() float32 {
	return measure.PopulationEntropy(s.expressions)
}

// JaccardIndex returns the multiset Jaccard-like ratio between this soup's
// population and other's.
func (s *Soup) JaccardIndex(other *Soup) float32 {
	return measure.JaccardIndex(s.expressions, other.expressions)
}
