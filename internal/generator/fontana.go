package generator

import (
	"fmt"

	"github.com/arborist-labs/alchemy/internal/rng"
	"github.com/arborist-labs/alchemy/pkg/lambda"
)

// ProbRange is an inclusive [min, max] range a Fontana generator samples a
// per-node probability from.
type ProbRange struct {
	Min, Max float64
}

// Fontana generates a term by recursively choosing, at each node, between
// an abstraction, an application, or a variable. The abstraction and
// application probabilities are each redrawn per node from the configured
// ranges; whatever probability mass remains goes to variables. Recursion
// is bounded by maxDepth, and free-variable references are capped at
// maxFreeVars on a best-effort basis (a variable with no enclosing
// abstraction has no binder to refer to, so it is minted free even once the
// cap is reached).
type Fontana struct {
	abstractionProbRange ProbRange
	applicationProbRange ProbRange
	maxDepth             int
	maxFreeVars          int
	rng                  *rng.Rng
}

// NewFontana constructs a Fontana generator. maxDepth and maxFreeVars must
// be positive; both ranges must be within [0, 1] with Min <= Max.
func NewFontana(abstractionProbRange, applicationProbRange ProbRange, maxDepth, maxFreeVars int, seed rng.Seed) (*Fontana, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("generator: fontana max depth must be positive, got %d", maxDepth)
	}
	if maxFreeVars <= 0 {
		return nil, fmt.Errorf("generator: fontana max free vars must be positive, got %d", maxFreeVars)
	}
	for _, r := range []ProbRange{abstractionProbRange, applicationProbRange} {
		if r.Min < 0 || r.Max > 1 || r.Min > r.Max {
			return nil, fmt.Errorf("generator: fontana probability range %v is invalid", r)
		}
	}
	return &Fontana{
		abstractionProbRange: abstractionProbRange,
		applicationProbRange: applicationProbRange,
		maxDepth:             maxDepth,
		maxFreeVars:          maxFreeVars,
		rng:                  rng.New(seed),
	}, nil
}

// Generate draws one term from the generator's random source.
func (g *Fontana) Generate() (lambda.Term, error) {
	freeVarsUsed := 0
	return g.generate(0, 0, &freeVarsUsed), nil
}

// generate builds a node at recursion depth depth, under binders enclosing
// abstractions.
func (g *Fontana) generate(depth, binders int, freeVarsUsed *int) lambda.Term {
	if depth >= g.maxDepth {
		return g.variable(binders, freeVarsUsed)
	}

	absProb := g.sample(g.abstractionProbRange)
	appProb := g.sample(g.applicationProbRange)
	if absProb+appProb > 1 {
		appProb = 1 - absProb
	}

	roll := g.rng.Float64()
	switch {
	case roll < absProb:
		return lambda.NewAbs(g.generate(depth+1, binders+1, freeVarsUsed))
	case roll < absProb+appProb:
		return lambda.NewApp(g.generate(depth+1, binders, freeVarsUsed), g.generate(depth+1, binders, freeVarsUsed))
	default:
		return g.variable(binders, freeVarsUsed)
	}
}

func (g *Fontana) sample(r ProbRange) float64 {
	return r.Min + g.rng.Float64()*(r.Max-r.Min)
}

// variable resolves to a bound reference when one is in scope and either
// the free-variable budget is spent or a coin flip favors binding;
// otherwise it mints a fresh free variable.
func (g *Fontana) variable(depth int, freeVarsUsed *int) lambda.Term {
	if depth > 0 && (*freeVarsUsed >= g.maxFreeVars || g.rng.Float64() < 0.5) {
		return lambda.NewVar(g.rng.IntN(depth))
	}
	index := depth + *freeVarsUsed
	*freeVarsUsed++
	return lambda.NewVar(index)
}
