package measure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborist-labs/alchemy/pkg/lambda"
)

func mustParse(t *testing.T, s string) lambda.Term {
	t.Helper()
	term, err := lambda.Parse(s)
	require.NoError(t, err)
	return term
}

func TestExpressionCounts(t *testing.T) {
	a := mustParse(t, `\x.x`)
	b := mustParse(t, `\x.\y.x`)
	counts := ExpressionCounts([]lambda.Term{a, a, b})
	assert.Equal(t, uint32(2), counts[a])
	assert.Equal(t, uint32(1), counts[b])
}

func TestUniqueExpressions(t *testing.T) {
	a := mustParse(t, `\x.x`)
	b := mustParse(t, `\x.\y.x`)
	set := UniqueExpressions([]lambda.Term{a, a, b})
	assert.Len(t, set, 2)
}

func TestKMostFrequentExprsOrdersByCountThenFirstSeen(t *testing.T) {
	a := mustParse(t, `\x.x`)    // first-seen index 0, count 1
	b := mustParse(t, `\x.\y.x`) // first-seen index 1, count 2
	c := mustParse(t, `\x.\y.y`) // first-seen index 3, count 2
	exprs := []lambda.Term{a, b, b, c, c}

	top := KMostFrequentExprs(exprs, 3)
	require.Len(t, top, 3)
	assert.True(t, lambda.IsIsomorphicTo(top[0], b))
	assert.True(t, lambda.IsIsomorphicTo(top[1], c))
	assert.True(t, lambda.IsIsomorphicTo(top[2], a))
}

func TestKMostFrequentExprsKAtLeastUniqueReturnsAll(t *testing.T) {
	a := mustParse(t, `\x.x`)
	b := mustParse(t, `\x.\y.x`)
	top := KMostFrequentExprs([]lambda.Term{a, b}, 10)
	assert.Len(t, top, 2)
}

// S5: a population of 100 distinct terms, each with multiplicity 1, has
// entropy exactly log10(100) == 2.0.
func TestPopulationEntropyUniformDistinctPopulation(t *testing.T) {
	exprs := make([]lambda.Term, 100)
	for i := range exprs {
		exprs[i] = lambda.Var{Index: i} // 100 structurally distinct open terms
	}
	h := PopulationEntropy(exprs)
	assert.InDelta(t, 2.0, h, 1e-4)
}

func TestPopulationEntropyAllIsomorphicIsZero(t *testing.T) {
	a := mustParse(t, `\x.x`)
	exprs := []lambda.Term{a, a, a, a}
	assert.InDelta(t, 0.0, PopulationEntropy(exprs), 1e-6)
}

func TestPopulationEntropyBounds(t *testing.T) {
	exprs := []lambda.Term{
		mustParse(t, `\x.x`), mustParse(t, `\x.x`),
		mustParse(t, `\x.\y.x`),
		mustParse(t, `\x.\y.y`), mustParse(t, `\x.\y.y`), mustParse(t, `\x.\y.y`),
	}
	h := PopulationEntropy(exprs)
	maxEntropy := math.Log10(float64(len(UniqueExpressions(exprs))))
	assert.GreaterOrEqual(t, h, float32(0))
	assert.LessOrEqual(t, float64(h), maxEntropy+1e-6)
}

func TestJaccardIndexSelfIsOneHalf(t *testing.T) {
	exprs := []lambda.Term{mustParse(t, `\x.x`), mustParse(t, `\x.\y.x`), mustParse(t, `\x.\y.x`)}
	assert.InDelta(t, 0.5, JaccardIndex(exprs, exprs), 1e-6)
}

func TestJaccardIndexSymmetric(t *testing.T) {
	a := []lambda.Term{mustParse(t, `\x.x`), mustParse(t, `\x.\y.x`)}
	b := []lambda.Term{mustParse(t, `\x.\y.x`), mustParse(t, `\x.\y.y`), mustParse(t, `\x.\y.y`)}
	assert.Equal(t, JaccardIndex(a, b), JaccardIndex(b, a))
}

func TestJaccardIndexBounds(t *testing.T) {
	a := []lambda.Term{mustParse(t, `\x.x`), mustParse(t, `\x.\y.x`)}
	b := []lambda.Term{mustParse(t, `\x.\y.y`), mustParse(t, `\x.x x`)}
	j := JaccardIndex(a, b)
	assert.GreaterOrEqual(t, j, float32(0))
	assert.LessOrEqual(t, j, float32(0.5))
}
