package lambda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepToNormalForm(t *testing.T, term Term, maxSteps int) (Term, int) {
	t.Helper()
	for i := 0; i < maxSteps; i++ {
		next, changed := Step(term)
		if !changed {
			return term, i
		}
		term = next
	}
	t.Fatalf("did not reach normal form within %d steps", maxSteps)
	return nil, 0
}

func TestStepIdentityIsAlreadyNormal(t *testing.T) {
	term, err := Parse(`\x.x`)
	require.NoError(t, err)
	_, changed := Step(term)
	assert.False(t, changed)
}

func TestStepIdentityApplication(t *testing.T) {
	term, err := Parse(`(\x.x) y`)
	require.NoError(t, err)
	result, steps := stepToNormalForm(t, term, 10)
	assert.Equal(t, 1, steps)
	y, err := Parse(`y`)
	require.NoError(t, err)
	assert.True(t, IsIsomorphicTo(result, y))
}

func TestStepKCombinator(t *testing.T) {
	// (\x.\y.x) a b -> a
	term, err := Parse(`(\x.\y.x) a b`)
	require.NoError(t, err)
	result, _ := stepToNormalForm(t, term, 10)
	a, err := Parse(`a`)
	require.NoError(t, err)
	assert.True(t, IsIsomorphicTo(result, a))
}

func TestStepDefaultRuleApplication(t *testing.T) {
	// (\x.\y.x y) (\x.x) z -> (\x.x) z -> z
	term, err := Parse(`(\x.\y.x y) (\x.x) z`)
	require.NoError(t, err)
	result, _ := stepToNormalForm(t, term, 10)
	z, err := Parse(`z`)
	require.NoError(t, err)
	assert.True(t, IsIsomorphicTo(result, z))
}

func TestStepHAPReducesArgumentFirst(t *testing.T) {
	// The argument to the outer redex, ((\y.y) z), is itself a redex, so
	// HAP must reduce it to normal form (z) before firing the outer redex.
	term, err := Parse(`(\x.x x) ((\y.y) z)`)
	require.NoError(t, err)
	result, steps := stepToNormalForm(t, term, 10)
	want, err := Parse(`z z`)
	require.NoError(t, err)
	assert.True(t, IsIsomorphicTo(result, want))
	assert.Equal(t, 2, steps)
}

func TestIsNormalForm(t *testing.T) {
	nf, err := Parse(`\x.x y`)
	require.NoError(t, err)
	assert.True(t, IsNormalForm(nf))

	redex, err := Parse(`(\x.x) y`)
	require.NoError(t, err)
	assert.False(t, IsNormalForm(redex))
}
