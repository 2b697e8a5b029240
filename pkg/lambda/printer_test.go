package lambda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringRendersBoundNames(t *testing.T) {
	term, err := Parse(`\x.\y.x y`)
	require.NoError(t, err)
	assert.Equal(t, `\x0.\x1.x0 x1`, term.String())
}

func TestStringRendersFreeNames(t *testing.T) {
	term, err := Parse(`\x.y`)
	require.NoError(t, err)
	assert.Equal(t, `\x0.f0`, term.String())
}

func TestDeBruijnString(t *testing.T) {
	term, err := Parse(`\x.\y.x`)
	require.NoError(t, err)
	assert.Equal(t, `\.\.1`, DeBruijnString(term))
}
