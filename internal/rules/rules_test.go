package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileDefaultRule(t *testing.T) {
	compiled, err := Compile([]string{DefaultRule})
	require.NoError(t, err)
	require.Len(t, compiled, 1)
}

func TestCompileRejectsEmptyList(t *testing.T) {
	_, err := Compile(nil)
	assert.Error(t, err)
}

func TestCompileRejectsUnparseableRule(t *testing.T) {
	_, err := Compile([]string{`\x.(`})
	assert.Error(t, err)
}

func TestCompileRejectsSingleArgumentRule(t *testing.T) {
	_, err := Compile([]string{`\x.x`})
	assert.Error(t, err)
}

func TestCompileRejectsOpenRule(t *testing.T) {
	_, err := Compile([]string{`\x.\y.z`})
	assert.Error(t, err)
}

func TestCompileMultipleRules(t *testing.T) {
	compiled, err := Compile([]string{`\x.\y.x y`, `\x.\y.x`, `\x.\y.y`})
	require.NoError(t, err)
	assert.Len(t, compiled, 3)
}
