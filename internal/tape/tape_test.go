package tape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborist-labs/alchemy/internal/rng"
	"github.com/arborist-labs/alchemy/internal/soup"
	"github.com/arborist-labs/alchemy/pkg/lambda"
)

func newTestSoup(t *testing.T, seedByte byte) *soup.Soup {
	t.Helper()
	var seed rng.Seed
	seed[0] = seedByte
	s, err := soup.New(soup.Config{
		Rules:                          []string{`\x.\y.x y`},
		ReductionLimit:                 500,
		SizeLimit:                      500,
		DiscardCopyActions:             true,
		DiscardIdentity:                true,
		DiscardFreeVariableExpressions: true,
		MaintainConstantPopulationSize: true,
		Seed:                           &seed,
	})
	require.NoError(t, err)
	return s
}

func TestBuilderRecordsIndependentSnapshots(t *testing.T) {
	s := newTestSoup(t, 1)
	term, err := lambda.Parse(`\x.\y.\z.x z (y z)`)
	require.NoError(t, err)
	s.Perturb(term, term)

	b := NewBuilder(1)
	sizeAtSnapshot := s.Len()
	b.Record(s)
	s.Perturb(term) // mutate after the snapshot was taken

	tp := b.Finish(s)
	require.Len(t, tp.History(), 1)
	assert.Equal(t, sizeAtSnapshot, tp.History()[0].Len())
	assert.NotEqual(t, tp.History()[0].Len(), tp.FinalState().Len())
}

func TestFinalStateIsIndependentOfSource(t *testing.T) {
	s := newTestSoup(t, 2)
	term, err := lambda.Parse(`\x.x`)
	require.NoError(t, err)
	s.Perturb(term)

	b := NewBuilder(3)
	tp := b.Finish(s)
	s.Perturb(term)
	assert.NotEqual(t, s.Len(), tp.FinalState().Len())
}

func TestPollingIntervalIsStored(t *testing.T) {
	b := NewBuilder(5)
	tp := b.Finish(newTestSoup(t, 3))
	assert.Equal(t, 5, tp.PollingInterval())
}
