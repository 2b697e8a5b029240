// Package tape records periodic full-soup snapshots produced by a
// simulation run. A Tape is append-only during construction and immutable
// thereafter.
package tape

import "github.com/arborist-labs/alchemy/internal/soup"

// Tape is an immutable sequence of deep-cloned soup snapshots, taken at a
// fixed polling interval, plus the final soup state.
type Tape struct {
	finalState      *soup.Soup
	history         []*soup.Soup
	pollingInterval int
}

// Builder accumulates snapshots during a simulation run, then freezes into
// a Tape.
type Builder struct {
	history         []*soup.Soup
	pollingInterval int
}

// NewBuilder starts a Tape recording at the given polling interval.
func NewBuilder(pollingInterval int) *Builder {
	return &Builder{pollingInterval: pollingInterval}
}

// Record deep-clones s and appends it to the snapshot history. Mutating s
// after Record returns does not affect the stored snapshot.
func (b *Builder) Record(s *soup.Soup) {
	b.history = append(b.history, s.Clone())
}

// Finish freezes the recording into a Tape whose final state is a deep
// clone of final.
func (b *Builder) Finish(final *soup.Soup) *Tape {
	return &Tape{
		finalState:      final.Clone(),
		history:         b.history,
		pollingInterval: b.pollingInterval,
	}
}

// FinalState returns the soup state at the end of the recorded simulation.
func (t *Tape) FinalState() *soup.Soup { return t.finalState }

// History returns the recorded snapshots in recording order.
func (t *Tape) History() []*soup.Soup { return t.history }

// PollingInterval returns the interval at which snapshots were taken.
func (t *Tape) PollingInterval() int { return t.pollingInterval }
