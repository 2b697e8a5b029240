// Package simulate implements the four reaction-driving loops that weave
// together React, polling, snapshotting, and failure logging. Every loop
// shares the same per-iteration template — react, then optionally observe —
// and differs only in what it accumulates.
package simulate

import (
	"log/slog"

	"github.com/arborist-labs/alchemy/internal/soup"
	"github.com/arborist-labs/alchemy/internal/tape"
)

// shouldPoll reports whether iteration i (0-indexed) is a polling point for
// the given interval. A non-positive interval means "never poll". i==0 is a
// valid poll point: it observes the state after the first reaction has
// been attempted.
func shouldPoll(i, pollingInterval int) bool {
	return pollingInterval > 0 && i%pollingInterval == 0
}

// For runs n reactions against s, returning the count that succeeded.
// Failed reactions are logged at Warn level when log is set; successes are
// not logged in this variant, since large runs make only failure modes
// interesting.
func For(s *soup.Soup, n int, log bool) int {
	successes := 0
	for i := 0; i < n; i++ {
		if _, err := s.React(); err != nil {
			if log {
				slog.Default().Warn("reaction failed", "iteration", i, "reason", err)
			}
			continue
		}
		successes++
	}
	return successes
}

// AndRecord runs n reactions against s, deep-cloning s into a Tape's
// history at every polling point, and returns the resulting Tape.
func AndRecord(s *soup.Soup, n, pollingInterval int, log bool) *tape.Tape {
	builder := tape.NewBuilder(pollingInterval)
	for i := 0; i < n; i++ {
		if _, err := s.React(); err != nil && log {
			slog.Default().Warn("reaction failed", "iteration", i, "reason", err)
		}
		if shouldPoll(i, pollingInterval) {
			builder.Record(s)
		}
	}
	return builder.Finish(s)
}

// AndPoll runs n reactions against s, calling poller(s) at every polling
// point and collecting the results in reaction order.
func AndPoll[T any](s *soup.Soup, n, pollingInterval int, log bool, poller func(*soup.Soup) T) []T {
	var observations []T
	for i := 0; i < n; i++ {
		if _, err := s.React(); err != nil && log {
			slog.Default().Warn("reaction failed", "iteration", i, "reason", err)
		}
		if shouldPoll(i, pollingInterval) {
			observations = append(observations, poller(s))
		}
	}
	return observations
}

// AndPollWithKiller behaves like AndPoll, but killPoller also reports
// whether the simulation should stop; when it does, the driver records the
// final observation and returns immediately without running the remaining
// iterations.
func AndPollWithKiller[T any](s *soup.Soup, n, pollingInterval int, log bool, killPoller func(*soup.Soup) (T, bool)) []T {
	var observations []T
	for i := 0; i < n; i++ {
		if _, err := s.React(); err != nil && log {
			slog.Default().Warn("reaction failed", "iteration", i, "reason", err)
		}
		if !shouldPoll(i, pollingInterval) {
			continue
		}
		value, stop := killPoller(s)
		observations = append(observations, value)
		if stop {
			return observations
		}
	}
	return observations
}
