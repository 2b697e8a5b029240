// Package experiment implements the named, multi-soup scenarios driven
// from the command line: searching for emergent self-replicating
// combinators (an "XOR-set" case-discriminator), and tracking population
// entropy across one or many independently evolving soups.
package experiment

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/arborist-labs/alchemy/internal/config"
	"github.com/arborist-labs/alchemy/internal/reducer"
	"github.com/arborist-labs/alchemy/internal/simulate"
	"github.com/arborist-labs/alchemy/internal/soup"
	"github.com/arborist-labs/alchemy/pkg/lambda"
)

// xorSetReductionLimit and xorSetSizeLimit bound the four auxiliary
// reductions the XOR-set test performs per candidate pair, independent of
// the soup's own reaction bounds, matching the fixed 512/1024 budget the
// original experiments used for this check.
const (
	xorSetReductionLimit = 512
	xorSetSizeLimit      = 1024
)

// newSeededSoup constructs a soup from cfg and perturbs it with
// cfg.SampleSize freshly generated terms.
func newSeededSoup(cfg config.Config) (*soup.Soup, error) {
	s, err := soup.New(cfg.SoupConfig())
	if err != nil {
		return nil, fmt.Errorf("experiment: constructing soup: %w", err)
	}
	gen, err := cfg.Generator()
	if err != nil {
		return nil, fmt.Errorf("experiment: constructing generator: %w", err)
	}
	terms := make([]lambda.Term, 0, cfg.SampleSize)
	for i := 0; i < cfg.SampleSize; i++ {
		t, err := gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("experiment: generating seed term %d: %w", i, err)
		}
		terms = append(terms, t)
	}
	s.Perturb(terms...)
	return s, nil
}

// pollingIntervalOrDefault returns the configured polling interval, or a
// sensible default when polling was left unset (nil means "never poll" for
// a plain simulation, but every experiment here needs a cadence to
// observe at).
func pollingIntervalOrDefault(cfg config.Config) int {
	if cfg.PollingInterval != nil && *cfg.PollingInterval > 0 {
		return *cfg.PollingInterval
	}
	return 1000
}

// xorSetTest reports whether a and b form an XOR-set: a case-discriminator
// pair where self-application behaves like one Church boolean and
// cross-application behaves like the other.
func xorSetTest(a, b lambda.Term) bool {
	if lambda.IsIsomorphicTo(a, b) {
		return false
	}
	aa, okAA := reduceBestEffort(lambda.NewApp(a, a))
	ab, okAB := reduceBestEffort(lambda.NewApp(a, b))
	ba, okBA := reduceBestEffort(lambda.NewApp(b, a))
	bb, okBB := reduceBestEffort(lambda.NewApp(b, b))
	if !okAA || !okAB || !okBA || !okBB {
		return false
	}
	return lambda.IsIsomorphicTo(aa, a) && lambda.IsIsomorphicTo(ab, b) &&
		lambda.IsIsomorphicTo(ba, b) && lambda.IsIsomorphicTo(bb, a)
}

func reduceBestEffort(t lambda.Term) (lambda.Term, bool) {
	reduced, _, err := reducer.Reduce(t, xorSetReductionLimit, xorSetSizeLimit)
	return reduced, err == nil
}

// pairwiseCompare scans terms for the first ordered pair satisfying test.
// When symmetric is true, a pair and its mirror are treated as equivalent
// and only the j <= i half of the grid (diagonal included) is tried.
func pairwiseCompare(terms []lambda.Term, test func(a, b lambda.Term) bool, symmetric bool) (lambda.Term, lambda.Term, bool) {
	for i, t1 := range terms {
		for j, t2 := range terms {
			if test(t1, t2) {
				return t1, t2, true
			}
			if symmetric && j >= i {
				break
			}
		}
	}
	return nil, nil, false
}

// containsXorSetPair reports whether the soup's current ten most frequent
// expressions contain an XOR-set pair, scanning every ordered pair since
// an XOR-set test's roles are not interchangeable.
func containsXorSetPair(s *soup.Soup) bool {
	candidates := s.KMostFrequentExprs(10)
	_, _, found := pairwiseCompare(candidates, xorSetTest, false)
	return found
}

// XorSetStability seeds one soup and watches it evolve, returning the
// reaction index at which an XOR-set pair first appears among its most
// frequent expressions, or -1 if the run ends without one appearing.
func XorSetStability(cfg config.Config) (int, error) {
	s, err := newSeededSoup(cfg)
	if err != nil {
		return -1, err
	}
	interval := pollingIntervalOrDefault(cfg)

	foundAt := -1
	polls := 0
	simulate.AndPollWithKiller(s, cfg.RunLimit, interval, cfg.VerboseLogging, func(sp *soup.Soup) (int, bool) {
		reactionIndex := polls * interval
		polls++
		hit := containsXorSetPair(sp)
		if hit {
			foundAt = reactionIndex
		}
		return reactionIndex, hit
	})
	return foundAt, nil
}

// SoupResult tags a per-soup outcome with the integer id of the soup that
// produced it, so fan-out results can be re-associated after joining in
// completion order.
type SoupResult struct {
	SoupID int
	Value  int
}

// XorSetSearch launches fleetSize independent soups in parallel, each
// running the XOR-set stability check, and returns one result per soup, in
// completion order.
func XorSetSearch(ctx context.Context, cfg config.Config, fleetSize int) ([]SoupResult, error) {
	results := make(chan SoupResult, fleetSize)
	// Cancellation here only stops launching further soups on the first
	// construction error; an in-flight reaction is never interrupted.
	group, groupCtx := errgroup.WithContext(ctx)

	for id := 0; id < fleetSize; id++ {
		id := id
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			foundAt, err := XorSetStability(cfg)
			if err != nil {
				return fmt.Errorf("experiment: soup %d: %w", id, err)
			}
			results <- SoupResult{SoupID: id, Value: foundAt}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	close(results)

	out := make([]SoupResult, 0, fleetSize)
	for r := range results {
		out = append(out, r)
	}
	return out, nil
}

// SoupSeries tags a per-soup time series of observations with the
// originating soup's integer id.
type SoupSeries struct {
	SoupID int
	Values []float32
}

// SyncEntropyTest perturbs fleetSize soups with the *same* generated
// sample, then runs each independently, polling population entropy on the
// configured cadence. Results are returned in completion order.
func SyncEntropyTest(ctx context.Context, cfg config.Config, fleetSize int) ([]SoupSeries, error) {
	gen, err := cfg.Generator()
	if err != nil {
		return nil, fmt.Errorf("experiment: constructing generator: %w", err)
	}
	sample := make([]lambda.Term, 0, cfg.SampleSize)
	for i := 0; i < cfg.SampleSize; i++ {
		t, err := gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("experiment: generating shared sample term %d: %w", i, err)
		}
		sample = append(sample, t)
	}

	interval := pollingIntervalOrDefault(cfg)
	results := make(chan SoupSeries, fleetSize)
	group, groupCtx := errgroup.WithContext(ctx)

	for id := 0; id < fleetSize; id++ {
		id := id
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			s, err := soup.New(cfg.SoupConfig())
			if err != nil {
				return fmt.Errorf("experiment: soup %d: %w", id, err)
			}
			s.Perturb(sample...)
			series := simulate.AndPoll(s, cfg.RunLimit, interval, cfg.VerboseLogging, func(sp *soup.Soup) float32 {
				return sp.PopulationEntropy()
			})
			results <- SoupSeries{SoupID: id, Values: series}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	close(results)

	out := make([]SoupSeries, 0, fleetSize)
	for r := range results {
		out = append(out, r)
	}
	return out, nil
}

// EntropyTestResult summarizes a single-soup EntropyTest run.
type EntropyTestResult struct {
	FinalEntropy    float32
	SnapshotCount   int
	PollingInterval int
}

// EntropyTest runs one soup for the configured run length, recording
// snapshots on the configured cadence, and reports the final population
// entropy alongside the snapshot cadence summary.
func EntropyTest(cfg config.Config) (EntropyTestResult, error) {
	s, err := newSeededSoup(cfg)
	if err != nil {
		return EntropyTestResult{}, err
	}
	interval := pollingIntervalOrDefault(cfg)
	tp := simulate.AndRecord(s, cfg.RunLimit, interval, cfg.VerboseLogging)
	return EntropyTestResult{
		FinalEntropy:    tp.FinalState().PopulationEntropy(),
		SnapshotCount:   len(tp.History()),
		PollingInterval: tp.PollingInterval(),
	}, nil
}

// EntropySeries runs one soup for the configured run length, polling
// population entropy on the configured cadence, and returns the resulting
// time series in reaction order.
func EntropySeries(cfg config.Config) ([]float32, error) {
	s, err := newSeededSoup(cfg)
	if err != nil {
		return nil, err
	}
	interval := pollingIntervalOrDefault(cfg)
	return simulate.AndPoll(s, cfg.RunLimit, interval, cfg.VerboseLogging, func(sp *soup.Soup) float32 {
		return sp.PopulationEntropy()
	}), nil
}

// FormatSoupID renders a soup id as a CSV field, kept as a named helper so
// every CSV writer in this package formats ids identically.
func FormatSoupID(id int) string { return strconv.Itoa(id) }
