package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/arborist-labs/alchemy/internal/config"
	"github.com/arborist-labs/alchemy/internal/experiment"
	"github.com/arborist-labs/alchemy/internal/simulate"
	"github.com/arborist-labs/alchemy/internal/soup"
	"github.com/arborist-labs/alchemy/pkg/lambda"
)

// experimentFleetSize is how many independent soups the multi-soup
// experiments launch. The original runs launched a thousand; a CLI
// invocation on a single machine gets a far smaller fleet so a run
// finishes in a reasonable time.
const experimentFleetSize = 8

func runAlchemy(o *options) error {
	if o.makeDefaultConfig {
		return printJSON(os.Stdout, config.Default())
	}

	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	applyOverrides(cfg, o)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("alchemy: invalid configuration: %w", err)
	}

	if o.dumpConfig {
		return printJSON(os.Stdout, cfg)
	}

	runID := uuid.New().String()
	logger := slog.Default().With("run_id", runID)

	if o.generate > 0 {
		return runGenerate(cfg, o.generate)
	}

	if o.experiment != "" {
		return runExperiment(logger, cfg, o.experiment)
	}

	return runReactor(logger, cfg, o.readStdin)
}

func loadConfig(o *options) (config.Config, error) {
	if o.configFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("alchemy: %w", err)
	}
	return *cfg, nil
}

func applyOverrides(cfg *config.Config, o *options) {
	if o.reductionCutoff > 0 {
		cfg.Reactor.ReductionCutoff = o.reductionCutoff
	}
	if o.pollingInterval > 0 {
		interval := o.pollingInterval
		cfg.PollingInterval = &interval
	}
	if o.runLimit > 0 {
		cfg.RunLimit = o.runLimit
	}
	if o.log {
		cfg.VerboseLogging = true
	}
}

func printJSON(w *os.File, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("alchemy: marshaling configuration: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func runGenerate(cfg config.Config, n int) error {
	gen, err := cfg.Generator()
	if err != nil {
		return fmt.Errorf("alchemy: %w", err)
	}
	for i := 0; i < n; i++ {
		term, err := gen.Generate()
		if err != nil {
			return fmt.Errorf("alchemy: generating term %d: %w", i, err)
		}
		fmt.Println(term.String())
	}
	return nil
}

// readStdinTerms parses one lambda expression per non-blank line of
// standard input.
func readStdinTerms() ([]lambda.Term, error) {
	var terms []lambda.Term
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		term, err := lambda.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("alchemy: parsing stdin line %q: %w", line, err)
		}
		terms = append(terms, term)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("alchemy: reading stdin: %w", err)
	}
	return terms, nil
}

// runReactor is the default path: build one soup, run it for run_limit
// reactions, and report either the final population or an entropy
// series, depending on whether polling is enabled.
func runReactor(logger *slog.Logger, cfg config.Config, readStdin bool) error {
	s, err := soup.New(cfg.SoupConfig())
	if err != nil {
		return fmt.Errorf("alchemy: %w", err)
	}

	var seeds []lambda.Term
	if readStdin {
		seeds, err = readStdinTerms()
		if err != nil {
			return err
		}
	} else {
		gen, err := cfg.Generator()
		if err != nil {
			return fmt.Errorf("alchemy: %w", err)
		}
		seeds = make([]lambda.Term, 0, cfg.SampleSize)
		for i := 0; i < cfg.SampleSize; i++ {
			term, err := gen.Generate()
			if err != nil {
				return fmt.Errorf("alchemy: generating seed term %d: %w", i, err)
			}
			seeds = append(seeds, term)
		}
	}
	s.Perturb(seeds...)

	if cfg.PollingInterval != nil && *cfg.PollingInterval > 0 {
		series := simulate.AndPoll(s, cfg.RunLimit, *cfg.PollingInterval, cfg.VerboseLogging, func(sp *soup.Soup) float32 {
			return sp.PopulationEntropy()
		})
		for _, v := range series {
			fmt.Println(strconv.FormatFloat(float64(v), 'f', -1, 32))
		}
		return nil
	}

	successes := simulate.For(s, cfg.RunLimit, cfg.VerboseLogging)
	logger.Info("reactor run complete", "reactions", cfg.RunLimit, "successful_reactions", successes, "collisions", s.Collisions())
	for _, term := range s.Expressions() {
		fmt.Println(term.String())
	}
	return nil
}

func runExperiment(logger *slog.Logger, cfg config.Config, name string) error {
	ctx := context.Background()
	switch name {
	case "xorset-stability":
		foundAt, err := experiment.XorSetStability(cfg)
		if err != nil {
			return fmt.Errorf("alchemy: %w", err)
		}
		fmt.Println(foundAt)
		return nil

	case "xorset-search":
		results, err := experiment.XorSetSearch(ctx, cfg, experimentFleetSize)
		if err != nil {
			return fmt.Errorf("alchemy: %w", err)
		}
		return experiment.WriteXorSetSearchCSV(os.Stdout, results)

	case "sync-entropy-test":
		results, err := experiment.SyncEntropyTest(ctx, cfg, experimentFleetSize)
		if err != nil {
			return fmt.Errorf("alchemy: %w", err)
		}
		return experiment.WriteSyncEntropyCSV(os.Stdout, results)

	case "entropy-test":
		result, err := experiment.EntropyTest(cfg)
		if err != nil {
			return fmt.Errorf("alchemy: %w", err)
		}
		logger.Info("entropy test complete", "snapshots", result.SnapshotCount, "polling_interval", result.PollingInterval)
		fmt.Println(strconv.FormatFloat(float64(result.FinalEntropy), 'f', -1, 32))
		return nil

	case "entropy-series":
		series, err := experiment.EntropySeries(cfg)
		if err != nil {
			return fmt.Errorf("alchemy: %w", err)
		}
		for _, v := range series {
			fmt.Println(strconv.FormatFloat(float64(v), 'f', -1, 32))
		}
		return nil

	default:
		return fmt.Errorf("alchemy: unknown experiment %q", name)
	}
}
