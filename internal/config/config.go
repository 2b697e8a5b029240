// Package config defines the JSON configuration document for a reactor
// run and the defaults used when a field, or the whole file, is absent.
// A Fontana generator_config has no defaults: its absent fields are zero.
package config

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/arborist-labs/alchemy/internal/generator"
	"github.com/arborist-labs/alchemy/internal/rng"
	"github.com/arborist-labs/alchemy/internal/soup"
)

// Config is the top-level configuration document.
type Config struct {
	RunLimit        int             `json:"run_limit"`
	SampleSize      int             `json:"sample_size"`
	PollingInterval *int            `json:"polling_interval"`
	VerboseLogging  bool            `json:"verbose_logging"`
	Generator       GeneratorConfig `json:"generator_config"`
	Reactor         ReactorConfig   `json:"reactor_config"`
}

// ReactorConfig configures a single Soup.
type ReactorConfig struct {
	Rules                           []string `json:"rules"`
	DiscardCopyActions              bool     `json:"discard_copy_actions"`
	DiscardIdentity                 bool     `json:"discard_identity"`
	DiscardFreeVariableExpressions  bool     `json:"discard_free_variable_expressions"`
	DiscardParents                  bool     `json:"discard_parents"`
	MaintainConstantPopulationSize  bool     `json:"maintain_constant_population_size"`
	ReductionCutoff                 int      `json:"reduction_cutoff"`
	SizeCutoff                      int      `json:"size_cutoff"`
	Seed                            *SeedHex `json:"seed"`
}

// SeedHex is a 32-byte reactor or generator seed, serialized as a lowercase
// hex string in JSON, or null when unset (meaning: draw from the OS
// CSPRNG).
type SeedHex rng.Seed

func (s SeedHex) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(s[:]))
}

func (s *SeedHex) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("config: seed is not valid hex: %w", err)
	}
	if len(decoded) != len(s) {
		return fmt.Errorf("config: seed must be %d bytes, got %d", len(s), len(decoded))
	}
	copy(s[:], decoded)
	return nil
}

// GeneratorConfig is a tagged union over the two generator families. Kind
// is "BTree" or "Fontana"; exactly the matching field is populated.
type GeneratorConfig struct {
	Kind    string
	BTree   *BTreeConfig
	Fontana *FontanaConfig
}

type BTreeConfig struct {
	Seed                          *SeedHex `json:"seed"`
	Size                          int      `json:"size"`
	FreevarGenerationProbability  float64  `json:"freevar_generation_probability"`
	NMaxFreeVars                  int      `json:"n_max_free_vars"`
	Standardization               string   `json:"standardization"`
}

type FontanaConfig struct {
	Seed                 *SeedHex   `json:"seed"`
	AbstractionProbRange [2]float64 `json:"abstraction_prob_range"`
	ApplicationProbRange [2]float64 `json:"application_prob_range"`
	MaxDepth             int        `json:"max_depth"`
	NMaxFreeVars         int        `json:"n_max_free_vars"`
}

func (g GeneratorConfig) MarshalJSON() ([]byte, error) {
	switch g.Kind {
	case "BTree":
		return json.Marshal(struct {
			Type string `json:"type"`
			*BTreeConfig
		}{Type: "BTree", BTreeConfig: g.BTree})
	case "Fontana":
		return json.Marshal(struct {
			Type string `json:"type"`
			*FontanaConfig
		}{Type: "Fontana", FontanaConfig: g.Fontana})
	default:
		return nil, fmt.Errorf("config: unknown generator kind %q", g.Kind)
	}
}

func (g *GeneratorConfig) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	switch head.Type {
	case "BTree", "":
		c := *Default().Generator.BTree
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		g.Kind, g.BTree, g.Fontana = "BTree", &c, nil
	case "Fontana":
		var c FontanaConfig
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		g.Kind, g.Fontana, g.BTree = "Fontana", &c, nil
	default:
		return fmt.Errorf("config: unknown generator_config type %q", head.Type)
	}
	return nil
}

// Default returns the documented default configuration: a BTree generator
// and a reactor with the standard filter set enabled.
func Default() Config {
	return Config{
		RunLimit:        100000,
		SampleSize:      1000,
		PollingInterval: nil,
		VerboseLogging:  false,
		Generator: GeneratorConfig{
			Kind: "BTree",
			BTree: &BTreeConfig{
				Size:                          20,
				FreevarGenerationProbability:  0.2,
				NMaxFreeVars:                  6,
				Standardization:               "None",
			},
		},
		Reactor: ReactorConfig{
			Rules:                          []string{`\x.\y.x y`},
			DiscardCopyActions:             true,
			DiscardIdentity:                true,
			DiscardFreeVariableExpressions: true,
			DiscardParents:                 false,
			MaintainConstantPopulationSize: true,
			ReductionCutoff:                500,
			SizeCutoff:                     500,
		},
	}
}

// Load reads and parses a Config from a JSON file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects out-of-range configuration values that would otherwise
// surface as a construction-level failure deeper in the stack.
func (c Config) Validate() error {
	if c.RunLimit <= 0 {
		return fmt.Errorf("run_limit must be positive, got %d", c.RunLimit)
	}
	if c.SampleSize <= 0 {
		return fmt.Errorf("sample_size must be positive, got %d", c.SampleSize)
	}
	if c.PollingInterval != nil && *c.PollingInterval <= 0 {
		return fmt.Errorf("polling_interval must be positive when set, got %d", *c.PollingInterval)
	}
	if len(c.Reactor.Rules) == 0 {
		return fmt.Errorf("reactor_config.rules must not be empty")
	}
	if c.Reactor.ReductionCutoff <= 0 {
		return fmt.Errorf("reactor_config.reduction_cutoff must be positive, got %d", c.Reactor.ReductionCutoff)
	}
	if c.Reactor.SizeCutoff <= 0 {
		return fmt.Errorf("reactor_config.size_cutoff must be positive, got %d", c.Reactor.SizeCutoff)
	}
	switch c.Generator.Kind {
	case "BTree":
		if c.Generator.BTree == nil {
			return fmt.Errorf("generator_config: type is BTree but no btree fields are set")
		}
		if c.Generator.BTree.Size <= 0 {
			return fmt.Errorf("generator_config.size must be positive, got %d", c.Generator.BTree.Size)
		}
	case "Fontana":
		if c.Generator.Fontana == nil {
			return fmt.Errorf("generator_config: type is Fontana but no fontana fields are set")
		}
		if c.Generator.Fontana.MaxDepth <= 0 {
			return fmt.Errorf("generator_config.max_depth must be positive, got %d", c.Generator.Fontana.MaxDepth)
		}
	default:
		return fmt.Errorf("generator_config: unknown type %q", c.Generator.Kind)
	}
	return nil
}

// SoupConfig translates the reactor section into a soup.Config.
func (c Config) SoupConfig() soup.Config {
	var seed *rng.Seed
	if c.Reactor.Seed != nil {
		s := rng.Seed(*c.Reactor.Seed)
		seed = &s
	}
	return soup.Config{
		Rules:                          c.Reactor.Rules,
		ReductionLimit:                 c.Reactor.ReductionCutoff,
		SizeLimit:                      c.Reactor.SizeCutoff,
		DiscardCopyActions:             c.Reactor.DiscardCopyActions,
		DiscardIdentity:                c.Reactor.DiscardIdentity,
		DiscardFreeVariableExpressions: c.Reactor.DiscardFreeVariableExpressions,
		DiscardParents:                 c.Reactor.DiscardParents,
		MaintainConstantPopulationSize: c.Reactor.MaintainConstantPopulationSize,
		Seed:                           seed,
	}
}

// Generator builds the generator.Generator described by the generator_config
// section.
func (c Config) Generator() (generator.Generator, error) {
	switch c.Generator.Kind {
	case "BTree":
		bt := c.Generator.BTree
		seed, err := seedOrRandom(bt.Seed)
		if err != nil {
			return nil, err
		}
		std, err := parseStandardization(bt.Standardization)
		if err != nil {
			return nil, err
		}
		return generator.NewBTree(bt.Size, bt.FreevarGenerationProbability, std, seed)
	case "Fontana":
		fc := c.Generator.Fontana
		seed, err := seedOrRandom(fc.Seed)
		if err != nil {
			return nil, err
		}
		return generator.NewFontana(
			generator.ProbRange{Min: fc.AbstractionProbRange[0], Max: fc.AbstractionProbRange[1]},
			generator.ProbRange{Min: fc.ApplicationProbRange[0], Max: fc.ApplicationProbRange[1]},
			fc.MaxDepth, fc.NMaxFreeVars, seed,
		)
	default:
		return nil, fmt.Errorf("config: unknown generator_config type %q", c.Generator.Kind)
	}
}

func seedOrRandom(s *SeedHex) (rng.Seed, error) {
	if s != nil {
		return rng.Seed(*s), nil
	}
	return rng.RandomSeed()
}

func parseStandardization(s string) (generator.Standardization, error) {
	switch s {
	case "Prefix":
		return generator.StandardizationPrefix, nil
	case "Postfix":
		return generator.StandardizationPostfix, nil
	case "None", "":
		return generator.StandardizationNone, nil
	default:
		return 0, fmt.Errorf("config: unknown standardization %q", s)
	}
}
