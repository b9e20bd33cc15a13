package fsmconfig

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/skydo/fsmgate/pkg/fsm"
)

// Config locates the machine-definition file through the environment.
type Config struct {
	// Path is the YAML file holding the machine definitions.
	Path string `env:"FSM_CONFIG_PATH,required"`
}

// file is the YAML document shape:
//
//	machines:
//	  - entity: user
//	    field: user_state
//	    initial: A
//	    transitions:
//	      A: [B, C]
//	      B: [C, D]
type file struct {
	Machines []machine `yaml:"machines"`
}

type machine struct {
	Entity      string              `yaml:"entity"`
	Field       string              `yaml:"field"`
	Initial     string              `yaml:"initial"`
	Transitions map[string][]string `yaml:"transitions"`
}

// Parse decodes and validates machine definitions from YAML. Definitions
// come back in document order, so registration order is reproducible
// run-to-run.
func Parse(data []byte) ([]fsm.Definition, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(ErrInvalidYAML, err)
	}
	if len(f.Machines) == 0 {
		return nil, ErrNoMachines
	}

	seen := make(map[string]struct{}, len(f.Machines))
	defs := make([]fsm.Definition, 0, len(f.Machines))
	for i, m := range f.Machines {
		if m.Entity == "" || m.Field == "" || m.Initial == "" {
			return nil, fmt.Errorf("%w: machine[%d] needs entity, field and initial", ErrInvalidMachine, i)
		}

		key := m.Entity + "." + m.Field
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s declared twice", ErrDuplicateMachine, key)
		}
		seen[key] = struct{}{}

		for from, dests := range m.Transitions {
			uniq := make(map[string]struct{}, len(dests))
			for _, to := range dests {
				if to == "" {
					return nil, fmt.Errorf("%w: %s has an empty destination from %q", ErrInvalidMachine, key, from)
				}
				if _, dup := uniq[to]; dup {
					return nil, fmt.Errorf("%w: %s declares %s -> %s twice", ErrDuplicateTransition, key, from, to)
				}
				uniq[to] = struct{}{}
			}
		}

		defs = append(defs, fsm.Definition{
			Entity:      m.Entity,
			Field:       m.Field,
			Initial:     m.Initial,
			Transitions: m.Transitions,
		})
	}
	return defs, nil
}

// Load reads and parses machine definitions from a YAML file.
func Load(path string) ([]fsm.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	return Parse(data)
}

var dotenvOnce sync.Once

// LoadFromEnv resolves the definition file path from FSM_CONFIG_PATH
// (loading a .env file first, if present) and parses it.
func LoadFromEnv() ([]fsm.Definition, error) {
	dotenvOnce.Do(func() {
		// The .env file is optional; absence is not an error.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParseEnv, err)
	}
	return Load(cfg.Path)
}

// Options converts parsed definitions into engine options, keeping the
// discovery step outside the fsm package itself.
func Options(defs []fsm.Definition) []fsm.Option {
	opts := make([]fsm.Option, len(defs))
	for i, def := range defs {
		opts[i] = fsm.WithDefinition(def)
	}
	return opts
}
