package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/service/priority"
)

// Weights holds the scoring weight table configuration
type Weights struct {
	Path string
}

// Flags returns CLI flags for Weights configuration
func (w *Weights) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "weights",
			Usage:       "Path to YAML file with category weight overrides",
			Category:    "Scoring",
			Sources:     cli.EnvVars("FIXPOINT_WEIGHTS"),
			Destination: &w.Path,
		},
	}
}

// Configure builds a scoring engine from the configured weight table. With
// no path set, the built-in default table is used.
func (w *Weights) Configure() (*priority.Engine, error) {
	if w.Path == "" {
		return priority.New(), nil
	}

	cfg, err := LoadWeightsFromFile(w.Path)
	if err != nil {
		return nil, err
	}

	return priority.New(priority.WithWeights(cfg.Weights)), nil
}

// LoadWeightsFromFile loads a category weight table from a YAML file
func LoadWeightsFromFile(path string) (*model.WeightsConfig, error) {
	if path == "" {
		return nil, goerr.New("configuration file path is required")
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	// Parse YAML
	var config model.WeightsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML configuration",
			goerr.V("path", path))
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid configuration",
			goerr.V("path", path))
	}

	return &config, nil
}
