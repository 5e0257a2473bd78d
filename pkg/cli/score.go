package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/civic-lab/fixpoint/pkg/cli/config"
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/usecase"
)

// scoreInput is the YAML document accepted by the score command
type scoreInput struct {
	Inputs []*model.PriorityInput `yaml:"inputs"`
}

// scoreResult pairs each input with its computed score in the output
type scoreResult struct {
	Input *model.PriorityInput `json:"input" yaml:"input"`
	Score *model.PriorityScore `json:"score" yaml:"score"`
}

func cmdScore() *cli.Command {
	var (
		weightsCfg config.Weights
		inputPath  string
		format     string
	)

	flags := joinFlags(
		weightsCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "Path to YAML file with scoring inputs",
				Required:    true,
				Destination: &inputPath,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Output format (yaml, json)",
				Value:       "yaml",
				Destination: &format,
			},
		},
	)

	return &cli.Command{
		Name:  "score",
		Usage: "Score issue inputs from a file without persisting them",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engine, err := weightsCfg.Configure()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read input file", goerr.V("path", inputPath))
			}

			var doc scoreInput
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return goerr.Wrap(err, "failed to parse input file", goerr.V("path", inputPath))
			}
			if len(doc.Inputs) == 0 {
				return goerr.New("input file has no inputs", goerr.V("path", inputPath))
			}

			simulateUC := usecase.NewSimulate(engine)
			scores := simulateUC.SimulateBatch(ctx, doc.Inputs)

			results := make([]scoreResult, len(scores))
			for i, score := range scores {
				results[i] = scoreResult{Input: doc.Inputs[i], Score: score}
			}

			return writeOutput(os.Stdout, format, results)
		},
	}
}

// writeOutput encodes v to w in the requested format
func writeOutput(w *os.File, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode YAML output")
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode JSON output")
		}
		return nil
	default:
		return goerr.New("invalid output format", goerr.V("format", format))
	}
}
