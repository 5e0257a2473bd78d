package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/civic-lab/fixpoint/pkg/cli/config"
)

func cmdExplain() *cli.Command {
	var (
		weightsCfg config.Weights
		format     string
	)

	flags := joinFlags(
		weightsCfg.Flags(),
		[]cli.Flag{
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
		Name:  "explain",
		Usage: "Print the scoring configuration as data",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engine, err := weightsCfg.Configure()
			if err != nil {
				return err
			}

			return writeOutput(os.Stdout, format, engine.Explain())
		},
	}
}
