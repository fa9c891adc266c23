package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/zentools/internal/version"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for an unusable job or flags, 3 for missing input files and 1 otherwise.
func exitCode(err error) int {
	switch {
	case errors.InChain(err, errors.ErrCodeInvalidConfiguration), errors.InChain(err, errors.ErrCodeVersionMismatch):
		return 2
	case errors.InChain(err, errors.ErrCodeDataNotFound):
		return 3
	default:
		return 1
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "zentools",
		Usage:   "Indicators and frame tools for OHLCV market data",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log every pipeline step",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			macdCommand(),
			rsiCommand(),
			sliceCommand(),
			inspectCommand(),
			schemaCommand(),
		},
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "Input CSV file with a `Date` column",
		Required: true,
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "Output file; .csv or .parquet",
		Required: true,
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run a YAML job file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the job file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "input",
				Usage: "Glob of CSV files; runs the job once per file and treats output.path as a directory",
			},
		},
		Action: runAction,
	}
}

func macdCommand() *cli.Command {
	return &cli.Command{
		Name:  "macd",
		Usage: "Add EMA, MACD, Signal_Line and Histogram columns",
		Flags: []cli.Flag{
			inputFlag(),
			outputFlag(),
			&cli.IntFlag{Name: "fast", Usage: "Fast EMA span", Value: 12},
			&cli.IntFlag{Name: "slow", Usage: "Slow EMA span", Value: 26},
			&cli.IntFlag{Name: "signal", Usage: "Signal line span", Value: 9},
		},
		Action: macdAction,
	}
}

func rsiCommand() *cli.Command {
	return &cli.Command{
		Name:  "rsi",
		Usage: "Add an RSI column",
		Flags: []cli.Flag{
			inputFlag(),
			outputFlag(),
			&cli.IntFlag{Name: "period", Aliases: []string{"p"}, Usage: "Lookback period", Value: 14},
			&cli.BoolFlag{Name: "ewm", Usage: "Use exponentially weighted averages instead of rolling means"},
		},
		Action: rsiAction,
	}
}

func sliceCommand() *cli.Command {
	return &cli.Command{
		Name:  "slice",
		Usage: "Keep rows within an inclusive date range",
		Flags: []cli.Flag{
			inputFlag(),
			outputFlag(),
			&cli.StringFlag{Name: "start", Aliases: []string{"s"}, Usage: "Inclusive start, e.g. `2023-10-19 00:00:00`", Required: true},
			&cli.StringFlag{Name: "end", Aliases: []string{"e"}, Usage: "Inclusive end", Required: true},
		},
		Action: sliceAction,
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Print the first or last rows of a CSV file",
		Flags: []cli.Flag{
			inputFlag(),
			&cli.IntFlag{Name: "head", Usage: "Number of leading rows", Value: 10},
			&cli.IntFlag{Name: "tail", Usage: "Number of trailing rows; overrides --head"},
		},
		Action: inspectAction,
	}
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Write the job JSON schema and a sample job",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Output directory", Value: "./config"},
		},
		Action: schemaAction,
	}
}
