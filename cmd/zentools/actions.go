package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/zentools/internal/config"
	"github.com/rxtech-lab/zentools/internal/logger"
	"github.com/rxtech-lab/zentools/internal/pipeline"
	"github.com/rxtech-lab/zentools/internal/types"
	"github.com/rxtech-lab/zentools/internal/version"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/indicator"
	"github.com/rxtech-lab/zentools/pkg/marketdata/loader"
	"github.com/rxtech-lab/zentools/pkg/marketdata/writer"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zapcore"
)

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	level := zapcore.InfoLevel
	if cmd.Root().Bool("verbose") {
		level = zapcore.DebugLevel
	}

	return logger.NewLoggerWithLevel(level)
}

func newPipeline(log *logger.Logger) *pipeline.Pipeline {
	return pipeline.New(loader.NewCSVLoader(log), writer.NewDuckDBWriter(log), indicator.NewDefaultRegistry(), log)
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	job, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	p := newPipeline(log)

	pattern := cmd.String("input")
	if pattern == "" {
		result, err := p.Run(ctx, *job)
		if err != nil {
			return err
		}

		printResult(result)

		return nil
	}

	files, err := filepath.Glob(pattern)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid input pattern %q", pattern)
	}

	if len(files) == 0 {
		return errors.Newf(errors.ErrCodeDataNotFound, "no files match %q", pattern)
	}

	if err := os.MkdirAll(job.Output.Path, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create output directory %s", job.Output.Path)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Running job"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
	)

	for _, file := range files {
		fileJob := *job
		fileJob.Input.Path = file
		fileJob.Output.Path = outputPathFor(job.Output, file)

		if _, err := p.Run(ctx, fileJob); err != nil {
			return errors.Wrapf(errors.ErrCodePipelineStepFailed, err, "job failed for %s", file)
		}

		_ = bar.Add(1)
	}

	_ = bar.Finish()
	fmt.Println(TitleStyle.Render(fmt.Sprintf("Processed %d files into %s", len(files), job.Output.Path)))

	return nil
}

// outputPathFor places the result for input inside the output directory, named after the
// input file with the extension of the configured format.
func outputPathFor(output config.Output, input string) string {
	format := output.Format
	if format == "" {
		format = string(writer.FormatCSV)
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	return filepath.Join(output.Path, base+"."+format)
}

func macdAction(ctx context.Context, cmd *cli.Command) error {
	job := singleJob(cmd)
	job.Indicators = []config.IndicatorConfig{{
		Type:         types.IndicatorTypeMACD,
		FastPeriod:   int(cmd.Int("fast")),
		SlowPeriod:   int(cmd.Int("slow")),
		SignalPeriod: int(cmd.Int("signal")),
	}}

	return runSingle(ctx, cmd, job)
}

func rsiAction(ctx context.Context, cmd *cli.Command) error {
	indicatorType := types.IndicatorTypeRSI
	if cmd.Bool("ewm") {
		indicatorType = types.IndicatorTypeEWMRSI
	}

	job := singleJob(cmd)
	job.Indicators = []config.IndicatorConfig{{Type: indicatorType, Period: int(cmd.Int("period"))}}

	return runSingle(ctx, cmd, job)
}

func sliceAction(ctx context.Context, cmd *cli.Command) error {
	job := singleJob(cmd)
	job.Input.Start = cmd.String("start")
	job.Input.End = cmd.String("end")

	return runSingle(ctx, cmd, job)
}

func singleJob(cmd *cli.Command) config.Job {
	return config.Job{
		Version: version.GetVersion(),
		Input:   config.Input{Path: cmd.String("input")},
		Output:  config.Output{Path: cmd.String("output")},
	}
}

func runSingle(ctx context.Context, cmd *cli.Command, job config.Job) error {
	job.ApplyDefaults()

	if err := job.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	result, err := newPipeline(log).Run(ctx, job)
	if err != nil {
		return err
	}

	printResult(result)

	return nil
}

func inspectAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	f, err := loader.NewCSVLoader(log).Load(ctx, loader.Options{
		Path:       cmd.String("input"),
		DateColumn: loader.DefaultDateColumn,
	})
	if err != nil {
		return err
	}

	rows := f.Head(int(cmd.Int("head")))
	if tail := int(cmd.Int("tail")); tail > 0 {
		rows = f.Tail(tail)
	}

	fmt.Println(renderTable(rows))
	fmt.Println(HelpStyle.Render(fmt.Sprintf("%d of %d rows, %d columns", rows.Len(), f.Len(), len(f.Columns()))))

	return nil
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schemaPath, samplePath, err := config.WriteSchema(cmd.String("dir"))
	if err != nil {
		return err
	}

	if samplePath != "" {
		fmt.Printf("Sample job successfully generated at %s\n", samplePath)
	}

	fmt.Printf("Schema successfully generated at %s\n", schemaPath)

	return nil
}

func printResult(result pipeline.Result) {
	fmt.Println(TitleStyle.Render("Wrote " + result.OutputPath))
	fmt.Println(HelpStyle.Render(fmt.Sprintf("run %s: %d rows, columns %s", result.RunID, result.Rows, strings.Join(result.Columns, ", "))))
}
