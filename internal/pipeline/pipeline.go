// Package pipeline runs a configured job: load, optional date slice, indicators,
// transforms, write.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/zentools/internal/config"
	"github.com/rxtech-lab/zentools/internal/logger"
	"github.com/rxtech-lab/zentools/internal/types"
	"github.com/rxtech-lab/zentools/pkg/dataframe"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
	"github.com/rxtech-lab/zentools/pkg/indicator"
	"github.com/rxtech-lab/zentools/pkg/marketdata/loader"
	"github.com/rxtech-lab/zentools/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// Step names a pipeline stage.
type Step string

const (
	StepLoad       Step = "load"
	StepSlice      Step = "slice"
	StepIndicators Step = "indicators"
	StepTransforms Step = "transforms"
	StepWrite      Step = "write"
)

// Result summarizes a finished run.
type Result struct {
	RunID      uuid.UUID
	Rows       int
	Columns    []string
	OutputPath string
}

// Pipeline executes jobs. It holds no per-run state.
type Pipeline struct {
	loader   loader.Loader
	writer   writer.MarketDataWriter
	registry indicator.IndicatorRegistry
	logger   *logger.Logger
}

// New creates a pipeline.
func New(loader loader.Loader, writer writer.MarketDataWriter, registry indicator.IndicatorRegistry, logger *logger.Logger) *Pipeline {
	return &Pipeline{
		loader:   loader,
		writer:   writer,
		registry: registry,
		logger:   logger,
	}
}

// Run executes the job. Failures are wrapped with ErrCodePipelineStepFailed and the step
// name; the cause keeps its own code.
func (p *Pipeline) Run(ctx context.Context, job config.Job) (Result, error) {
	runID := uuid.New()
	log := &logger.Logger{Logger: p.logger.With(zap.String("run_id", runID.String()))}

	log.Info("Starting job", zap.String("input", job.Input.Path), zap.String("output", job.Output.Path))

	opts, err := loaderOptions(job)
	if err != nil {
		return Result{}, stepError(StepLoad, err)
	}

	f, err := p.loader.Load(ctx, opts)
	if err != nil {
		return Result{}, stepError(StepLoad, err)
	}

	logStep(log, StepLoad, f)

	if job.HasDateRange() {
		f, err = dataframe.SliceByDate(f, job.Input.Start, job.Input.End)
		if err != nil {
			return Result{}, stepError(StepSlice, err)
		}

		logStep(log, StepSlice, f)
	}

	f, err = p.applyIndicators(f, job.Indicators, log)
	if err != nil {
		return Result{}, stepError(StepIndicators, err)
	}

	logStep(log, StepIndicators, f)

	f = applyTransforms(f, job.Transforms)
	logStep(log, StepTransforms, f)

	outputPath, err := p.writer.Write(ctx, f, writerOptions(job))
	if err != nil {
		return Result{}, stepError(StepWrite, err)
	}

	result := Result{
		RunID:      runID,
		Rows:       f.Len(),
		Columns:    f.Columns(),
		OutputPath: outputPath,
	}

	log.Info("Job finished", zap.Int("rows", result.Rows), zap.Strings("columns", result.Columns))

	return result, nil
}

func (p *Pipeline) applyIndicators(f *frame.Frame, configs []config.IndicatorConfig, log *logger.Logger) (*frame.Frame, error) {
	for _, cfg := range configs {
		ind, err := p.registry.GetIndicator(cfg.Type)
		if err != nil {
			return nil, err
		}

		if err := ind.Config(cfg.Params()...); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s parameters", cfg.Type)
		}

		f, err = ind.Apply(f)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "%s failed", cfg.Type)
		}

		if cfg.Type == types.IndicatorTypeMACD && !f.HasColumn(indicator.MACDColumn) {
			log.Warn("MACD skipped because the frame contains undefined values")
		}
	}

	return f, nil
}

func applyTransforms(f *frame.Frame, t config.Transforms) *frame.Frame {
	if t.Stationary != nil {
		f = dataframe.MakeStationary(f, t.Stationary.Columns, t.Stationary.UsePct)
	}

	if t.Clip != nil {
		f = dataframe.ClipColumns(f, t.Clip.Min, t.Clip.Max, t.Clip.Columns)
	}

	if t.InfToNaN {
		f = dataframe.InfToNaN(f)
	}

	if t.NaNToZero {
		f = dataframe.NaNToZero(f)
	}

	return f
}

// loaderOptions pushes the date range into the query so rows outside it are never read.
// SliceByDate still runs afterwards and owns the index checks.
func loaderOptions(job config.Job) (loader.Options, error) {
	opts := loader.Options{
		Path:       job.Input.Path,
		DateColumn: job.Input.DateColumn,
	}

	if job.Input.TimestampFormat != "" {
		opts.TimestampFormat = optional.Some(job.Input.TimestampFormat)
	}

	if !job.HasDateRange() {
		return opts, nil
	}

	start, err := frame.ParseTimestamp(job.Input.Start)
	if err != nil {
		return loader.Options{}, errors.Wrapf(errors.ErrCodeInvalidInput, err, "invalid start date %q", job.Input.Start)
	}

	end, err := frame.ParseTimestamp(job.Input.End)
	if err != nil {
		return loader.Options{}, errors.Wrapf(errors.ErrCodeInvalidInput, err, "invalid end date %q", job.Input.End)
	}

	opts.Start = optional.Some(start)
	opts.End = optional.Some(end)

	return opts, nil
}

func writerOptions(job config.Job) writer.Options {
	return writer.Options{
		Path:             job.Output.Path,
		Format:           writer.Format(job.Output.Format),
		DecimalPrecision: job.Output.DecimalPrecision,
	}
}

func logStep(log *logger.Logger, step Step, f *frame.Frame) {
	log.Debug("Step finished", zap.String("step", string(step)), zap.Int("rows", f.Len()), zap.Int("columns", len(f.Columns())))
}

func stepError(step Step, err error) error {
	return errors.Wrapf(errors.ErrCodePipelineStepFailed, err, "step %s failed", step)
}
