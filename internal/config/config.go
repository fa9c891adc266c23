// Package config defines the YAML job file consumed by the pipeline runner.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/zentools/internal/types"
	"github.com/rxtech-lab/zentools/internal/version"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
	"gopkg.in/yaml.v3"
)

// Job describes one load -> slice -> indicators -> transforms -> write run.
type Job struct {
	Version    string            `yaml:"version" json:"version" jsonschema:"title=Version,description=zentools version the job was written for,required" validate:"required"`
	Input      Input             `yaml:"input" json:"input" jsonschema:"title=Input,description=Market data file to load,required"`
	Indicators []IndicatorConfig `yaml:"indicators" json:"indicators,omitempty" jsonschema:"title=Indicators,description=Indicators applied in order" validate:"dive"`
	Transforms Transforms        `yaml:"transforms" json:"transforms,omitempty" jsonschema:"title=Transforms,description=Frame transforms applied after the indicators"`
	Output     Output            `yaml:"output" json:"output" jsonschema:"title=Output,description=Where to write the result,required"`
}

// Input locates the market data and optionally restricts it to a date range.
type Input struct {
	Path            string `yaml:"path" json:"path" jsonschema:"title=Path,description=CSV file with a header row,required" validate:"required"`
	DateColumn      string `yaml:"date_column,omitempty" json:"date_column,omitempty" jsonschema:"title=Date Column,description=Timestamp column used as the index,default=Date"`
	TimestampFormat string `yaml:"timestamp_format,omitempty" json:"timestamp_format,omitempty" jsonschema:"title=Timestamp Format,description=strptime format for dates that are not ISO 8601"`
	Start           string `yaml:"start,omitempty" json:"start,omitempty" jsonschema:"title=Start,description=Inclusive start of the date range" validate:"required_with=End"`
	End             string `yaml:"end,omitempty" json:"end,omitempty" jsonschema:"title=End,description=Inclusive end of the date range" validate:"required_with=Start"`
}

// IndicatorConfig selects an indicator and its periods. Zero periods use the indicator
// defaults.
type IndicatorConfig struct {
	Type         types.IndicatorType `yaml:"type" json:"type" jsonschema:"title=Type,required,enum=macd,enum=rsi,enum=ewm_rsi,enum=ema" validate:"required,oneof=macd rsi ewm_rsi ema"`
	Period       int                 `yaml:"period,omitempty" json:"period,omitempty" jsonschema:"title=Period,description=Lookback for rsi ewm_rsi and ema,minimum=1" validate:"gte=0"`
	FastPeriod   int                 `yaml:"fast_period,omitempty" json:"fast_period,omitempty" jsonschema:"title=Fast Period,description=MACD fast span,minimum=1" validate:"gte=0"`
	SlowPeriod   int                 `yaml:"slow_period,omitempty" json:"slow_period,omitempty" jsonschema:"title=Slow Period,description=MACD slow span,minimum=1" validate:"gte=0"`
	SignalPeriod int                 `yaml:"signal_period,omitempty" json:"signal_period,omitempty" jsonschema:"title=Signal Period,description=MACD signal span,minimum=1" validate:"gte=0"`
}

// Transforms lists the optional frame transforms. They run in field order.
type Transforms struct {
	Stationary *StationaryConfig `yaml:"stationary,omitempty" json:"stationary,omitempty" jsonschema:"title=Stationary,description=Difference columns to remove trend"`
	Clip       *ClipConfig       `yaml:"clip,omitempty" json:"clip,omitempty" jsonschema:"title=Clip,description=Bound column values"`
	InfToNaN   bool              `yaml:"inf_to_nan,omitempty" json:"inf_to_nan,omitempty" jsonschema:"title=Inf To NaN,description=Replace infinities with NaN"`
	NaNToZero  bool              `yaml:"nan_to_zero,omitempty" json:"nan_to_zero,omitempty" jsonschema:"title=NaN To Zero,description=Replace NaN with zero"`
}

// StationaryConfig configures dataframe.MakeStationary. No columns means every float column.
type StationaryConfig struct {
	Columns []string `yaml:"columns,omitempty" json:"columns,omitempty" jsonschema:"title=Columns"`
	UsePct  bool     `yaml:"use_pct,omitempty" json:"use_pct,omitempty" jsonschema:"title=Use Percent,description=Use fractional change instead of difference"`
}

// ClipConfig configures dataframe.ClipColumns. No columns means every float column.
type ClipConfig struct {
	Min     float64  `yaml:"min" json:"min" jsonschema:"title=Min,required"`
	Max     float64  `yaml:"max" json:"max" jsonschema:"title=Max,required" validate:"gtefield=Min"`
	Columns []string `yaml:"columns,omitempty" json:"columns,omitempty" jsonschema:"title=Columns"`
}

// Output selects the destination file.
type Output struct {
	Path             string                 `yaml:"path" json:"path" jsonschema:"title=Path,description=Output file,required" validate:"required"`
	Format           string                 `yaml:"format,omitempty" json:"format,omitempty" jsonschema:"title=Format,enum=csv,enum=parquet" validate:"omitempty,oneof=csv parquet"`
	DecimalPrecision optional.Option[int32] `yaml:"decimal_precision,omitempty" json:"decimal_precision,omitempty" jsonschema:"title=Decimal Precision,description=Round floats to this many decimal places"`
}

// UnmarshalYAML implements custom unmarshaling for Output
func (o *Output) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type output struct {
		Path             string `yaml:"path"`
		Format           string `yaml:"format"`
		DecimalPrecision *int32 `yaml:"decimal_precision"`
	}

	var raw output
	if err := unmarshal(&raw); err != nil {
		return err
	}

	o.Path = raw.Path
	o.Format = raw.Format
	o.DecimalPrecision = optional.FromNillable(raw.DecimalPrecision)

	return nil
}

// MarshalYAML writes DecimalPrecision as a plain number or omits it.
func (o Output) MarshalYAML() (interface{}, error) {
	type output struct {
		Path             string `yaml:"path"`
		Format           string `yaml:"format,omitempty"`
		DecimalPrecision *int32 `yaml:"decimal_precision,omitempty"`
	}

	raw := output{Path: o.Path, Format: o.Format}
	if p, err := o.DecimalPrecision.Take(); err == nil {
		raw.DecimalPrecision = &p
	}

	return raw, nil
}

// Params returns the Config parameters for the selected indicator, filling defaults for
// zero periods.
func (c IndicatorConfig) Params() []any {
	switch c.Type {
	case types.IndicatorTypeMACD:
		return []any{orDefault(c.FastPeriod, 12), orDefault(c.SlowPeriod, 26), orDefault(c.SignalPeriod, 9)}
	case types.IndicatorTypeEMA:
		return []any{orDefault(c.Period, 20)}
	default:
		return []any{orDefault(c.Period, 14)}
	}
}

func orDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}

	return value
}

// Load reads, defaults and validates a job file.
func Load(path string) (*Job, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "job file %s not found", path)
		}

		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read job file %s", path)
	}

	return Parse(content)
}

// Parse decodes, defaults and validates a job from YAML.
func Parse(content []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(content, &job); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse job file", err)
	}

	job.ApplyDefaults()

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return &job, nil
}

// ApplyDefaults fills optional fields.
func (j *Job) ApplyDefaults() {
	if j.Input.DateColumn == "" {
		j.Input.DateColumn = "Date"
	}
}

// Validate checks field constraints, the job version and the date range.
func (j *Job) Validate() error {
	validate := validator.New()
	if err := validate.Struct(j); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid job", err)
	}

	if err := version.CheckVersionCompatibility(version.GetVersion(), j.Version); err != nil {
		return err
	}

	if p, err := j.Output.DecimalPrecision.Take(); err == nil && p < 0 {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "decimal_precision must not be negative, got %d", p)
	}

	for _, bound := range []string{j.Input.Start, j.Input.End} {
		if bound == "" {
			continue
		}

		if _, err := frame.ParseTimestamp(bound); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid date range bound %q", bound)
		}
	}

	return nil
}

// HasDateRange reports whether the job slices its input by date.
func (j *Job) HasDateRange() bool {
	return j.Input.Start != "" && j.Input.End != ""
}
