// Package loader reads OHLCV market data files into frames using DuckDB.
package loader

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/zentools/internal/logger"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
	"go.uber.org/zap"
)

// DefaultDateColumn is the timestamp column used when Options.DateColumn is empty.
const DefaultDateColumn = "Date"

// Options controls a single load.
type Options struct {
	// Path is the CSV file to read.
	Path string
	// DateColumn names the timestamp column that becomes the frame index.
	DateColumn string
	// TimestampFormat is a strptime format such as "%d.%m.%Y %Hh%M" for dates DuckDB cannot
	// detect on its own. When unset the column is cast to TIMESTAMP.
	TimestampFormat optional.Option[string]
	// Start and End bound the loaded rows, both inclusive.
	Start optional.Option[time.Time]
	End   optional.Option[time.Time]
}

// Loader loads market data into a frame.
type Loader interface {
	Load(ctx context.Context, opts Options) (*frame.Frame, error)
}

// CSVLoader loads CSV files through DuckDB's read_csv_auto.
type CSVLoader struct {
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewCSVLoader creates a CSV loader.
func NewCSVLoader(logger *logger.Logger) *CSVLoader {
	return &CSVLoader{
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Load reads the file, sorts it ascending by the date column and returns a frame indexed by
// that column. Numeric columns become float columns, text columns string columns and other
// timestamp columns time columns.
func (l *CSVLoader) Load(ctx context.Context, opts Options) (*frame.Frame, error) {
	dateColumn := opts.DateColumn
	if dateColumn == "" {
		dateColumn = DefaultDateColumn
	}

	if _, err := os.Stat(opts.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "market data file %s not found", opts.Path)
		}

		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "cannot access %s", opts.Path)
	}

	query, args, err := l.buildQuery(opts, dateColumn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	l.logger.Debug("Loading market data", zap.String("path", opts.Path), zap.String("query", query))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyQueryError(err, opts.Path, dateColumn)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read columns", err)
	}

	values := make([][]any, len(names))
	cells := make([]any, len(names))
	pointers := make([]any, len(names))

	for i := range cells {
		pointers[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		for i, cell := range cells {
			values[i] = append(values[i], cell)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, classifyQueryError(err, opts.Path, dateColumn)
	}

	f, err := buildFrame(names, values, dateColumn)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Loaded market data",
		zap.String("path", opts.Path),
		zap.Int("rows", f.Len()),
		zap.Int("columns", len(f.Columns())),
	)

	return f, nil
}

func (l *CSVLoader) buildQuery(opts Options, dateColumn string) (string, []any, error) {
	date := quoteIdent(dateColumn)

	dateExpr := fmt.Sprintf("CAST(%s AS TIMESTAMP)", date)
	if format, err := opts.TimestampFormat.Take(); err == nil {
		dateExpr = fmt.Sprintf("strptime(CAST(%s AS VARCHAR), %s)", date, quoteLiteral(format))
	}

	source := fmt.Sprintf("(SELECT * REPLACE (%s AS %s) FROM read_csv_auto(%s)) AS bars",
		dateExpr, date, quoteLiteral(opts.Path))

	q := l.sq.Select("*").From(source).OrderBy(date + " ASC")

	if start, err := opts.Start.Take(); err == nil {
		q = q.Where(squirrel.GtOrEq{date: start})
	}

	if end, err := opts.End.Take(); err == nil {
		q = q.Where(squirrel.LtOrEq{date: end})
	}

	return q.ToSql()
}

func classifyQueryError(err error, path, dateColumn string) error {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "Conversion Error"), strings.Contains(msg, "Could not parse"):
		return errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "cannot parse %s in %s as timestamps", dateColumn, path)
	case strings.Contains(msg, "Binder Error"):
		return errors.Wrapf(errors.ErrCodeColumnNotFound, err, "column %s not found in %s", dateColumn, path).WithColumn(dateColumn)
	default:
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query %s", path)
	}
}

func buildFrame(names []string, values [][]any, dateColumn string) (*frame.Frame, error) {
	var (
		times   []time.Time
		columns []*frame.Column
	)

	for i, name := range names {
		if name == dateColumn {
			times = make([]time.Time, len(values[i]))

			for r, v := range values[i] {
				t, ok := v.(time.Time)
				if !ok {
					return nil, errors.Newf(errors.ErrCodeMarketDataParseFailed, "row %d of %s is not a timestamp: %v", r, dateColumn, v)
				}

				times[r] = t.UTC()
			}

			continue
		}

		columns = append(columns, toColumn(name, values[i]))
	}

	if times == nil {
		times = []time.Time{}
	}

	return frame.New(frame.NewTimeIndex(dateColumn, times), columns...)
}

// toColumn picks the column kind from the first non-null value.
func toColumn(name string, values []any) *frame.Column {
	kind := frame.KindFloat

scan:
	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case time.Time:
			kind = frame.KindTime
		case string, bool, []byte:
			kind = frame.KindString
		}

		break scan
	}

	switch kind {
	case frame.KindTime:
		out := make([]optional.Option[time.Time], len(values))
		for i, v := range values {
			if t, ok := v.(time.Time); ok {
				out[i] = optional.Some(t.UTC())
			}
		}

		return frame.NewTimeColumn(name, out)
	case frame.KindString:
		out := make([]optional.Option[string], len(values))
		for i, v := range values {
			switch s := v.(type) {
			case nil:
			case string:
				out[i] = optional.Some(s)
			case []byte:
				out[i] = optional.Some(string(s))
			default:
				out[i] = optional.Some(fmt.Sprint(s))
			}
		}

		return frame.NewStringColumn(name, out)
	default:
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = toFloat(v)
		}

		return frame.NewFloatColumn(name, out)
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case int16:
		return float64(n)
	case int8:
		return float64(n)
	case int:
		return float64(n)
	case uint64:
		return float64(n)
	case uint32:
		return float64(n)
	case uint16:
		return float64(n)
	case uint8:
		return float64(n)
	case interface{ Float64() float64 }:
		return n.Float64()
	default:
		return math.NaN()
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
