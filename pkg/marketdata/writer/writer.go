// Package writer exports frames to CSV or Parquet files using DuckDB.
package writer

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
)

// Format is an output file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// Options controls a single write.
type Options struct {
	// Path is the output file. Parent directories are created.
	Path string
	// Format selects the file format. When empty it is taken from the path extension,
	// falling back to CSV.
	Format Format
	// DecimalPrecision rounds finite float values to this many decimal places.
	DecimalPrecision optional.Option[int32]
}

// MarketDataWriter defines the interface for writing frames to a destination.
type MarketDataWriter interface {
	// Write persists the whole frame and returns the written file path.
	Write(ctx context.Context, f *frame.Frame, opts Options) (string, error)
}

// ResolveFormat returns the effective output format for opts.
func ResolveFormat(opts Options) (Format, error) {
	format := Format(strings.ToLower(string(opts.Format)))
	if format == "" {
		if strings.EqualFold(filepath.Ext(opts.Path), ".parquet") {
			return FormatParquet, nil
		}

		return FormatCSV, nil
	}

	switch format {
	case FormatCSV, FormatParquet:
		return format, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidOutputFormat, "unsupported output format %q", opts.Format)
	}
}
