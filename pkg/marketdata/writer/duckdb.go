package writer

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/zentools/internal/logger"
	"github.com/rxtech-lab/zentools/pkg/errors"
	"github.com/rxtech-lab/zentools/pkg/frame"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const stagingTable = "frame_data"

// DuckDBWriter stages a frame in an in-memory DuckDB table and exports it with COPY.
type DuckDBWriter struct {
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBWriter creates a new DuckDBWriter.
func NewDuckDBWriter(logger *logger.Logger) *DuckDBWriter {
	return &DuckDBWriter{
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Write exports the frame. A time index is written as the leading column under the index
// name. Missing values, NaN and ±Inf are written as NULL.
func (w *DuckDBWriter) Write(ctx context.Context, f *frame.Frame, opts Options) (string, error) {
	format, err := ResolveFormat(opts)
	if err != nil {
		return "", err
	}

	if opts.Path == "" {
		return "", errors.New(errors.ErrCodeInvalidParameter, "output path is required")
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create directory for %s", opts.Path)
	}

	layout, err := newTableLayout(f)
	if err != nil {
		return "", err
	}

	s := &session{writer: w, layout: layout}
	defer s.close()

	if err := s.initialize(ctx); err != nil {
		return "", err
	}

	var precision *int32
	if p, err := opts.DecimalPrecision.Take(); err == nil {
		precision = &p
	}

	for r := 0; r < f.Len(); r++ {
		if err := s.insert(ctx, layout.row(r, precision)); err != nil {
			return "", err
		}
	}

	if err := s.finalize(ctx, opts.Path, format); err != nil {
		return "", err
	}

	w.logger.Info("Exported frame",
		zap.String("path", opts.Path),
		zap.String("format", string(format)),
		zap.Int("rows", f.Len()),
	)

	return opts.Path, nil
}

// tableLayout maps frame columns to staging table columns.
type tableLayout struct {
	frame     *frame.Frame
	indexName string
	names     []string
	columns   []*frame.Column
}

func newTableLayout(f *frame.Frame) (*tableLayout, error) {
	layout := &tableLayout{frame: f}

	if f.Index().IsTime() {
		layout.indexName = f.Index().Name()
		if layout.indexName == "" {
			layout.indexName = "index"
		}

		layout.names = append(layout.names, layout.indexName)
	}

	for _, name := range f.Columns() {
		if name == layout.indexName {
			return nil, errors.Newf(errors.ErrCodeColumnAlreadyExists, "column %q collides with the index column", name).WithColumn(name)
		}

		c, _ := f.Column(name)
		layout.names = append(layout.names, name)
		layout.columns = append(layout.columns, c)
	}

	return layout, nil
}

func (t *tableLayout) createStatement() string {
	defs := make([]string, 0, len(t.names))

	if t.indexName != "" {
		defs = append(defs, quoteIdent(t.indexName)+" TIMESTAMP")
	}

	for _, c := range t.columns {
		defs = append(defs, quoteIdent(c.Name())+" "+sqlType(c.Kind()))
	}

	return fmt.Sprintf("CREATE TABLE %s (%s)", stagingTable, strings.Join(defs, ", "))
}

func (t *tableLayout) quotedNames() []string {
	quoted := make([]string, len(t.names))
	for i, name := range t.names {
		quoted[i] = quoteIdent(name)
	}

	return quoted
}

func (t *tableLayout) row(r int, precision *int32) []any {
	values := make([]any, 0, len(t.names))

	if t.indexName != "" {
		values = append(values, t.frame.Index().At(r))
	}

	for _, c := range t.columns {
		values = append(values, cellValue(c, r, precision))
	}

	return values
}

func cellValue(c *frame.Column, r int, precision *int32) any {
	if c.IsMissing(r) {
		return nil
	}

	switch c.Kind() {
	case frame.KindString:
		return c.StringAt(r).Unwrap()
	case frame.KindTime:
		return c.TimeAt(r).Unwrap()
	default:
		v := c.FloatAt(r)
		if math.IsInf(v, 0) {
			return nil
		}

		if precision != nil {
			return decimal.NewFromFloat(v).Round(*precision).InexactFloat64()
		}

		return v
	}
}

func sqlType(kind frame.Kind) string {
	switch kind {
	case frame.KindString:
		return "VARCHAR"
	case frame.KindTime:
		return "TIMESTAMP"
	default:
		return "DOUBLE"
	}
}

// session holds the connection, transaction and prepared insert of one export.
type session struct {
	writer *DuckDBWriter
	layout *tableLayout
	db     *sql.DB
	tx     *sql.Tx
	stmt   *sql.Stmt
}

// initialize opens an in-memory database, creates the staging table, begins a transaction
// and prepares the insert statement.
func (s *session) initialize(ctx context.Context) (err error) {
	s.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to open DuckDB connection", err)
	}

	if _, err = s.db.ExecContext(ctx, s.layout.createStatement()); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create table", err)
	}

	s.tx, err = s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to begin transaction", err)
	}

	query, _, err := s.writer.sq.
		Insert(stagingTable).
		Columns(s.layout.quotedNames()...).
		Values(make([]any, len(s.layout.names))...).
		ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to build insert statement", err)
	}

	s.stmt, err = s.tx.PrepareContext(ctx, query)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to prepare statement", err)
	}

	return nil
}

func (s *session) insert(ctx context.Context, values []any) error {
	if _, err := s.stmt.ExecContext(ctx, values...); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to insert row", err)
	}

	return nil
}

// finalize commits the transaction and exports the staging table.
func (s *session) finalize(ctx context.Context, path string, format Format) error {
	if err := s.tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to commit transaction", err)
	}

	s.tx = nil

	options := "FORMAT CSV, HEADER"
	if format == FormatParquet {
		options = "FORMAT PARQUET"
	}

	copyStmt := fmt.Sprintf("COPY %s TO %s (%s)", stagingTable, quoteLiteral(path), options)
	if _, err := s.db.ExecContext(ctx, copyStmt); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to export to %s", format)
	}

	return nil
}

// close releases the statement, rolls back an unfinished transaction and closes the
// connection.
func (s *session) close() {
	if s.stmt != nil {
		if err := s.stmt.Close(); err != nil {
			s.writer.logger.Warn("Failed to close statement", zap.Error(err))
		}
	}

	if s.tx != nil {
		if err := s.tx.Rollback(); err != nil {
			s.writer.logger.Warn("Failed to rollback transaction during close", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.writer.logger.Warn("Failed to close db connection", zap.Error(err))
		}
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

var _ MarketDataWriter = (*DuckDBWriter)(nil)
