package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"marketdash/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository stores and serves a market-data snapshot as a single SQLite table.
// It implements ports.RowSource.
type Repository struct {
	db      *sql.DB
	path    string
	table   string
	columns []string
	logger  ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath   string
	Table    string   // Snapshot table name
	Columns  []string // Column names in export order
	ReadOnly bool     // Open an existing database without creating or migrating it
	Logger   ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository: %w", ports.ErrConfigurationError)
	}
	if len(cfg.Columns) == 0 {
		return nil, fmt.Errorf("no columns configured for SQLite repository: %w", ports.ErrConfigurationError)
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/market_quotes.db" // Default path
	}
	table := cfg.Table
	if table == "" {
		table = "market_quotes"
	}

	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	if cfg.ReadOnly {
		if _, err := os.Stat(dbPath); err != nil {
			err = fmt.Errorf("%w: database '%s': %w", ports.ErrSourceUnavailable, dbPath, err)
			cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
			return nil, err
		}
		dsn = "file:" + dbPath + "?mode=ro&_busy_timeout=5000"
	} else {
		// Create data directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
			cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		err = fmt.Errorf("%w: failed to open database at '%s': %w", ports.ErrSourceUnavailable, dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("%w: failed to ping database at '%s': %w", ports.ErrSourceUnavailable, dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{
		"path": dbPath, "table": table, "readOnly": cfg.ReadOnly,
	})

	repo := &Repository{db: db, path: dbPath, table: table, columns: cfg.Columns, logger: cfg.Logger}

	if !cfg.ReadOnly {
		if err := repo.initializeSchema(context.Background()); err != nil {
			db.Close()
			err = fmt.Errorf("failed to initialize database schema: %w", err)
			cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
			return nil, err
		}
		cfg.Logger.Info(context.Background(), "Database schema initialized/verified", map[string]interface{}{"table": table})
	}

	return repo, nil
}

// initializeSchema creates the snapshot table if it doesn't exist. Every column is TEXT
// so values round-trip exactly as the export wrote them.
func (r *Repository) initializeSchema(ctx context.Context) error {
	defs := make([]string, len(r.columns))
	for i, c := range r.columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		%s
	)`, quoteIdent(r.table), strings.Join(defs, ",\n\t\t"))

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// Name identifies the source in logs.
func (r *Repository) Name() string {
	return "sqlite:" + r.path + "#" + r.table
}

// ReplaceRows atomically replaces the stored snapshot. Empty values are stored as NULL.
func (r *Repository) ReplaceRows(ctx context.Context, rows [][]string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+quoteIdent(r.table)); err != nil {
		return 0, fmt.Errorf("failed to clear table %s: %w", r.table, err)
	}

	cols := make([]string, len(r.columns))
	marks := make([]string, len(r.columns))
	for i, c := range r.columns {
		cols[i] = quoteIdent(c)
		marks[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(r.table), strings.Join(cols, ", "), strings.Join(marks, ", "))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert into %s: %w", r.table, err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(r.columns))
	for n, row := range rows {
		for i := range args {
			args[i] = nil
			if i < len(row) && row[i] != "" {
				args[i] = row[i]
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to insert row %d into %s: %w", n, r.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	r.logger.Info(ctx, "Snapshot stored", map[string]interface{}{"table": r.table, "rows": len(rows)})
	return len(rows), nil
}

// FetchRows returns the stored snapshot in insertion order, one field per configured column.
// NULL values come back as empty strings.
func (r *Repository) FetchRows(ctx context.Context) ([][]string, error) {
	if err := r.checkColumns(ctx); err != nil {
		return nil, err
	}

	cols := make([]string, len(r.columns))
	for i, c := range r.columns {
		cols[i] = quoteIdent(c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(cols, ", "), quoteIdent(r.table))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query table %s: %w", ports.ErrSourceUnavailable, r.table, err)
	}
	defer rows.Close()

	result := make([][]string, 0)
	values := make([]interface{}, len(r.columns))
	dest := make([]interface{}, len(r.columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", r.table, err)
		}
		fields := make([]string, len(values))
		for i, v := range values {
			fields[i] = formatValue(v)
		}
		result = append(result, fields)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", r.table, err)
	}
	r.logger.Debug(ctx, "SQLite snapshot read", map[string]interface{}{"table": r.table, "rows": len(result)})
	return result, nil
}

// checkColumns verifies the table exists and carries every configured column.
func (r *Repository) checkColumns(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", r.table)
	if err != nil {
		return fmt.Errorf("%w: failed to inspect table %s: %w", ports.ErrSourceUnavailable, r.table, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan column info of %s: %w", r.table, err)
		}
		present[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating column info of %s: %w", r.table, err)
	}
	if len(present) == 0 {
		return fmt.Errorf("%w: table %s: %w", ports.ErrSourceUnavailable, r.table, ports.ErrNotFound)
	}

	var missing []string
	for _, c := range r.columns {
		if !present[strings.ToLower(c)] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns %s: %w", r.table, strings.Join(missing, ", "), ports.ErrSchemaMismatch)
	}
	return nil
}

// formatValue renders a scanned SQLite value the way a CSV export would.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
