package schema

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite" // Pure Go driver, CGO-free, compatible with CGO_ENABLED=0

	"nlsql-service/internal/metrics"
	"nlsql-service/internal/types"
)

// rowCountConcurrency bounds parallel COUNT(*) queries per inspection.
const rowCountConcurrency = 4

// Inspector summarizes the structure of a SQLite database into SchemaInfo.
// It only reads catalog tables and row counts; it never runs caller SQL.
type Inspector struct {
	db *sql.DB
}

// NewInspector opens the source database read-only.
func NewInspector(path string) (*Inspector, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &Inspector{db: db}, nil
}

// Inspect builds a fresh SchemaInfo: every user table, its declared column
// types, and its current row count. Row counts are gathered concurrently.
func (i *Inspector) Inspect(ctx context.Context) (types.SchemaInfo, error) {
	schema := types.SchemaInfo{Tables: map[string]types.TableInfo{}}

	tables, err := i.listTables(ctx)
	if err != nil {
		metrics.SchemaInspections.WithLabelValues("error").Inc()
		return schema, err
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rowCountConcurrency)

	for _, table := range tables {
		table := table
		g.Go(func() error {
			columns, err := i.tableColumns(gctx, table)
			if err != nil {
				return err
			}

			count, err := i.rowCount(gctx, table)
			if err != nil {
				return err
			}

			mu.Lock()
			schema.Tables[table] = types.TableInfo{Columns: columns, RowCount: count}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.SchemaInspections.WithLabelValues("error").Inc()
		return types.SchemaInfo{Tables: map[string]types.TableInfo{}}, err
	}

	metrics.SchemaInspections.WithLabelValues("success").Inc()
	slog.Debug("schema inspected", "tables", len(schema.Tables))
	return schema, nil
}

// Close releases the underlying database handle.
func (i *Inspector) Close() error {
	return i.db.Close()
}

func (i *Inspector) listTables(ctx context.Context) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, `
        SELECT name FROM sqlite_master
        WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
        ORDER BY name
    `)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (i *Inspector) tableColumns(ctx context.Context, table string) (map[string]string, error) {
	rows, err := i.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	columns := map[string]string{}
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		columns[name] = colType
	}
	return columns, rows.Err()
}

func (i *Inspector) rowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))
	if err := i.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows of %s: %w", table, err)
	}
	return count, nil
}

// quoteIdent quotes a SQLite identifier. Table names come from sqlite_master,
// but quoting keeps names with spaces or keywords working.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
