package introspect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plexdata-labs/schemaprompt/dialect"
	"github.com/plexdata-labs/schemaprompt/types"
)

// Options controls what RenderTableInfo emits. A non-empty IncludeTables
// restricts rendering to just those tables; IgnoreTables excludes named
// tables. Both are validated against the snapshot before any rendering
// or sampling work.
type Options struct {
	IncludeTables []string
	IgnoreTables  []string
	SampleRows    int
}

// SampleFailure records a table whose sample query failed. Sampling
// failures never abort rendering of the remaining tables.
type SampleFailure struct {
	Table string
	Err   error
}

// Result carries the rendered text plus any per-table sample failures,
// in table order.
type Result struct {
	Text           string
	SampleFailures []SampleFailure
}

// Render produces the schema description for every table that survives
// filtering, in snapshot order. Each table contributes a synthetic
// CREATE TABLE declaration, the sample SELECT statement, a column legend
// line and the sampled rows. Output is deterministic for a deterministic
// executor.
func Render(ctx context.Context, exec Executor, d dialect.Dialect, snapshot types.Snapshot, opts Options) (*Result, error) {
	if err := AssertTablesExist(snapshot, opts.IncludeTables, "Include tables"); err != nil {
		return nil, err
	}
	if err := AssertTablesExist(snapshot, opts.IgnoreTables, "Ignore tables"); err != nil {
		return nil, err
	}

	tables := filterTables(snapshot, opts.IncludeTables, opts.IgnoreTables)

	result := &Result{}
	segments := make([]string, 0, len(tables))
	for _, table := range tables {
		segment, err := renderTable(ctx, exec, d, table, opts.SampleRows)
		if err != nil {
			result.SampleFailures = append(result.SampleFailures, SampleFailure{Table: table.Name, Err: err})
		}
		segments = append(segments, segment)
	}
	result.Text = strings.Join(segments, "")

	return result, nil
}

// RenderTableInfo is the convenience entry point: it renders the snapshot
// and logs each sample failure through slog instead of surfacing them.
func RenderTableInfo(ctx context.Context, exec Executor, d dialect.Dialect, snapshot types.Snapshot, includeTables, ignoreTables []string, sampleRows int) (string, error) {
	result, err := Render(ctx, exec, d, snapshot, Options{
		IncludeTables: includeTables,
		IgnoreTables:  ignoreTables,
		SampleRows:    sampleRows,
	})
	if err != nil {
		return "", err
	}

	for _, failure := range result.SampleFailures {
		slog.Warn("sample query failed", "table", failure.Table, "error", failure.Err)
	}

	return result.Text, nil
}

// renderTable always returns the table's declaration, select statement
// and column legend; the returned error only ever concerns the sample
// section, which stays empty on failure.
func renderTable(ctx context.Context, exec Executor, d dialect.Dialect, table types.Table, sampleRows int) (string, error) {
	var b strings.Builder

	columnDecls := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		notNull := ""
		if !col.Nullable {
			notNull = "NOT NULL"
		}
		columnDecls = append(columnDecls, fmt.Sprintf("%s %s %s", col.Name, col.Type, notNull))
	}
	fmt.Fprintf(&b, "CREATE TABLE %s (%s) \n", table.Name, strings.Join(columnDecls, ", "))

	sampleQuery := fmt.Sprintf("SELECT * FROM %s LIMIT %d;", d.Quote(table.Name), sampleRows)
	b.WriteString(sampleQuery + "\n")

	for _, col := range table.Columns {
		b.WriteString(" " + col.Name)
	}
	b.WriteString("\n")

	rows, err := exec.Query(ctx, sampleQuery)
	if err != nil {
		return b.String(), fmt.Errorf("failed to sample table %s: %w", table.Name, err)
	}

	// Values follow the snapshot's column order, not map iteration order,
	// so the same rows always render the same bytes.
	for _, row := range rows {
		for _, col := range table.Columns {
			b.WriteString(" " + renderValue(row[col.Name]))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

func filterTables(snapshot types.Snapshot, includeTables, ignoreTables []string) types.Snapshot {
	include := make(map[string]bool, len(includeTables))
	for _, name := range includeTables {
		include[name] = true
	}
	ignore := make(map[string]bool, len(ignoreTables))
	for _, name := range ignoreTables {
		ignore[name] = true
	}

	var tables types.Snapshot
	for _, table := range snapshot {
		if len(include) > 0 && !include[table.Name] {
			continue
		}
		if ignore[table.Name] {
			continue
		}
		tables = append(tables, table)
	}
	return tables
}

func renderValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
