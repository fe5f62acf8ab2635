// Package introspect turns catalog rows from a live database into a
// normalized schema snapshot and renders that snapshot, with sample rows,
// into a single text block suitable for prompting a language model.
package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/plexdata-labs/schemaprompt/dialect"
	"github.com/plexdata-labs/schemaprompt/types"
)

// Executor runs a SQL string against a live database connection and
// returns its rows as column-name to value maps. Implementations live in
// the databases package; anything with this shape works.
type Executor interface {
	Query(ctx context.Context, sql string) ([]map[string]any, error)
}

// CatalogRow is one validated row of a dialect's catalog query.
type CatalogRow struct {
	TableName  string
	ColumnName string
	DataType   string
	IsNullable string
}

// TableNotFoundError reports a table named in an include or ignore list
// that is absent from the snapshot.
type TableNotFoundError struct {
	Context string
	Table   string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("%s the table %s was not found in the database", e.Context, e.Table)
}

// ListTablesAndColumns runs the dialect's catalog query through the
// executor and returns the normalized snapshot. A catalog-query failure
// is fatal for the whole call.
func ListTablesAndColumns(ctx context.Context, exec Executor, d dialect.Dialect) (types.Snapshot, error) {
	query, err := d.CatalogQuery()
	if err != nil {
		return nil, err
	}

	rawRows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}

	rows := make([]CatalogRow, 0, len(rawRows))
	for i, raw := range rawRows {
		row, err := parseCatalogRow(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog row %d: %w", i, err)
		}
		rows = append(rows, row)
	}

	return Normalize(rows), nil
}

// Normalize groups flat catalog rows into a snapshot. It is a single
// in-order fold, not a sort: the first row mentioning a table fixes that
// table's position, and columns keep the catalog's ordinal order.
func Normalize(rows []CatalogRow) types.Snapshot {
	var snapshot types.Snapshot
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.TableName]
		if !ok {
			i = len(snapshot)
			index[row.TableName] = i
			snapshot = append(snapshot, types.Table{Name: row.TableName})
		}
		snapshot[i].Columns = append(snapshot[i].Columns, types.Column{
			Name:     row.ColumnName,
			Type:     row.DataType,
			Nullable: row.IsNullable == "YES",
		})
	}

	return snapshot
}

// AssertTablesExist verifies every named table is present in the
// snapshot. An empty list never fails; the first missing name fails with
// a TableNotFoundError whose message starts with the context label.
func AssertTablesExist(snapshot types.Snapshot, names []string, contextLabel string) error {
	for _, name := range names {
		if _, ok := snapshot.Lookup(name); !ok {
			return &TableNotFoundError{Context: contextLabel, Table: name}
		}
	}
	return nil
}

// parseCatalogRow validates the loose executor row at the boundary so
// everything downstream is fully typed. data_type may be absent;
// is_nullable accepts YES/NO strings or a driver-level bool.
func parseCatalogRow(raw map[string]any) (CatalogRow, error) {
	tableName, err := stringField(raw, "table_name")
	if err != nil {
		return CatalogRow{}, err
	}
	columnName, err := stringField(raw, "column_name")
	if err != nil {
		return CatalogRow{}, err
	}

	row := CatalogRow{TableName: tableName, ColumnName: columnName}

	if v, ok := fieldValue(raw, "data_type"); ok && v != nil {
		row.DataType = asString(v)
	}

	nullable, _ := fieldValue(raw, "is_nullable")
	switch v := nullable.(type) {
	case nil:
		row.IsNullable = "NO"
	case bool:
		if v {
			row.IsNullable = "YES"
		} else {
			row.IsNullable = "NO"
		}
	default:
		row.IsNullable = asString(v)
	}

	return row, nil
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := fieldValue(raw, key)
	if !ok || v == nil {
		return "", fmt.Errorf("missing %s", key)
	}
	s := asString(v)
	if s == "" {
		return "", fmt.Errorf("empty %s", key)
	}
	return s, nil
}

// fieldValue looks a catalog field up under its lowercase and uppercase
// spellings. MySQL 8 reports information_schema result columns uppercase
// even when the query spells them lowercase.
func fieldValue(raw map[string]any, key string) (any, bool) {
	if v, ok := raw[key]; ok {
		return v, true
	}
	v, ok := raw[strings.ToUpper(key)]
	return v, ok
}

// asString renders a driver value in its natural string form. sqlx
// MapScan hands back []byte for text columns on some drivers.
func asString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
