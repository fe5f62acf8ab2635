// Package dialect maps a database kind to its catalog-introspection query
// and identifier quoting rules.
package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedDialect is returned for database kinds outside the
// supported set.
var ErrUnsupportedDialect = errors.New("unsupported dialect")

// Dialect identifies a SQL query-syntax family.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	MariaDB  Dialect = "mariadb"
	SQLite   Dialect = "sqlite"
)

// Parse validates a dialect tag from connection configuration.
func Parse(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(s)); d {
	case Postgres, MySQL, MariaDB, SQLite:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, s)
	}
}

// Catalog queries return rows shaped as (table_name, column_name,
// data_type, is_nullable) with is_nullable normalized to YES/NO, listing
// user tables only, ordered by table name then column ordinal position.
const (
	postgresCatalogQuery = `
		SELECT c.table_name, c.column_name, c.data_type, c.is_nullable
		FROM information_schema.columns c
		JOIN information_schema.tables t
		  ON t.table_schema = c.table_schema AND t.table_name = c.table_name
		WHERE t.table_type = 'BASE TABLE'
		  AND c.table_schema = 'public'
		ORDER BY c.table_name, c.ordinal_position`

	// Anchored on DATABASE() so no caller-supplied database name is ever
	// interpolated into catalog SQL. The select list is aliased because
	// MySQL 8 returns information_schema result columns in the view
	// definition's uppercase unless told otherwise.
	mysqlCatalogQuery = `
		SELECT c.table_name AS table_name, c.column_name AS column_name,
		       c.data_type AS data_type, c.is_nullable AS is_nullable
		FROM information_schema.columns c
		JOIN information_schema.tables t
		  ON t.table_schema = c.table_schema AND t.table_name = c.table_name
		WHERE t.table_type = 'BASE TABLE'
		  AND c.table_schema = DATABASE()
		ORDER BY c.table_name, c.ordinal_position`

	sqliteCatalogQuery = `
		SELECT m.name AS table_name, p.name AS column_name, p.type AS data_type,
		       CASE p."notnull" WHEN 0 THEN 'YES' ELSE 'NO' END AS is_nullable
		FROM sqlite_master m
		JOIN pragma_table_info(m.name) p
		WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%'
		ORDER BY m.name, p.cid`
)

// CatalogQuery returns the dialect's schema-introspection query.
func (d Dialect) CatalogQuery() (string, error) {
	switch d {
	case Postgres:
		return postgresCatalogQuery, nil
	case MySQL, MariaDB:
		return mysqlCatalogQuery, nil
	case SQLite:
		return sqliteCatalogQuery, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, string(d))
	}
}

// Quote wraps an identifier in the dialect's quoting style so names with
// spaces or reserved words stay valid: backticks for the mysql family,
// double quotes for everything else.
func (d Dialect) Quote(ident string) string {
	switch d {
	case MySQL, MariaDB:
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	}
}
