package databases

import (
	"context"
	"fmt"

	"github.com/plexdata-labs/schemaprompt/databases/mysql"
	"github.com/plexdata-labs/schemaprompt/databases/postgres"
	"github.com/plexdata-labs/schemaprompt/databases/sqlite"
	"github.com/plexdata-labs/schemaprompt/dialect"
)

// Database is a live connection that can execute read-only SQL. Query is
// the executor capability the introspect package builds on.
type Database interface {
	Ping(ctx context.Context) error
	Query(ctx context.Context, sql string) ([]map[string]any, error)
	Dialect() dialect.Dialect
	Close() error
}

// NewConnector opens a connection for the configured database type. The
// type is validated as a supported dialect before anything is dialed.
func NewConnector(dbType, connectionString string) (Database, error) {
	d, err := dialect.Parse(dbType)
	if err != nil {
		return nil, err
	}

	switch d {
	case dialect.Postgres:
		return postgres.NewConnector(connectionString)
	case dialect.MySQL, dialect.MariaDB:
		return mysql.NewConnector(connectionString, d)
	case dialect.SQLite:
		return sqlite.NewConnector(connectionString)
	default:
		return nil, fmt.Errorf("%w: %q", dialect.ErrUnsupportedDialect, dbType)
	}
}
