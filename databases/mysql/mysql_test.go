package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexdata-labs/schemaprompt/dialect"
)

func TestNewConnectorRejectsBadDSN(t *testing.T) {
	_, err := NewConnector("not a dsn", dialect.MySQL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse connection string")
}

func TestConnectorQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	connector := &Connector{db: sqlx.NewDb(db, "sqlmock"), dialect: dialect.MySQL}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT c.table_name").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name", "data_type", "is_nullable"}).
			AddRow("users", "id", "int", "NO"))
	mock.ExpectCommit()

	results, err := connector.Query(context.Background(), "SELECT c.table_name FROM information_schema.columns c")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "users", results[0]["table_name"])
	assert.Equal(t, "NO", results[0]["is_nullable"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectorDialect(t *testing.T) {
	assert.Equal(t, dialect.MariaDB, (&Connector{dialect: dialect.MariaDB}).Dialect())
}
