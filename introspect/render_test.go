package introspect

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexdata-labs/schemaprompt/dialect"
	"github.com/plexdata-labs/schemaprompt/types"
)

var usersSnapshot = types.Snapshot{
	{Name: "Users", Columns: []types.Column{
		{Name: "id", Type: "int", Nullable: false},
		{Name: "name", Type: "text", Nullable: true},
	}},
}

func TestRenderSingleTable(t *testing.T) {
	exec := &fakeExecutor{fn: func(sql string) ([]map[string]any, error) {
		return []map[string]any{
			{"id": 1, "name": "a"},
			{"id": 2, "name": "b"},
		}, nil
	}}

	got, err := RenderTableInfo(context.Background(), exec, dialect.Postgres, usersSnapshot, nil, nil, 2)
	require.NoError(t, err)

	want := "CREATE TABLE Users (id int NOT NULL, name text ) \n" +
		"SELECT * FROM \"Users\" LIMIT 2;\n" +
		" id name\n" +
		" 1 a\n" +
		" 2 b\n"
	assert.Equal(t, want, got)

	require.Len(t, exec.queries, 1)
	assert.Equal(t, `SELECT * FROM "Users" LIMIT 2;`, exec.queries[0])
}

func TestRenderMySQLQuoting(t *testing.T) {
	exec := &fakeExecutor{fn: func(sql string) ([]map[string]any, error) {
		return nil, nil
	}}

	got, err := RenderTableInfo(context.Background(), exec, dialect.MySQL, usersSnapshot, nil, nil, 3)
	require.NoError(t, err)

	assert.Contains(t, got, "SELECT * FROM `Users` LIMIT 3;\n")
	assert.NotContains(t, got, `"Users"`)
}

func TestRenderIsDeterministic(t *testing.T) {
	exec := &fakeExecutor{fn: func(sql string) ([]map[string]any, error) {
		return []map[string]any{{"id": 7, "name": "x"}}, nil
	}}

	first, err := RenderTableInfo(context.Background(), exec, dialect.Postgres, usersSnapshot, nil, nil, 1)
	require.NoError(t, err)
	second, err := RenderTableInfo(context.Background(), exec, dialect.Postgres, usersSnapshot, nil, nil, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderFiltering(t *testing.T) {
	snapshot := types.Snapshot{
		{Name: "T1", Columns: []types.Column{{Name: "a", Type: "int"}}},
		{Name: "T2", Columns: []types.Column{{Name: "b", Type: "int"}}},
		{Name: "T3", Columns: []types.Column{{Name: "c", Type: "int"}}},
	}
	exec := &fakeExecutor{fn: func(sql string) ([]map[string]any, error) {
		return nil, nil
	}}

	t.Run("include list restricts to named tables", func(t *testing.T) {
		got, err := RenderTableInfo(context.Background(), exec, dialect.Postgres, snapshot, []string{"T2"}, nil, 1)
		require.NoError(t, err)

		assert.Contains(t, got, "CREATE TABLE T2")
		assert.NotContains(t, got, "CREATE TABLE T1")
		assert.NotContains(t, got, "CREATE TABLE T3")
	})

	t.Run("ignore list excludes named tables", func(t *testing.T) {
		got, err := RenderTableInfo(context.Background(), exec, dialect.Postgres, snapshot, nil, []string{"T2"}, 1)
		require.NoError(t, err)

		assert.Contains(t, got, "CREATE TABLE T1")
		assert.NotContains(t, got, "CREATE TABLE T2")
		assert.Contains(t, got, "CREATE TABLE T3")
	})

	t.Run("include keeps snapshot order", func(t *testing.T) {
		got, err := RenderTableInfo(context.Background(), exec, dialect.Postgres, snapshot, []string{"T3", "T1"}, nil, 1)
		require.NoError(t, err)

		assert.Less(t, strings.Index(got, "CREATE TABLE T1"), strings.Index(got, "CREATE TABLE T3"))
	})
}

func TestRenderValidatesFiltersBeforeSampling(t *testing.T) {
	snapshot := types.Snapshot{
		{Name: "T1", Columns: []types.Column{{Name: "a", Type: "int"}}},
	}

	tests := []struct {
		name    string
		include []string
		ignore  []string
		wantMsg string
	}{
		{
			name:    "missing include table",
			include: []string{"missing"},
			wantMsg: "Include tables the table missing was not found in the database",
		},
		{
			name:    "missing ignore table",
			ignore:  []string{"missing"},
			wantMsg: "Ignore tables the table missing was not found in the database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{fn: func(sql string) ([]map[string]any, error) {
				t.Fatal("no sampling may happen when validation fails")
				return nil, nil
			}}

			_, err := RenderTableInfo(context.Background(), exec, dialect.Postgres, snapshot, tt.include, tt.ignore, 1)
			require.Error(t, err)

			var notFound *TableNotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Empty(t, exec.queries)
		})
	}
}

func TestRenderSampleFailureIsLocal(t *testing.T) {
	snapshot := types.Snapshot{
		{Name: "T1", Columns: []types.Column{{Name: "a", Type: "int"}}},
		{Name: "T2", Columns: []types.Column{{Name: "b", Type: "int"}}},
	}
	sampleErr := errors.New("permission denied")
	exec := &fakeExecutor{fn: func(sql string) ([]map[string]any, error) {
		if strings.Contains(sql, "T2") {
			return nil, sampleErr
		}
		return []map[string]any{{"a": 1}}, nil
	}}

	result, err := Render(context.Background(), exec, dialect.Postgres, snapshot, Options{SampleRows: 1})
	require.NoError(t, err)

	// T1 is unaffected.
	assert.Contains(t, result.Text, "CREATE TABLE T1 (a int NOT NULL) \n")
	assert.Contains(t, result.Text, " 1\n")

	// T2 keeps its declaration and select statement with an empty sample
	// section.
	assert.Contains(t, result.Text, "CREATE TABLE T2 (b int NOT NULL) \n")
	assert.True(t, strings.HasSuffix(result.Text, "SELECT * FROM \"T2\" LIMIT 1;\n b\n"))

	require.Len(t, result.SampleFailures, 1)
	assert.Equal(t, "T2", result.SampleFailures[0].Table)
	assert.ErrorIs(t, result.SampleFailures[0].Err, sampleErr)

	// Both tables were sampled despite the failure.
	assert.Len(t, exec.queries, 2)
}

func TestRenderEmptySnapshot(t *testing.T) {
	exec := &fakeExecutor{fn: func(sql string) ([]map[string]any, error) {
		t.Fatal("nothing to sample")
		return nil, nil
	}}

	got, err := RenderTableInfo(context.Background(), exec, dialect.Postgres, nil, nil, nil, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRenderValueForms(t *testing.T) {
	snapshot := types.Snapshot{
		{Name: "t", Columns: []types.Column{
			{Name: "a", Type: "int"},
			{Name: "b", Type: "text", Nullable: true},
			{Name: "c", Type: "blob", Nullable: true},
		}},
	}
	exec := &fakeExecutor{fn: func(sql string) ([]map[string]any, error) {
		return []map[string]any{{"a": int64(42), "b": nil, "c": []byte("raw")}}, nil
	}}

	got, err := RenderTableInfo(context.Background(), exec, dialect.SQLite, snapshot, nil, nil, 1)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(got, " 42 NULL raw\n"))
}
