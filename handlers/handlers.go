package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/plexdata-labs/schemaprompt/config"
	"github.com/plexdata-labs/schemaprompt/databases"
	"github.com/plexdata-labs/schemaprompt/introspect"
)

// TableInfoHandler creates a handler for the table_info tool: it
// introspects the schema and renders the promptable description,
// sample rows included. Request arguments override the configured
// defaults.
func TableInfoHandler(connector databases.Database, defaults config.SchemaConfig) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		includeTables := defaults.IncludeTables
		ignoreTables := defaults.IgnoreTables
		sampleRows := defaults.SampleRows

		if args, ok := request.Params.Arguments.(map[string]any); ok {
			// An explicitly empty list clears the configured default, so a
			// caller can always ask for all tables.
			if tables, ok := stringList(args["tables"]); ok {
				includeTables = tables
			}
			if tables, ok := stringList(args["ignore_tables"]); ok {
				ignoreTables = tables
			}
			if n, ok := args["sample_rows"].(float64); ok && n > 0 {
				sampleRows = int(n)
			}
		}

		snapshot, err := introspect.ListTablesAndColumns(ctx, connector, connector.Dialect())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Introspection failed: %v", err)), nil
		}

		info, err := introspect.RenderTableInfo(ctx, connector, connector.Dialect(), snapshot, includeTables, ignoreTables, sampleRows)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Rendering failed: %v", err)), nil
		}

		return mcp.NewToolResultText(info), nil
	}
}

// ListTablesHandler creates a handler for the list_tables tool
func ListTablesHandler(connector databases.Database) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snapshot, err := introspect.ListTablesAndColumns(ctx, connector, connector.Dialect())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Introspection failed: %v", err)), nil
		}

		jsonData, err := json.MarshalIndent(snapshot.Names(), "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal results: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// SampleHandler creates a handler for the sample_table tool
func SampleHandler(connector databases.Database) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := request.RequireString("table")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing table parameter: %v", err)), nil
		}

		limit := 10
		if args, ok := request.Params.Arguments.(map[string]any); ok {
			if n, ok := args["limit"].(float64); ok && n > 0 {
				limit = int(n)
			}
		}

		// The table name must exist in the schema before it is quoted into
		// the sample query.
		d := connector.Dialect()
		snapshot, err := introspect.ListTablesAndColumns(ctx, connector, d)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Introspection failed: %v", err)), nil
		}
		if err := introspect.AssertTablesExist(snapshot, []string{table}, "Sample tables"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		query := fmt.Sprintf("SELECT * FROM %s LIMIT %d;", d.Quote(table), limit)
		results, err := connector.Query(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Sample failed: %v", err)), nil
		}

		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal results: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// QueryHandler creates a handler for the query_database tool
func QueryHandler(connector databases.Database) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing query parameter: %v", err)), nil
		}

		results, err := connector.Query(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Query failed: %v", err)), nil
		}

		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal results: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// stringList reports whether the argument was supplied at all, so an
// empty list is distinct from an absent one.
func stringList(v any) ([]string, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			list = append(list, s)
		}
	}
	return list, true
}
