package mcp

import (
	goMCP "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/plexdata-labs/schemaprompt/config"
	"github.com/plexdata-labs/schemaprompt/databases"
	"github.com/plexdata-labs/schemaprompt/handlers"
)

func RegisterTools(s *server.MCPServer, connector databases.Database, schemaCfg config.SchemaConfig) {
	// Table info tool
	tableInfoTool := goMCP.NewTool("table_info",
		goMCP.WithDescription("Describe the database schema as CREATE TABLE statements with sample rows, formatted for prompting a language model"),
		goMCP.WithArray("tables",
			goMCP.Description("Optional list of table names to describe. If empty, describes all tables"),
		),
		goMCP.WithArray("ignore_tables",
			goMCP.Description("Optional list of table names to leave out"),
		),
		goMCP.WithNumber("sample_rows",
			goMCP.Description("Number of sample rows to append per table"),
		),
	)

	// List tables tool
	listTablesTool := goMCP.NewTool("list_tables",
		goMCP.WithDescription("List the names of all user tables in the database"),
	)

	// Sample tool
	sampleTool := goMCP.NewTool("sample_table",
		goMCP.WithDescription("Get sample data from a specific table"),
		goMCP.WithString("table",
			goMCP.Required(),
			goMCP.Description("Name of the table to sample"),
		),
		goMCP.WithNumber("limit",
			goMCP.Description("Number of rows to return (default: 10)"),
		),
	)

	// Query tool
	queryTool := goMCP.NewTool("query_database",
		goMCP.WithDescription("Execute a read-only SQL query on the database"),
		goMCP.WithString("query",
			goMCP.Required(),
			goMCP.Description("SQL query to execute (SELECT statements only)"),
		),
	)

	s.AddTool(tableInfoTool, handlers.TableInfoHandler(connector, schemaCfg))
	s.AddTool(listTablesTool, handlers.ListTablesHandler(connector))
	s.AddTool(sampleTool, handlers.SampleHandler(connector))
	s.AddTool(queryTool, handlers.QueryHandler(connector))
}
