package main

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/plexdata-labs/schemaprompt/config"
	"github.com/plexdata-labs/schemaprompt/databases"
	"github.com/plexdata-labs/schemaprompt/mcp"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("config error", "error", err)
		return
	}

	connStr, err := cfg.Database.GetConnectionString()
	if err != nil {
		slog.Error("connection string error", "error", err)
		return
	}

	connector, err := databases.NewConnector(cfg.Database.DBType, connStr)
	if err != nil {
		slog.Error("failed to create connector", "error", err)
		return
	}
	defer connector.Close()

	s := server.NewMCPServer(
		"schemaprompt",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	mcp.RegisterTools(s, connector, cfg.Schema)
	slog.Info("connected", "dialect", connector.Dialect())

	// Start the stdio server
	if err := server.ServeStdio(s); err != nil {
		fmt.Printf("Server error: %v\n", err)
	}
}
