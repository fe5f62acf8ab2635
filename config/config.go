package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultSampleRows = 3

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Schema   SchemaConfig   `yaml:"schema"`
}

type DatabaseConfig struct {
	DBType           string `yaml:"type"`
	ConnectionString string `yaml:"connection_string,omitempty"`
	File             string `yaml:"file,omitempty"`
}

// SchemaConfig sets the defaults for the table_info tool: which tables to
// describe and how many sample rows to append per table.
type SchemaConfig struct {
	IncludeTables []string `yaml:"include_tables,omitempty"`
	IgnoreTables  []string `yaml:"ignore_tables,omitempty"`
	SampleRows    int      `yaml:"sample_rows,omitempty"`
}

func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Schema.SampleRows <= 0 {
		config.Schema.SampleRows = defaultSampleRows
	}

	return &config, nil
}

func (d *DatabaseConfig) GetConnectionString() (string, error) {
	switch d.DBType {
	case "postgres", "mysql", "mariadb":
		if d.ConnectionString == "" {
			return "", fmt.Errorf("connection string is required for %s connection", d.DBType)
		}

		return d.ConnectionString, nil

	case "sqlite":
		if d.File == "" {
			d.File = "database.db"
		}
		return d.File, nil

	default:
		return "", fmt.Errorf("unsupported database type: %s", d.DBType)
	}
}
