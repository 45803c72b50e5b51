package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Storage  Storage  `toml:"storage"`
	Postgres Postgres `toml:"postgres"`
}

type Storage struct {
	// Driver selects the snapshot store: "sqlite" (default) or "postgres".
	Driver string `toml:"driver"`
	// Path is the SQLite database file.
	Path string `toml:"path"`
}

type Postgres struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

const defaultTOML = `# Tableside configuration.

[storage]
driver = "sqlite"
path = "tableside.db"

# Only read when storage.driver = "postgres".
[postgres]
host = "localhost"
port = 5432
user = "tableside"
password = ""
database = "tableside"
`

func defaults() Config {
	return Config{
		Storage:  Storage{Driver: DriverSQLite, Path: "tableside.db"},
		Postgres: Postgres{Host: "localhost", Port: 5432, User: "tableside", Database: "tableside"},
	}
}

// Load reads the TOML config at path, filling unset fields from defaults.
func Load(path string) (Config, error) {
	cfg := defaults()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Postgres.Host == "" || c.Postgres.User == "" || c.Postgres.Database == "" {
			return fmt.Errorf("postgres config incomplete: host, user and database are required")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// Find returns the first existing config file among the usual candidates, or
// writes the default config to the first candidate and returns its path.
func Find() (string, error) {
	candidates := []string{"config.toml", filepath.Join("deploy", "config.toml")}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
	}
	if err := os.WriteFile(candidates[0], []byte(defaultTOML), 0o644); err != nil {
		return "", fmt.Errorf("write default config: %w", err)
	}
	return candidates[0], nil
}
