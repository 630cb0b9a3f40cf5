package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Cofre"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		// The TUI logs here since it owns the terminal. Relative to Local.DataDir.
		LogFile string `envconfig:"LOG_FILE" default:"cofre.log"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"cofre"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
		// bcrypt hash of the admin key. Admin routes are closed while empty.
		AdminKeyHash string `envconfig:"ADMIN_KEY_HASH"`
	}

	Supabase struct {
		URL     string `envconfig:"SUPABASE_URL"`
		AnonKey string `envconfig:"SUPABASE_ANON_KEY"`
	}

	Resilience struct {
		MaxRetries     int           `envconfig:"RESILIENCE_MAX_RETRIES" default:"2"`
		InitialBackoff time.Duration `envconfig:"RESILIENCE_INITIAL_BACKOFF" default:"200ms"`
		HTTPTimeout    time.Duration `envconfig:"RESILIENCE_HTTP_TIMEOUT" default:"10s"`
	}

	Local struct {
		Enabled bool `envconfig:"LOCAL_MODE" default:"false"`
		// Empty means the user config dir.
		DataDir    string `envconfig:"DATA_DIR"`
		SQLiteFile string `envconfig:"SQLITE_FILE" default:"cofre.db"`
		// Owner of the rows the TUI writes. Empty means the machine id.
		UserID string `envconfig:"USER_ID"`
	}

	Telemetry struct {
		OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// SQLitePath resolves the local database file inside dataDir unless it is
// already absolute.
func (c *Config) SQLitePath(dataDir string) string {
	return resolve(dataDir, c.Local.SQLiteFile)
}

func (c *Config) LogPath(dataDir string) string {
	return resolve(dataDir, c.App.LogFile)
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(dir, name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
