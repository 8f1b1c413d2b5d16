package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:",squash"`
	Log      LogConfig      `mapstructure:",squash"`
	Backend  BackendConfig  `mapstructure:",squash"`
	MongoDB  MongoDBConfig  `mapstructure:",squash"`
	Snapshot SnapshotConfig `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
	Admin    AdminConfig    `mapstructure:",squash"`
	AI       AIConfig       `mapstructure:",squash"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	Env         string `mapstructure:"env"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level    string `mapstructure:"log_level"`
	Encoding string `mapstructure:"log_encoding"`
}

// BackendConfig selects the backing store strategy of the store manager:
// "mongo" and "memory" are remote-backed, "local" keeps state in the snapshot cache only.
type BackendConfig struct {
	Kind string `mapstructure:"backend"`
}

type MongoDBConfig struct {
	URI      string `mapstructure:"mongodb_uri"`
	Database string `mapstructure:"mongodb_database"`
}

type SnapshotConfig struct {
	Backend   string `mapstructure:"snapshot_backend"`
	Namespace string `mapstructure:"snapshot_namespace"`
	BadgerDir string `mapstructure:"badger_dir"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"redis_address"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type AdminConfig struct {
	Email    string `mapstructure:"admin_email"`
	Password string `mapstructure:"admin_password"`
}

type AIConfig struct {
	Endpoint   string `mapstructure:"azure_openai_endpoint"`
	APIKey     string `mapstructure:"azure_openai_api_key"`
	Deployment string `mapstructure:"azure_openai_deployment_name"`
}

var defaults = map[string]any{
	"host":                         "127.0.0.1",
	"port":                         "8000",
	"env":                          "development",
	"cors_origins":                 "http://localhost:3000,http://localhost:5173",
	"log_level":                    "info",
	"log_encoding":                 "console",
	"backend":                      "local",
	"mongodb_uri":                  "",
	"mongodb_database":             "aurelia_luxe",
	"snapshot_backend":             "badger",
	"snapshot_namespace":           "al",
	"badger_dir":                   "./data/snapshot",
	"redis_address":                "localhost:6379",
	"redis_password":               "",
	"redis_db":                     0,
	"admin_email":                  "admin@aurelia.com",
	"admin_password":               "aurelia",
	"azure_openai_endpoint":        "",
	"azure_openai_api_key":         "",
	"azure_openai_deployment_name": "gpt-4o-mini",
}

// Load reads the configuration from environment variables, falling back to defaults
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend.Kind {
	case "local", "memory":
	case "mongo":
		if c.MongoDB.URI == "" {
			return fmt.Errorf("MONGODB_URI is required when BACKEND=mongo")
		}
	default:
		return fmt.Errorf("unknown BACKEND %q", c.Backend.Kind)
	}

	switch c.Snapshot.Backend {
	case "memory", "redis", "badger":
	default:
		return fmt.Errorf("unknown SNAPSHOT_BACKEND %q", c.Snapshot.Backend)
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// ListenAddr joins HOST and PORT. HOST defaults to loopback because the
// signed-in session is shared by every caller.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// AIEnabled reports whether AI credentials were provided
func (c *Config) AIEnabled() bool {
	return c.AI.Endpoint != "" && c.AI.APIKey != ""
}

// AllowedOrigins splits the comma separated CORS origin list
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.Server.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
