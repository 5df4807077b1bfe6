// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so the service fails fast on bad or missing config.
//
// Responsibilities:
//   - Provide defaults for every optional key.
//   - Map EMPREC_ prefixed env vars (and the legacy ATLAS_URI / PORT /
//     CLIENT_ORIGIN names) into Config.
//   - Validate the result, returning an error instead of exiting.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if one
	// exists, before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix EMPREC_. The prefix is removed and the
	rest is lowercased; nesting uses "." so the env key must carry the dot:

		EMPREC_SERVER.PORT=5050   -> server.port   -> Config.Server.Port
		EMPREC_STORE.URI=...      -> store.uri     -> Config.Store.URI

	Older deployments used flat names, which are still honoured:

		ATLAS_URI     -> store.uri
		PORT          -> server.port
		CLIENT_ORIGIN -> server.client_origin
*/

// EnvPrefix is the prefix of every configuration env var.
const EnvPrefix = "EMPREC_"

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DefaultAllowedOrigins are the frontend origins that may always call the API.
// ServerConfig.ClientOrigin is appended to this list.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:5174",
}

// legacyKeys maps the flat env names used by older deployments to koanf keys.
var legacyKeys = map[string]string{
	"ATLAS_URI":     "store.uri",
	"PORT":          "server.port",
	"CLIENT_ORIGIN": "server.client_origin",
}

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store" validate:"required"`
	Web           WebConfig            `koanf:"web" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development production"`
}

// ServerConfig groups settings for the API server. Timeouts are in seconds.
type ServerConfig struct {
	Port         string `koanf:"port" validate:"required,numeric"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout int    `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"required,min=1"`

	// ClientOrigin is one extra origin allowed by CORS, e.g. a deployed frontend.
	ClientOrigin string `koanf:"client_origin" validate:"omitempty,url"`
}

// StoreConfig selects and locates the document store.
//
// URI is a MongoDB connection string for the mongo driver and a
// postgres:// DSN for the postgres driver. The memory driver ignores it.
type StoreConfig struct {
	Driver     string `koanf:"driver" validate:"required,oneof=mongo postgres memory"`
	URI        string `koanf:"uri" validate:"required_unless=Driver memory"`
	Database   string `koanf:"database" validate:"required"`
	Collection string `koanf:"collection" validate:"required"`
}

// WebConfig configures the form/list UI server (cmd/web).
type WebConfig struct {
	Port   string `koanf:"port" validate:"required,numeric"`
	APIURL string `koanf:"api_url" validate:"required,url"`
}

// AllowedOrigins returns the CORS allow-list: the fixed frontend origins plus
// the configured client origin, if any.
func (s ServerConfig) AllowedOrigins() []string {
	origins := make([]string, 0, len(DefaultAllowedOrigins)+1)
	origins = append(origins, DefaultAllowedOrigins...)
	if origin := strings.TrimRight(s.ClientOrigin, "/"); origin != "" {
		origins = append(origins, origin)
	}
	return origins
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":          "development",
		"server.port":          "5050",
		"server.read_timeout":  30,
		"server.write_timeout": 30,
		"server.idle_timeout":  60,
		"store.driver":         DriverMongo,
		"store.database":       "employees",
		"store.collection":     "records",
		"web.port":             "5174",
		"web.api_url":          "http://localhost:5050",
	}
}

// LoadConfig loads configuration from defaults and environment variables,
// validates it, applies observability defaults and returns the result.
//
// Missing or invalid values come back as an error; main decides whether that
// is fatal.
func LoadConfig() (*Config, error) {
	return load(nil)
}

// webFields are the only keys the UI server needs; it never opens the store.
var webFields = []string{"Primary.Env", "Web.Port", "Web.APIURL"}

// LoadWebConfig is LoadConfig for cmd/web: store and API server keys are
// loaded but not validated.
func LoadWebConfig() (*Config, error) {
	return load(webFields)
}

// load validates only fields when fields is non-empty.
func load(fields []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	// Legacy flat names first so the prefixed form wins when both are set.
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		mapped, ok := legacyKeys[key]
		if !ok || value == "" {
			return "", nil
		}
		return mapped, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if len(fields) == 0 {
		err = validate.Struct(mainConfig)
	} else {
		err = validate.StructPartial(mainConfig, fields...)
	}
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Observability is optional; start from defaults and overlay anything set.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	} else {
		mainConfig.Observability.applyDefaults()
	}

	// Service name and environment always come from the app, never from env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
