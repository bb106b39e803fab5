// Package config carga la configuración desde variables de entorno
// (KITTYGRAM_*, con "__" como separador de niveles) y un .env opcional.
//
//	KITTYGRAM_SERVER__ADDR=:9000      -> server.addr
//	KITTYGRAM_DATABASE__DRIVER=postgres -> database.driver
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "KITTYGRAM_"

type Config struct {
	App      AppConfig      `koanf:"app"`
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
	Database DatabaseConfig `koanf:"database"`
	Blob     BlobConfig     `koanf:"blob"`
	Auth     AuthConfig     `koanf:"auth"`
	Colors   ColorsConfig   `koanf:"colors"`
}

type AppConfig struct {
	Name string `koanf:"name" validate:"required"`
	// Env: local habilita el trace de SQL y el log en consola por defecto.
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

type DatabaseConfig struct {
	Driver          string        `koanf:"driver" validate:"oneof=memory postgres"`
	DSN             string        `koanf:"dsn" validate:"required_if=Driver postgres"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	TraceSQL        bool          `koanf:"trace_sql"`
}

type BlobConfig struct {
	Driver string `koanf:"driver" validate:"oneof=memory s3"`
	// PublicURL: base de las URLs de imagen; vacío = /media/ servido por la API.
	PublicURL string   `koanf:"public_url"`
	S3        S3Config `koanf:"s3"`
}

type S3Config struct {
	Bucket       string `koanf:"bucket"`
	Region       string `koanf:"region"`
	Endpoint     string `koanf:"endpoint"`
	AccessKey    string `koanf:"access_key"`
	SecretKey    string `koanf:"secret_key"`
	UsePathStyle bool   `koanf:"use_path_style"`
}

// AuthConfig: sin OdinBaseURL el servicio corre en modo dev (X-Debug-User-ID).
type AuthConfig struct {
	OdinBaseURL      string        `koanf:"odin_base_url" validate:"omitempty,url"`
	OdinAPIKey       string        `koanf:"odin_api_key" validate:"required_with=OdinBaseURL"`
	OdinAPIKeyHeader string        `koanf:"odin_api_key_header"`
	Timeout          time.Duration `koanf:"timeout"`
}

type ColorsConfig struct {
	// ExtraFile: TOML opcional con entradas name = "#rrggbb".
	ExtraFile string `koanf:"extra_file"`
}

func (c AuthConfig) Enabled() bool {
	return strings.TrimSpace(c.OdinBaseURL) != ""
}

func (c AppConfig) IsLocal() bool {
	return c.Env == "local"
}

// Load lee el entorno, completa defaults y valida.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(c *Config) {
	setDefault(&c.App.Name, "kittygram")
	setDefault(&c.App.Env, "local")

	setDefault(&c.Server.Addr, ":8080")
	setDefault(&c.Server.ReadTimeout, 5*time.Second)
	setDefault(&c.Server.WriteTimeout, 10*time.Second)
	setDefault(&c.Server.IdleTimeout, 60*time.Second)
	setDefault(&c.Server.ShutdownTimeout, 10*time.Second)

	setDefault(&c.Log.Level, "info")
	if c.App.IsLocal() {
		setDefault(&c.Log.Format, "console")
	} else {
		setDefault(&c.Log.Format, "json")
	}

	setDefault(&c.Database.Driver, "memory")
	setDefault(&c.Blob.Driver, "memory")
	setDefault(&c.Auth.OdinAPIKeyHeader, "X-Api-Key")
	setDefault(&c.Auth.Timeout, 5*time.Second)
}

func setDefault[T comparable](v *T, def T) {
	var zero T
	if *v == zero {
		*v = def
	}
}

func validate(c *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	if c.Blob.Driver == "s3" && strings.TrimSpace(c.Blob.S3.Bucket) == "" {
		return fmt.Errorf("config: blob.s3.bucket is required when blob.driver=s3")
	}
	return nil
}
