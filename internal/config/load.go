package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable Load reads.
const EnvPrefix = "CROWDCHAIN"

// legacyEnv maps unprefixed variables used by earlier deployments onto
// config keys. They apply only when the prefixed variable is unset.
var legacyEnv = map[string]string{
	"DATABASE_URL": "database.url",
	"JWT_SECRET":   "auth.jwt_secret",
	"PORT":         "server.port",
}

// Load reads configuration with the following precedence, highest first:
// CROWDCHAIN_* environment variables, legacy unprefixed variables,
// config.yaml in the working directory, defaults.
// A .env file, when present, is loaded into the environment beforehand
// without overriding variables that are already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.max_upload_mb", 55)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.admin_emails", []string{})
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_second", 1.0)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("ratelimit.redis_url", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for env, key := range legacyEnv {
		if value, ok := os.LookupEnv(env); ok && value != "" {
			v.Set(key, value)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about; bind the
	// ones without defaults explicitly.
	for _, key := range []string{"database.url", "auth.jwt_secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	// Prefixed variables win over the legacy ones set above.
	for _, key := range []string{"database.url", "auth.jwt_secret", "server.port"} {
		envName := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if value, ok := os.LookupEnv(envName); ok && value != "" {
			v.Set(key, value)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Comma-separated lists from the environment arrive as a single element.
	cfg.Auth.AdminEmails = splitList(cfg.Auth.AdminEmails)
	cfg.Server.CORSOrigins = splitList(cfg.Server.CORSOrigins)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
