// Package config reads application settings from defaults, an optional .env
// file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultDBPath   = "./dev.db"
	defaultPort     = "8080"
	defaultEnv      = "development"
	defaultLogLevel = "info"
)

// Keys understood by Load. Environment variables use the upper-case form.
const (
	KeyDBPath        = "db_path"
	KeyPort          = "port"
	KeyAdminEmail    = "admin_email"
	KeyAdminPassword = "admin_password"
	KeySessionSecret = "session_secret"
	KeyAppEnv        = "app_env"
	KeyLogLevel      = "log_level"
)

// Config holds application configuration.
type Config struct {
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string
	Env           string
	LogLevel      string
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "", "dev", "development", "local":
		return true
	}
	return false
}

// Warnings lists settings that are missing but not fatal.
func (c Config) Warnings() []string {
	var out []string
	if c.AdminEmail == "" {
		out = append(out, "ADMIN_EMAIL is not set")
	}
	if c.AdminPassword == "" {
		out = append(out, "ADMIN_PASSWORD is not set")
	}
	if c.SessionSecret == "" {
		out = append(out, "SESSION_SECRET is not set")
	}
	return out
}

// New returns a viper instance with defaults, the dotenv file (if present)
// and environment lookups wired. Callers may bind flags on it before Decode.
func New(dotenv string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyDBPath, defaultDBPath)
	v.SetDefault(KeyPort, defaultPort)
	v.SetDefault(KeyAppEnv, defaultEnv)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	for _, k := range []string{KeyAdminEmail, KeyAdminPassword, KeySessionSecret} {
		v.SetDefault(k, "")
	}
	v.AutomaticEnv()

	if dotenv == "" {
		return v, nil
	}
	v.SetConfigFile(dotenv)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", dotenv, err)
	}
	return v, nil
}

// Decode builds a Config from v.
func Decode(v *viper.Viper) Config {
	cfg := Config{
		AdminEmail:    v.GetString(KeyAdminEmail),
		AdminPassword: v.GetString(KeyAdminPassword),
		SessionSecret: v.GetString(KeySessionSecret),
		DBPath:        v.GetString(KeyDBPath),
		Port:          v.GetString(KeyPort),
		Env:           v.GetString(KeyAppEnv),
		LogLevel:      v.GetString(KeyLogLevel),
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	return cfg
}

// Load reads the settings from the environment and the dotenv file.
func Load(dotenv string) (Config, error) {
	v, err := New(dotenv)
	if err != nil {
		return Config{}, err
	}
	return Decode(v), nil
}
