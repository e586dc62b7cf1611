// Package config handles configuration for the server component,
// including defaults, a JSON overlay, environment variables (optionally
// seeded from a .env file) and command-line flags.
package config

import (
	"fmt"
	"os"
	"time"
)

// S3 driver names accepted in S3Driver.
const (
	DriverAWS   = "aws"
	DriverMinio = "minio"
)

// EnvProduction disables the hash-password helper endpoint.
const EnvProduction = "production"

// Config holds runtime settings for the pdfdrop server.
//
// Fields:
//   - Port: HTTP listen port.
//   - AuthUsername / AuthPasswordHash: the single operator account (bcrypt hash).
//   - JWTSecret / JWTExpiresIn: HMAC secret and lifetime for issued tokens.
//   - S3*: object storage endpoint, bucket and static credentials.
//   - S3Driver: presigner backend, "aws" or "minio".
//   - S3KeyPrefix: logical prefix prepended to every sanitized key.
//   - PresignedURLExpiry: validity of each upload URL.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Port               int
	AuthUsername       string
	AuthPasswordHash   string
	JWTSecret          string
	JWTExpiresIn       time.Duration
	S3Endpoint         string
	S3Region           string
	S3Bucket           string
	S3AccessKeyID      string
	S3SecretAccessKey  string
	S3Driver           string
	S3KeyPrefix        string
	PresignedURLExpiry time.Duration
	CORSOrigin         string
	AppEnv             string
	LogLevel           string
}

// LoadDefaults populates Config with the documented defaults. Secrets and
// storage coordinates have no default and must be supplied.
func (c *Config) LoadDefaults() {
	c.Port = 3000
	c.AuthUsername = "admin"
	c.JWTExpiresIn = 24 * time.Hour
	c.S3Region = "eu-central-1"
	c.S3Driver = DriverAWS
	c.S3KeyPrefix = "uploads/"
	c.PresignedURLExpiry = 300 * time.Second
	c.CORSOrigin = "*"
	c.AppEnv = "development"
	c.LogLevel = "info"
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (after loading .env) and
// finally command-line flags. The result is validated.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
