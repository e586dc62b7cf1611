package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/pdfdrop/internal/logging"
)

// MaxPresignExpiry is the longest validity SigV4 accepts for a presigned URL.
const MaxPresignExpiry = 7 * 24 * time.Hour

// MissingError lists every required setting that was left empty.
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	return "Missing required environment variables: " + strings.Join(e.Names, ", ")
}

// Validate checks required settings and normalises the S3 endpoint so that
// a bare host gets an https:// scheme.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"AUTH_PASSWORD_HASH", c.AuthPasswordHash},
		{"JWT_SECRET", c.JWTSecret},
		{"S3_ENDPOINT", c.S3Endpoint},
		{"S3_BUCKET", c.S3Bucket},
		{"S3_ACCESS_KEY_ID", c.S3AccessKeyID},
		{"S3_SECRET_ACCESS_KEY", c.S3SecretAccessKey},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Names: missing}
	}

	switch c.S3Driver {
	case DriverAWS, DriverMinio:
	default:
		return fmt.Errorf("S3_DRIVER: unsupported driver %q", c.S3Driver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT: out of range: %d", c.Port)
	}
	if c.PresignedURLExpiry <= 0 {
		return fmt.Errorf("PRESIGNED_URL_EXPIRY: must be positive")
	}
	if c.PresignedURLExpiry > MaxPresignExpiry {
		return fmt.Errorf("PRESIGNED_URL_EXPIRY: must not exceed %s", MaxPresignExpiry)
	}
	if c.JWTExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN: must be positive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}

	c.S3Endpoint = NormalizeEndpoint(c.S3Endpoint)
	return nil
}

// NormalizeEndpoint prefixes https:// when endpoint carries no scheme.
func NormalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return endpoint
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return "https://" + endpoint
}
