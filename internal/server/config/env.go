package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/subosito/gotenv"

	"github.com/dmitrijs2005/pdfdrop/internal/flagx"
	"github.com/dmitrijs2005/pdfdrop/internal/timex"
)

// defaultEnvFile is read when -envfile is not given. A missing default file
// is not an error.
const defaultEnvFile = ".env"

// lookupFunc matches os.LookupEnv.
type lookupFunc func(string) (string, bool)

// loadDotEnv seeds the process environment from a dotenv file. Variables
// already present in the environment win over the file.
func loadDotEnv() error {
	path := flagx.EnvFileFlags()
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	err := gotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// parseEnv overlays every recognised variable that is set and non-empty.
func parseEnv(c *Config, lookup lookupFunc) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"AUTH_USERNAME", &c.AuthUsername},
		{"AUTH_PASSWORD_HASH", &c.AuthPasswordHash},
		{"JWT_SECRET", &c.JWTSecret},
		{"S3_ENDPOINT", &c.S3Endpoint},
		{"S3_REGION", &c.S3Region},
		{"S3_BUCKET", &c.S3Bucket},
		{"S3_ACCESS_KEY_ID", &c.S3AccessKeyID},
		{"S3_SECRET_ACCESS_KEY", &c.S3SecretAccessKey},
		{"S3_DRIVER", &c.S3Driver},
		{"CORS_ORIGIN", &c.CORSOrigin},
		{"APP_ENV", &c.AppEnv},
		{"LOG_LEVEL", &c.LogLevel},
	}
	for _, s := range strs {
		if v, ok := get(s.name); ok {
			*s.dst = v
		}
	}

	// The prefix may legitimately be set to "" to store keys at the bucket root.
	if v, ok := lookup("S3_KEY_PREFIX"); ok {
		c.S3KeyPrefix = strings.TrimSpace(v)
	}

	if v, ok := get("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Port = port
	}
	if v, ok := get("JWT_EXPIRES_IN"); ok {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRES_IN: %w", err)
		}
		c.JWTExpiresIn = d
	}
	if v, ok := get("PRESIGNED_URL_EXPIRY"); ok {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PRESIGNED_URL_EXPIRY: %w", err)
		}
		c.PresignedURLExpiry = d
	}

	return nil
}
