package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pdfdrop/internal/flagx"
	"github.com/dmitrijs2005/pdfdrop/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file. Only
// fields present in the file override the current values; durations accept
// "24h" style strings or integer nanoseconds.
type JsonConfig struct {
	Port               *int            `json:"port"`
	AuthUsername       *string         `json:"auth_username"`
	AuthPasswordHash   *string         `json:"auth_password_hash"`
	JWTSecret          *string         `json:"jwt_secret"`
	JWTExpiresIn       *timex.Duration `json:"jwt_expires_in"`
	S3Endpoint         *string         `json:"s3_endpoint"`
	S3Region           *string         `json:"s3_region"`
	S3Bucket           *string         `json:"s3_bucket"`
	S3AccessKeyID      *string         `json:"s3_access_key_id"`
	S3SecretAccessKey  *string         `json:"s3_secret_access_key"`
	S3Driver           *string         `json:"s3_driver"`
	S3KeyPrefix        *string         `json:"s3_key_prefix"`
	PresignedURLExpiry *timex.Duration `json:"presigned_url_expiry"`
	CORSOrigin         *string         `json:"cors_origin"`
	AppEnv             *string         `json:"app_env"`
	LogLevel           *string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config into config. With no flag
// nothing happens. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (j *JsonConfig) apply(config *Config) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	if j.Port != nil {
		config.Port = *j.Port
	}
	setString(&config.AuthUsername, j.AuthUsername)
	setString(&config.AuthPasswordHash, j.AuthPasswordHash)
	setString(&config.JWTSecret, j.JWTSecret)
	if j.JWTExpiresIn != nil {
		config.JWTExpiresIn = j.JWTExpiresIn.Duration
	}
	setString(&config.S3Endpoint, j.S3Endpoint)
	setString(&config.S3Region, j.S3Region)
	setString(&config.S3Bucket, j.S3Bucket)
	setString(&config.S3AccessKeyID, j.S3AccessKeyID)
	setString(&config.S3SecretAccessKey, j.S3SecretAccessKey)
	setString(&config.S3Driver, j.S3Driver)
	setString(&config.S3KeyPrefix, j.S3KeyPrefix)
	if j.PresignedURLExpiry != nil {
		config.PresignedURLExpiry = j.PresignedURLExpiry.Duration
	}
	setString(&config.CORSOrigin, j.CORSOrigin)
	setString(&config.AppEnv, j.AppEnv)
	setString(&config.LogLevel, j.LogLevel)
}
