package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/pdfdrop/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
// Secrets are deliberately not exposed as flags.
//
//	-p int       listen port
//	-e string    S3 endpoint
//	-g string    S3 region
//	-b string    S3 bucket
//	-k string    object key prefix
//	-x duration  presigned URL validity (e.g. 300s, 5m)
//	-o string    CORS origin
//	-driver      presigner backend (aws|minio)
//	-log-level   debug|info|warn|error
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-p", "-e", "-g", "-b", "-k", "-x", "-o", "-driver", "-log-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.IntVar(&config.Port, "p", config.Port, "listen port")
	fs.StringVar(&config.S3Endpoint, "e", config.S3Endpoint, "S3 endpoint")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3KeyPrefix, "k", config.S3KeyPrefix, "object key prefix")
	fs.DurationVar(&config.PresignedURLExpiry, "x", config.PresignedURLExpiry, "presigned URL expiry")
	fs.StringVar(&config.CORSOrigin, "o", config.CORSOrigin, "CORS origin")
	fs.StringVar(&config.S3Driver, "driver", config.S3Driver, "presigner backend: aws or minio")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
