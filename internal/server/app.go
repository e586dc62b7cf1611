// Package server wires configuration, the auth gate, the presigner backend and
// the HTTP surface together and runs them until a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pdfdrop/internal/logging"
	"github.com/dmitrijs2005/pdfdrop/internal/server/auth"
	"github.com/dmitrijs2005/pdfdrop/internal/server/config"
	"github.com/dmitrijs2005/pdfdrop/internal/server/httpapi"
	"github.com/dmitrijs2005/pdfdrop/internal/server/metrics"
	"github.com/dmitrijs2005/pdfdrop/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	http   *httpapi.HTTPServer
}

// newPresigner picks the backend named by cfg.S3Driver.
func newPresigner(ctx context.Context, cfg *config.Config) (storage.Presigner, error) {
	creds := storage.Credentials{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	}
	switch cfg.S3Driver {
	case config.DriverMinio:
		return storage.NewMinioPresigner(creds)
	default:
		return storage.NewAWSPresigner(ctx, creds)
	}
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSON(os.Stdout, level)

	presigner, err := newPresigner(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	m := metrics.New()

	issuer := storage.NewIssuer(presigner, storage.IssuerOptions{
		Bucket:    c.S3Bucket,
		KeyPrefix: c.S3KeyPrefix,
		Expiry:    c.PresignedURLExpiry,
		Logger:    logger.With("module", "issuer"),
		Observer:  m,
	})

	gate := auth.NewGate(c.AuthUsername, c.AuthPasswordHash, []byte(c.JWTSecret), c.JWTExpiresIn)

	hs := httpapi.NewHTTPServer(gate, issuer, httpapi.Options{
		Address:             c.Addr(),
		CORSOrigin:          c.CORSOrigin,
		HashPasswordEnabled: !c.IsProduction(),
		Logger:              logger,
		Observer:            m,
	})

	return &App{config: c, logger: logger, http: hs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the HTTP server stops.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"port", app.config.Port,
		"driver", app.config.S3Driver,
		"bucket", app.config.S3Bucket,
		"env", app.config.AppEnv,
	)

	app.initSignalHandler(cancelFunc)

	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}
