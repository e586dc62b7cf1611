// Package httpapi is the JSON-over-HTTP surface of the pdfdrop server:
// login, the hash-password helper, presigned upload URLs, health and metrics.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/pdfdrop/internal/logging"
	"github.com/dmitrijs2005/pdfdrop/internal/server/auth"
	"github.com/dmitrijs2005/pdfdrop/internal/server/storage"
)

const shutdownTimeout = 10 * time.Second

// Authenticator logs the operator in and resolves bearer tokens.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
}

// URLIssuer produces upload authorizations.
type URLIssuer interface {
	Issue(ctx context.Context, filename string, requester auth.Principal) (*storage.Authorization, error)
}

// Observer receives request-level measurements. *metrics.Metrics implements it.
type Observer interface {
	ObserveLogin(outcome string)
	ObserveRequest(route, method string, code int, elapsed time.Duration)
	Handler() http.Handler
}

type Options struct {
	Address             string
	CORSOrigin          string
	HashPasswordEnabled bool
	Logger              logging.Logger
	Observer            Observer
	Now                 func() time.Time
}

type HTTPServer struct {
	address      string
	corsOrigin   string
	hashPassword bool
	auth         Authenticator
	issuer       URLIssuer
	observer     Observer
	logger       logging.Logger
	now          func() time.Time
	handler      http.Handler
}

func NewHTTPServer(a Authenticator, i URLIssuer, opts Options) *HTTPServer {
	s := &HTTPServer{
		address:      opts.Address,
		corsOrigin:   opts.CORSOrigin,
		hashPassword: opts.HashPasswordEnabled,
		auth:         a,
		issuer:       i,
		observer:     opts.Observer,
		logger:       opts.Logger,
		now:          opts.Now,
	}
	if s.logger == nil {
		s.logger = logging.Nop{}
	}
	s.logger = s.logger.With("module", "http_server")
	if s.now == nil {
		s.now = time.Now
	}
	if s.corsOrigin == "" {
		s.corsOrigin = "*"
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wired router.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

func (s *HTTPServer) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.corsOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", s.handleHealth)
	if s.observer != nil {
		r.Method(http.MethodGet, "/metrics", s.observer.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/hash-password", s.handleHashPassword)
		})
		r.Route("/upload", func(r chi.Router) {
			r.Use(s.bearerAuth)
			r.Post("/presigned-url", s.handlePresignedURL)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	// Also cancelled when srv.Serve returns with an error.
	serveCtx, stop := context.WithCancel(ctx)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-serveCtx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	err := srv.Serve(listen)
	stop()
	<-done
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
