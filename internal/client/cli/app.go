package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/pdfdrop/internal/client/client"
	"github.com/dmitrijs2005/pdfdrop/internal/client/config"
	"github.com/dmitrijs2005/pdfdrop/internal/client/queue"
	"github.com/dmitrijs2005/pdfdrop/internal/client/repositories"
	"github.com/dmitrijs2005/pdfdrop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pdfdrop/internal/client/session"
	"github.com/dmitrijs2005/pdfdrop/internal/client/transfer"
	"github.com/dmitrijs2005/pdfdrop/internal/filex"
	"github.com/dmitrijs2005/pdfdrop/internal/logging"
)

type App struct {
	db      *sql.DB
	api     client.Client
	session *session.Store
	queue   *queue.Queue
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewText(os.Stderr, level)

	dbPath, err := filex.EnsureParentDir(c.DBPath)
	if err != nil {
		return nil, err
	}

	db, err := repositories.InitDatabase(ctx, dbPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", dbPath, "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.ServerURL, c.Timeout)
	a := newApp(api, metadata.NewSQLiteRepository(db), transfer.NewExecutor(nil, logger), logger, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(api client.Client, repo metadata.Repository, tr queue.Transferer, logger logging.Logger, in io.Reader, out io.Writer) *App {
	store := session.NewStore(repo, api)
	return &App{
		api:     api,
		session: store,
		queue: queue.New(queue.Options{
			Session:  store,
			Issuer:   api,
			Transfer: tr,
			Sink:     newProgressPrinter(out),
			Logger:   logger,
		}),
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "pdfdrop CLI (type 'help' for commands)")
	runREPL(ctx, a, a.prompt, a.reader)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session.IsValid(ctx)
}

func (a *App) prompt() string {
	ctx := context.Background()
	if !a.isLoggedIn(ctx) {
		return "pdfdrop> "
	}
	return fmt.Sprintf("pdfdrop (%s)> ", a.session.Username(ctx))
}
