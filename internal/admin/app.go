// Package admin implements the authkeeper maintenance commands: applying
// migrations, seeding demo data, creating users and purging token rows.
package admin

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

// Commands lists the subcommands understood by Run.
var Commands = []string{"migrate", "seed", "create-user", "purge-tokens", "help"}

var ErrUnknownCommand = errors.New("unknown command")

type App struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	users    *services.UserService
	students *services.StudentService
	logger   logging.Logger

	in  *bufio.Reader
	fd  int
	out io.Writer
	now func() time.Time
}

// New builds an App over an open database. Prompts read from in; when in is
// a terminal, passwords are read without echo.
func New(db *sql.DB, d dbx.Dialect, key []byte, in io.Reader, out io.Writer, l logging.Logger) *App {
	rm := repomanager.NewRepositoryManager(d)
	tokens := auth.NewTokenService(key, rm.Tokens(db), nil)

	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}

	return &App{
		db:       db,
		rm:       rm,
		users:    services.NewUserService(db, rm, tokens),
		students: services.NewStudentService(db, rm),
		logger:   l.With("module", "admin"),
		in:       bufio.NewReader(in),
		fd:       fd,
		out:      out,
		now:      time.Now,
	}
}

// Run executes the subcommand named by args[0] with the remaining args.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return fmt.Errorf("%w: none given", ErrUnknownCommand)
	}

	cmd, rest := args[0], args[1:]
	a.logger.Debug(ctx, "running command", "command", cmd)

	switch cmd {
	case "migrate":
		return a.Migrate(ctx)
	case "seed":
		return a.Seed(ctx, rest)
	case "create-user":
		return a.CreateUser(ctx, rest)
	case "purge-tokens":
		return a.PurgeTokens(ctx, rest)
	case "help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

// SplitCommand separates the configuration arguments that precede the
// subcommand from the subcommand and its own arguments.
func SplitCommand(args []string) (global, command []string) {
	for i, arg := range args {
		if slices.Contains(Commands, arg) {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

// Migrate applies the embedded migrations for the configured dialect.
func (a *App) Migrate(ctx context.Context) error {
	if err := a.rm.RunMigrations(ctx, a.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	fmt.Fprintln(a.out, "Migrations applied")
	return nil
}

func (a *App) usage() {
	fmt.Fprint(a.out, `Usage: admin [config flags] <command> [command flags]

Commands:
  migrate                          apply database migrations
  seed [-users N] [-students N]    create demo users and students
  create-user -email E -username U [-password P]
                                   create a user, prompting for the password when omitted
  purge-tokens [-user ID] [-older-than D]
                                   delete token rows for a user and/or older than D
`)
}
