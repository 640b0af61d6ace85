// Command admin runs maintenance tasks against the tracker database:
// schema migration, reference data seeding and user creation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chepyr/task-tracker-api/internal/auth"
	"github.com/chepyr/task-tracker-api/internal/config"
	"github.com/chepyr/task-tracker-api/internal/db"
	"github.com/chepyr/task-tracker-api/internal/db/migrations"
	"github.com/chepyr/task-tracker-api/internal/logging"
	"github.com/chepyr/task-tracker-api/internal/models"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const usage = `usage: admin <command> [flags]

commands:
  migrate                               create the schema and default states and priorities
  seed -f reference.yaml                add states and priorities from a file
  useradd -username NAME -password PW   create an active user
`

var log = logging.Logger

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the process exit code so deferred cleanup runs first.
func realMain(args []string) int {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("Invalid configuration: %v", err)
		return 1
	}
	dialect, err := migrations.ParseDialect(cfg.DBDriver)
	if err != nil {
		log.Error(err)
		return 1
	}

	ctx := context.Background()
	dbConn, err := db.Connect(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		return 1
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	if err := run(ctx, dbConn, dialect, args, os.Stdout); err != nil {
		log.Error(err)
		return 1
	}
	return 0
}

func run(ctx context.Context, dbConn *sqlx.DB, dialect migrations.Dialect, args []string, out io.Writer) error {
	now := time.Now().UTC()
	switch args[0] {
	case "migrate":
		if err := migrations.Apply(ctx, dbConn, dialect); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		ref, err := migrations.DefaultReferenceData()
		if err != nil {
			return err
		}
		added, err := migrations.Seed(ctx, dbConn, ref, now)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "schema ready, %d reference rows added\n", added)
		return nil

	case "seed":
		fs := flag.NewFlagSet("seed", flag.ContinueOnError)
		file := fs.String("f", "", "YAML file with states and priorities")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *file == "" {
			return errors.New("seed: -f is required")
		}
		f, err := os.Open(*file)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		defer f.Close()
		ref, err := migrations.LoadReferenceData(f)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		added, err := migrations.Seed(ctx, dbConn, ref, now)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Fprintf(out, "%d reference rows added\n", added)
		return nil

	case "useradd":
		fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
		username := fs.String("username", "", "login name")
		password := fs.String("password", "", "initial password")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		name := strings.TrimSpace(*username)
		if name == "" || *password == "" {
			return errors.New("useradd: -username and -password are required")
		}
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return err
		}
		user := &models.User{Username: name, PasswordHash: hash, Active: true, CreationDate: now}
		err = db.NewStore(dbConn).Users.Create(ctx, user)
		if errors.Is(err, db.ErrDuplicate) {
			return fmt.Errorf("useradd: user %q already exists", name)
		}
		if err != nil {
			return fmt.Errorf("useradd: %w", err)
		}
		fmt.Fprintf(out, "user %s created with id %d\n", user.Username, user.ID)
		return nil

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}
