package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jubilee-retail/backoffice/internal/infrastructure/config"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/logger"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/migration"
	"go.uber.org/zap"
)

func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "path", "migrations", "path to the migrations directory")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	command := args[0]

	// create and list work without a database connection
	switch command {
	case "create":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: migrate create <name>")
			os.Exit(1)
		}
		mf, err := migration.CreateMigration(migrationsPath, args[1])
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		fmt.Printf("Created %s\nCreated %s\n", mf.UpPath, mf.DownPath)
		return
	case "list":
		names, err := migration.ListMigrations(migrationsPath)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		if len(names) == 0 {
			fmt.Println("No migrations found")
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	migrator, err := migration.NewFromURL("postgres://"+cfg.Database.User+":"+cfg.Database.Password+
		"@"+cfg.Database.Host+":"+strconv.Itoa(cfg.Database.Port)+
		"/"+cfg.Database.DBName+"?sslmode="+cfg.Database.SSLMode, migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer migrator.Close()

	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
	case "down":
		if err := migrator.Down(); err != nil {
			log.Fatal("Rollback failed", zap.Error(err))
		}
	case "step":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: migrate step <n>  (negative n rolls back)")
			os.Exit(1)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid step count %q\n", args[1])
			os.Exit(1)
		}
		if err := migrator.Steps(n); err != nil {
			log.Fatal("Step migration failed", zap.Error(err))
		}
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			log.Fatal("Failed to read version", zap.Error(err))
		}
		fmt.Printf("version: %d dirty: %v\n", version, dirty)
	case "force":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: migrate force <version>")
			os.Exit(1)
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid version %q\n", args[1])
			os.Exit(1)
		}
		if err := migrator.Force(version); err != nil {
			log.Fatal("Force failed", zap.Error(err))
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Database migration tool

Usage:
  migrate [-path <dir>] <command> [args]

Commands:
  create <name>   scaffold a new up/down migration pair
  list            list migrations in the directory
  up              apply all pending migrations
  down            roll back all migrations
  step <n>        apply n migrations (negative rolls back)
  version         print the current schema version
  force <version> set the version without running migrations
                  (only for recovering from a dirty state)

Flags:
  -path <dir>     migrations directory (default "migrations")`)
}
