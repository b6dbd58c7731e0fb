// Command migrate manages the bills database schema.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"billscan/internal/config"
)

const usage = `usage: migrate [-source URL] <command>

commands:
  up        apply all pending bills schema migrations
  down      revert all migrations
  steps N   apply N migrations (negative N reverts)
  version   print the current schema version
`

func main() {
	source := flag.String("source", "file://db/migrations", "migration source URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	m, err := migrate.New(*source, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("failed to open migration source %s: %v", *source, err)
	}
	defer m.Close()

	switch flag.Arg(0) {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrate up: %v", err)
		}
		log.Println("bills schema is up to date")

	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrate down: %v", err)
		}
		log.Println("bills schema reverted")

	case "steps":
		if flag.NArg() < 2 {
			log.Fatal("steps requires a count")
		}
		n, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatalf("invalid step count %q: %v", flag.Arg(1), err)
		}
		if err := m.Steps(n); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrate steps: %v", err)
		}
		log.Printf("applied %d migration steps", n)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("schema version: %v", err)
		}
		fmt.Printf("bills schema version %d (dirty=%v)\n", version, dirty)

	default:
		flag.Usage()
		os.Exit(2)
	}
}
