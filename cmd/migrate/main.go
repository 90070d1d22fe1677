// Command migrate manages the leadgate schema against the database configured
// through the LEADGATE_DB_* environment. Migration files live in
// db/migrations.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"leadgate/internal/config"
)

const migrationsSource = "file://db/migrations"

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: loading config: %v", err)
	}

	m, err := migrate.New(migrationsSource, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("migrate: opening %s: %v", migrationsSource, err)
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		report(m.Up(), "schema migrated to latest")

	case "down":
		report(m.Down(), "schema rolled back")

	case "steps":
		if len(os.Args) < 3 {
			usage()
		}
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("migrate: steps wants a number, got %q", os.Args[2])
		}
		report(m.Steps(n), fmt.Sprintf("applied %d step(s)", n))

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied yet")
			return
		}
		if err != nil {
			log.Fatalf("migrate: reading version: %v", err)
		}
		fmt.Printf("version %d (dirty=%v)\n", version, dirty)

	default:
		usage()
	}
}

func report(err error, done string) {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Println("schema already up to date")
	case err != nil:
		log.Fatalf("migrate: %v", err)
	default:
		log.Println(done)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate up|down|steps <n>|version")
	os.Exit(2)
}
