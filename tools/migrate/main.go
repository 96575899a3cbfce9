package main

import (
	"fmt"
	"log"
	"os"

	"github.com/orgball2608/insta-archiver/internal/db"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/pressly/goose/v3"
)

const sourceDir = "internal/migrations"

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset|version|create <name>]")
	}

	command := os.Args[1]

	// create only scaffolds a file and needs no database
	if command == "create" {
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate create <name>")
		}
		if err := goose.Create(nil, sourceDir, os.Args[2], "go"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		return
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	switch command {
	case "up":
		if err := goose.Up(conn, db.MigrationsDir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.Down(conn, db.MigrationsDir); err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		fmt.Println("Migration rollback successful")
	case "status":
		if err := goose.Status(conn, db.MigrationsDir); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case "version":
		if err := goose.Version(conn, db.MigrationsDir); err != nil {
			log.Fatalf("Failed to get migration version: %v", err)
		}
	case "reset":
		if err := goose.Reset(conn, db.MigrationsDir); err != nil {
			log.Fatalf("Failed to reset migrations: %v", err)
		}
		fmt.Println("All migrations have been rolled back")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}
