package main

import (
	"fmt"
	"os"

	"github.com/avolkov/librarian/internal/config"
	"github.com/avolkov/librarian/internal/database"
	"github.com/avolkov/librarian/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	switch os.Args[1] {
	case "init-db":
		cfg := config.NewConfig()
		db, err := database.NewDatabase(cfg.Database.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		fmt.Printf("Database initialized at %s\n", cfg.Database.Path)

	case "version":
		fmt.Printf("librarian %s (%s)\n", Version, Commit)

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`librarian - local library management service

Usage:
  librarian [serve]    Start the HTTP server (default)
  librarian init-db    Create the database schema and exit
  librarian version    Print version information
  librarian help       Show this help

Configuration is read from the environment (optionally via a .env file):
  PORT, HOST, DATABASE_PATH, SHUTDOWN_TIMEOUT_IN_SECONDS, LOG_LEVEL`)
}
