package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"picfeed/internal/client/api"
	"picfeed/internal/client/cli"
	"picfeed/internal/client/compose"
	"picfeed/internal/client/iocli"
	"picfeed/internal/client/session"
	"picfeed/internal/client/storage/boltdb"
	"picfeed/internal/client/view"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "picfeed-client.db", "Path to local database")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL)
	state := session.NewState()
	controller := session.NewController(state, apiClient, boltStorage, logger)
	sync := view.NewSynchronizer(state, apiClient, logger)
	flow := compose.NewFlow(state, apiClient, sync, logger)

	shell := cli.New(iocli.NewStdio(), state, controller, sync, flow)
	if err := shell.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("picfeed client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
