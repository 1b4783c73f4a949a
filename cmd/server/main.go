package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"picfeed/internal/models"
	"picfeed/internal/server"
	"picfeed/internal/server/jwt"
	"picfeed/internal/server/storage/sqlite"
)

// Build information. Populated at build-time via ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version information and exit")
		addr        = flag.String("addr", ":8080", "address to listen on")
		dbPath      = flag.String("db", "picfeed.db", "path to the SQLite database file")
		jwtSecret   = flag.String("secret", "", "JWT signing secret (required)")
		tokenTTL    = flag.Duration("token-ttl", 30*time.Minute, "access token lifetime")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("picfeed-server %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if err := run(logger, *addr, *dbPath, *jwtSecret, *tokenTTL); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath, jwtSecret string, tokenTTL time.Duration) error {
	if jwtSecret == "" {
		return errors.New("--secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	if err := seedDefaultUser(ctx, logger, store); err != nil {
		return fmt.Errorf("failed to seed default user: %w", err)
	}

	jwtService := jwt.NewService(jwtSecret, tokenTTL)

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(logger, store, store, jwtService),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

// seedDefaultUser creates the demo account on a fresh database so the
// client has something to log in with out of the box.
func seedDefaultUser(ctx context.Context, logger *slog.Logger, store *sqlite.Storage) error {
	count, err := store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:             uuid.New().String(),
		Username:       "johndoe",
		Email:          "johndoe@example.com",
		FullName:       "John Doe",
		HashedPassword: string(hashed),
		CreatedAt:      time.Now().UTC(),
	}

	if err := store.CreateUser(ctx, user); err != nil {
		return err
	}

	logger.Info("seeded default user", "username", user.Username)

	return nil
}
