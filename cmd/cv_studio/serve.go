package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-studio/internal/identity"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/persist"
	"github.com/jonathan/cv-studio/internal/server"
	"github.com/jonathan/cv-studio/internal/session"
	"github.com/jonathan/cv-studio/internal/store"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the CV document, its mutation
operations, the AI round trips, and the checkout/export handoff.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get API key from environment
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	checkoutURL := os.Getenv("CHECKOUT_URL")
	if checkoutURL == "" {
		return fmt.Errorf("CHECKOUT_URL environment variable is required")
	}

	kv, err := openStore(ctx)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	sess := session.New(ctx, persist.New(kv), client, identity.NewClock())

	srv := server.New(server.Config{
		Port:        servePort,
		CheckoutURL: checkoutURL,
	}, sess)

	return srv.Start()
}

// openStore picks the persistence backend from STORE_BACKEND. The
// default in-memory store matches the original single-session app; the
// redis and postgres backends survive restarts.
func openStore(ctx context.Context) (store.KV, error) {
	backend := os.Getenv("STORE_BACKEND")
	switch backend {
	case "", "memory":
		return store.NewMemory(), nil
	case "redis":
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return nil, fmt.Errorf("REDIS_URL environment variable is required for the redis backend")
		}
		return store.NewRedis(ctx, redisURL)
	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for the postgres backend")
		}
		return store.NewPostgres(ctx, databaseURL)
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (expected memory, redis, or postgres)", backend)
	}
}
