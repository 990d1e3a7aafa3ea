package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/api"
	"github.com/dewansh3255/SPARK/internal/config"
	"github.com/dewansh3255/SPARK/internal/gemini"
	"github.com/dewansh3255/SPARK/internal/identity"
	"github.com/dewansh3255/SPARK/internal/jobstore"
	"github.com/dewansh3255/SPARK/internal/logger"
	"github.com/dewansh3255/SPARK/internal/navigator"
	"github.com/dewansh3255/SPARK/internal/profilestore"
)

var serveMCP bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the SPARK server (HTTP, optionally MCP over stdio)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "also serve MCP tools over stdio")
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "spark version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireGeminiKey(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	nav, closeStores, err := buildNavigator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	handler := api.NewHandler(api.Deps{Navigator: nav, Log: log})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	if serveMCP {
		mcpSrv := api.NewMCPServer(api.Deps{Navigator: nav, Log: log})
		stdioSrv := server.NewStdioServer(mcpSrv)
		go func() {
			if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("mcp stdio server error", zap.Error(err))
			}
		}()
		log.Info("mcp server started", zap.String("transport", "stdio"))
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONLog, cfg.Debug)
}

// buildNavigator wires both stores, the resolver, and the Gemini client into
// a query engine. The returned func closes both stores.
func buildNavigator(ctx context.Context, cfg config.Config, log *zap.Logger) (*navigator.Navigator, func(), error) {
	profiles, err := profilestore.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening profile store: %w", err)
	}

	jobs, err := jobstore.Open(cfg.DataDir)
	if err != nil {
		profiles.Close()
		return nil, nil, fmt.Errorf("opening job store: %w", err)
	}
	closeStores := func() {
		jobs.Close()
		profiles.Close()
	}

	llm, err := gemini.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		closeStores()
		return nil, nil, fmt.Errorf("creating gemini client: %w", err)
	}
	log.Info("gemini client ready", zap.String("model", llm.Model()))

	resolver := identity.NewResolver(profiles, cfg.Engine.IdentityCutoff, cfg.Engine.IdentityUniqueCutoff)
	nav := navigator.New(profiles, jobs, resolver, llm, log, navigator.Config{
		RequestTimeout:       cfg.Engine.RequestTimeout,
		EligibilityThreshold: cfg.Engine.EligibilityThreshold,
		CandidateThreshold:   cfg.Engine.CandidateThreshold,
	})
	return nav, closeStores, nil
}
