package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"portfolio-backend/internal/app"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/seed"
	"portfolio-backend/internal/service"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/validator"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio site with a server driven navigation panel",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			logger.Init(cfg.Environment)
			validator.Init()
			return nil
		},
	}

	serve := newServeCmd()
	cmd.RunE = serve.RunE

	cmd.AddCommand(serve, newContentCmd(), newRoutesCmd())
	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			application, err := app.New(cfg, app.Options{})
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			serverErr := make(chan error, 1)
			go func() {
				if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			var runErr error
			select {
			case <-ctx.Done():
				logger.Info("Shutting down server...", nil)
			case runErr = <-serverErr:
				logger.Error(runErr, "Server error occurred, initiating shutdown", nil)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := application.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			logger.Info("Server exited gracefully", nil)
			return runErr
		},
	}
}

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect portfolio content",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a content file, or the embedded content when none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.New().ContentFile
			if len(args) == 1 {
				path = args[0]
			}

			content, err := seed.Load(path)
			if err != nil {
				return err
			}

			pages := service.NewPageService(repository.NewPageRepository(content), nil)
			items := service.NewNavigationService(pages).Items()

			source := path
			if strings.TrimSpace(source) == "" {
				source = "embedded"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d pages, %d navigation items\n", source, len(content.Pages), len(items))
			for _, item := range items {
				fmt.Fprintf(out, "  %-16s %s\n", item.TargetID, item.Label)
			}
			return nil
		},
	})

	return cmd
}

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the HTTP routes the server registers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.EnableRedis = false

			application, err := app.New(cfg, app.Options{})
			if err != nil {
				return err
			}
			defer application.Shutdown(context.Background())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, route := range application.Router().Routes() {
				fmt.Fprintf(w, "%s\t%s\n", route.Method, route.Path)
			}
			return w.Flush()
		},
	}
}
