package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/IAnMove/ideagenerator/internal/config"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
	"github.com/IAnMove/ideagenerator/internal/logging"
	"github.com/IAnMove/ideagenerator/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "ideagenerator",
		Short:         "Generate startup ideas and build prompts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			logging.Setup(cfg.LogLevel, cfg.GinMode != gin.ReleaseMode)
			return nil
		},
	}

	root.AddCommand(newServeCmd(&cfg), newPromptCmd(&cfg))
	return root
}

func newServeCmd(cfg **config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *cfg
			switch c.GinMode {
			case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
				gin.SetMode(c.GinMode)
			default:
				return fmt.Errorf("unknown GIN_MODE %q", c.GinMode)
			}

			app, err := server.Build(c, server.Options{})
			if err != nil {
				return err
			}
			if addr == "" {
				addr = c.Addr()
			}
			return serve(cmd.Context(), addr, app.Router())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HOST and PORT")
	return cmd
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newPromptCmd(cfg **config.Config) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the chat prompt for an idea request, for pasting into a chat model",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			var req domain.IdeaRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("failed to decode %s: %w", file, err)
			}

			app, err := server.Build(*cfg, server.Options{})
			if err != nil {
				return err
			}
			prompt, err := app.Ideas.BuildIdeaPrompt(cmd.Context(), &req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "--- SYSTEM ---\n%s\n\n--- USER ---\n%s\n", prompt.System, prompt.User)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "idea request JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
