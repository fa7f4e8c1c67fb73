// Package main serve command.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"repdec/internal/api"
	"repdec/internal/config"
	"repdec/internal/logging"
	"repdec/internal/store"
)

func serveCmd() *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the replay decode HTTP API",
		Long: `Serve the decode API: POST /api/v1/replays accepts a replay
upload and returns the JSON analysis. /healthz and /metrics are mounted
for operations. Configuration comes from REPDEC_* variables and an
optional .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return fmt.Errorf("load .env: %w", err)
			}
			cfg := config.Get()
			log := logging.New("serve")

			var history *store.History
			if !noHistory {
				var err error
				history, err = store.Open(cfg.DBPath)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer history.Close()
			}

			srv := api.NewServer(cfg.Addr, cfg.MaxUploadBytes, history)

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", map[string]interface{}{
					"addr":    cfg.Addr,
					"history": !noHistory,
				})
				errCh <- srv.Start()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return err
				}
			case sig := <-sigCh:
				log.Info("shutting_down", map[string]interface{}{"signal": sig.String()})
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Serve without the decode history database")
	return cmd
}
