// Package httpd implements the httpd command: the read-side HTTP API
// over stored articles.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsharvest/cmd/common"
	"github.com/jonesrussell/newsharvest/internal/api"
)

const shutdownTimeout = 30 * time.Second

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the HTTP server for article read access",
		RunE:  runHTTPD,
	}
}

func runHTTPD(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	srv := api.NewHTTPServer(deps.Logger, deps.Articles, deps.Config)

	errCh := make(chan error, 1)
	go func() {
		deps.Logger.Info("HTTP server listening", "address", srv.Addr)
		if serveErr := srv.ListenAndServe(); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case serveErr := <-errCh:
		return fmt.Errorf("server error: %w", serveErr)
	case <-cmd.Context().Done():
		deps.Logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	deps.Logger.Info("HTTP server stopped")
	return nil
}
