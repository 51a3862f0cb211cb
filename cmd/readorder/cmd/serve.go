package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/readorder/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the reading-order API",
	Long: `Start an HTTP server that computes reading orders for posted pages.

The server provides the following endpoints:
  POST /order    - Compute the reading order for a JSON page document
  GET  /health   - Health check endpoint
  GET  /metrics  - Prometheus metrics
  GET  /ws/order - WebSocket endpoint for streaming page ordering

Examples:
  readorder serve
  readorder serve --port 8080
  readorder serve --host 0.0.0.0 --port 3000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "localhost", "host to bind the server to")
	serveCmd.Flags().IntP("port", "p", 8080, "port to run the server on")
	serveCmd.Flags().String("cors-origin", "*", "allowed CORS origin")
	serveCmd.Flags().Int("max-body-size", 10, "maximum request body size in MB")
	serveCmd.Flags().Int("timeout", 30, "request timeout in seconds")
	serveCmd.Flags().Int("shutdown-timeout", 10, "graceful shutdown timeout in seconds")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	host := cfg.Server.Host
	if cmd.Flags().Changed("host") {
		host, _ = cmd.Flags().GetString("host")
	}
	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	corsOrigin := cfg.Server.CORSOrigin
	if cmd.Flags().Changed("cors-origin") {
		corsOrigin, _ = cmd.Flags().GetString("cors-origin")
	}
	maxBodyMB := cfg.Server.MaxBodyMB
	if cmd.Flags().Changed("max-body-size") {
		maxBodyMB, _ = cmd.Flags().GetInt("max-body-size")
	}
	timeout := cfg.Server.TimeoutSec
	if cmd.Flags().Changed("timeout") {
		timeout, _ = cmd.Flags().GetInt("timeout")
	}
	shutdownTimeout := cfg.Server.ShutdownTimeout
	if cmd.Flags().Changed("shutdown-timeout") {
		shutdownTimeout, _ = cmd.Flags().GetInt("shutdown-timeout")
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orderServer, err := server.New(server.Config{
		Host:       host,
		Port:       port,
		CORSOrigin: corsOrigin,
		MaxBodyMB:  int64(maxBodyMB),
		Layout:     cfg.Layout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           orderServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(timeout) * time.Second,
		WriteTimeout:      time.Duration(timeout) * time.Second,
	}

	go func() {
		slog.Info("Starting reading-order server", "host", host, "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		slog.Info("Context cancelled, initiating shutdown")
	}

	slog.Info("Starting graceful shutdown", "timeout", fmt.Sprintf("%ds", shutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		return err
	}
	slog.Info("HTTP server shutdown completed")
	return nil
}
