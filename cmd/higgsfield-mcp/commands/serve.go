package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"higgsfield-mcp/internal/http/handlers"
	"higgsfield-mcp/internal/http/httpapi"
	"higgsfield-mcp/internal/infra"
	"higgsfield-mcp/internal/mcpserver"
)

func newServeCmd(g *globalFlags, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio or streamable HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, g, version)
		},
	}
}

func runServe(cmd *cobra.Command, g *globalFlags, version string) error {
	cfg, logger, client, err := g.setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := mcpserver.New(client, &logger, version)
	logger.Info().
		Str("transport", cfg.Transport).
		Str("base_url", client.BaseURL()).
		Str("version", version).
		Msg("higgsfield mcp server starting")

	if cfg.Transport == infra.TransportHTTP {
		return serveHTTP(ctx, cfg, logger, srv, version)
	}
	if err := srv.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func serveHTTP(ctx context.Context, cfg *infra.Config, logger infra.Logger, srv *mcpserver.Server, version string) error {
	app := handlers.NewApp("higgsfield-mcp", version)
	router := httpapi.NewRouter(app, srv.HTTPHandler(), httpapi.Options{
		AuthToken:         cfg.AuthToken,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		RateLimitPerMin:   cfg.RateLimitPerMin,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
		Logger:            &logger,
	})
	server := infra.NewHTTPServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("MCP listening on %s%s", server.Addr(), httpapi.MCPPath)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
