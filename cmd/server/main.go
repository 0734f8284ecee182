package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitmcp/server/internal/bridge"
	"gitmcp/server/internal/config"
	"gitmcp/server/internal/logging"
	"gitmcp/server/internal/mcp"
	"gitmcp/server/internal/middleware"
	"gitmcp/server/internal/modules"
	"gitmcp/server/internal/modules/github"
	"gitmcp/server/internal/observability"
	"gitmcp/server/internal/stdio"
	"gitmcp/server/pkg/githubapi"
)

const serverName = "gitmcp"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           serverName,
		Short:         "MCP server exposing GitHub REST operations as tools",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	observability.Init(cfg.Loki, logger)

	if cfg.GitHubToken == "" {
		logger.Warn("no GitHub token configured; requests are unauthenticated and rate limited")
	}

	handler, err := newHandler(cfg, logger)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case config.TransportSSE:
		b := bridge.New(handler, bridge.NewRegistry(), logger, bridge.Options{
			Host:            cfg.Host,
			Port:            cfg.Port,
			MaxPortAttempts: cfg.MaxPortAttempts,
			Name:            serverName,
			Version:         version,
		})
		return b.Serve(ctx)
	default:
		return stdio.New(handler, os.Stdin, os.Stdout, logger).Serve(ctx)
	}
}

// newHandler wires upstream client, tool registry and protocol handler.
func newHandler(cfg *config.Config, logger *zap.Logger) (middleware.RequestProcessor, error) {
	client, err := githubapi.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken,
		githubapi.WithTimeout(cfg.Timeout),
		githubapi.WithUserAgent(serverName+"/"+version),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create github client")
	}

	registry := modules.NewRegistry(logger, modules.WithTimeout(cfg.Timeout))
	if err := registry.Register(github.New(client)); err != nil {
		return nil, errors.Wrap(err, "register github module")
	}
	logger.Info("modules registered",
		zap.Strings("modules", registry.Modules()),
		zap.Int("tools", len(registry.Tools(cfg.Lang))),
		zap.String("api", client.BaseURL()),
		zap.String("transport", cfg.Transport),
	)

	return mcp.NewHandler(registry, mcp.ServerInfo{Name: serverName, Version: version}, cfg.Lang, logger), nil
}
