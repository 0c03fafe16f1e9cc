// Package commands wires the cobra command tree for higgsfield-mcp.
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"higgsfield-mcp/internal/infra"
	"higgsfield-mcp/internal/providers/higgsfield"
)

type globalFlags struct {
	apiKey    string
	secret    string
	baseURL   string
	transport string
	port      string
	logLevel  string
}

func (g *globalFlags) overrides() infra.Overrides {
	return infra.Overrides{
		APIKey:    g.apiKey,
		Secret:    g.secret,
		BaseURL:   g.baseURL,
		Transport: g.transport,
		Port:      g.port,
		LogLevel:  g.logLevel,
	}
}

// setup loads configuration and builds the client. Missing credentials fail
// here, before anything touches the network.
func (g *globalFlags) setup() (*infra.Config, infra.Logger, *higgsfield.Client, error) {
	cfg, err := infra.LoadConfig(g.overrides())
	if err != nil {
		return nil, infra.Logger{}, nil, err
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)
	client, err := higgsfield.NewClient(higgsfield.Options{
		APIKey:         cfg.APIKey,
		Secret:         cfg.Secret,
		BaseURL:        cfg.BaseURL,
		Logger:         &logger,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		return nil, infra.Logger{}, nil, err
	}
	return cfg, logger, client, nil
}

// NewRootCmd builds the command tree. Running the root command without a
// subcommand serves MCP, which is what MCP clients launch.
func NewRootCmd(version string) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "higgsfield-mcp",
		Short: "MCP server for Higgsfield AI image and video generation",
		Long: `higgsfield-mcp exposes the Higgsfield AI platform to MCP clients.

Tools: generate_image, generate_video, create_character, get_generation_status,
list_characters, get_character, delete_character.

Resources: higgsfield://styles, higgsfield://motions, higgsfield://characters.

Environment:
  HF_API_KEY, HF_SECRET   provider credentials (required)
  MCP_TRANSPORT           stdio (default) or http
  PORT                    listen port for the http transport
  MCP_AUTH_TOKEN          bearer token required on /mcp when set

Examples:
  higgsfield-mcp
  higgsfield-mcp serve --transport http --port 8080
  higgsfield-mcp status 3c90c3cc-0d44-4b50-8888-8dd25736052a --wait
  higgsfield-mcp download 3c90c3cc-0d44-4b50-8888-8dd25736052a --zip results.zip`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, g, version)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.apiKey, "api-key", "", "Higgsfield API key (overrides HF_API_KEY)")
	flags.StringVar(&g.secret, "secret", "", "Higgsfield API secret (overrides HF_SECRET)")
	flags.StringVar(&g.baseURL, "base-url", "", "Higgsfield API base URL (overrides HF_BASE_URL)")
	flags.StringVar(&g.transport, "transport", "", "MCP transport: stdio or http (overrides MCP_TRANSPORT)")
	flags.StringVar(&g.port, "port", "", "listen port for the http transport (overrides PORT)")
	flags.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")

	root.AddCommand(
		newServeCmd(g, version),
		newStylesCmd(g),
		newMotionsCmd(g),
		newCharactersCmd(g),
		newStatusCmd(g),
		newDownloadCmd(g),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
