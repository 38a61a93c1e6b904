package main

import (
	"context"
	"fmt"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/pkg/adapters/mcp"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/spf13/cobra"
)

var (
	mcpTransport string
	mcpAddr      string
	mcpLoad      []string
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts arbor as an MCP Server, so AI agents can load documents and tick
actors as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup()
		if err != nil {
			return err
		}

		st, closer, err := app.NewStage(domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		if err := cli.Preload(ctx, st, mcpLoad); err != nil {
			return err
		}

		srv := mcp.NewServer(st, arbor.Version, app.Logger)

		switch mcpTransport {
		case "stdio":
			// Logs go to stderr, keeping stdout for JSON-RPC.
			app.Logger.Info("starting arbor MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			return srv.ServeSSE(ctx, mcpAddr)
		default:
			return fmt.Errorf("unknown transport %q: supported are stdio and sse", mcpTransport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", ":8081", "Address to listen on (only for SSE)")
	mcpCmd.Flags().StringSliceVar(&mcpLoad, "load", nil, "Document keys to load at startup")
}
