package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/darbotlabs/ufodoctor/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the ufodoctor MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var installRoot string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start ufodoctor MCP server (stdio)",
		Long:  "Start the ufodoctor MCP server using stdio transport, so an AI assistant can diagnose the installation, validate agent sections and classify provider errors.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if installRoot == "" {
				installRoot = "."
			}
			s := mcpadapter.NewDoctorMCPServer(installRoot)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&installRoot, "path", "", "UFO² checkout root (defaults to current working directory)")

	return cmd
}
