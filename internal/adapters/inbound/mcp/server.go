package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewDoctorMCPServer creates an MCP server with the diagnostic tools
// registered. installRoot is the UFO² checkout to diagnose.
func NewDoctorMCPServer(installRoot string) *server.MCPServer {
	s := server.NewMCPServer(
		"ufodoctor",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, installRoot)

	return s
}
