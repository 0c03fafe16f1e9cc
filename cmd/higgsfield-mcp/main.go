// Package main runs the Higgsfield MCP server and its companion CLI.
//
// Usage:
//
//	higgsfield-mcp [flags]              serve MCP over stdio
//	higgsfield-mcp serve --transport http
//	higgsfield-mcp styles | motions | characters
//	higgsfield-mcp status <job_set_id> [--wait]
//	higgsfield-mcp download <job_set_id> [--dir DIR] [--zip FILE]
//
// Credentials come from HF_API_KEY and HF_SECRET (or --api-key / --secret).
// A .env file in the working directory is loaded when present.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"higgsfield-mcp/cmd/higgsfield-mcp/commands"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	if err := commands.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
