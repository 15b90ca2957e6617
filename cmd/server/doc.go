// Package main is the entry point for the filesystem MCP server.
//
// The server exposes eight file and directory tools over the Model Context
// Protocol. Every path a client supplies is resolved against a single
// allowed root directory and rejected if it escapes it.
//
// Architecture:
//
//	MCP client → POST /mcp (JSON-RPC) → tool registry → filesystem provider
//	REST client → /services/execute  ↗
//
// Configuration (later sources win):
//   - Defaults
//   - YAML or TOML file (-config or CONFIG_FILE)
//   - Environment variables (12-factor)
//   - CLI flags that were set explicitly
//
// Usage:
//
//	# Serve the current directory on port 8123
//	./server
//
//	# Serve a project directory
//	./server -allowed-root /srv/project -port 9000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// The process exits with status 1 if the allowed root does not exist or is
// not a directory.
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
