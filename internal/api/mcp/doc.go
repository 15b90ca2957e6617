// Package mcp implements the Model Context Protocol over streamable HTTP.
//
// A single endpoint accepts JSON-RPC 2.0 messages by POST. The initialize
// request opens a session whose ID is returned in the Mcp-Session-Id header
// and must accompany every later request. DELETE closes the session.
//
// Supported methods:
//   - initialize: version negotiation and server info
//   - ping
//   - tools/list: registry tools with JSON Schema input definitions
//   - tools/call: runs a tool; tool failures are reported with isError
//
// Responses are framed as a single server-sent event when the client
// accepts text/event-stream, otherwise as application/json.
//
// Example Usage:
//
//	handler := mcp.NewHandler(registry, sessions, logger, "1.0.0")
//	handler.Register(router, "/mcp")
package mcp
