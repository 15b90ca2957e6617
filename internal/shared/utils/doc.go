// Package utils provides input validation shared by the HTTP and MCP
// transports.
package utils
