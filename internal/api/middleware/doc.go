// Package middleware provides the HTTP middleware stack for the filesystem
// server.
//
// Middleware stack includes:
//   - CORS: cross-origin access for browser MCP clients, exposing
//     Mcp-Session-Id and the trace headers
//   - RateLimit: per-IP token bucket limiting with idle client eviction
//   - BodyLimit: request body size cap
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
//	router.Use(middleware.BodyLimit(32 << 20))
package middleware
