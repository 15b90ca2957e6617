// Package http provides the REST handlers served next to the MCP endpoint.
//
// Endpoints:
//   - GET /: service banner
//   - GET /health: allowed root, registry stats, live sessions
//   - GET /services: service definitions, optionally ?category=
//   - POST /services/discover: services relevant to a free-text query
//   - POST /services/execute: run a tool by ID or name
//   - GET /metrics: Prometheus exposition
//
// Tool failures are not HTTP errors: /services/execute answers 200 with
// success=false and the failure message. Only unknown tools (404) and
// malformed requests (400) change the status code.
package http
