// Package session tracks MCP client sessions.
//
// A session is opened by the initialize request and identified by the
// Mcp-Session-Id header on every later request. Sessions carry no
// filesystem state; they exist so the transport can reject requests from
// clients that never initialized and so idle clients can be expired.
//
// Example Usage:
//
//	manager := session.NewManager(30*time.Minute, logger)
//	go manager.Start(ctx)
//	s := manager.Create(map[string]string{"name": "client"}, "2025-03-26")
//	if _, err := manager.Get(s.ID); errors.Is(err, session.ErrNotFound) {
//	    // respond 404
//	}
package session
