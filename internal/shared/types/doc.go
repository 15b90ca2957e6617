// Package types provides shared data structures for the filesystem server.
//
// Core Types:
//   - Service: Provider definition with its tools
//   - Tool: Remotely invokable operation with typed parameters
//   - Parameter: Tool argument schema
//   - Context: Per-call execution context (session, request)
//   - Result: Standard in-band operation result
//
// Request Types:
//   - ExecuteRequest: REST tool execution
//   - DiscoverRequest: REST service discovery
//
// Example Usage:
//
//	result := &types.Result{
//	    Success: true,
//	    Data:    map[string]interface{}{"text": "Successfully wrote 5 characters to 'a.txt'"},
//	}
package types
