// Package service provides the tool registry.
//
// The registry maintains the catalog of service providers and routes tool
// calls to them. Tools are addressed either by full ID
// ("filesystem.read_file") or by bare name ("read_file"), which is what MCP
// clients send. Bare names must be unique across providers.
//
// Components:
//   - Registry: thread-safe service and tool catalog
//   - Provider: interface for service implementations
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	if err := registry.Register(fsProvider); err != nil {
//	    return err
//	}
//	result, err := registry.Execute(ctx, "read_file", params, appCtx)
//	if errors.Is(err, service.ErrToolNotFound) {
//	    // protocol-level error
//	}
package service
