// Package filesystem implements the sandboxed filesystem tools.
//
// The package is split in two layers:
//   - Operations: one method per tool (ReadFile, ListDirectory, WriteFile,
//     CreateDirectory, DeleteFile, DeleteDirectory, MovePath, GetFileInfo).
//     Each resolves its path arguments through the shared path guard, makes
//     a single native filesystem call, and returns a message or *fserr.Error.
//   - Provider: the tool catalogue and argument handling on top of
//     Operations, producing in-band types.Result values.
//
// Calls are stateless and independent. Nothing is cached between calls and
// concurrent callers touching the same path simply race at the OS level.
//
// Example Usage:
//
//	guard, _ := paths.NewGuard("/srv/data")
//	ops := filesystem.NewOperations(guard, logger)
//	provider := filesystem.NewProvider(ops, logger)
//	result, err := provider.Execute(ctx, "filesystem.read_file",
//	    map[string]interface{}{"path": "notes.txt"}, nil)
package filesystem
