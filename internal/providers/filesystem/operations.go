package filesystem

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/fserr"
)

// MovePath moves or renames a file or directory. The destination must not
// exist and its parent directory must.
func (o *Operations) MovePath(ctx context.Context, source, destination string) (string, error) {
	const op = "move_path"

	src, err := o.resolve(ctx, op, source)
	if err != nil {
		return "", err
	}
	dst, err := o.resolve(ctx, op, destination)
	if err != nil {
		return "", err
	}

	if _, err := stat(op, source, src); err != nil {
		return "", err
	}
	if o.guard.IsRoot(src) {
		return "", fserr.New(op, source, fserr.KindPermissionDenied, "cannot move the allowed root directory")
	}

	// Lstat so a dangling link at the destination still counts as taken.
	if _, err := os.Lstat(dst); err == nil {
		return "", fserr.New(op, destination, fserr.KindAlreadyExists, "")
	} else if !isMissing(err) {
		return "", fserr.FromOS(op, destination, err)
	}

	if err := checkParent(op, destination, dst); err != nil {
		return "", err
	}

	if err := os.Rename(src, dst); err != nil {
		return "", fserr.FromOS(op, source, err)
	}

	kind := "file"
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		kind = "directory"
	}

	o.logger.Debug("path moved",
		zap.String("source", source),
		zap.String("destination", destination),
	)
	return fmt.Sprintf("Successfully moved %s '%s' to '%s'", kind, source, destination), nil
}
