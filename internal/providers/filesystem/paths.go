package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/fserr"
)

// resolve checks the context and runs the guard, attributing failures to op.
// A call whose context is already done never touches the filesystem.
func (o *Operations) resolve(ctx context.Context, op, relative string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fserr.Wrap(op, relative, fserr.KindOS, err)
	}

	resolved, err := o.guard.Resolve(relative)
	if err != nil {
		var e *fserr.Error
		if errors.As(err, &e) {
			return "", e.WithOp(op)
		}
		return "", fserr.Wrap(op, relative, fserr.KindOS, err)
	}
	return resolved, nil
}

// checkParent verifies that the directory which will contain resolved exists.
func checkParent(op, relative, resolved string) error {
	info, err := os.Stat(filepath.Dir(resolved))
	if err != nil {
		if isMissing(err) {
			return fserr.New(op, relative, fserr.KindMissingParent, "")
		}
		return fserr.FromOS(op, relative, err)
	}
	if !info.IsDir() {
		return fserr.New(op, relative, fserr.KindMissingParent, "parent is not a directory")
	}
	return nil
}

// isMissing reports whether err means the path cannot exist, either because
// it is absent or because one of its ancestors is not a directory.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// stat follows symlinks and maps absence onto KindNotFound.
func stat(op, relative, resolved string) (fs.FileInfo, error) {
	info, err := os.Stat(resolved)
	if err != nil {
		if isMissing(err) {
			return nil, fserr.New(op, relative, fserr.KindNotFound, "")
		}
		return nil, fserr.FromOS(op, relative, err)
	}
	return info, nil
}
