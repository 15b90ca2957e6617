package filesystem

import (
	"context"
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/fserr"
)

// GetFileInfo reports metadata for a file or directory. Symlinks are
// followed, so a link is described by its target.
func (o *Operations) GetFileInfo(ctx context.Context, path string) (*Info, error) {
	const op = "get_file_info"

	resolved, err := o.resolve(ctx, op, path)
	if err != nil {
		return nil, err
	}

	fi, err := stat(op, path, resolved)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Path:     path,
		IsDir:    fi.IsDir(),
		Modified: fi.ModTime(),
		Created:  creationTime(resolved, fi),
		Mode:     fi.Mode().String(),
		Perm:     fmt.Sprintf("%04o", fi.Mode().Perm()),
	}

	if fi.IsDir() {
		children, err := os.ReadDir(resolved)
		if err != nil {
			return nil, fserr.FromOS(op, path, err)
		}
		info.Children = len(children)
	} else {
		info.Size = fi.Size()
		if fi.Mode().IsRegular() {
			if mt, err := mimetype.DetectFile(resolved); err == nil {
				info.MIMEType = mt.String()
			}
		}
	}

	o.logger.Debug("file info", zap.String("path", path), zap.Bool("dir", info.IsDir))
	return info, nil
}
