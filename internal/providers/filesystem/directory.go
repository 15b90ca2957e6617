package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/fserr"
)

// ListDirectory enumerates the immediate children of a directory, sorted by
// name. A non-empty pattern keeps only children whose name matches it.
func (o *Operations) ListDirectory(ctx context.Context, path, pattern string) (*Listing, error) {
	const op = "list_directory"

	resolved, err := o.resolve(ctx, op, path)
	if err != nil {
		return nil, err
	}

	info, err := stat(op, path, resolved)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fserr.New(op, path, fserr.KindNotADirectory, "")
	}

	// os.ReadDir returns entries sorted by filename.
	children, err := os.ReadDir(resolved)
	if err != nil {
		return nil, fserr.FromOS(op, path, err)
	}

	listing := &Listing{
		Path:    path,
		Pattern: pattern,
		Entries: make([]Entry, 0, len(children)),
		Total:   len(children),
	}

	for _, child := range children {
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, child.Name()); !ok {
				continue
			}
		}
		if entry, ok := describeEntry(resolved, child); ok {
			listing.Entries = append(listing.Entries, entry)
		}
	}

	o.logger.Debug("directory listed",
		zap.String("path", path),
		zap.Int("entries", len(listing.Entries)),
	)
	return listing, nil
}

// describeEntry builds the record for one child, following symlinks so a
// link to a directory is reported as a directory. Children that vanish
// between enumeration and stat are skipped.
func describeEntry(dir string, child fs.DirEntry) (Entry, bool) {
	info, err := os.Stat(filepath.Join(dir, child.Name()))
	if err != nil {
		info, err = child.Info()
		if err != nil {
			return Entry{}, false
		}
	}

	entry := Entry{
		Name:     child.Name(),
		IsDir:    info.IsDir(),
		Modified: info.ModTime(),
	}
	if !entry.IsDir {
		entry.Size = info.Size()
	}
	return entry, true
}

// CreateDirectory creates a directory and any missing ancestors. Creating a
// directory that already exists succeeds.
func (o *Operations) CreateDirectory(ctx context.Context, path string) (string, error) {
	const op = "create_directory"

	resolved, err := o.resolve(ctx, op, path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	switch {
	case err == nil:
		if info.IsDir() {
			return fmt.Sprintf("Directory '%s' already exists", path), nil
		}
		return "", fserr.New(op, path, fserr.KindNotADirectory, "a file with this name already exists")
	case errors.Is(err, syscall.ENOTDIR):
		return "", fserr.New(op, path, fserr.KindNotADirectory, "an ancestor is not a directory")
	case !errors.Is(err, fs.ErrNotExist):
		return "", fserr.FromOS(op, path, err)
	}

	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return "", fserr.FromOS(op, path, err)
	}

	o.logger.Debug("directory created", zap.String("path", path))
	return fmt.Sprintf("Successfully created directory '%s'", path), nil
}

// DeleteDirectory removes a directory. Without recursive the directory must
// be empty; with recursive everything beneath it is removed as well.
func (o *Operations) DeleteDirectory(ctx context.Context, path string, recursive bool) (string, error) {
	const op = "delete_directory"

	resolved, err := o.resolve(ctx, op, path)
	if err != nil {
		return "", err
	}

	info, err := stat(op, path, resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fserr.New(op, path, fserr.KindNotADirectory, "path is a file, use delete_file instead")
	}
	if o.guard.IsRoot(resolved) {
		return "", fserr.New(op, path, fserr.KindPermissionDenied, "cannot delete the allowed root directory")
	}

	if !recursive {
		if err := os.Remove(resolved); err != nil {
			// Some platforms report a non-empty directory as EEXIST.
			if errors.Is(err, syscall.ENOTEMPTY) || errors.Is(err, syscall.EEXIST) {
				return "", fserr.New(op, path, fserr.KindNotEmpty, "use recursive=true to delete it with its contents")
			}
			return "", fserr.FromOS(op, path, err)
		}
		o.logger.Debug("directory deleted", zap.String("path", path))
		return fmt.Sprintf("Successfully deleted directory '%s'", path), nil
	}

	removed := countEntries(resolved)
	if err := os.RemoveAll(resolved); err != nil {
		return "", fserr.FromOS(op, path, err)
	}

	o.logger.Debug("directory deleted",
		zap.String("path", path),
		zap.Bool("recursive", true),
		zap.Int("entries", removed),
	)
	return fmt.Sprintf("Successfully deleted directory '%s' and %d entries it contained", path, removed), nil
}

// countEntries counts everything beneath dir without following symlinks.
// The count is informational; unreadable subtrees are skipped.
func countEntries(dir string) int {
	var n atomic.Int64
	conf := fastwalk.Config{Follow: false}

	_ = fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || p == dir {
			return nil
		}
		n.Add(1)
		return nil
	})

	return int(n.Load())
}
