package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/fserr"
)

// Guard confines caller-supplied paths to a single allowed root.
// A Guard is immutable once built and safe for concurrent use.
type Guard struct {
	root string // absolute, symlink-free
}

// NewGuard canonicalizes root and verifies it is an existing directory.
func NewGuard(root string) (*Guard, error) {
	if root == "" {
		return nil, errors.New("allowed root cannot be empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve allowed root %s: %w", root, err)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("allowed root directory does not exist: %s", abs)
		}
		return nil, fmt.Errorf("failed to resolve allowed root %s: %w", abs, err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return nil, fmt.Errorf("failed to stat allowed root %s: %w", canonical, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("allowed root is not a directory: %s", canonical)
	}

	return &Guard{root: canonical}, nil
}

// Root returns the canonical allowed root.
func (g *Guard) Root() string {
	if g == nil {
		return ""
	}
	return g.root
}

// IsRoot reports whether a resolved path is the allowed root itself.
func (g *Guard) IsRoot(resolved string) bool {
	return g != nil && g.root != "" && resolved == g.root
}

// Resolve joins relative onto the root, resolves symlinks and dot segments,
// and returns the canonical result if it is the root or one of its
// descendants. Absolute inputs are treated as relative to the root.
//
// Paths that do not exist yet resolve through their longest existing
// ancestor. A dangling or cyclic symlink on the way fails with
// KindOutsideRoot, as does any other resolution failure.
func (g *Guard) Resolve(relative string) (string, error) {
	if g == nil || g.root == "" {
		return "", fserr.New("", relative, fserr.KindUninitialized, "")
	}

	joined := filepath.Join(g.root, relative)

	resolved, err := canonicalize(joined)
	if err != nil {
		e := fserr.Wrap("", relative, fserr.KindOutsideRoot, err)
		e.Detail = "cannot be resolved inside allowed root"
		return "", e
	}

	if !Within(g.root, resolved) {
		return "", fserr.New("", relative, fserr.KindOutsideRoot, "")
	}

	return resolved, nil
}

// Within reports whether path equals root or lies beneath it. The check is
// component-wise: "/a/bc" is not within "/a/b". Both arguments must be
// clean absolute paths.
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// canonicalize resolves symlinks on the longest existing prefix of path and
// re-appends the components that do not exist yet.
func canonicalize(path string) (string, error) {
	existing := path
	var tail []string

	for {
		real, err := filepath.EvalSymlinks(existing)
		if err == nil {
			return filepath.Join(append([]string{real}, tail...)...), nil
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
			return "", err
		}

		// The entry itself is present, so what is missing is its target.
		if _, lerr := os.Lstat(existing); lerr == nil {
			return "", fmt.Errorf("dangling symbolic link %s: %w", filepath.Base(existing), fs.ErrNotExist)
		}

		parent := filepath.Dir(existing)
		if parent == existing {
			return path, nil
		}
		tail = append([]string{filepath.Base(existing)}, tail...)
		existing = parent
	}
}
