// Package sandbox restricts file access to a configured set of root
// directories. Paths are resolved to absolute, symlink-evaluated form
// before the containment check so relative traversal and symlink escapes
// are caught the same way.
package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Guard holds the resolved allowed roots. Immutable after construction.
type Guard struct {
	roots []string
}

// NewGuard resolves each configured directory to an absolute root.
// An empty list defaults to the current working directory.
func NewGuard(dirs []string) (*Guard, error) {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	roots := make([]string, 0, len(dirs))
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			return nil, fmt.Errorf("abs(%s): %w", d, err)
		}
		// Resolve symlinks where possible so boundary checks are reliable.
		// Fall back to the absolute path when the root does not exist yet.
		if r, err := filepath.EvalSymlinks(abs); err == nil {
			abs = r
		}
		roots = append(roots, abs)
	}
	return &Guard{roots: roots}, nil
}

// Roots returns the resolved allowed roots in configuration order.
func (g *Guard) Roots() []string {
	out := make([]string, len(g.roots))
	copy(out, g.roots)
	return out
}

// Allows reports whether path resolves to a location inside one of the
// allowed roots. It fails closed: any resolution error denies access.
func (g *Guard) Allows(path string) bool {
	resolved, err := resolve(path)
	if err != nil {
		return false
	}
	for _, root := range g.roots {
		if contains(root, resolved) {
			return true
		}
	}
	return false
}

// resolve normalises path to an absolute, symlink-evaluated form.
// When the leaf does not exist the parent directory is resolved instead
// and the final segment rejoined, which still reveals escapes through a
// symlinked parent.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		return r, nil
	}
	parent := filepath.Dir(abs)
	resolvedParent, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(abs)), nil
}

// contains checks root containment via filepath.Rel, which is robust
// against partial prefix matches like /tmp/foo vs /tmp/foobar.
func contains(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return false
	}
	return true
}
