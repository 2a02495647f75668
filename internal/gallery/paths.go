package gallery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SafeJoin joins elems onto root and returns the cleaned result. It fails
// with ErrPathEscape if any element contains a ".." segment or if the joined
// path is not root or a descendant of it.
func SafeJoin(root string, elems ...string) (string, error) {
	root = filepath.Clean(root)
	parts := make([]string, 0, len(elems)+1)
	parts = append(parts, root)

	for _, e := range elems {
		if hasDotDot(e) {
			return "", fmt.Errorf("%w: %q", ErrPathEscape, e)
		}
		parts = append(parts, e)
	}

	joined := filepath.Join(parts...)
	if !within(root, joined) {
		return "", fmt.Errorf("%w: %q", ErrPathEscape, joined)
	}
	return joined, nil
}

func hasDotDot(p string) bool {
	segments := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\' || r == os.PathSeparator
	})
	for _, s := range segments {
		if s == ".." {
			return true
		}
	}
	return false
}

// within reports whether target is root or lies beneath it. Both paths must
// be clean.
func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// checkReal resolves symlinks in target and fails with ErrPathEscape if the
// real path lies outside the real root. A target that does not exist passes;
// the caller reports it when it opens the path.
func checkReal(root, target string) error {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return fmt.Errorf("resolving gallery root: %w", err)
	}
	realTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("resolving %q: %w", target, err)
	}
	if !within(realRoot, realTarget) {
		return fmt.Errorf("%w: %q links outside the root", ErrPathEscape, target)
	}
	return nil
}
