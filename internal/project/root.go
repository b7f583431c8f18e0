package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ManifestName is the file that marks the root of a Move package.
const ManifestName = "Move.toml"

// ErrNoRoot is returned by GitRoot when the directory is not inside a Git
// working tree or git cannot be run.
var ErrNoRoot = errors.New("no project root found")

// FindRoot returns the project root for dir.
//
// The search order is: the nearest ancestor of dir (dir included) holding
// a Move.toml, then the top level of the enclosing Git working tree, then
// dir itself. The result is always an absolute, cleaned path.
func FindRoot(ctx context.Context, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	if root, ok := manifestRoot(abs); ok {
		return root, nil
	}
	if root, err := GitRoot(ctx, abs); err == nil {
		return root, nil
	}
	return abs, nil
}

// manifestRoot walks up from dir looking for ManifestName.
func manifestRoot(dir string) (string, bool) {
	for {
		info, err := os.Stat(filepath.Join(dir, ManifestName))
		if err == nil && !info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// GitRoot returns the top-level directory of the Git working tree that
// contains dir. For a linked worktree this is the worktree's own root, not
// the main repository's.
func GitRoot(ctx context.Context, dir string) (string, error) {
	out, err := runGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoRoot, err)
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return "", ErrNoRoot
	}
	return filepath.Clean(root), nil
}

// runGit runs git with -C dir and returns its stdout. On failure the error
// message includes git's stderr.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 -- arguments are built internally
	cmd := exec.CommandContext(ctx, "git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if s := strings.TrimSpace(stderr.String()); s != "" {
			message = fmt.Sprintf("%s: %s", message, s)
		}
		return "", fmt.Errorf("%s: %w", message, err)
	}
	return stdout.String(), nil
}
