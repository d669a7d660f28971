package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	filesource "github.com/bnema/layoutguard/internal/adapters/source/file"
	"github.com/bnema/layoutguard/internal/domain"
	"github.com/bnema/layoutguard/internal/ports"
)

var ErrUnavailable = errors.New("git command unavailable")

type runFunc func(ctx context.Context, dir string, args ...string) (stdout string, stderr string, err error)

// Source reads declarations as committed at a revision, so a branch or tag
// can be checked without touching the working tree.
type Source struct {
	root     string
	fileName string
	rev      string
	run      runFunc
}

var _ ports.DeclarationSource = (*Source)(nil)

func NewSource(root, fileName, rev string) *Source {
	if root == "" {
		root = "."
	}
	return &Source{root: root, fileName: fileName, rev: rev, run: runGitCommand}
}

func (s *Source) Declaration(ctx context.Context, id domain.EntityID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(s.rev) == "" {
		return "", errors.New("git revision is empty")
	}

	rel, err := filesource.EntityPath(id, s.fileName)
	if err != nil {
		return "", err
	}

	object := s.rev + ":./" + rel
	stdout, stderr, err := s.run(ctx, s.root, "show", object)
	if err != nil {
		if isMissingPath(stderr) {
			return "", fmt.Errorf("%w: %s", domain.ErrDeclarationNotFound, object)
		}
		return "", formatError(object, err, stderr)
	}

	return stdout, nil
}

func isMissingPath(stderr string) bool {
	return strings.Contains(stderr, "does not exist in") || strings.Contains(stderr, "exists on disk, but not in")
}

func runGitCommand(ctx context.Context, dir string, args ...string) (string, string, error) {
	path, err := exec.LookPath("git")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate git command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, append([]string{"-C", dir}, args...)...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(object string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("git show %q: %w", object, err)
	}

	return fmt.Errorf("git show %q: %w: %s", object, err, stderr)
}
