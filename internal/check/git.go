package check

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// dcoCommitsInspected is how many recent non-merge commits must carry a
// sign-off for the history to count as DCO-signed.
const dcoCommitsInspected = 20

var signedOffBy = regexp.MustCompile(`(?mi)^signed-off-by:\s*\S`)

// GitRunner runs git subcommands against a working copy.
type GitRunner interface {
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)
}

// LocalGitClient runs the git binary found on PATH.
type LocalGitClient struct{}

var _ GitRunner = &LocalGitClient{}

func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes git with -C repoPath and returns stdout.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
	} else if err != nil {
		return nil, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return out, nil
}

// CommitsHaveDCOSignature reports whether every one of the most recent
// non-merge commits in root carries a Signed-off-by trailer. A repository
// without commits reports false.
func CommitsHaveDCOSignature(ctx context.Context, git GitRunner, root string) (bool, error) {
	out, err := git.Run(ctx, root, "log", "--no-merges", "-n", fmt.Sprint(dcoCommitsInspected), "--format=%B%x00")
	if err != nil {
		return false, err
	}

	inspected := 0
	for _, msg := range strings.Split(string(out), "\x00") {
		msg = strings.TrimSpace(msg)
		if msg == "" {
			continue
		}
		inspected++
		if !signedOffBy.MatchString(msg) {
			return false, nil
		}
	}
	return inspected > 0, nil
}
