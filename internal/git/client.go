// Package git shells out to the git binary for the checkout side of the
// harness: cloning a throwaway working copy and pinning it to a revision.
package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// Client handles git interactions. All commands run with prompting disabled
// so an unauthenticated remote fails fast instead of hanging a CI job.
type Client struct{}

// NewClient creates a new Git client.
func NewClient() *Client {
	return &Client{}
}

// maskingWriter wraps an io.Writer and masks credentials that git may echo
// back in remote URLs.
type maskingWriter struct {
	w io.Writer
}

var (
	reGitHubPAT = regexp.MustCompile(`https://[^@:]+@github\.com`)
	reBasicAuth = regexp.MustCompile(`https://[^:/]+:[^@/]+@`)
)

func (mw *maskingWriter) Write(p []byte) (n int, err error) {
	s := string(p)
	s = reGitHubPAT.ReplaceAllString(s, "https://[REDACTED]@github.com")
	s = reBasicAuth.ReplaceAllString(s, "https://[REDACTED]@")

	_, err = mw.w.Write([]byte(s))
	return len(p), err
}

func (c *Client) run(ctx context.Context, dir string, args ...string) (string, error) {
	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "GIT_ASKPASS=/bin/true")
	cmd.Stdout = &maskingWriter{w: &outBuf}
	cmd.Stderr = &maskingWriter{w: &errBuf}

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\nOutput: %s\nStderr: %s",
			args[0], err, outBuf.String(), errBuf.String())
	}
	return outBuf.String(), nil
}

// Clone clones a repository (local path or URL) into dest.
func (c *Client) Clone(ctx context.Context, src, dest string) error {
	_, err := c.run(ctx, "", "clone", "--quiet", src, dest)
	return err
}

// Checkout pins the working copy in dir to ref with a detached HEAD, so
// branch state in the source repository is never disturbed.
func (c *Client) Checkout(ctx context.Context, dir, ref string) error {
	_, err := c.run(ctx, dir, "checkout", "--quiet", "--detach", ref)
	return err
}

// RevParse resolves ref to a full commit hash within dir.
func (c *Client) RevParse(ctx context.Context, dir, ref string) (string, error) {
	out, err := c.run(ctx, dir, "rev-parse", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
