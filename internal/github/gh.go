package github

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// Runner runs an external command with stdin attached and returns its
// captured output.
type Runner func(ctx context.Context, stdin io.Reader, name string, args ...string) (stdout, stderr []byte, err error)

// GH posts comments with the GitHub CLI: gh pr comment <n> --body-file -.
// The body is written to stdin so its size is not bound by argv limits.
type GH struct {
	bin string
	run Runner
}

// NewGH creates a GH commenter. A nil runner executes the real gh binary.
func NewGH(run Runner) *GH {
	if run == nil {
		run = execRunner
	}
	return &GH{bin: "gh", run: run}
}

func (g *GH) Comment(ctx context.Context, prNumber int, body string) error {
	_, stderr, err := g.run(ctx, strings.NewReader(body), g.bin, "pr", "comment", strconv.Itoa(prNumber), "--body-file", "-")
	if err != nil {
		return &CommentError{PRNumber: prNumber, Poster: g.bin, Stderr: string(stderr), Err: err}
	}
	return nil
}

func execRunner(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
