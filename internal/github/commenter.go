package github

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Commenter posts a comment on a pull request.
type Commenter interface {
	Comment(ctx context.Context, prNumber int, body string) error
}

// CommentError reports that a comment could not be posted.
type CommentError struct {
	PRNumber int
	Poster   string
	Stderr   string
	Err      error
}

func (e *CommentError) Error() string {
	msg := fmt.Sprintf("posting comment to PR #%d via %s", e.PRNumber, e.Poster)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += " - " + s
	}
	return msg
}

func (e *CommentError) Unwrap() error {
	return e.Err
}

// Dry writes comments to W instead of posting them.
type Dry struct {
	W io.Writer
}

func (d *Dry) Comment(_ context.Context, prNumber int, body string) error {
	if _, err := fmt.Fprintln(d.W, body); err != nil {
		return &CommentError{PRNumber: prNumber, Poster: "dry-run", Err: err}
	}
	return nil
}

var repoSlugRe = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`)

// SplitRepo splits an "owner/name" repository slug.
func SplitRepo(slug string) (owner, repo string, err error) {
	m := repoSlugRe.FindStringSubmatch(strings.TrimSuffix(strings.TrimSpace(slug), ".git"))
	if len(m) != 3 {
		return "", "", fmt.Errorf("cannot parse owner/repo from %q", slug)
	}
	return m[1], m[2], nil
}
