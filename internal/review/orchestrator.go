package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doublet/prbot/internal/config"
	"github.com/doublet/prbot/internal/github"
	"github.com/doublet/prbot/internal/logger"
	"github.com/doublet/prbot/internal/prompt"
	"github.com/doublet/prbot/internal/providers"
	"github.com/doublet/prbot/internal/redact"
)

// Orchestrator turns a review context into a posted pull-request comment.
type Orchestrator struct {
	Requester providers.Requester
	Commenter github.Commenter
}

// Prepared is a rendered prompt ready to send.
type Prepared struct {
	Kind       prompt.Kind
	Prompt     string
	Redactions int
}

// Result describes a run, including a failed one as far as it got.
type Result struct {
	Prepared
	Review string
	Raw    []byte
	Posted bool
}

// Prepare redacts the diff when cfg asks for it and renders the prompt.
func Prepare(cfg config.Config) (Prepared, error) {
	diff := cfg.Diff
	var p Prepared
	if cfg.Redact {
		diff, p.Redactions = redact.Count(diff)
	}
	kind, text, err := prompt.Build(cfg, diff)
	if err != nil {
		return p, fmt.Errorf("building prompt: %w", err)
	}
	p.Kind = kind
	p.Prompt = text
	return p, nil
}

// Run renders the prompt for cfg, requests a review and posts it.
// Request failures are *providers.ReviewGenerationError and nothing is
// posted; posting failures are *github.CommentError.
func (o *Orchestrator) Run(ctx context.Context, cfg config.Config) (Result, error) {
	log := logger.FromContext(ctx).With("pr", cfg.PRNumber)

	var res Result
	prepared, err := Prepare(cfg)
	if err != nil {
		return res, err
	}
	res.Prepared = prepared
	if res.Redactions > 0 {
		log.Warn("redacted secrets from diff", "count", res.Redactions)
	}

	log.Info("requesting review", "template", string(res.Kind), "bytes", len(res.Prompt), "model", providers.Model)
	start := time.Now()
	resp, err := o.Requester.Request(ctx, res.Prompt)
	if err != nil {
		if _, ok := providers.AsReviewGenerationError(err); !ok {
			err = &providers.ReviewGenerationError{Reason: "requesting review", Err: err}
		}
		return res, err
	}
	res.Review = resp.Text
	res.Raw = resp.Raw
	log.Info("review received", "elapsed", time.Since(start).Round(time.Millisecond), "bytes", len(resp.Text))

	if err := o.Commenter.Comment(ctx, cfg.PRNumber, resp.Text); err != nil {
		var cerr *github.CommentError
		if !errors.As(err, &cerr) {
			err = &github.CommentError{PRNumber: cfg.PRNumber, Poster: fmt.Sprintf("%T", o.Commenter), Err: err}
		}
		return res, err
	}
	res.Posted = true
	log.Info("comment posted")
	return res, nil
}
