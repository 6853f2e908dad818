package prompt

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/doublet/prbot/internal/config"
)

// Kind names one of the two review prompt templates.
type Kind string

const (
	// KindFull is used for the first review of a pull request.
	KindFull Kind = "full"
	// KindIncremental is used for pushes after the first review.
	KindIncremental Kind = "incremental"
)

//go:embed templates/*.md.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("prompts").Option("missingkey=error").ParseFS(templateFS, "templates/*.md.tmpl"),
)

// Data is the input to a prompt template.
type Data struct {
	Diff   string
	Title  string
	Author string
	Repo   string
}

// Select picks the template for cfg: full when title, author and repo are
// all present, incremental otherwise.
func Select(cfg config.Config) Kind {
	if cfg.FullReview() {
		return KindFull
	}
	return KindIncremental
}

// Render renders the named template. The diff is embedded verbatim.
func Render(kind Kind, data Data) (string, error) {
	name := string(kind) + ".md.tmpl"
	if templates.Lookup(name) == nil {
		return "", fmt.Errorf("unknown prompt template: %s", kind)
	}
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", kind, err)
	}
	return b.String(), nil
}

// Build selects and renders the prompt for cfg, with diff substituted for
// cfg.Diff so callers can pass a redacted copy.
func Build(cfg config.Config, diff string) (Kind, string, error) {
	kind := Select(cfg)
	text, err := Render(kind, Data{
		Diff:   diff,
		Title:  cfg.PRTitle,
		Author: cfg.PRAuthor,
		Repo:   cfg.Repo,
	})
	if err != nil {
		return "", "", err
	}
	return kind, text, nil
}
