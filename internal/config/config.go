package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by Load.
const (
	EnvDiff        = "DIFF"
	EnvAPIKey      = "ANTHROPIC_API_KEY"
	EnvPRNumber    = "PR_NUMBER"
	EnvPRTitle     = "PR_TITLE"
	EnvPRAuthor    = "PR_AUTHOR"
	EnvRepo        = "REPO"
	EnvBaseURL     = "ANTHROPIC_BASE_URL"
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvGitHubAPI   = "GITHUB_API_URL"
	EnvDiffFile    = "PRBOT_DIFF_FILE"
	EnvPoster      = "PRBOT_POSTER"
	EnvRedact      = "PRBOT_REDACT"
	EnvDryRun      = "PRBOT_DRY_RUN"
	EnvTimeout     = "PRBOT_TIMEOUT"
	EnvDebug       = "PRBOT_DEBUG"
)

// Comment posters.
const (
	PosterGH  = "gh"
	PosterAPI = "api"
)

// Config is the review context for a single run. It is built once at
// process start and passed by value.
type Config struct {
	Diff     string
	APIKey   string
	PRNumber int
	PRTitle  string
	PRAuthor string
	Repo     string

	DiffFile    string
	Poster      string
	Redact      bool
	DryRun      bool
	Timeout     time.Duration
	BaseURL     string
	GitHubToken string
	GitHubAPI   string
	Debug       bool
	Verbose     bool
}

// FullReview reports whether the PR metadata needed for a first-pass
// review is present.
func (c Config) FullReview() bool {
	return c.PRTitle != "" && c.PRAuthor != "" && c.Repo != ""
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// stdin is read when the diff file is "-".
var stdin io.Reader = os.Stdin

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Poster: PosterGH,
	}
}

// Load builds the effective config by merging: defaults <- env <- overrides,
// then reads the diff file if one is named and validates the result.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(lookup LookupFunc, overrides map[string]string) (Config, error) {
	return load(lookup, overrides, true)
}

// LoadPrompt is Load for commands that only render the prompt: the API key,
// PR number and poster settings are not required.
func LoadPrompt(lookup LookupFunc, overrides map[string]string) (Config, error) {
	return load(lookup, overrides, false)
}

func load(lookup LookupFunc, overrides map[string]string, sending bool) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg := Default()

	var problems []string
	problems = append(problems, mergeEnv(&cfg, lookup)...)
	problems = append(problems, mergeOverrides(&cfg, overrides)...)

	if cfg.DiffFile != "" {
		diff, err := readDiff(cfg.DiffFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Diff = diff
	}

	if err := cfg.validate(problems, sending); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeEnv(cfg *Config, lookup LookupFunc) []string {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	var problems []string

	cfg.Diff = get(EnvDiff)
	cfg.APIKey = strings.TrimSpace(get(EnvAPIKey))
	cfg.PRTitle = get(EnvPRTitle)
	cfg.PRAuthor = get(EnvPRAuthor)
	cfg.Repo = strings.TrimSpace(get(EnvRepo))
	cfg.BaseURL = strings.TrimSpace(get(EnvBaseURL))
	cfg.GitHubToken = strings.TrimSpace(get(EnvGitHubToken))
	cfg.GitHubAPI = strings.TrimSpace(get(EnvGitHubAPI))

	if v := strings.TrimSpace(get(EnvPRNumber)); v != "" {
		n, err := parsePRNumber(v)
		if err != nil {
			problems = append(problems, err.Error())
		}
		cfg.PRNumber = n
	}
	if v := get(EnvDiffFile); v != "" {
		cfg.DiffFile = v
	}
	if v := get(EnvPoster); v != "" {
		cfg.Poster = v
	}
	if v := get(EnvRedact); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s must be a boolean, got %q", EnvRedact, v))
		}
		cfg.Redact = b
	}
	if v := get(EnvDryRun); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s must be a boolean, got %q", EnvDryRun, v))
		}
		cfg.DryRun = b
	}
	if v := get(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s must be a boolean, got %q", EnvDebug, v))
		}
		cfg.Debug = b
	}
	if v := get(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s must be a duration, got %q", EnvTimeout, v))
		}
		cfg.Timeout = d
	}
	return problems
}

func mergeOverrides(cfg *Config, overrides map[string]string) []string {
	if overrides == nil {
		return nil
	}
	var problems []string
	if v, ok := overrides["diffFile"]; ok && v != "" {
		cfg.DiffFile = v
	}
	if v, ok := overrides["poster"]; ok && v != "" {
		cfg.Poster = v
	}
	if v, ok := overrides["prNumber"]; ok && v != "" {
		n, err := parsePRNumber(v)
		if err != nil {
			problems = append(problems, err.Error())
		}
		cfg.PRNumber = n
	}
	if v, ok := overrides["timeout"]; ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("timeout must be a duration, got %q", v))
		}
		cfg.Timeout = d
	}
	// Boolean flags can only switch a knob on.
	if overrides["redact"] == "true" {
		cfg.Redact = true
	}
	if overrides["dryRun"] == "true" {
		cfg.DryRun = true
	}
	if overrides["debug"] == "true" {
		cfg.Debug = true
	}
	if overrides["verbose"] == "true" {
		cfg.Verbose = true
	}
	return problems
}

func (c Config) validate(problems []string, sending bool) error {
	var missing []string
	if c.Diff == "" {
		missing = append(missing, EnvDiff)
	}
	if !sending {
		if len(missing) == 0 && len(problems) == 0 {
			return nil
		}
		return &Error{Missing: missing, Problems: problems}
	}
	if c.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if c.PRNumber == 0 && !hasPRNumberProblem(problems) {
		missing = append(missing, EnvPRNumber)
	}

	switch c.Poster {
	case PosterGH:
	case PosterAPI:
		if !c.DryRun {
			if c.GitHubToken == "" {
				missing = append(missing, EnvGitHubToken)
			}
			if c.Repo == "" {
				missing = append(missing, EnvRepo)
			}
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown poster %q (want %s or %s)", c.Poster, PosterGH, PosterAPI))
	}
	if c.Timeout < 0 {
		problems = append(problems, "timeout must not be negative")
	}

	if len(missing) == 0 && len(problems) == 0 {
		return nil
	}
	return &Error{Missing: missing, Problems: problems}
}

func parsePRNumber(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(v, "#"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", EnvPRNumber, v)
	}
	return n, nil
}

func hasPRNumberProblem(problems []string) bool {
	for _, p := range problems {
		if strings.HasPrefix(p, EnvPRNumber) {
			return true
		}
	}
	return false
}

func readDiff(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading diff from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading diff file: %w", err)
	}
	return string(data), nil
}
