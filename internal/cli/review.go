package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doublet/prbot/internal/config"
	"github.com/doublet/prbot/internal/github"
	"github.com/doublet/prbot/internal/logger"
	"github.com/doublet/prbot/internal/providers"
	"github.com/doublet/prbot/internal/review"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Shared flags
var (
	flagDiffFile string
	flagPR       string
	flagRedact   bool
	flagDebug    bool
	flagVerbose  bool
)

// Review-only flags
var (
	flagPoster  string
	flagDryRun  bool
	flagTimeout time.Duration
)

// ghRunner runs the gh CLI for the gh poster. Nil means exec.
var ghRunner github.Runner

func addContextFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDiffFile, "diff-file", "", "Read the diff from a file instead of $DIFF (- for stdin)")
	cmd.Flags().StringVar(&flagPR, "pr", "", "Pull request number (overrides $PR_NUMBER)")
	cmd.Flags().BoolVar(&flagRedact, "redact", false, "Mask secrets in the diff before sending it")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log progress to stderr")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagDiffFile != "" {
		m["diffFile"] = flagDiffFile
	}
	if flagPR != "" {
		m["prNumber"] = flagPR
	}
	if flagPoster != "" {
		m["poster"] = flagPoster
	}
	if flagTimeout != 0 {
		m["timeout"] = flagTimeout.String()
	}
	if flagRedact {
		m["redact"] = "true"
	}
	if flagDryRun {
		m["dryRun"] = "true"
	}
	if flagDebug {
		m["debug"] = "true"
	}
	if flagVerbose {
		m["verbose"] = "true"
	}
	return m
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review the pull request diff and post the result as a comment",
	Long: `Review reads the pull request context from the environment (DIFF,
ANTHROPIC_API_KEY, PR_NUMBER and optionally PR_TITLE, PR_AUTHOR, REPO),
asks Claude for a review and posts the reply on the pull request.

A full review is requested when title, author and repo are all set;
otherwise only the newest changes are reviewed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(lookupEnv, buildOverrides())
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			if config.IsConfigError(err) {
				exitCode = ExitUsageError
			} else {
				exitCode = ExitFailure
			}
			return nil
		}

		log := logger.New(stderr, cfg.Debug, cfg.Verbose).With("run", uuid.NewString())
		ctx := logger.WithLogger(cmd.Context(), log)
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		commenter, err := newCommenter(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}
		log.Debug("config loaded", "poster", cfg.Poster, "dry_run", cfg.DryRun, "full", cfg.FullReview())

		orch := &review.Orchestrator{
			Requester: providers.NewAnthropic(cfg.APIKey, cfg.BaseURL, nil),
			Commenter: commenter,
		}
		if _, err := orch.Run(ctx, cfg); err != nil {
			exitCode = reportFailure(err)
			return nil
		}
		return nil
	},
}

func init() {
	addContextFlags(reviewCmd)
	reviewCmd.Flags().StringVar(&flagPoster, "poster", "", "How to post the comment (gh, api)")
	reviewCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the review to stdout instead of posting it")
	reviewCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Abort the run after this long (0 means no limit)")
}

func newCommenter(cfg config.Config) (github.Commenter, error) {
	if cfg.DryRun {
		return &github.Dry{W: stdout}, nil
	}
	switch cfg.Poster {
	case config.PosterAPI:
		return github.NewAPI(cfg.GitHubToken, cfg.Repo, cfg.GitHubAPI)
	default:
		return github.NewGH(ghRunner), nil
	}
}

// reportFailure writes the diagnostic for a failed run and returns its
// exit code.
func reportFailure(err error) int {
	if genErr, ok := providers.AsReviewGenerationError(err); ok {
		fmt.Fprintf(stderr, "Error: %v\n", genErr)
		fmt.Fprintf(stderr, "Response: %s\n", genErr.Raw)
		if genErr.IsAuthError() {
			fmt.Fprintf(stderr, "Check that %s is set to a valid key.\n", config.EnvAPIKey)
		}
		return ExitFailure
	}
	var cerr *github.CommentError
	if errors.As(err, &cerr) {
		fmt.Fprintf(stderr, "Error posting comment: %v\n", cerr)
		return ExitFailure
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitFailure
}
