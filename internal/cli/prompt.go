package cli

import (
	"fmt"

	"github.com/doublet/prbot/internal/config"
	"github.com/doublet/prbot/internal/logger"
	"github.com/doublet/prbot/internal/review"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt that review would send",
	Long:  "Prompt renders the review prompt from the environment and prints it to stdout without calling the API.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadPrompt(lookupEnv, buildOverrides())
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			if config.IsConfigError(err) {
				exitCode = ExitUsageError
			} else {
				exitCode = ExitFailure
			}
			return nil
		}
		log := logger.New(stderr, cfg.Debug, cfg.Verbose)

		p, err := review.Prepare(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitCode = ExitFailure
			return nil
		}
		if p.Redactions > 0 {
			log.Warn("redacted secrets from diff", "count", p.Redactions)
		}
		log.Info("prompt rendered", "template", string(p.Kind), "bytes", len(p.Prompt))
		fmt.Fprintln(stdout, p.Prompt)
		return nil
	},
}

func init() {
	addContextFlags(promptCmd)
}
