package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

// Process streams and environment, swapped out in tests.
var (
	stdout    io.Writer = os.Stdout
	stderr    io.Writer = os.Stderr
	lookupEnv           = os.LookupEnv
)

var rootCmd = &cobra.Command{
	Use:   "prbot",
	Short: "Pull request review bot",
	Long:  "prbot sends a pull request diff to Claude for review and posts the reply as a PR comment.",
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run executes the root command and returns an exit code.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, os.Args[1:])
}

func execute(ctx context.Context, args []string) int {
	exitCode = ExitSuccess
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print prbot version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(stdout, "prbot version %s\n", version)
	},
}
