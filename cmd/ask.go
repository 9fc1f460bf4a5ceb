package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zhubert/jockey/internal/runner"
	"github.com/zhubert/jockey/internal/ui"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the answers",
	Long: `Send one question to the assistant, print each finalized message and exit.
The exit status is non-zero when the run fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	color := stdoutIsTerminal()
	if !color {
		ui.MarkdownStyle = "notty"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.New(s.agent, runner.Options{Out: cmd.OutOrStdout(), Color: color}, s.logger)
	return r.Ask(ctx, strings.Join(args, " "))
}
