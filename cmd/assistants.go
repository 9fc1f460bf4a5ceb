package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const listTimeout = 30 * time.Second

var assistantsCmd = &cobra.Command{
	Use:   "assistants",
	Short: "List assistants on the server",
	Long:  `List the assistants exposed by the LangGraph API server.`,
	RunE:  runAssistants,
}

func init() {
	rootCmd.AddCommand(assistantsCmd)
}

func runAssistants(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), listTimeout)
	defer cancel()

	list, err := s.agent.Assistants(ctx)
	if err != nil {
		return fmt.Errorf("listing assistants: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No assistants found.")
		return nil
	}

	fmt.Fprintf(out, "%-38s  %-20s  %-12s  %s\n", "ID", "GRAPH", "UPDATED", "NAME")
	fmt.Fprintln(out, "──────────────────────────────────────────────────────────────────────────────────")

	for _, a := range list {
		name := a.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Fprintf(out, "%-38s  %-20s  %-12s  %s\n",
			a.AssistantID,
			a.GraphID,
			formatTime(a.UpdatedAt),
			name,
		)
	}

	if s.cfg.Assistant == "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Pick one with: jockey --assistant <id|name|graph>")
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
