package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/zhubert/jockey/internal/agent"
	"github.com/zhubert/jockey/internal/app"
	"github.com/zhubert/jockey/internal/config"
	"github.com/zhubert/jockey/internal/langgraph"
	"github.com/zhubert/jockey/internal/logging"
	"github.com/zhubert/jockey/internal/loopdetector"
	"github.com/zhubert/jockey/internal/runner"
	"github.com/zhubert/jockey/internal/tracing"
	"github.com/zhubert/jockey/internal/ui"
	"github.com/zhubert/jockey/internal/version"
)

var (
	flagAPIURL     string
	flagIndexID    string
	flagAssistant  string
	flagConfigFile string
	flagPlain      bool
)

var rootCmd = &cobra.Command{
	Use:          "jockey",
	Short:        "Chat with a LangGraph video search assistant",
	Version:      version.String(),
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagAPIURL, "api-url", "", "LangGraph API server URL")
	pf.StringVar(&flagIndexID, "index-id", "", "video index id prefixed to every question")
	pf.StringVar(&flagAssistant, "assistant", "", "assistant id, name or graph id")
	pf.StringVar(&flagConfigFile, "config", "", "config file (default ~/.jockey/config.yaml and ./.jockey/config.yaml)")
	rootCmd.Flags().BoolVar(&flagPlain, "plain", false, "use a line-oriented prompt instead of the full-screen UI")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session bundles everything a command needs to talk to the server.
type session struct {
	cfg      *config.Config
	agent    *agent.Agent
	client   *langgraph.Client
	logger   *slog.Logger
	teardown []func()
}

func (s *session) close() {
	for i := len(s.teardown) - 1; i >= 0; i-- {
		s.teardown[i]()
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flagConfigFile != "" {
		cfg, err = config.LoadFile(flagConfigFile)
	} else {
		workDir, werr := os.Getwd()
		if werr != nil {
			return nil, fmt.Errorf("getting working directory: %w", werr)
		}
		cfg, err = config.Load(workDir)
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = flagAPIURL
	}
	if flags.Changed("index-id") {
		cfg.IndexID = flagIndexID
	}
	if flags.Changed("assistant") {
		cfg.Assistant = flagAssistant
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, cleanup, err := logging.Setup(logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}
	s := &session{cfg: cfg, logger: logger}
	s.teardown = append(s.teardown, func() {
		if cerr := cleanup(); cerr != nil {
			fmt.Fprintf(os.Stderr, "closing log file: %v\n", cerr)
		}
	})

	if err := s.setupTracing(cfg.Tracing); err != nil {
		s.close()
		return nil, err
	}

	logger.Info("starting jockey",
		"version", version.String(),
		"api_url", cfg.APIURL,
		"assistant", cfg.Assistant,
		"index_id_set", cfg.IndexID != "",
	)

	s.client = langgraph.New(langgraph.OptionsFromConfig(cfg), logger)
	s.teardown = append(s.teardown, s.client.Close)

	s.agent = agent.New(s.client, agent.Options{
		IndexID:    cfg.IndexID,
		Assistant:  cfg.Assistant,
		StreamMode: cfg.StreamMode,
		LoopGuard: loopdetector.Config{
			MaxHops:          cfg.LoopGuard.MaxHops,
			MaxRepeatedTools: cfg.LoopGuard.MaxRepeatedTools,
		},
		AbortOnLoop: cfg.LoopGuard.Abort,
	}, logger)

	return s, nil
}

// setupTracing writes spans to ~/.jockey/traces.json so they never mix
// with terminal output.
func (s *session) setupTracing(tc config.TracingConfig) error {
	if !tc.Enabled {
		_, err := tracing.Setup(tc, nil)
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(home, logging.Dir, "traces.json"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening trace file: %w", err)
	}

	shutdown, err := tracing.Setup(tc, f)
	if err != nil {
		f.Close()
		return fmt.Errorf("setting up tracing: %w", err)
	}
	s.teardown = append(s.teardown, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "flushing traces: %v\n", err)
		}
		f.Close()
	})
	return nil
}

func stdoutIsTerminal() bool {
	return readline.IsTerminal(int(os.Stdout.Fd()))
}

func runRoot(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if flagPlain || !stdoutIsTerminal() {
		color := stdoutIsTerminal()
		if !color {
			ui.MarkdownStyle = "notty"
		}
		r := runner.New(s.agent, runner.Options{Server: s.cfg.APIURL, Color: color}, s.logger)
		return r.Run()
	}

	m := app.New(s.agent, s.cfg.APIURL, s.logger)
	if err := app.Run(m); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
