package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chzyer/readline"

	"github.com/zhubert/jockey/internal/agent"
	"github.com/zhubert/jockey/internal/langgraph"
	"github.com/zhubert/jockey/internal/stream"
	"github.com/zhubert/jockey/internal/ui"
	"github.com/zhubert/jockey/internal/version"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorRed    = "\033[31m"
)

// Agent is what the runner needs from the controller.
type Agent interface {
	Submit(ctx context.Context, text string) (<-chan agent.StreamChunk, bool)
	Clear()
	Assistants(ctx context.Context) ([]langgraph.Assistant, error)
}

// Options configures a Runner.
type Options struct {
	// Server is shown in the welcome banner.
	Server string
	// HistoryFile stores readline history. Defaults to ~/.jockey_history.
	HistoryFile string
	// Out receives cards and status lines. Defaults to stdout.
	Out io.Writer
	// Color enables ANSI styling and markdown rendering.
	Color bool
}

// Runner handles the simple stdin/stdout interaction loop.
type Runner struct {
	agent  Agent
	opts   Options
	out    io.Writer
	logger *slog.Logger
}

// New creates a new Runner.
func New(ag Agent, opts Options, logger *slog.Logger) *Runner {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			opts.HistoryFile = filepath.Join(home, ".jockey_history")
		}
	}
	return &Runner{agent: ag, opts: opts, out: out, logger: logger}
}

// Run starts the main interaction loop.
func (r *Runner) Run() error {
	r.printWelcome()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.color(colorBold) + "> " + r.color(colorReset),
		HistoryFile:     r.opts.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "Goodbye.")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		lower := strings.ToLower(input)
		if lower == "exit" || lower == "quit" {
			fmt.Fprintln(r.out, "Goodbye.")
			return nil
		}

		if strings.HasPrefix(input, "/") {
			r.handleSlashCommand(input)
			continue
		}

		if err := r.processInput(input, sigCh); err != nil {
			fmt.Fprintf(r.out, "%sError: %v%s\n", r.color(colorRed), err, r.color(colorReset))
		}
	}
}

// Ask runs a single question and prints the resulting cards. It returns
// the run's error, if any.
func (r *Runner) Ask(ctx context.Context, question string) error {
	if strings.TrimSpace(question) == "" {
		return errors.New("question is empty")
	}
	ch, ok := r.agent.Submit(ctx, question)
	if !ok {
		return errors.New("a run is already in progress")
	}
	return r.consume(ch, nil, func() {})
}

func (r *Runner) processInput(input string, sigCh <-chan os.Signal) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, ok := r.agent.Submit(ctx, input)
	if !ok {
		return nil
	}
	fmt.Fprintln(r.out)
	return r.consume(ch, sigCh, cancel)
}

// consume prints chunks until the run is done. A signal on sigCh cancels
// the run and keeps draining so the controller can finish cleanly.
func (r *Runner) consume(ch <-chan agent.StreamChunk, sigCh <-chan os.Signal, cancel func()) error {
	var runErr error
	cancelled := false

	for {
		select {
		case <-sigCh:
			if !cancelled {
				cancelled = true
				cancel()
				fmt.Fprintln(r.out, r.color(colorYellow)+"\n[Cancelled]"+r.color(colorReset))
			}

		case chunk, ok := <-ch:
			if !ok {
				return runErr
			}

			switch chunk.Type {
			case agent.ChunkAssistant:
				r.logger.Debug("assistant selected", "assistant_id", chunk.Assistant.AssistantID)

			case agent.ChunkAgent:
				fmt.Fprintf(r.out, "  %s→ %s%s\n", r.color(colorDim), chunk.AgentName, r.color(colorReset))

			case agent.ChunkToolStart:
				fmt.Fprintf(r.out, "  %s⚡ %s%s\n", r.color(colorDim), chunk.ToolName, r.color(colorReset))

			case agent.ChunkMessage:
				r.printCard(chunk.Message)

			case agent.ChunkError:
				if cancelled && errors.Is(chunk.Err, context.Canceled) {
					continue
				}
				runErr = chunk.Err

			case agent.ChunkDone:
				return runErr
			}
		}
	}
}

func (r *Runner) printCard(msg stream.DisplayMessage) {
	if !r.opts.Color {
		fmt.Fprintln(r.out, ui.PlainCard(msg))
		return
	}
	if msg.AgentName != "" {
		fmt.Fprintf(r.out, "%s%s%s%s\n", colorBold, colorCyan, msg.AgentName, colorReset)
	}
	fmt.Fprintln(r.out, ui.RenderMarkdown(msg.Text, readline.GetScreenWidth()-4))
	fmt.Fprintln(r.out)
}

func (r *Runner) handleSlashCommand(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	switch cmd := strings.ToLower(parts[0]); cmd {
	case "/help", "/h", "/?":
		fmt.Fprint(r.out, helpText+"\n")
	case "/assistants", "/a":
		r.listAssistants(context.Background())
	case "/clear":
		r.agent.Clear()
		fmt.Fprintln(r.out, r.color(colorGreen)+"Cleared."+r.color(colorReset))
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s. Type /help for available commands.%s\n", r.color(colorRed), cmd, r.color(colorReset))
	}
}

const helpText = `
Available commands:
  /assistants, /a   - List assistants on the server
  /clear            - Clear the message list
  /help, /h, /?     - Show this help message

  exit, quit        - Close the application
`

func (r *Runner) listAssistants(ctx context.Context) {
	list, err := r.agent.Assistants(ctx)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: listing assistants: %v%s\n", r.color(colorRed), err, r.color(colorReset))
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(r.out, "No assistants found.")
		return
	}
	fmt.Fprintln(r.out)
	for i, a := range list {
		fmt.Fprintf(r.out, "%s[%d]%s %-38s %s%s (%s)%s\n",
			r.color(colorCyan), i+1, r.color(colorReset), a.AssistantID,
			r.color(colorDim), a.DisplayName(), a.GraphID, r.color(colorReset))
	}
	fmt.Fprintln(r.out)
}

func (r *Runner) printWelcome() {
	fmt.Fprintf(r.out, "%sjockey%s %sv%s  %s%s\n",
		r.color(colorBold), r.color(colorReset),
		r.color(colorDim), version.Version, r.opts.Server, r.color(colorReset))
	fmt.Fprintf(r.out, "%sType a question, /help for commands, ctrl+c to cancel a run.%s\n\n",
		r.color(colorDim), r.color(colorReset))
}

func (r *Runner) color(code string) string {
	if !r.opts.Color {
		return ""
	}
	return code
}
