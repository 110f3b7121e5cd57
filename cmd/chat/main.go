package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/RichardoC/askbox/internal/client"
	"github.com/RichardoC/askbox/internal/config"
	"github.com/RichardoC/askbox/internal/tui"
	"github.com/RichardoC/askbox/internal/widget"
)

var (
	serverURL string
	useSearch bool
	question  string
	verbose   bool
	logFile   string
	timeout   time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "askbox",
	Short: "Ask questions to an askbox server",
	Long: `askbox is a chat client for the askbox question answering server.

Run without arguments to start the interactive chat. Use --ask to send a
single question and print the exchange.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(question == "")
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		endpoint := client.New(serverURL, client.WithLogger(logger))
		if question != "" {
			return askOnce(ctx, endpoint)
		}
		return runInteractive(ctx, endpoint)
	},
}

func init() {
	cfg := config.Load()

	rootCmd.Flags().StringVar(&serverURL, "server", cfg.ServerURL, "askbox server base URL")
	rootCmd.Flags().BoolVar(&useSearch, "search", false, "augment answers with earlier related answers")
	rootCmd.Flags().StringVar(&question, "ask", "", "ask a single question and exit")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&logFile, "log-file", filepath.Join(os.TempDir(), "askbox.log"), "log file used by the interactive chat")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "per question timeout for --ask (0 waits indefinitely)")
}

// newLogger writes to a file when the terminal belongs to the TUI.
func newLogger(interactive bool) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if interactive {
		zapConfig.OutputPaths = []string{logFile}
		zapConfig.ErrorOutputPaths = []string{logFile}
	}
	return zapConfig.Build()
}

func askOnce(ctx context.Context, endpoint *client.Client) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	console := &tui.Console{Out: os.Stdout, Status: os.Stderr}
	w := widget.New(endpoint, console.Bindings(), logger)
	if !w.Submit(ctx, question, useSearch) {
		return fmt.Errorf("question must not be empty")
	}
	return nil
}

func runInteractive(ctx context.Context, endpoint *client.Client) error {
	healthCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := endpoint.Health(healthCtx); err != nil {
		logger.Warn("server not reachable", zap.String("server", serverURL), zap.Error(err))
		fmt.Fprintf(os.Stderr, "warning: %s is not reachable yet (%v)\n", serverURL, err)
	}

	model := tui.New(endpoint, logger, tui.Options{
		Context:   ctx,
		UseSearch: useSearch,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("chat ended with error: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
