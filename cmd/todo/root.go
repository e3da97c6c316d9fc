package main

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/morzdz/todo-app/internal/client"
	"github.com/morzdz/todo-app/internal/ui"
)

const (
	defaultAPIURL = "http://localhost:8080"
	apiURLEnv     = "TODO_API_URL"
)

type rootOptions struct {
	apiURL  string
	logFile string
}

func newRootCommand() *cobra.Command {
	opts := rootOptions{
		apiURL: defaultAPIURL,
	}
	if env := os.Getenv(apiURLEnv); env != "" {
		opts.apiURL = env
	}

	cmd := &cobra.Command{
		Use:     "todo",
		Short:   "Terminal task list for the todo server",
		Version: version + " (commit: " + commit + ")",
		Long: `todo lists, adds, edits and deletes tasks on a running todo server.

KEYS:
  a        add a task (enter to save, esc to cancel)
  e        edit the selected task (↑/↓ move the edit to another task)
  d        delete the selected task
  r        refresh the list
  q        quit

CONFIGURATION:
  TODO_API_URL    server base URL (default: http://localhost:8080)`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.apiURL, "api", opts.apiURL, "todo server base URL")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write diagnostics to this file")
	return cmd
}

func run(ctx context.Context, opts rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, closeLog, err := newLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	api := client.New(opts.apiURL, nil)
	view := ui.NewTaskListView(ctx, api, logger)

	logger.Info().
		Str("api", opts.apiURL).
		Msg("starting task list")
	_, err = tea.NewProgram(view, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// newLogger writes to logFile, or discards diagnostics when it is empty,
// since the terminal belongs to the view.
func newLogger(logFile string) (zerolog.Logger, func(), error) {
	if logFile == "" {
		return zerolog.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	zerolog.TimestampFieldName = "timestamp"
	logger := zerolog.New(zerolog.ConsoleWriter{Out: f, TimeFormat: time.DateTime, NoColor: true}).
		With().
		Timestamp().
		Logger()
	return logger, func() { f.Close() }, nil
}
