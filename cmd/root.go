package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sync"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/nmosnav/internal/fetcher"
	"github.com/oakwood-commons/nmosnav/internal/formatter"
	"github.com/oakwood-commons/nmosnav/internal/navigator"
	"github.com/oakwood-commons/nmosnav/internal/terminal"
	"github.com/oakwood-commons/nmosnav/pkg/logger"
	"github.com/oakwood-commons/nmosnav/pkg/settings"
)

// farewell is printed when the session ends on Ctrl+C or SIGINT.
const farewell = "Goodbye."

var (
	params  = settings.NewCliParams()
	debug   bool
	rootCtx = context.Background()

	// logSink is the open --log-file, closed after the command runs.
	logSink *os.File
)

var (
	stdoutIsTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }
	stdoutWidth      = func() int { return terminal.Width(os.Stdout) }
	openInput        = openStdinInput
)

// openStdinInput wires the keyboard to stdin.
func openStdinInput(lgr logr.Logger) (navigator.EventReader, func(), error) {
	return openFileInput(os.Stdin, lgr)
}

// openFileInput opens a terminal session over f and a key reader on top of
// it. A terminal gets a cancelable reader; files and pipes are read as is.
// The returned func restores the terminal and releases the reader; it may be
// called more than once.
func openFileInput(f *os.File, lgr logr.Logger) (navigator.EventReader, func(), error) {
	sess, err := terminal.Open(f)
	if err != nil {
		return nil, nil, err
	}
	reader, closeReader := terminal.NewFileReader(f, sess, terminal.WithLogger(lgr))
	return reader, sync.OnceFunc(func() {
		_ = closeReader()
		_ = sess.Close()
	}), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print nmosnav version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString()) //nolint:forbidigo
		return nil
	},
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, go %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " <node_addr>",
	Short: "Browse the REST resource tree of an NMOS node",
	Long: `nmosnav walks the REST API of an NMOS node from the terminal.

Directory listings are shown as menus; anything else is shown as a
colorized JSON document.

Keys:
  Up / Down   move the cursor (wraps around)
  Enter       open the highlighted entry, or leave on Exit
  Left        go back one level
  Ctrl+C      quit`,
	Example:       "  nmosnav 10.0.0.5\n  nmosnav node1.local:8080\n  nmosnav --log-file nmosnav.log node1:3000",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Map CLI debug flag to log level: debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		params.MinLogLevel = 0
		if debug {
			params.MinLogLevel = -1
		}
		var sink io.Writer = io.Discard
		if params.LogFile != "" && logSink == nil {
			f, err := os.OpenFile(params.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			logSink = f
			sink = f
		}
		lgr := logger.Get(params.MinLogLevel, sink)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = settings.IntoContext(logger.WithLogger(context.Background(), lgr), params)
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		logger.Sync()
		if logSink != nil {
			_ = logSink.Close()
			logSink = nil
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		params.NodeAddr = args[0]
		return runBrowse(rootCtx, cmd.OutOrStdout())
	},
}

// runBrowse runs one session against the node in the context's settings.
// Fetch failures and interrupts are normal endings and return nil; only
// setup problems (bad address, unreadable config, no keyboard) are errors.
func runBrowse(ctx context.Context, out io.Writer) error {
	run, ok := settings.FromContext(ctx)
	if !ok {
		return errors.New("run settings missing from context")
	}
	lgr := logger.WithValues(logger.FromContext(ctx), logger.NodeKey, run.NodeAddr)

	rootURL, err := nodeRootURL(run.NodeAddr)
	if err != nil {
		return err
	}
	palette, err := loadPalette(run.ConfigFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(logger.WithLogger(ctx, lgr), os.Interrupt)
	defer stop()

	input, release, err := openInput(*lgr)
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer release()

	styler := formatter.NewStyler(palette, colorDisabled(run.NoColor, os.Getenv("NO_COLOR"), stdoutIsTerminal()))
	screen := formatter.NewScreen(out, styler, stdoutWidth())
	nav := navigator.New(rootURL, fetcher.New(), input, screen)

	lgr.Info("session starting", logger.URLKey, rootURL)
	outcome := nav.Run(ctx)
	lgr.Info("session finished", logger.ReasonKey, outcome.Reason.String(), logger.DepthKey, len(nav.History()))

	if outcome.Reason == navigator.ReasonInterrupted {
		// release restores cooked mode before the farewell goes out
		release()
		screen.Message(farewell)
	}
	return nil
}

// colorDisabled decides whether output is plain text: --no-color, a
// non-empty NO_COLOR, or stdout that is not a terminal.
func colorDisabled(flag bool, noColorEnv string, stdoutTTY bool) bool {
	return flag || noColorEnv != "" || !stdoutTTY
}

func bindFlags(fs *pflag.FlagSet, p *settings.Run) {
	fs.BoolVar(&debug, "debug", false, "log at debug level")
	fs.BoolVar(&p.NoColor, "no-color", false, "disable color output")
	fs.StringVar(&p.LogFile, "log-file", "", "append JSON logs to this file (default: logs are discarded)")
	fs.StringVar(&p.ConfigFile, "config-file", "", "path to a YAML file with color overrides")
}

func init() { //nolint:gochecknoinits
	bindFlags(rootCmd.Flags(), params)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
