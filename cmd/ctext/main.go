// Package main is the entry point for the ctext editor.
//
// With a terminal on stdin and stdout and no batch flags, ctext opens an
// interactive editor. Otherwise it edits in batch: ed scripts and commands,
// vi key strings and Lua scripts run in that order against the file, or
// against stdin when no file is named.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/jessevdk/go-flags"
	"golang.org/x/term"

	"github.com/dshills/ctext/internal/app"
	"github.com/dshills/ctext/internal/config"
	"github.com/dshills/ctext/internal/engine/buffer"
	"github.com/dshills/ctext/internal/input"
	"github.com/dshills/ctext/internal/script"
	"github.com/dshills/ctext/internal/tui"
)

// Version information (set via ldflags during build).
var version = "dev"

// Options are the command-line flags.
type Options struct {
	Script   string   `short:"s" long:"script" value-name:"FILE" description:"Run an ed script (blank and # lines skipped)"`
	Ex       []string `short:"e" long:"ex" value-name:"CMD" description:"Run one ed command (repeatable)"`
	Keys     []string `short:"k" long:"keys" value-name:"KEYS" description:"Feed a key string such as \"dw<Esc>\" (repeatable)"`
	Lua      string   `short:"x" long:"lua" value-name:"FILE" description:"Run a Lua script"`
	Mode     string   `short:"m" long:"mode" choice:"vi" choice:"normal" description:"Key processor"`
	Config   string   `short:"c" long:"config" value-name:"FILE" description:"Config file (TOML or YAML)"`
	Write    bool     `short:"w" long:"write" description:"Write the buffer back after batch processing"`
	Print    bool     `short:"p" long:"print" description:"Print the buffer after batch processing"`
	LogLevel string   `short:"l" long:"log-level" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Log level"`
	Version  bool     `short:"v" long:"version" description:"Show version information"`

	Args struct {
		File string `positional-arg-name:"FILE"`
	} `positional-args:"yes"`
}

func (o *Options) batch() bool {
	return o.Script != "" || len(o.Ex) > 0 || len(o.Keys) > 0 || o.Lua != "" || o.Write || o.Print
}

// env is the process environment seen by run.
type env struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
}

func main() {
	e := env{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
	}
	os.Exit(run(os.Args[1:], e))
}

func run(args []string, e env) int {
	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = config.AppName
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(e.stdout, err)
			return 0
		}
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return 2
	}
	if opts.Version {
		fmt.Fprintf(e.stdout, "ctext %s\n", version)
		return 0
	}

	cfg, cfgPath, err := loadConfig(&opts)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !e.interactive || opts.batch() {
		return runBatch(ctx, &opts, cfg, e)
	}
	if err := runInteractive(ctx, &opts, cfg, cfgPath); err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the named config file, or the user's config file when
// one exists, and applies the flag overrides.
func loadConfig(opts *Options) (*config.Config, string, error) {
	path := opts.Config
	if path == "" {
		path = config.Find()
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, "", err
		}
	}
	if opts.Mode != "" {
		kind, err := input.ParseKind(opts.Mode)
		if err != nil {
			return nil, "", err
		}
		cfg.Mode = kind
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	return cfg, path, nil
}

// runBatch edits without a terminal. It returns 1 when any command failed.
func runBatch(ctx context.Context, opts *Options, cfg *config.Config, e env) int {
	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.LogLevel),
		Output: e.stderr,
		Prefix: config.AppName,
	})
	session := app.NewSession(app.Options{
		Config: cfg,
		Logger: logger,
		Out:    e.stdout,
		Notifier: input.Notifier{
			Error: func(msg string) { fmt.Fprintf(e.stderr, "?%s\n", msg) },
		},
	})

	printBuf := opts.Print
	if name := opts.Args.File; name != "" {
		if err := session.Open(name); err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return 1
		}
	} else {
		if err := readInput(session.Buffer(), e.stdin); err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return 1
		}
		printBuf = true
	}

	failed := false
	if opts.Script != "" {
		failed = session.RunScript(opts.Script) != nil || failed
	}
	for _, cmd := range opts.Ex {
		failed = session.ExecEd(cmd) != nil || failed
	}
	for _, keys := range opts.Keys {
		if err := session.Keys(keys); err != nil {
			fmt.Fprintf(e.stderr, "?%v\n", err)
			failed = true
		}
	}
	if opts.Lua != "" {
		engine := script.New(session, script.WithOutput(e.stdout))
		if err := engine.DoFile(ctx, opts.Lua); err != nil {
			fmt.Fprintf(e.stderr, "?%v\n", err)
			failed = true
		}
		engine.Close()
	}
	if _, n := session.LastError(); n > 0 {
		failed = true
	}

	if opts.Write && opts.Args.File != "" {
		if err := session.Buffer().Write(""); err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			failed = true
		}
	}
	if printBuf {
		_, _ = io.WriteString(e.stdout, session.Buffer().Text())
	}
	if failed {
		return 1
	}
	return 0
}

// readInput loads r into b as lines.
func readInput(b *buffer.Buffer, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	for i, line := range buffer.SplitLines(string(data)) {
		b.InsertLine(i, line)
	}
	b.MoveTo(buffer.Point{})
	return nil
}

// runInteractive runs the terminal host until the user quits.
func runInteractive(ctx context.Context, opts *Options, cfg *config.Config, cfgPath string) error {
	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.LogLevel),
		Output: logFile(),
		Prefix: config.AppName,
	})

	var watcher *config.Watcher
	if cfgPath != "" {
		w, err := config.NewWatcher(cfgPath)
		if err != nil {
			logger.Warn("config watch disabled: %v", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	host := tui.New(screen, tui.Options{Config: cfg, Logger: logger, Watcher: watcher})
	session := host.Session()
	if opts.Args.File != "" {
		if err := session.Open(opts.Args.File); err != nil {
			return err
		}
	}
	if err := session.LoadState(ctx); err != nil {
		logger.Warn("state not loaded: %v", err)
	}

	err = host.Run(ctx)
	if serr := session.SaveState(context.Background()); serr != nil {
		logger.Warn("state not saved: %v", serr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// logFile opens the interactive log in the user cache directory. Logging is
// discarded when it cannot be opened, since the screen owns the terminal.
func logFile() io.Writer {
	dir, err := os.UserCacheDir()
	if err != nil {
		return io.Discard
	}
	dir = filepath.Join(dir, config.AppName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(filepath.Join(dir, "ctext.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
}
