package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fwojciec/redline/bubbletea"
	"github.com/fwojciec/redline/chi"
	"github.com/fwojciec/redline/chroma"
	"github.com/fwojciec/redline/clipboard"
	"github.com/fwojciec/redline/config"
	"github.com/fwojciec/redline/fs"
	"github.com/fwojciec/redline/git"
	"github.com/fwojciec/redline/jsonl"
	theme "github.com/fwojciec/redline/lipgloss"
	"github.com/fwojciec/redline/logging"
	"github.com/fwojciec/redline/worddiff"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

// Flags holds global options. Config is loaded in the Before hook.
type Flags struct {
	ConfigPath  string
	LogLevel    string
	LogFile     string
	Theme       string
	Analyzer    string
	Aligner     string
	Model       string
	Annotations string
	APIKey      string

	Config *config.Config
}

// DefaultConfigPath returns the config file path under XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "redline", "config.yaml")
}

// Apply loads the config file and overrides it with any flags that were given.
func (f *Flags) Apply() error {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.LogLevel, f.LogLevel)
	override(&cfg.LogFile, f.LogFile)
	override(&cfg.Theme, f.Theme)
	override(&cfg.Analyzer, f.Analyzer)
	override(&cfg.Aligner, f.Aligner)
	override(&cfg.Model, f.Model)
	if f.Annotations != "" {
		cfg.Analyzer = config.AnalyzerJSONL
		cfg.Annotations = f.Annotations
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	f.Config = cfg
	return nil
}

// logger opens the command logger. The terminal screens always log to a
// file because they own the terminal.
func (f *Flags) logger(tui bool) (zerolog.Logger, func(), error) {
	file := f.Config.LogFile
	if file == "" && tui {
		file = logging.DefaultFile(f.Config.CacheDir)
	}
	return logging.New(f.Config.LogLevel, file, os.Stderr)
}

func (f *Flags) documents(gitRepo string) *Documents {
	d := &Documents{
		Files: fs.NewLoader(chroma.NewDetector(), os.Stdin),
		Stdin: stdinIsPipe(),
	}
	if gitRepo != "" {
		d.Git = &git.Loader{Runner: git.NewRunner(), RepoPath: gitRepo}
	}
	return d
}

func (f *Flags) viewer(p *Providers, opts ...bubbletea.Option) (*bubbletea.Viewer, error) {
	th, err := theme.ThemeByName(f.Config.Theme)
	if err != nil {
		return nil, err
	}
	base := []bubbletea.Option{
		bubbletea.WithTheme(th),
		bubbletea.WithAnalyzer(p.Analyzer),
		bubbletea.WithAligner(p.Aligner),
		bubbletea.WithWordDiffer(worddiff.NewDiffer()),
		bubbletea.WithClipboard(clipboard.NewSystem()),
	}
	return bubbletea.NewViewer(append(base, opts...)...), nil
}

func stdinIsPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}

type reviewCmd struct {
	flags     *Flags
	sample    bool
	gitRepo   string
	export    string
	decisions string
}

func (cmd *reviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "review",
		Usage:     "Review a contract interactively",
		ArgsUsage: "[FILE | - | REV:PATH]",
		Description: `Opens the contract review panel. Findings are highlighted in the text;
tab moves between them, a accepts, x dismisses, y copies the suggestion.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "sample", Usage: "review the built-in sample contract", Destination: &cmd.sample},
			&cli.StringFlag{Name: "git-repo", Usage: "read REV:PATH arguments from this repository", Destination: &cmd.gitRepo},
			&cli.StringFlag{Name: "export", Usage: "write the remaining findings to this JSONL file on w", Destination: &cmd.export},
			&cli.StringFlag{Name: "decisions", Usage: "append accept/dismiss decisions to this JSONL file", Destination: &cmd.decisions},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *reviewCmd) run(ctx context.Context, c *cli.Command) error {
	log, closeLog, err := cmd.flags.logger(true)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer closeLog()

	p, err := NewProviders(ctx, cmd.flags.Config, cmd.flags.APIKey)
	if err != nil {
		return err
	}
	var opts []bubbletea.Option
	if cmd.export != "" {
		opts = append(opts, bubbletea.WithExport(jsonl.NewSaver(), cmd.export))
	}
	if cmd.decisions != "" {
		opts = append(opts, bubbletea.WithDecisionLog(jsonl.NewDecisionLog(), cmd.decisions))
	}
	viewer, err := cmd.flags.viewer(p, opts...)
	if err != nil {
		return err
	}

	app := &ReviewApp{
		Documents: cmd.flags.documents(cmd.gitRepo),
		Viewer:    viewer,
		Logger:    log,
		Sample:    cmd.sample,
	}
	return app.Run(ctx, c.Args().Slice())
}

type compareCmd struct {
	flags   *Flags
	sample  bool
	gitRepo string
	noNotes bool
}

func (cmd *compareCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "compare",
		Usage:     "Compare two contracts side by side",
		ArgsUsage: "LEFT RIGHT | PATH (with --git-repo)",
		Description: `Aligns two contracts clause by clause and highlights what changed.
With --git-repo and a single PATH, compares its two most recent revisions.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "sample", Usage: "compare the built-in sample contracts", Destination: &cmd.sample},
			&cli.StringFlag{Name: "git-repo", Usage: "read REV:PATH arguments from this repository", Destination: &cmd.gitRepo},
			&cli.BoolFlag{Name: "no-notes", Usage: "skip generated risk notes", Destination: &cmd.noNotes},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *compareCmd) run(ctx context.Context, c *cli.Command) error {
	log, closeLog, err := cmd.flags.logger(true)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer closeLog()

	if cmd.noNotes {
		cmd.flags.Config.Notes = false
	}
	p, err := NewProviders(ctx, cmd.flags.Config, cmd.flags.APIKey)
	if err != nil {
		return err
	}
	viewer, err := cmd.flags.viewer(p)
	if err != nil {
		return err
	}

	app := &CompareApp{
		Documents: cmd.flags.documents(cmd.gitRepo),
		Viewer:    viewer,
		Logger:    log,
		Sample:    cmd.sample,
	}
	return app.Run(ctx, c.Args().Slice())
}

type segmentsCmd struct {
	flags   *Flags
	sample  bool
	gitRepo string
	format  string
}

func (cmd *segmentsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "segments",
		Usage:     "Analyze a contract and print its annotated segments",
		ArgsUsage: "[FILE | - | REV:PATH]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "sample", Usage: "analyze the built-in sample contract", Destination: &cmd.sample},
			&cli.StringFlag{Name: "git-repo", Usage: "read REV:PATH arguments from this repository", Destination: &cmd.gitRepo},
			&cli.StringFlag{Name: "format", Usage: "output format (json, text)", Value: FormatJSON, Destination: &cmd.format},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *segmentsCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.format != FormatJSON && cmd.format != FormatText {
		return fmt.Errorf("unknown format %q", cmd.format)
	}
	log, closeLog, err := cmd.flags.logger(false)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer closeLog()

	p, err := NewProviders(ctx, cmd.flags.Config, cmd.flags.APIKey)
	if err != nil {
		return err
	}
	app := &SegmentsApp{
		Documents: cmd.flags.documents(cmd.gitRepo),
		Analyzer:  p.Analyzer,
		Out:       c.Root().Writer,
		Logger:    log,
		Sample:    cmd.sample,
		Format:    cmd.format,
	}
	return app.Run(ctx, c.Args().Slice())
}

type serveCmd struct {
	flags *Flags
	addr  string
}

func (cmd *serveCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "serve",
		Usage: "Serve the review API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to http.addr from the config)",
				Sources:     cli.EnvVars("REDLINE_HTTP_ADDR"),
				Destination: &cmd.addr,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *serveCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config
	log, closeLog, err := cmd.flags.logger(false)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer closeLog()

	p, err := NewProviders(ctx, cfg, cmd.flags.APIKey)
	if err != nil {
		return err
	}
	addr := cfg.HTTP.Addr
	if cmd.addr != "" {
		addr = cmd.addr
	}

	server := chi.NewServer(
		chi.WithAddr(addr),
		chi.WithLogger(log),
		chi.WithAnalyzer(p.Analyzer),
		chi.WithAligner(p.Aligner),
		chi.WithWordDiffer(worddiff.NewDiffer()),
		chi.WithMaxRequestBytes(cfg.HTTP.MaxRequestBytes),
		chi.WithRequestTimeout(cfg.HTTP.RequestTimeout),
		chi.WithAllowedOrigins(cfg.HTTP.AllowedOrigins...),
	)
	return server.ListenAndServe(ctx)
}

// NewCommand builds the redline command tree around flags.
func NewCommand(flags *Flags) *cli.Command {
	app := &cli.Command{
		Name:      "redline",
		Usage:     "Review and compare contracts in the terminal",
		UsageText: "redline [global options] command [command options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("REDLINE_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("REDLINE_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (review and compare default to <cache_dir>/redline.log)",
				Sources:     cli.EnvVars("REDLINE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "color theme (dark, light)",
				Sources:     cli.EnvVars("REDLINE_THEME"),
				Destination: &flags.Theme,
			},
			&cli.StringFlag{
				Name:        "analyzer",
				Usage:       "analysis provider (demo, gemini, jsonl)",
				Sources:     cli.EnvVars("REDLINE_ANALYZER"),
				Destination: &flags.Analyzer,
			},
			&cli.StringFlag{
				Name:        "aligner",
				Usage:       "comparison alignment (clause, lines)",
				Sources:     cli.EnvVars("REDLINE_ALIGNER"),
				Destination: &flags.Aligner,
			},
			&cli.StringFlag{
				Name:        "model",
				Usage:       "Gemini model name",
				Sources:     cli.EnvVars("REDLINE_MODEL"),
				Destination: &flags.Model,
			},
			&cli.StringFlag{
				Name:        "annotations",
				Usage:       "load findings from this JSONL file instead of analyzing",
				Destination: &flags.Annotations,
			},
			&cli.StringFlag{
				Name:        "api-key",
				Usage:       "Gemini API key",
				Sources:     cli.EnvVars("GEMINI_API_KEY"),
				Destination: &flags.APIKey,
			},
		},
		Before: func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			return ctx, flags.Apply()
		},
	}

	app = (&reviewCmd{flags: flags}).Register(app)
	app = (&compareCmd{flags: flags}).Register(app)
	app = (&segmentsCmd{flags: flags}).Register(app)
	app = (&serveCmd{flags: flags}).Register(app)
	return app
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewCommand(&Flags{}).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
