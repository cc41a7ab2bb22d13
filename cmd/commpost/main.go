package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/commpost"
	"github.com/fwojciec/commpost/fs"
	"github.com/fwojciec/commpost/goquery"
	"github.com/fwojciec/commpost/htmltomarkdown"
	cpslog "github.com/fwojciec/commpost/slog"
	"github.com/fwojciec/commpost/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("commpost"),
		kong.Description("Extract community posts and their comments from archived pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(loadYAML),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'commpost --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger
	deps.Archive = func(dir string) commpost.Archive { return fs.NewArchive(dir) }

	if cmd == "extract" || cmd == "emote" {
		emotes, err := fs.LoadEmoteMap(cli.EmoteDir)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set --emote-dir or COMMPOST_EMOTE_DIR to the directory holding %s\n", fs.EmoteMappingFile)
			return fmt.Errorf("failed to load emote mapping: %w", err)
		}
		logger.Debug("loaded emote mapping", "dir", cli.EmoteDir, "entries", emotes.Len())
		deps.Emotes = emotes
		deps.Extractor = cpslog.NewLoggingExtractor(goquery.NewExtractor(emotes), logger)
		deps.Converter = htmltomarkdown.NewConverter()
	}

	if cmd == "check" {
		deps.Checker = goquery.NewChecker()
	}

	if (cmd == "extract" && cli.Extract.Save) || cmd == "show" || cmd == "runs" {
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set COMMPOST_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Posts = cpslog.NewLoggingPostService(sqlite.NewPostService(m.DB), logger)
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("COMMPOST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "commpost.db"
	}
	dir := filepath.Join(home, ".commpost")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "commpost.db")
}
