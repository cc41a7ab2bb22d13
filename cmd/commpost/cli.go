package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/commpost"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Archive opens the archive stored in a directory.
	Archive func(dir string) commpost.Archive

	Emotes    commpost.EmoteResolver
	Extractor commpost.PostExtractor
	Checker   commpost.SanityChecker
	Converter commpost.Converter

	// Storage, wired only for commands that use the database.
	Posts commpost.PostService
	Runs  commpost.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose  bool            `short:"v" help:"Enable debug logging"`
	DB       string          `name:"db" help:"Database path (default: $COMMPOST_DB or ~/.commpost/commpost.db)"`
	EmoteDir string          `name:"emote-dir" env:"COMMPOST_EMOTE_DIR" default:"data" help:"Directory holding emoji_mapping_default.json and emoji_mapping.json"`
	Config   kong.ConfigFlag `help:"YAML configuration file"`

	Extract ExtractCmd `cmd:"" help:"Extract posts from an archive directory"`
	Check   CheckCmd   `cmd:"" help:"Flag archived pages that look incomplete"`
	IDs     IDsCmd     `cmd:"" name:"ids" help:"Compare archive contents with a post id list"`
	Show    ShowCmd    `cmd:"" help:"Print a stored post"`
	Runs    RunsCmd    `cmd:"" help:"List extraction runs"`
	Emote   EmoteCmd   `cmd:"" help:"Resolve an emote image to its token"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Dir         string `arg:"" optional:"" default:"archive" help:"Archive directory"`
	Out         string `short:"o" default:"data/posts.json" help:"Output JSON file"`
	IDs         string `name:"ids" help:"Post id list (JSON array) used to order the output"`
	Concurrency int    `short:"c" default:"8" help:"Concurrent extraction limit"`
	KeepGoing   bool   `short:"k" help:"Skip failed posts instead of aborting"`
	Markdown    bool   `help:"Render comment content as Markdown"`
	Save        bool   `help:"Store posts and the run in the database"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Dir         string `arg:"" optional:"" default:"archive" help:"Archive directory"`
	Out         string `short:"o" default:"err" help:"Directory for invalid.json and invalid_ids.json"`
	IDs         string `name:"ids" help:"Post id list (JSON array) used to order invalid ids"`
	Concurrency int    `short:"c" default:"8" help:"Concurrent check limit"`
}

// IDsCmd is the "ids" subcommand.
type IDsCmd struct {
	Dir string `arg:"" optional:"" default:"archive" help:"Archive directory"`
	IDs string `name:"ids" default:"data/post_ids.json" help:"Post id list (JSON array)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Post ID"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of runs to list"`
}

// EmoteCmd is the "emote" subcommand.
type EmoteCmd struct {
	Src string `arg:"" help:"Emote image URL"`
	Alt string `help:"Alt text of the image"`
}
