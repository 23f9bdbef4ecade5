package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/a3tai/ekho-renamer/internal/config"
	"github.com/a3tai/ekho-renamer/internal/folder"
	"github.com/a3tai/ekho-renamer/internal/logger"
	"github.com/a3tai/ekho-renamer/internal/mcp"
	"github.com/a3tai/ekho-renamer/internal/naming"
	"github.com/a3tai/ekho-renamer/internal/pdf"
	"github.com/a3tai/ekho-renamer/internal/pipeline"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// runBatchMode renames the PDFs of one folder. Ctrl-C stops the run before
// the next document.
func runBatchMode(ctx context.Context, cfg *config.Config, docs pipeline.Documents, dict *naming.Dictionary) int {
	dir, ok, err := folder.NewPicker(cfg.Directory).Pick()
	if err != nil {
		slog.Error("failed to read folder", "error", err)
		return 1
	}
	if !ok {
		fmt.Println("No folder selected.")
		return 0
	}

	runner, err := pipeline.NewRunner(docs, dict, pipeline.Options{
		Marker:            cfg.Marker,
		KeepCertification: cfg.KeepCertification,
		DryRun:            cfg.DryRun,
	})
	if err != nil {
		slog.Error("failed to create runner", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, dir)
	if summary == nil {
		slog.Error("folder run failed", "dir", dir, "error", err)
		return 1
	}
	printSummary(os.Stdout, summary)

	if errors.Is(err, context.Canceled) {
		fmt.Println("Interrupted.")
		return 130
	}
	if len(summary.Failures()) > 0 {
		return 1
	}
	return 0
}

// runStdioMode serves the MCP tools until the client disconnects
func runStdioMode(ctx context.Context, cfg *config.Config, docs pipeline.Documents, dict *naming.Dictionary) int {
	server, err := mcp.NewServer(cfg, docs, dict)
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		return 1
	}

	if err := server.Run(ctx); err != nil {
		slog.Error("server error", "error", err)
		return 1
	}
	return 0
}

func printSummary(w io.Writer, summary *pipeline.Summary) {
	for _, r := range summary.Results {
		switch r.Status {
		case pipeline.StatusRenamed:
			fmt.Fprintf(w, "Renamed: %s -> %s\n", r.Name, r.NewName)
		case pipeline.StatusDryRun:
			fmt.Fprintf(w, "Would rename: %s -> %s\n", r.Name, r.NewName)
		case pipeline.StatusUnchanged:
			fmt.Fprintf(w, "Already named: %s\n", r.Name)
		case pipeline.StatusFailed:
			fmt.Fprintf(w, "Error processing %s: %v\n", r.Name, r.Err)
		}
	}
	fmt.Fprintf(w, "\n%d renamed, %d unchanged, %d dry run, %d failed (%s)\n",
		summary.Count(pipeline.StatusRenamed),
		summary.Count(pipeline.StatusUnchanged),
		summary.Count(pipeline.StatusDryRun),
		summary.Count(pipeline.StatusFailed),
		summary.Duration.Round(time.Millisecond))
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	// stdout carries the MCP protocol in stdio mode, so logs always go to stderr
	if _, err := logger.Setup(cfg.LogLevel, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(2)
	}

	if version != "dev" {
		cfg.Version = version
	}
	slog.Debug("starting", "config", cfg.String())

	dict, err := naming.LoadDictionary(cfg.NamesFile)
	if err != nil {
		slog.Error("failed to load name dictionary", "path", cfg.NamesFile, "error", err)
		os.Exit(1)
	}
	slog.Debug("name dictionary loaded", "names", dict.Len())

	docs := pdf.NewService(pdf.Options{
		MaxFileSize:   cfg.MaxFileSize,
		UserPassword:  cfg.Password,
		OwnerPassword: cfg.Password,
	})

	ctx := context.Background()
	if cfg.IsStdioMode() {
		os.Exit(runStdioMode(ctx, cfg, docs, dict))
	}
	os.Exit(runBatchMode(ctx, cfg, docs, dict))
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("EKHO Renamer\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
