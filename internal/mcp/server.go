package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/ekho-renamer/internal/config"
	"github.com/a3tai/ekho-renamer/internal/descriptions"
	"github.com/a3tai/ekho-renamer/internal/naming"
	"github.com/a3tai/ekho-renamer/internal/pipeline"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	docs      pipeline.Documents
	dict      *naming.Dictionary
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, docs pipeline.Documents, dict *naming.Dictionary) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if docs == nil {
		return nil, fmt.Errorf("documents cannot be nil")
	}
	if dict == nil {
		return nil, fmt.Errorf("name dictionary cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		docs:      docs,
		dict:      dict,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	deriveTool := mcp.NewTool(
		"ekho_derive_filename",
		mcp.WithDescription(descriptions.GetToolDescription("ekho_derive_filename")),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Full text of the timesheet"),
		),
	)
	s.mcpServer.AddTool(deriveTool, s.handleDeriveFilename)

	datesTool := mcp.NewTool(
		"ekho_extract_dates",
		mcp.WithDescription(descriptions.GetToolDescription("ekho_extract_dates")),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to scan for dates"),
		),
	)
	s.mcpServer.AddTool(datesTool, s.handleExtractDates)

	nameTool := mcp.NewTool(
		"ekho_parse_name",
		mcp.WithDescription(descriptions.GetToolDescription("ekho_parse_name")),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name as it appears after the Name: label"),
		),
	)
	s.mcpServer.AddTool(nameTool, s.handleParseName)

	findTool := mcp.NewTool(
		"ekho_find_pdfs",
		mcp.WithDescription(descriptions.GetToolDescription("ekho_find_pdfs")),
		mcp.WithString("directory",
			mcp.Description("Folder to list (uses the configured folder if empty)"),
		),
	)
	s.mcpServer.AddTool(findTool, s.handleFindPDFs)

	processTool := mcp.NewTool(
		"ekho_process_folder",
		mcp.WithDescription(descriptions.GetToolDescription("ekho_process_folder")),
		mcp.WithString("directory",
			mcp.Description("Folder to process (uses the configured folder if empty)"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Derive names without modifying any file"),
		),
	)
	s.mcpServer.AddTool(processTool, s.handleProcessFolder)
}

// Handler functions
func (s *Server) handleDeriveFilename(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	derivation, err := naming.Derive(text, s.dict)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot derive filename: %v", err)), nil
	}

	return mcp.NewToolResultText(s.formatDerivation(derivation)), nil
}

func (s *Server) handleExtractDates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	dates := naming.ExtractDates(text)
	if len(dates) == 0 {
		return mcp.NewToolResultText("No dates found"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d dates:\n", len(dates))
	for _, d := range dates {
		fmt.Fprintf(&b, "  %s\n", d.Format("2006-01-02"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleParseName(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	canonical := naming.ParseName(raw, s.dict)
	if canonical == "" {
		return mcp.NewToolResultError(naming.ErrEmptyName.Error()), nil
	}

	code, err := naming.ShortCode(canonical)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Name: %s\nCode: %s\n", canonical, code)), nil
}

func (s *Server) handleFindPDFs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	directory, err := s.directoryArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	files, err := s.docs.FindPDFs(directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d PDF files in %s\n", len(files), directory)
	for i, file := range files {
		fmt.Fprintf(&b, "%d. %s (%d bytes)\n", i+1, file.Name, file.Size)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleProcessFolder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	directory, err := s.directoryArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	dryRun := s.config.DryRun
	if v, ok := request.GetArguments()["dry_run"]; ok {
		parsed, err := parseBool(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dryRun = parsed
	}

	runner, err := pipeline.NewRunner(s.docs, s.dict, pipeline.Options{
		Marker:            s.config.Marker,
		KeepCertification: s.config.KeepCertification,
		DryRun:            dryRun,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summary, err := runner.Run(ctx, directory)
	if summary == nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := s.formatSummary(summary)
	if err != nil {
		text += fmt.Sprintf("\nStopped early: %v\n", err)
	}
	return mcp.NewToolResultText(text), nil
}

// directoryArgument returns the directory argument, falling back to the
// configured folder
func (s *Server) directoryArgument(request mcp.CallToolRequest) (string, error) {
	directory := s.config.Directory
	if dir, ok := request.GetArguments()["directory"].(string); ok && dir != "" {
		directory = dir
	}
	if directory == "" {
		return "", errors.New("no directory given and none configured")
	}
	return directory, nil
}

func parseBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, fmt.Errorf("dry_run must be a boolean, got %q", b)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("dry_run must be a boolean, got %T", v)
	}
}

// Formatting methods
func (s *Server) formatDerivation(d *naming.Derivation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Filename: %s\n", d.Filename)
	fmt.Fprintf(&b, "Name: %s\n", d.CanonicalName)
	fmt.Fprintf(&b, "Code: %s\n", d.ShortCode)
	fmt.Fprintf(&b, "Dates (%d):", len(d.Dates))
	for _, date := range d.Dates {
		fmt.Fprintf(&b, " %s", date.Format("2006-01-02"))
	}
	b.WriteString("\n")
	return b.String()
}

func (s *Server) formatSummary(summary *pipeline.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processed %d PDF files in %s (run %s)\n",
		len(summary.Results), summary.Directory, summary.RunID)
	if summary.DryRun {
		b.WriteString("Dry run: no file was modified\n")
	}
	fmt.Fprintf(&b, "Renamed: %d, unchanged: %d, dry run: %d, failed: %d\n\n",
		summary.Count(pipeline.StatusRenamed),
		summary.Count(pipeline.StatusUnchanged),
		summary.Count(pipeline.StatusDryRun),
		summary.Count(pipeline.StatusFailed))

	for _, r := range summary.Results {
		switch r.Status {
		case pipeline.StatusFailed:
			fmt.Fprintf(&b, "✗ %s: %v\n", r.Name, r.Err)
		case pipeline.StatusUnchanged:
			fmt.Fprintf(&b, "= %s\n", r.Name)
		default:
			fmt.Fprintf(&b, "✓ %s -> %s\n", r.Name, r.NewName)
		}
	}
	return b.String()
}

// Run serves the tools on stdin/stdout until the client disconnects
func (s *Server) Run(ctx context.Context) error {
	slog.Debug("starting MCP server in stdio mode", "dir", s.config.Directory)

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
