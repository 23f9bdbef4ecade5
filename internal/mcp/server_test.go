package mcp

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/a3tai/ekho-renamer/internal/config"
	"github.com/a3tai/ekho-renamer/internal/naming"
	"github.com/a3tai/ekho-renamer/internal/pdf"
)

// textDocuments serves the bytes of each file as its text and never
// modifies anything.
type textDocuments struct{}

func (textDocuments) FindPDFs(directory string) ([]pdf.FileInfo, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}
	var files []pdf.FileInfo
	for _, e := range entries {
		info, err := e.Info()
		if err != nil || !strings.HasSuffix(e.Name(), ".pdf") {
			continue
		}
		files = append(files, pdf.FileInfo{
			Path: filepath.Join(directory, e.Name()),
			Name: e.Name(),
			Size: info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (textDocuments) Unlock(path string) (*pdf.UnlockResult, error) {
	return &pdf.UnlockResult{Path: path}, nil
}

func (textDocuments) StripPages(path, _ string) (*pdf.StripResult, error) {
	return &pdf.StripResult{Path: path, PageCount: 1}, nil
}

func (textDocuments) ExtractText(path string) (string, error) {
	text, err := os.ReadFile(path)
	return string(text), err
}

const timesheet = "Period 12 Starts 2024.03.01\nName: János Kovács\nDate\n2024.03.05\n2024.03.10\n"

func newTestServer(t *testing.T, dir string) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeStdio
	cfg.Directory = dir

	server, err := NewServer(cfg, textDocuments{}, naming.NewDictionary("János"))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return server
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestNewServer(t *testing.T) {
	cfg := config.DefaultConfig()
	dict := naming.NewDictionary()

	tests := []struct {
		name    string
		cfg     *config.Config
		docs    textDocuments
		useDocs bool
		dict    *naming.Dictionary
		wantErr bool
	}{
		{name: "valid", cfg: cfg, useDocs: true, dict: dict},
		{name: "nil config", cfg: nil, useDocs: true, dict: dict, wantErr: true},
		{name: "nil documents", cfg: cfg, useDocs: false, dict: dict, wantErr: true},
		{name: "nil dictionary", cfg: cfg, useDocs: true, dict: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var server *Server
			var err error
			if tt.useDocs {
				server, err = NewServer(tt.cfg, tt.docs, tt.dict)
			} else {
				server, err = NewServer(tt.cfg, nil, tt.dict)
			}

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if server.mcpServer == nil {
				t.Error("mcpServer should not be nil")
			}
		})
	}
}

func TestServer_HandleDeriveFilename(t *testing.T) {
	server := newTestServer(t, "")

	result, err := server.handleDeriveFilename(context.Background(), callRequest(map[string]interface{}{
		"text": timesheet,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", extractTextFromResult(result))
	}

	text := extractTextFromResult(result)
	for _, want := range []string{
		"Filename: KOVACS JANOS EKHO - KOVA_0305-0310 - WE250309.pdf",
		"Code: KOVA",
		"2024-03-05 2024-03-10",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("result %q missing %q", text, want)
		}
	}
}

func TestServer_HandleDeriveFilename_Errors(t *testing.T) {
	server := newTestServer(t, "")

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr string
	}{
		{name: "missing text", args: map[string]interface{}{}, wantErr: "text"},
		{name: "no name label", args: map[string]interface{}{"text": "Date 2024.03.05"}, wantErr: "label"},
		{name: "no date header", args: map[string]interface{}{"text": "Name: Kiss Anna"}, wantErr: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := server.handleDeriveFilename(context.Background(), callRequest(tt.args))
			if err != nil {
				t.Fatalf("handler failed: %v", err)
			}
			if !result.IsError {
				t.Fatalf("expected tool error, got %q", extractTextFromResult(result))
			}
			if text := extractTextFromResult(result); !strings.Contains(strings.ToLower(text), tt.wantErr) {
				t.Errorf("error %q should mention %q", text, tt.wantErr)
			}
		})
	}
}

func TestServer_HandleExtractDates(t *testing.T) {
	server := newTestServer(t, "")

	result, err := server.handleExtractDates(context.Background(), callRequest(map[string]interface{}{
		"text": "10/03/2024 and 2024.03.05 and 2024.02.30",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := extractTextFromResult(result)
	if !strings.Contains(text, "Found 2 dates") {
		t.Errorf("unexpected result: %q", text)
	}
	if strings.Index(text, "2024-03-05") > strings.Index(text, "2024-10-03") {
		t.Errorf("dates should be sorted ascending: %q", text)
	}

	result, err = server.handleExtractDates(context.Background(), callRequest(map[string]interface{}{
		"text": "nothing here",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if text := extractTextFromResult(result); text != "No dates found" {
		t.Errorf("unexpected result: %q", text)
	}
}

func TestServer_HandleParseName(t *testing.T) {
	server := newTestServer(t, "")

	result, err := server.handleParseName(context.Background(), callRequest(map[string]interface{}{
		"name": "János Kovács Company Kft.",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if text := extractTextFromResult(result); text != "Name: KOVACS JANOS\nCode: KOVA\n" {
		t.Errorf("unexpected result: %q", text)
	}

	result, err = server.handleParseName(context.Background(), callRequest(map[string]interface{}{
		"name": "Company only",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for an empty name")
	}
}

func TestServer_HandleFindPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.pdf", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
	}
	server := newTestServer(t, dir)

	result, err := server.handleFindPDFs(context.Background(), callRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := extractTextFromResult(result)
	if !strings.Contains(text, "Found 2 PDF files") {
		t.Errorf("unexpected result: %q", text)
	}
	if !strings.Contains(text, "1. a.pdf") || !strings.Contains(text, "2. b.pdf") {
		t.Errorf("files should be listed by name: %q", text)
	}
}

func TestServer_HandleProcessFolder_DryRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "download.pdf")
	if err := os.WriteFile(src, []byte(timesheet), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("no label"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	server := newTestServer(t, "")

	result, err := server.handleProcessFolder(context.Background(), callRequest(map[string]interface{}{
		"directory": dir,
		"dry_run":   true,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := extractTextFromResult(result)
	for _, want := range []string{
		"Processed 2 PDF files",
		"Dry run: no file was modified",
		"failed: 1",
		"download.pdf -> KOVACS JANOS EKHO - KOVA_0305-0310 - WE250309.pdf",
		"broken.pdf",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("result %q missing %q", text, want)
		}
	}

	if _, err := os.Stat(src); err != nil {
		t.Errorf("dry run should leave the source in place: %v", err)
	}
}

func TestServer_HandleProcessFolder_Rename(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "download.pdf"), []byte(timesheet), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	server := newTestServer(t, dir)

	result, err := server.handleProcessFolder(context.Background(), callRequest(map[string]interface{}{
		"dry_run": "false",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !strings.Contains(extractTextFromResult(result), "Renamed: 1") {
		t.Errorf("unexpected result: %q", extractTextFromResult(result))
	}

	if _, err := os.Stat(filepath.Join(dir, "KOVACS JANOS EKHO - KOVA_0305-0310 - WE250309.pdf")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
}

func TestServer_InvalidArguments(t *testing.T) {
	server := newTestServer(t, "")

	tests := []struct {
		name string
		call func() (*mcp.CallToolResult, error)
	}{
		{
			name: "process without directory",
			call: func() (*mcp.CallToolResult, error) {
				return server.handleProcessFolder(context.Background(), callRequest(map[string]interface{}{}))
			},
		},
		{
			name: "invalid dry_run",
			call: func() (*mcp.CallToolResult, error) {
				return server.handleProcessFolder(context.Background(), callRequest(map[string]interface{}{
					"directory": t.TempDir(),
					"dry_run":   "maybe",
				}))
			},
		},
		{
			name: "find without directory",
			call: func() (*mcp.CallToolResult, error) {
				return server.handleFindPDFs(context.Background(), callRequest(map[string]interface{}{}))
			},
		},
		{
			name: "parse without name",
			call: func() (*mcp.CallToolResult, error) {
				return server.handleParseName(context.Background(), callRequest(map[string]interface{}{}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.call()
			if err != nil {
				t.Fatalf("handler returned error instead of tool result: %v", err)
			}
			if !result.IsError {
				t.Errorf("expected tool error, got %q", extractTextFromResult(result))
			}
		})
	}
}

// Helper function to extract text from a CallToolResult
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}
