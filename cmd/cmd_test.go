package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prettymuchbryce/tidydownloads/internal/state"
)

// setupDownloads writes a config for a fresh downloads folder and returns both paths.
func setupDownloads(t *testing.T, files ...string) (cfgPath, source string) {
	t.Helper()
	tmpDir := t.TempDir()
	source = filepath.Join(tmpDir, "Downloads")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(source, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfgPath = filepath.Join(tmpDir, "config.yaml")
	config := fmt.Sprintf("source_dir: %s\nlock_dir: %s\nsettings:\n  create_date_subfolders: false\n",
		source, filepath.Join(tmpDir, "locks"))
	if err := os.WriteFile(cfgPath, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, source
}

func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	cfgPath, _ := setupDownloads(t, "a.pdf", "b.mp3", "c.xyz")

	out, _, err := executeCommand(t, "analyze", "--config", cfgPath, "--details=false", "--table=false")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{"Total de archivos: 3", "• Audio: 1 archivos", "• Otros: 1 archivos"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestAnalyzeCommand_Table(t *testing.T) {
	cfgPath, _ := setupDownloads(t, "a.pdf")

	out, _, err := executeCommand(t, "analyze", "--config", cfgPath, "--details=false", "--table")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "Documentos") || !strings.Contains(out, "Total") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestOrganizeCommand(t *testing.T) {
	cfgPath, source := setupDownloads(t, "report.pdf")

	out, _, err := executeCommand(t, "organize", "--config", cfgPath, "--dry-run", "--tree=false")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	if !strings.Contains(out, "[SIMULACIÓN]") {
		t.Errorf("expected dry-run report:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(source, "report.pdf")); err != nil {
		t.Fatalf("dry run moved the file: %v", err)
	}

	out, _, err = executeCommand(t, "organize", "--config", cfgPath, "--dry-run=false", "--tree")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	if !strings.Contains(out, "report.pdf") {
		t.Errorf("expected tree to list report.pdf:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(source, "organizados", "Documentos", "report.pdf")); err != nil {
		t.Errorf("file was not organized: %v", err)
	}
}

func TestInfoCommand(t *testing.T) {
	cfgPath, _ := setupDownloads(t, "photo.png")

	out, _, err := executeCommand(t, "info", "--config", cfgPath, "photo.png")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if !strings.Contains(out, "Categoría: Imágenes") {
		t.Errorf("unexpected output:\n%s", out)
	}

	_, stderr, err := executeCommand(t, "info", "--config", cfgPath, "missing.png")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(stderr, "[ERROR] Archivo no encontrado: missing.png") {
		t.Errorf("unexpected stderr:\n%s", stderr)
	}
}

func TestStructureAndCleanupCommands(t *testing.T) {
	cfgPath, source := setupDownloads(t)

	out, _, err := executeCommand(t, "structure", "--config", cfgPath)
	if err != nil {
		t.Fatalf("structure: %v", err)
	}
	if !strings.Contains(out, "[ESTRUCTURA]") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(source, "organizados", "Audio")); err != nil {
		t.Fatalf("category folder missing: %v", err)
	}

	out, _, err = executeCommand(t, "cleanup", "--config", cfgPath, "--dry-run=false")
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if !strings.Contains(out, "Carpetas vacías encontradas: 8") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(source, "organizados", "Audio")); !os.IsNotExist(err) {
		t.Errorf("empty folder should be removed, stat err = %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	cfgPath, source := setupDownloads(t, "a.zip")

	out, _, err := executeCommand(t, "status", "--config", cfgPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{source, "Comprimidos", "1 files"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestStatusCommand_LastWatchRun(t *testing.T) {
	cfgPath, source := setupDownloads(t)

	st, err := state.LoadFrom(state.PathFor(cfgPath))
	if err != nil {
		t.Fatal(err)
	}
	run := state.RunState{LastRunAt: time.Now().Add(-2 * time.Hour), LastDuration: 40 * time.Millisecond, FilesMoved: 7}
	if err := st.UpdateRun(source, run); err != nil {
		t.Fatal(err)
	}

	out, _, err := executeCommand(t, "status", "--config", cfgPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "2 hours ago (40ms, 7 files)") {
		t.Errorf("expected last run summary in output:\n%s", out)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1.5m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
