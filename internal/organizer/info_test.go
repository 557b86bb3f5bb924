package organizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prettymuchbryce/tidydownloads/internal/testutil"
)

func TestFileInfo(t *testing.T) {
	cfg := newTestConfig(t)
	o, mem := newTestOrganizer(t, cfg)

	path := testutil.Path(cfg.SourceDir, "Manual.PDF")
	mem.MustWriteFile(path, "%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")
	mtime := time.Date(2023, 11, 2, 8, 15, 30, 0, time.UTC)
	mem.MustChtimes(path, mtime)

	details, err := o.FileInfo(context.Background(), "Manual.PDF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if details.Name != "Manual.PDF" {
		t.Errorf("name = %q", details.Name)
	}
	if details.Dir != cfg.SourceDir {
		t.Errorf("dir = %q, want %q", details.Dir, cfg.SourceDir)
	}
	if details.Category != "Documentos" {
		t.Errorf("category = %q, want Documentos", details.Category)
	}
	if !details.ModTime.Equal(mtime) {
		t.Errorf("mod time = %v, want %v", details.ModTime, mtime)
	}
	if want := testutil.Path(cfg.SourceDir, "organizados", "Documentos", "2024-03"); details.SuggestedDir != want {
		t.Errorf("suggested = %q, want %q", details.SuggestedDir, want)
	}
	if details.MIME != "application/pdf" {
		t.Errorf("MIME = %q, want application/pdf", details.MIME)
	}
	if !details.BirthTime.IsZero() {
		t.Error("memory filesystem has no birth time")
	}
}

func TestFileInfo_MIMEDoesNotAffectCategory(t *testing.T) {
	cfg := newTestConfig(t)
	o, mem := newTestOrganizer(t, cfg)

	// PDF bytes behind an unknown extension are still "Otros".
	mem.MustWriteFile(testutil.Path(cfg.SourceDir, "disguised.bin"), "%PDF-1.7\n")

	details, err := o.FileInfo(context.Background(), "disguised.bin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Category != "Otros" {
		t.Errorf("category = %q, want Otros", details.Category)
	}
}

func TestFileInfo_Errors(t *testing.T) {
	cfg := newTestConfig(t)
	o, mem := newTestOrganizer(t, cfg)
	mem.MustMkdirAll(testutil.Path(cfg.SourceDir, "folder"))

	tests := []struct {
		name     string
		filename string
		wantErr  error
	}{
		{name: "missing file", filename: "nope.txt", wantErr: ErrUnknownFile},
		{name: "empty name", filename: "", wantErr: ErrInvalidPath},
		{name: "parent traversal", filename: "../secret.txt", wantErr: ErrInvalidPath},
		{name: "dot dot", filename: "..", wantErr: ErrInvalidPath},
		{name: "nested path", filename: "folder/file.txt", wantErr: ErrInvalidPath},
		{name: "backslash", filename: `folder\file.txt`, wantErr: ErrInvalidPath},
		{name: "directory", filename: "folder", wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := o.FileInfo(context.Background(), tt.filename)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FileInfo(%q) error = %v, want %v", tt.filename, err, tt.wantErr)
			}
		})
	}
}
