package organizer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prettymuchbryce/tidydownloads/internal/testutil"
)

func TestScan(t *testing.T) {
	cfg := newTestConfig(t)
	o, mem := newTestOrganizer(t, cfg)

	writeSized(t, mem, testutil.Path(cfg.SourceDir, "report.pdf"), 10*mb)
	writeSized(t, mem, testutil.Path(cfg.SourceDir, "photo.jpg"), 2*mb)
	writeSized(t, mem, testutil.Path(cfg.SourceDir, "unknown.xyz"), 1024)
	// Subdirectories and their contents are not scanned.
	writeSized(t, mem, testutil.Path(cfg.SourceDir, "nested", "inner.pdf"), 5*mb)

	report, err := o.Scan(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalFiles != 3 {
		t.Errorf("expected 3 files, got %d", report.TotalFiles)
	}
	if report.TotalSize != 12*mb+1024 {
		t.Errorf("expected total size %d, got %d", 12*mb+1024, report.TotalSize)
	}

	want := []struct {
		name  string
		count int
		size  int64
	}{
		{"Documentos", 1, 10 * mb},
		{"Imágenes", 1, 2 * mb},
		{"Otros", 1, 1024},
	}
	if len(report.Categories) != len(want) {
		t.Fatalf("expected %d categories, got %+v", len(want), report.Categories)
	}
	for i, w := range want {
		got := report.Categories[i]
		if got.Name != w.name || got.Count != w.count || got.Size != w.size {
			t.Errorf("category %d = {%s %d %d}, want {%s %d %d}", i, got.Name, got.Count, got.Size, w.name, w.count, w.size)
		}
		if len(got.Largest) != 0 {
			t.Errorf("non-detailed scan should not keep files, got %d", len(got.Largest))
		}
	}
}

func TestScan_DetailedKeepsFiveLargest(t *testing.T) {
	cfg := newTestConfig(t)
	o, mem := newTestOrganizer(t, cfg)

	for i := 1; i <= 7; i++ {
		writeSized(t, mem, testutil.Path(cfg.SourceDir, fmt.Sprintf("doc%d.pdf", i)), int64(i*1000))
	}
	// Ties are broken by name.
	writeSized(t, mem, testutil.Path(cfg.SourceDir, "a.txt"), 7000)

	report, err := o.Scan(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Categories) != 1 {
		t.Fatalf("expected one category, got %+v", report.Categories)
	}

	docs := report.Categories[0]
	if docs.Count != 8 {
		t.Errorf("expected 8 documents, got %d", docs.Count)
	}
	wantNames := []string{"a.txt", "doc7.pdf", "doc6.pdf", "doc5.pdf", "doc4.pdf"}
	if len(docs.Largest) != len(wantNames) {
		t.Fatalf("expected %d largest files, got %d", len(wantNames), len(docs.Largest))
	}
	for i, name := range wantNames {
		if docs.Largest[i].Name != name {
			t.Errorf("largest[%d] = %s, want %s", i, docs.Largest[i].Name, name)
		}
	}
	if docs.Hidden() != 3 {
		t.Errorf("expected 3 hidden files, got %d", docs.Hidden())
	}
}

func TestScan_IgnorePatterns(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Ignore = []string{"*.crdownload", ".*"}
	o, mem := newTestOrganizer(t, cfg)

	mem.MustWriteFile(testutil.Path(cfg.SourceDir, "movie.mkv.crdownload"), "partial")
	mem.MustWriteFile(testutil.Path(cfg.SourceDir, ".DS_Store"), "junk")
	mem.MustWriteFile(testutil.Path(cfg.SourceDir, "notes.txt"), "keep")

	report, err := o.Scan(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalFiles != 1 {
		t.Errorf("expected only notes.txt to be scanned, got %d files", report.TotalFiles)
	}
}

func TestScan_EmptyDirectory(t *testing.T) {
	cfg := newTestConfig(t)
	o, _ := newTestOrganizer(t, cfg)

	report, err := o.Scan(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalFiles != 0 || len(report.Categories) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	cfg := newTestConfig(t)
	o, mem := newTestOrganizer(t, cfg)
	mem.MustRemoveAll(cfg.SourceDir)

	_, err := o.Scan(context.Background(), false)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScan_SourceIsAFile(t *testing.T) {
	cfg := newTestConfig(t)
	o, mem := newTestOrganizer(t, cfg)
	mem.MustRemoveAll(cfg.SourceDir)
	mem.MustWriteFile(cfg.SourceDir, "not a dir")

	_, err := o.Scan(context.Background(), false)
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
}
