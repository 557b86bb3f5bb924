//go:build integration

package cmd

import (
	"testing"

	"github.com/prettymuchbryce/tidydownloads/internal/testutil/harness"
)

const watchConfig = `
source_dir: {{join .TmpDir "Downloads"}}
lock_dir: {{join .TmpDir "locks"}}
ignore:
  - "*.part"
settings:
  create_date_subfolders: false
watch:
  debounce: 50ms
logging:
  level: debug
`

func TestWatch_OrganizesNewDownloads(t *testing.T) {
	harness.RunTable(t, []harness.TestCase{
		{
			Name:   "files present at startup",
			Config: watchConfig,
			Before: []harness.FileEntry{
				harness.File("Downloads/report.pdf").WithContent("pdf"),
				harness.File("Downloads/song.mp3").WithSize(1024),
			},
			Expect: []harness.FileEntry{
				harness.File("Downloads/organizados/Documentos/report.pdf"),
				harness.File("Downloads/organizados/Audio/song.mp3"),
			},
			Missing: []string{"Downloads/report.pdf", "Downloads/song.mp3"},
		},
		{
			Name:   "new file after startup",
			Config: watchConfig,
			Before: []harness.FileEntry{
				harness.Dir("Downloads"),
			},
			Trigger: []harness.FileEntry{
				harness.File("Downloads/photo.png").WithContent("png"),
			},
			Expect: []harness.FileEntry{
				harness.File("Downloads/organizados/Imágenes/photo.png"),
			},
			Missing: []string{"Downloads/photo.png"},
		},
		{
			Name:   "collision gets a suffix",
			Config: watchConfig,
			Before: []harness.FileEntry{
				harness.File("Downloads/organizados/Documentos/notes.txt").WithContent("old"),
			},
			Trigger: []harness.FileEntry{
				harness.File("Downloads/notes.txt").WithContent("new"),
			},
			Expect: []harness.FileEntry{
				harness.File("Downloads/organizados/Documentos/notes.txt"),
				harness.File("Downloads/organizados/Documentos/notes_1.txt"),
			},
			Missing: []string{"Downloads/notes.txt"},
		},
		{
			Name:   "partial downloads and subfolders stay",
			Config: watchConfig,
			Before: []harness.FileEntry{
				harness.Dir("Downloads/project"),
			},
			Trigger: []harness.FileEntry{
				harness.File("Downloads/movie.mkv.part").WithSize(10),
				harness.File("Downloads/project/main.py").WithContent("print()"),
				harness.File("Downloads/done.zip").WithContent("zip"),
			},
			Expect: []harness.FileEntry{
				harness.File("Downloads/movie.mkv.part"),
				harness.File("Downloads/project/main.py"),
				harness.File("Downloads/organizados/Comprimidos/done.zip"),
			},
		},
		{
			Name:   "source folder created after startup",
			Config: watchConfig,
			Trigger: []harness.FileEntry{
				harness.File("Downloads/late.csv").WithContent("a,b"),
			},
			Expect: []harness.FileEntry{
				harness.File("Downloads/organizados/Hojas de cálculo/late.csv"),
			},
		},
	})
}
