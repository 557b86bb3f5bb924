package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prettymuchbryce/tidydownloads/internal/organizer"
	"github.com/prettymuchbryce/tidydownloads/internal/testutil"
)

const mb = 1024 * 1024

func TestFormatMB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.0"},
		{1024, "0.0"},
		{10485, "0.01"},
		{mb, "1.0"},
		{mb + mb/2, "1.5"},
		{mb + mb/4, "1.25"},
		{1234567, "1.18"},
		{10 * mb, "10.0"},
		{12*mb + 1024, "12.0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatMB(tt.bytes); got != tt.want {
				t.Errorf("FormatMB(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func scenarioScan(detailed bool) *organizer.ScanReport {
	return &organizer.ScanReport{
		Dir:        "/dl",
		TotalFiles: 3,
		TotalSize:  12*mb + 1024,
		Detailed:   detailed,
		Categories: []organizer.CategoryStats{
			{Name: "Documentos", Count: 1, Size: 10 * mb},
			{Name: "Imágenes", Count: 1, Size: 2 * mb},
			{Name: "Otros", Count: 1, Size: 1024},
		},
	}
}

func TestAnalysis(t *testing.T) {
	want := "[ANÁLISIS] Carpeta de descargas\n\n" +
		"Carpeta: /dl\n" +
		"Total de archivos: 3\n" +
		"Tamaño total: 12.0 MB\n\n" +
		"Distribución por categorías:\n" +
		"• Documentos: 1 archivos (10.0 MB)\n" +
		"• Imágenes: 1 archivos (2.0 MB)\n" +
		"• Otros: 1 archivos (0.0 MB)\n"

	if got := Analysis(scenarioScan(false)); got != want {
		t.Errorf("Analysis mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestAnalysis_Detailed(t *testing.T) {
	var largest []organizer.FileRecord
	for i := 7; i >= 3; i-- {
		largest = append(largest, organizer.FileRecord{Name: fmt.Sprintf("doc%d.pdf", i), Size: int64(i) * mb})
	}
	r := &organizer.ScanReport{
		Dir:        "/dl",
		TotalFiles: 7,
		TotalSize:  28 * mb,
		Detailed:   true,
		Categories: []organizer.CategoryStats{
			{Name: "Documentos", Count: 7, Size: 28 * mb, Largest: largest},
		},
	}

	got := Analysis(r)
	if !strings.Contains(got, "• Documentos: 7 archivos (28.0 MB)\n  - doc7.pdf (7.0 MB)\n") {
		t.Errorf("missing category header or first file:\n%s", got)
	}
	if strings.Contains(got, "doc2.pdf") {
		t.Errorf("only five files should be listed:\n%s", got)
	}
	if !strings.HasSuffix(got, "  - doc3.pdf (3.0 MB)\n  ... y 2 archivos más\n") {
		t.Errorf("expected remainder summary:\n%s", got)
	}
}

func TestAnalysis_Empty(t *testing.T) {
	got := Analysis(&organizer.ScanReport{Dir: "/dl"})
	if got != "[INFO] La carpeta de descargas está vacía" {
		t.Errorf("unexpected empty report: %q", got)
	}
}

func TestAnalysisError(t *testing.T) {
	notFound := fmt.Errorf("%w: source directory /dl", organizer.ErrNotFound)
	if got := AnalysisError("/dl", notFound); got != "[ERROR] La carpeta de descargas no existe: /dl" {
		t.Errorf("unexpected: %q", got)
	}
	ioErr := fmt.Errorf("%w: %w", organizer.ErrIOFailure, errors.New("permission denied"))
	if got := AnalysisError("/dl", ioErr); got != "[ERROR] Error al analizar: permission denied" {
		t.Errorf("unexpected: %q", got)
	}
}

func moved(source, category, name string) organizer.MoveOutcome {
	return organizer.MoveOutcome{
		OriginalPath: testutil.Path(source, name),
		TargetPath:   testutil.Path(source, "organizados", category, name),
		Category:     category,
	}
}

func TestOrganize(t *testing.T) {
	source := testutil.Path("/", "dl")
	r := &organizer.OrganizeResult{
		Source:  source,
		DryRun:  true,
		Scanned: 6,
		Moved: []organizer.MoveOutcome{
			moved(source, "Otros", "a.xyz"),
			moved(source, "Documentos", "b.pdf"),
			moved(source, "Documentos", "c.pdf"),
			moved(source, "Documentos", "d.pdf"),
			moved(source, "Documentos", "e.pdf"),
			moved(source, "Documentos", "f.pdf"),
		},
	}

	want := "[ORGANIZACIÓN] Archivos - [SIMULACIÓN]\n\n" +
		"Archivos procesados: 6\n\n" +
		"Otros (1 archivos):\n" +
		"  • a.xyz\n\n" +
		"Documentos (5 archivos):\n" +
		"  • b.pdf\n" +
		"  • c.pdf\n" +
		"  • d.pdf\n" +
		"  ... y 2 archivos más\n\n" +
		"\n[TIP] Para ejecutar realmente, usa dry_run: false"

	if got := Organize(r); got != want {
		t.Errorf("Organize mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestOrganize_Errors(t *testing.T) {
	source := testutil.Path("/", "dl")
	r := &organizer.OrganizeResult{Source: source, Scanned: 7}
	for i := 0; i < 7; i++ {
		r.Errors = append(r.Errors, organizer.MoveOutcome{
			OriginalPath: testutil.Path(source, fmt.Sprintf("f%d.txt", i)),
			Err:          fmt.Errorf("%w: %w", organizer.ErrIOFailure, errors.New("disk full")),
		})
	}

	got := Organize(r)
	if !strings.HasPrefix(got, "[ORGANIZACIÓN] Archivos - [EJECUTADO]\n\n[ERRORES] (7):\n") {
		t.Errorf("unexpected header:\n%s", got)
	}
	if !strings.Contains(got, "  • Error con f0.txt: disk full\n") {
		t.Errorf("missing first error:\n%s", got)
	}
	if strings.Contains(got, "f5.txt") {
		t.Errorf("only five errors should be listed:\n%s", got)
	}
	if !strings.HasSuffix(got, "  ... y 2 errores más\n") {
		t.Errorf("expected error remainder summary:\n%s", got)
	}
	if strings.Contains(got, "[TIP]") {
		t.Error("real runs should not print the dry-run tip")
	}
}

func TestOrganize_NothingToDo(t *testing.T) {
	if got := Organize(&organizer.OrganizeResult{}); got != "[INFO] No hay archivos para organizar" {
		t.Errorf("unexpected: %q", got)
	}
}

func TestOrganizeError_Cancelled(t *testing.T) {
	got := OrganizeError("/dl", context.Canceled)
	if got != "[ERROR] Error al organizar: operación cancelada" {
		t.Errorf("unexpected: %q", got)
	}
}

func TestOrganizeInterrupted(t *testing.T) {
	source := testutil.Path("/", "dl")
	r := &organizer.OrganizeResult{
		Source:  source,
		Scanned: 4,
		Moved: []organizer.MoveOutcome{
			moved(source, "Documentos", "a.pdf"),
			moved(source, "Audio", "b.mp3"),
		},
	}

	want := "[ORGANIZACIÓN] Archivos - [EJECUTADO]\n\n" +
		"Procesados antes de detenerse: 2 de 4\n\n" +
		"Archivos procesados: 2\n\n" +
		"Documentos (1 archivos):\n" +
		"  • a.pdf\n\n" +
		"Audio (1 archivos):\n" +
		"  • b.mp3\n\n" +
		"[ERROR] Error al organizar: operación cancelada"

	if got := OrganizeInterrupted(r, context.Canceled); got != want {
		t.Errorf("OrganizeInterrupted mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestOrganizeInterrupted_NothingMoved(t *testing.T) {
	r := &organizer.OrganizeResult{Source: "/dl", DryRun: true, Scanned: 3}

	got := OrganizeInterrupted(r, context.DeadlineExceeded)
	want := "[ORGANIZACIÓN] Archivos - [SIMULACIÓN]\n\n" +
		"Procesados antes de detenerse: 0 de 3\n\n" +
		"[ERROR] Error al organizar: tiempo de espera agotado"
	if got != want {
		t.Errorf("unexpected:\n%q", got)
	}
}

func TestStructure(t *testing.T) {
	r := &organizer.StructureResult{Root: "/dl/organizados", Folders: []string{"Documentos", "Audio"}}
	want := "[ESTRUCTURA] Carpetas creadas\n\n" +
		"Ubicación: /dl/organizados\n\n" +
		"Carpetas creadas:\n" +
		"  • Documentos\n" +
		"  • Audio\n"
	if got := Structure(r); got != want {
		t.Errorf("Structure mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestFileInfo(t *testing.T) {
	d := &organizer.FileDetails{
		Name:         "report.pdf",
		Dir:          "/dl",
		Category:     "Documentos",
		Size:         10 * mb,
		ModTime:      time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local),
		SuggestedDir: "/dl/organizados/Documentos/2024-03",
		MIME:         "application/pdf",
	}
	want := "[ARCHIVO] Información detallada\n\n" +
		"Nombre: report.pdf\n" +
		"Ubicación: /dl\n" +
		"Categoría: Documentos\n" +
		"Tamaño: 10.0 MB\n" +
		"Modificado: 2024-03-01 09:05:07\n" +
		"Destino sugerido: /dl/organizados/Documentos/2024-03\n" +
		"Tipo MIME: application/pdf\n"
	if got := FileInfo(d); got != want {
		t.Errorf("FileInfo mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestFileInfoError(t *testing.T) {
	unknown := fmt.Errorf("%w: nope.txt", organizer.ErrUnknownFile)
	if got := FileInfoError("nope.txt", unknown); got != "[ERROR] Archivo no encontrado: nope.txt" {
		t.Errorf("unexpected: %q", got)
	}
	invalid := fmt.Errorf("%w: %q must be a plain file name", organizer.ErrInvalidPath, "a/b")
	if got := FileInfoError("a/b", invalid); !strings.HasPrefix(got, "[ERROR] Error al obtener información: ") {
		t.Errorf("unexpected: %q", got)
	}
}

func TestCleanup(t *testing.T) {
	root := testutil.Path("/", "dl", "organizados")
	r := &organizer.PruneResult{Root: root, DryRun: true}
	for i := 0; i < 12; i++ {
		r.Removed = append(r.Removed, testutil.Path(root, "Otros", fmt.Sprintf("2024-%02d", i+1)))
	}

	got := Cleanup(r)
	if !strings.HasPrefix(got, "[LIMPIEZA] Carpetas vacías - [SIMULACIÓN]\n\nCarpetas vacías encontradas: 12\n\n") {
		t.Errorf("unexpected header:\n%s", got)
	}
	if !strings.Contains(got, "  • "+testutil.Path("Otros", "2024-01")+"\n") {
		t.Errorf("expected relative paths:\n%s", got)
	}
	if strings.Contains(got, "2024-11") {
		t.Errorf("only ten folders should be listed:\n%s", got)
	}
	if !strings.HasSuffix(got, "  ... y 2 carpetas más\n\n[TIP] Para ejecutar realmente, usa dry_run: false") {
		t.Errorf("expected summary and tip:\n%s", got)
	}
}

func TestCleanup_NothingFound(t *testing.T) {
	got := Cleanup(&organizer.PruneResult{Root: "/dl/organizados"})
	if got != "[LIMPIEZA] Carpetas vacías - [EJECUTADO]\n\n[OK] No se encontraron carpetas vacías" {
		t.Errorf("unexpected: %q", got)
	}
}

func TestCleanupError(t *testing.T) {
	notFound := fmt.Errorf("%w: organized directory /dl/organizados", organizer.ErrNotFound)
	if got := CleanupError("organizados", notFound); got != "[ERROR] No existe la carpeta 'organizados'" {
		t.Errorf("unexpected: %q", got)
	}
}

func TestWriteOrganizeTree(t *testing.T) {
	source := testutil.Path("/", "dl")
	r := &organizer.OrganizeResult{
		Source:  source,
		DryRun:  true,
		Scanned: 4,
		Skipped: 1,
		Moved: []organizer.MoveOutcome{
			moved(source, "Documentos", "b.pdf"),
			moved(source, "Audio", "song.mp3"),
		},
		Errors: []organizer.MoveOutcome{
			{OriginalPath: testutil.Path(source, "locked.zip"), Err: errors.New("permission denied")},
		},
	}

	var buf bytes.Buffer
	if err := WriteOrganizeTree(&buf, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"[SIMULACIÓN]",
		"Documentos (1)",
		"Audio (1)",
		"b.pdf",
		testutil.Path("organizados", "Audio", "song.mp3"),
		"errores (1)",
		"locked.zip",
		"permission denied",
		"1 archivos fuera del filtro",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Documentos") > strings.Index(out, "Audio") {
		t.Errorf("categories should keep processing order:\n%s", out)
	}
}

func TestAnalysisTable(t *testing.T) {
	out := AnalysisTable(scenarioScan(false))
	for _, want := range []string{"Categoría", "Documentos", "Imágenes", "Otros", "10.0", "Total", "12.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
