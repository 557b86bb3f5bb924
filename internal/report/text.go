package report

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/prettymuchbryce/tidydownloads/internal/organizer"
)

const timestampLayout = "2006-01-02 15:04:05"

// Analysis renders a scan report.
func Analysis(r *organizer.ScanReport) string {
	if r.TotalFiles == 0 {
		return "[INFO] La carpeta de descargas está vacía"
	}

	var b strings.Builder
	b.WriteString("[ANÁLISIS] Carpeta de descargas\n\n")
	fmt.Fprintf(&b, "Carpeta: %s\n", r.Dir)
	fmt.Fprintf(&b, "Total de archivos: %d\n", r.TotalFiles)
	fmt.Fprintf(&b, "Tamaño total: %s MB\n\n", FormatMB(r.TotalSize))

	b.WriteString("Distribución por categorías:\n")
	for _, c := range r.Categories {
		fmt.Fprintf(&b, "• %s: %d archivos (%s MB)\n", c.Name, c.Count, FormatMB(c.Size))
		if !r.Detailed {
			continue
		}
		for _, f := range c.Largest {
			fmt.Fprintf(&b, "  - %s (%s MB)\n", f.Name, FormatMB(f.Size))
		}
		if hidden := c.Hidden(); hidden > 0 {
			fmt.Fprintf(&b, "  ... y %d archivos más\n", hidden)
		}
	}
	return b.String()
}

// AnalysisError renders a failed scan.
func AnalysisError(dir string, err error) string {
	if errors.Is(err, organizer.ErrNotFound) {
		return fmt.Sprintf("[ERROR] La carpeta de descargas no existe: %s", dir)
	}
	return fmt.Sprintf("[ERROR] Error al analizar: %s", errorText(err))
}

// Organize renders an organize result.
func Organize(r *organizer.OrganizeResult) string {
	if r.Scanned == 0 {
		return "[INFO] No hay archivos para organizar"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[ORGANIZACIÓN] Archivos - %s\n\n", modeText(r.DryRun))
	writeOutcomes(&b, r)

	if r.DryRun && len(r.Moved) > 0 {
		b.WriteString("\n" + dryRunTip)
	}
	return b.String()
}

// OrganizeInterrupted renders the files handled before a run stopped early,
// followed by the error that stopped it.
func OrganizeInterrupted(r *organizer.OrganizeResult, err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[ORGANIZACIÓN] Archivos - %s\n\n", modeText(r.DryRun))
	done := len(r.Moved) + len(r.Errors) + r.Skipped
	fmt.Fprintf(&b, "Procesados antes de detenerse: %d de %d\n\n", done, r.Scanned)
	writeOutcomes(&b, r)
	b.WriteString(OrganizeError(r.Source, err))
	return b.String()
}

func writeOutcomes(b *strings.Builder, r *organizer.OrganizeResult) {
	if len(r.Moved) > 0 {
		fmt.Fprintf(b, "Archivos procesados: %d\n\n", len(r.Moved))

		// Categories appear in the order their first file was processed.
		var order []string
		byCategory := make(map[string][]string)
		for _, m := range r.Moved {
			if _, seen := byCategory[m.Category]; !seen {
				order = append(order, m.Category)
			}
			byCategory[m.Category] = append(byCategory[m.Category], filepath.Base(m.OriginalPath))
		}
		for _, cat := range order {
			names := byCategory[cat]
			fmt.Fprintf(b, "%s (%d archivos):\n", cat, len(names))
			bullet(b, "  • ", names, 3, "archivos")
			b.WriteString("\n")
		}
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(b, "[ERRORES] (%d):\n", len(r.Errors))
		msgs := make([]string, 0, len(r.Errors))
		for _, e := range r.Errors {
			msgs = append(msgs, fmt.Sprintf("Error con %s: %s", filepath.Base(e.OriginalPath), errorText(e.Err)))
		}
		bullet(b, "  • ", msgs, 5, "errores")
	}
}

// OrganizeError renders a failed organize run.
func OrganizeError(dir string, err error) string {
	if errors.Is(err, organizer.ErrNotFound) {
		return fmt.Sprintf("[ERROR] La carpeta de descargas no existe: %s", dir)
	}
	return fmt.Sprintf("[ERROR] Error al organizar: %s", errorText(err))
}

// Structure renders the folders ensured by CreateStructure.
func Structure(r *organizer.StructureResult) string {
	var b strings.Builder
	b.WriteString("[ESTRUCTURA] Carpetas creadas\n\n")
	fmt.Fprintf(&b, "Ubicación: %s\n\n", r.Root)
	b.WriteString("Carpetas creadas:\n")
	for _, name := range r.Folders {
		fmt.Fprintf(&b, "  • %s\n", name)
	}
	return b.String()
}

// StructureError renders a failed CreateStructure call.
func StructureError(err error) string {
	return fmt.Sprintf("[ERROR] Error al crear estructura: %s", errorText(err))
}

// FileInfo renders the details of one file.
func FileInfo(d *organizer.FileDetails) string {
	var b strings.Builder
	b.WriteString("[ARCHIVO] Información detallada\n\n")
	fmt.Fprintf(&b, "Nombre: %s\n", d.Name)
	fmt.Fprintf(&b, "Ubicación: %s\n", d.Dir)
	fmt.Fprintf(&b, "Categoría: %s\n", d.Category)
	fmt.Fprintf(&b, "Tamaño: %s MB\n", FormatMB(d.Size))
	fmt.Fprintf(&b, "Modificado: %s\n", localTime(d.ModTime))
	fmt.Fprintf(&b, "Destino sugerido: %s\n", d.SuggestedDir)
	if d.MIME != "" {
		fmt.Fprintf(&b, "Tipo MIME: %s\n", d.MIME)
	}
	if !d.BirthTime.IsZero() {
		fmt.Fprintf(&b, "Creado: %s\n", localTime(d.BirthTime))
	}
	return b.String()
}

// FileInfoError renders a failed FileInfo call.
func FileInfoError(filename string, err error) string {
	if errors.Is(err, organizer.ErrUnknownFile) {
		return fmt.Sprintf("[ERROR] Archivo no encontrado: %s", filename)
	}
	return fmt.Sprintf("[ERROR] Error al obtener información: %s", errorText(err))
}

// Cleanup renders a prune result.
func Cleanup(r *organizer.PruneResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[LIMPIEZA] Carpetas vacías - %s\n\n", modeText(r.DryRun))

	if len(r.Removed) == 0 && len(r.Failed) == 0 {
		b.WriteString("[OK] No se encontraron carpetas vacías")
		return b.String()
	}

	if len(r.Removed) > 0 {
		fmt.Fprintf(&b, "Carpetas vacías encontradas: %d\n\n", len(r.Removed))
		bullet(&b, "  • ", r.RelativeRemoved(), 10, "carpetas")
	}

	if len(r.Failed) > 0 {
		if len(r.Removed) > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[ERRORES] (%d):\n", len(r.Failed))
		msgs := make([]string, 0, len(r.Failed))
		for _, f := range r.Failed {
			rel, err := filepath.Rel(r.Root, f.Path)
			if err != nil {
				rel = f.Path
			}
			msgs = append(msgs, fmt.Sprintf("%s: %s", rel, errorText(f.Err)))
		}
		bullet(&b, "  • ", msgs, 5, "errores")
	}

	if r.DryRun && len(r.Removed) > 0 {
		b.WriteString("\n" + dryRunTip)
	}
	return b.String()
}

// CleanupError renders a failed prune.
func CleanupError(organizedDir string, err error) string {
	if errors.Is(err, organizer.ErrNotFound) {
		return fmt.Sprintf("[ERROR] No existe la carpeta '%s'", organizedDir)
	}
	return fmt.Sprintf("[ERROR] Error en limpieza: %s", errorText(err))
}

// errorText strips the sentinel prefix so users see the underlying cause.
func errorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "operación cancelada"
	case errors.Is(err, context.DeadlineExceeded):
		return "tiempo de espera agotado"
	}
	msg := err.Error()
	for _, sentinel := range []error{organizer.ErrIOFailure, organizer.ErrInvalidPath, organizer.ErrNotFound, organizer.ErrUnknownFile} {
		if prefix := sentinel.Error() + ": "; strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}

func localTime(t time.Time) string {
	return t.In(time.Local).Format(timestampLayout)
}
