// Package report renders operation results as human-readable text.
// UI strings are Spanish, as in the rest of the user-facing output.
package report

import (
	"strconv"
	"strings"
)

const bytesPerMB = 1024 * 1024

// FormatMB renders a byte count in megabytes rounded to two decimals.
// Trailing zeros are dropped but at least one decimal is kept: 10 MB is "10.0", 1 KB is "0.0".
func FormatMB(bytes int64) string {
	mb := float64(bytes) / bytesPerMB
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(mb, 'f', 2, 64), 64)
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// bullet lists at most limit items and summarizes the rest with "... y N <noun> más".
func bullet(b *strings.Builder, prefix string, items []string, limit int, noun string) {
	for i, item := range items {
		if i == limit {
			break
		}
		b.WriteString(prefix + item + "\n")
	}
	if len(items) > limit {
		b.WriteString("  ... y " + strconv.Itoa(len(items)-limit) + " " + noun + " más\n")
	}
}

func modeText(dryRun bool) string {
	if dryRun {
		return "[SIMULACIÓN]"
	}
	return "[EJECUTADO]"
}

const dryRunTip = "[TIP] Para ejecutar realmente, usa dry_run: false"
