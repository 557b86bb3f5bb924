package pathutil

import "strings"

// SplitName splits a file name into stem and final extension.
// A leading dot belongs to the stem, so hidden files without a further dot have no extension.
// Examples:
//   - "report.pdf" → ("report", ".pdf")
//   - "archive.tar.gz" → ("archive.tar", ".gz")
//   - ".bashrc" → (".bashrc", "")
//   - "file." → ("file.", "")
func SplitName(name string) (stem, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return name, ""
	}
	return name[:idx], name[idx:]
}
