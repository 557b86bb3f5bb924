//go:build integration

package harness

// File creates a FileEntry for a file at the given path.
// Path should use forward slashes regardless of OS.
func File(path string) FileEntry {
	return FileEntry{Path: path, IsDir: false}
}

// Dir creates a FileEntry for a directory at the given path.
// Path should use forward slashes regardless of OS.
func Dir(path string) FileEntry {
	return FileEntry{Path: path, IsDir: true}
}

// WithContent sets the file content.
func (f FileEntry) WithContent(content string) FileEntry {
	f.Content = content
	return f
}

// WithSize sets the file size (creates file filled with zero bytes).
func (f FileEntry) WithSize(size int64) FileEntry {
	f.Size = size
	return f
}
