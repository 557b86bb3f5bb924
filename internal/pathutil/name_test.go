package pathutil

import "testing"

func TestSplitName(t *testing.T) {
	tests := []struct {
		name         string
		expectedStem string
		expectedExt  string
	}{
		{"file.txt", "file", ".txt"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"file", "file", ""},
		{".hidden", ".hidden", ""},
		{".hidden.txt", ".hidden", ".txt"},
		{"file.", "file.", ""},
		{"file.with.many.dots.txt", "file.with.many.dots", ".txt"},
		{"Photo.JPG", "Photo", ".JPG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ext := SplitName(tt.name)
			if stem != tt.expectedStem {
				t.Errorf("stem = %q, want %q", stem, tt.expectedStem)
			}
			if ext != tt.expectedExt {
				t.Errorf("ext = %q, want %q", ext, tt.expectedExt)
			}
		})
	}
}
