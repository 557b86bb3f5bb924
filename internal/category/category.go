// Package category maps file extensions to named categories.
package category

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/prettymuchbryce/tidydownloads/internal/pathutil"
)

// Other is the catch-all category for extensions that no rule recognizes.
const Other = "Otros"

// Rule is a named bucket of recognized extensions.
type Rule struct {
	Name        string     `yaml:"name" toml:"name"`
	Extensions  StringList `yaml:"extensions" toml:"extensions"`
	Description string     `yaml:"description" toml:"description"`
}

// Table is an ordered set of rules plus the implicit Other fallback.
// The zero value classifies everything as Other.
type Table struct {
	rules []Rule
	index map[string]string
}

// NewTable builds a Table from rules in declaration order.
// Names are NFC-normalized and extensions lower-cased with a leading dot.
// When two rules share an extension, the first one wins; use Validate to reject that.
func NewTable(rules []Rule) *Table {
	t := &Table{
		rules: make([]Rule, 0, len(rules)),
		index: make(map[string]string),
	}
	for _, r := range rules {
		nr := Rule{
			Name:        NormalizeName(r.Name),
			Description: r.Description,
			Extensions:  make(StringList, 0, len(r.Extensions)),
		}
		for _, ext := range r.Extensions {
			ext = NormalizeExtension(ext)
			if ext == "" {
				continue
			}
			nr.Extensions = append(nr.Extensions, ext)
			if _, taken := t.index[ext]; !taken {
				t.index[ext] = nr.Name
			}
		}
		t.rules = append(t.rules, nr)
	}
	return t
}

// Classify returns the name of the first rule containing ext, or Other.
// The extension is lower-cased but must already carry its leading dot.
func (t *Table) Classify(ext string) string {
	if t == nil || t.index == nil {
		return Other
	}
	if name, ok := t.index[strings.ToLower(ext)]; ok {
		return name
	}
	return Other
}

// ClassifyName classifies a file name by its final extension.
func (t *Table) ClassifyName(name string) string {
	return t.Classify(ExtensionOf(name))
}

// Rules returns a copy of the rules in declaration order.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Names returns the rule names in declaration order. Other is not included.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.rules))
	for _, r := range t.rules {
		names = append(names, r.Name)
	}
	return names
}

// Validate reports duplicate names, empty rules, and extensions claimed by more than one rule.
func (t *Table) Validate() error {
	if t == nil {
		return nil
	}
	names := make(map[string]bool, len(t.rules))
	owner := make(map[string]string)
	for _, r := range t.rules {
		if r.Name == "" {
			return fmt.Errorf("category with extensions %v has no name", []string(r.Extensions))
		}
		if r.Name == Other {
			return fmt.Errorf("category name %q is reserved for unmatched files", Other)
		}
		if names[r.Name] {
			return fmt.Errorf("duplicate category %q", r.Name)
		}
		names[r.Name] = true

		if len(r.Extensions) == 0 {
			return fmt.Errorf("category %q has no extensions", r.Name)
		}
		for _, ext := range r.Extensions {
			if prev, ok := owner[ext]; ok && prev != r.Name {
				return fmt.Errorf("extension %q is claimed by both %q and %q", ext, prev, r.Name)
			}
			owner[ext] = r.Name
		}
	}
	return nil
}

// Has reports whether name is a rule in the table or the Other fallback.
func (t *Table) Has(name string) bool {
	name = NormalizeName(name)
	if name == Other {
		return true
	}
	for _, r := range t.Rules() {
		if r.Name == name {
			return true
		}
	}
	return false
}

// NormalizeName trims a category name and converts it to NFC so that
// "Imágenes" typed on one platform equals the one read from another.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NormalizeExtension lower-cases ext and adds the leading dot if it is missing.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ExtensionOf returns the final suffix of a file name, including the dot.
// Examples:
//   - "report.pdf" → ".pdf"
//   - "archive.tar.gz" → ".gz"
//   - ".bashrc" → ""
//   - "file." → ""
//   - "README" → ""
func ExtensionOf(name string) string {
	_, ext := pathutil.SplitName(filepath.Base(name))
	return ext
}
