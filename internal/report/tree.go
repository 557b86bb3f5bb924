package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/xlab/treeprint"

	"github.com/prettymuchbryce/tidydownloads/internal/organizer"
)

// Styles for the tree renderer
var (
	rootStyle     = lipgloss.NewStyle().Bold(true)
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // Cyan
	passStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))            // Green
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))            // Red
	skipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))            // Yellow
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))            // Gray
)

const (
	passIcon = "✓"
	failIcon = "✗"
	skipIcon = "⊘"
)

// WriteOrganizeTree renders every outcome of an organize run as a tree,
// one branch per category, followed by an errors branch.
func WriteOrganizeTree(w io.Writer, r *organizer.OrganizeResult) error {
	tree := treeprint.NewWithRoot(rootStyle.Render(r.Source) + " " + detailStyle.Render(modeText(r.DryRun)))

	var order []string
	byCategory := make(map[string][]organizer.MoveOutcome)
	for _, m := range r.Moved {
		if _, ok := byCategory[m.Category]; !ok {
			order = append(order, m.Category)
		}
		byCategory[m.Category] = append(byCategory[m.Category], m)
	}

	for _, cat := range order {
		moves := byCategory[cat]
		branch := tree.AddBranch(categoryStyle.Render(fmt.Sprintf("%s (%d)", cat, len(moves))))
		for _, m := range moves {
			rel, err := filepath.Rel(r.Source, m.TargetPath)
			if err != nil {
				rel = m.TargetPath
			}
			branch.AddNode(fmt.Sprintf("%s %s %s", passStyle.Render(passIcon), filepath.Base(m.OriginalPath), detailStyle.Render("→ "+rel)))
		}
	}

	if len(r.Errors) > 0 {
		errs := tree.AddBranch(failStyle.Render(fmt.Sprintf("errores (%d)", len(r.Errors))))
		for _, e := range r.Errors {
			errs.AddNode(fmt.Sprintf("%s %s %s", failStyle.Render(failIcon), filepath.Base(e.OriginalPath), detailStyle.Render("("+errorText(e.Err)+")")))
		}
	}

	if r.Skipped > 0 {
		tree.AddNode(fmt.Sprintf("%s %s", skipStyle.Render(skipIcon), detailStyle.Render(fmt.Sprintf("%d archivos fuera del filtro de categorías", r.Skipped))))
	}

	_, err := fmt.Fprint(w, tree.String())
	return err
}
