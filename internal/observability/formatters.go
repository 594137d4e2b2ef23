// Package observability provides logging setup and formatted output for verbose CLI mode.
package observability

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jonathan/skillboard/internal/selection"
	"github.com/jonathan/skillboard/internal/skills"
	"github.com/jonathan/skillboard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDatasetSummary outputs group and skill totals for a dataset, listing the
// largest groups by skill count first.
func (p *Printer) PrintDatasetSummary(dataset types.Dataset) {
	if len(dataset) == 0 {
		p.printBox("DATASET SUMMARY", "No skill groups")
		return
	}

	var injected, level5, totalSP int
	for _, group := range dataset {
		summary := skills.Summarize(group)
		injected += summary.InjectedCount
		level5 += summary.Level5Count
		totalSP += summary.TotalGroupSP
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Groups:    %d\n", len(dataset)))
	sb.WriteString(fmt.Sprintf("Skills:    %d\n", dataset.SkillCount()))
	sb.WriteString(fmt.Sprintf("Injected:  %d\n", injected))
	sb.WriteString(fmt.Sprintf("Level V:   %d\n", level5))
	sb.WriteString(fmt.Sprintf("Total SP:  %s\n", humanize.Comma(int64(totalSP))))
	sb.WriteString("\n")

	sb.WriteString("Groups:\n")
	largest := slices.Clone(dataset)
	slices.SortStableFunc(largest, func(a, b types.SkillGroup) int {
		return cmp.Compare(len(b.Skills), len(a.Skills))
	})
	for _, group := range largest[:min(len(largest), maxItemsToShow)] {
		sb.WriteString(fmt.Sprintf("  • %s (%d skills)\n", group.Name, len(group.Skills)))
	}
	if len(dataset) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(dataset)-maxItemsToShow))
	}

	p.printBox("DATASET SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSelection outputs the active selection and how many rows survived filtering.
func (p *Printer) PrintSelection(sel selection.Selection, details []selection.GroupDetail) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Group:  %s\n", describeGroup(sel.GroupID)))
	sb.WriteString(fmt.Sprintf("Level:  %s\n", describeLevel(sel.Level)))
	sb.WriteString(fmt.Sprintf("Cards:  %d\n", len(details)))
	sb.WriteString(fmt.Sprintf("Rows:   %d", selection.RowCount(details)))

	p.printBox("SELECTION", sb.String())
}

// PrintIssues outputs dataset problems found during validation.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIssues(issues []string) {
	if len(issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ DATASET IS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(issues)))
	for i, issue := range issues {
		sb.WriteString(fmt.Sprintf("⚠ %s", issue))
		if i < len(issues)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("DATASET ISSUES", sb.String())
}

func describeGroup(id int) string {
	switch {
	case id == selection.Unmatched:
		return "unmatched"
	case id <= 0:
		return "all"
	default:
		return fmt.Sprintf("%d", id)
	}
}

func describeLevel(level int) string {
	switch level {
	case selection.LevelAll:
		return "all"
	case selection.LevelUninjected:
		return "uninjected"
	case selection.LevelInjected:
		return "injected"
	case selection.Unmatched:
		return "unmatched"
	default:
		return fmt.Sprintf("trained level %d", level)
	}
}
