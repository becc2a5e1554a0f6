// Package render formats bank data for plain terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qbank/internal/modules/bank/dto"
	"qbank/internal/ui/theme"
)

// Records groups records under a header per type, in the order given.
func Records(records []dto.RecordOutput) string {
	if len(records) == 0 {
		return theme.Muted.Render("no records") + "\n"
	}
	var sb strings.Builder
	current := ""
	for i, r := range records {
		if i == 0 || r.Type != current {
			if i > 0 {
				sb.WriteString("\n")
			}
			current = r.Type
			sb.WriteString(theme.Title.Render("["+typeLabel(r.Type)+"]") + "\n")
		}
		sb.WriteString(theme.Hot.Render(fmt.Sprintf("%5d", r.ID)) + "  ")
		if len(r.Question) == 0 {
			sb.WriteString(theme.Muted.Render("(no question)"))
		} else {
			sb.WriteString(strings.Join(r.Question, "\n       "))
		}
		sb.WriteString("\n       " + theme.Answer.Render("=> "+r.Answer) + "\n")
	}
	return sb.String()
}

// Stats renders per-type totals as an aligned two column table.
func Stats(stats dto.StatsOutput) string {
	width := len("total")
	for _, t := range stats.Types {
		if w := lipgloss.Width(typeLabel(t.Type)); w > width {
			width = w
		}
	}
	cell := lipgloss.NewStyle().Width(width + 2)
	var sb strings.Builder
	for _, t := range stats.Types {
		sb.WriteString(cell.Render(typeLabel(t.Type)) + fmt.Sprintf("%d\n", t.Count))
	}
	sb.WriteString(cell.Inherit(theme.Title).Render("total") + fmt.Sprintf("%d\n", stats.Total))
	if stats.Duplicates > 0 {
		sb.WriteString(theme.Warn.Render(fmt.Sprintf("%d repeated ids", stats.Duplicates)) + "\n")
	}
	return sb.String()
}

// Import summarizes one import run.
func Import(out dto.ImportOutput) string {
	if out.Halted {
		return theme.Muted.Render(fmt.Sprintf("nothing imported from %s", out.InputPath)) + "\n"
	}
	line := fmt.Sprintf("imported %d (rejected %d) + existing %d = %d records -> %s",
		out.Parsed, out.Rejected, out.Existing, out.Total, out.OutputPath)
	var flags []string
	if !out.Saved {
		flags = append(flags, theme.Warn.Render("not saved"))
	}
	if out.Cleared {
		flags = append(flags, "input cleared")
	}
	if out.Indexed {
		flags = append(flags, "indexed")
	}
	if len(out.Duplicates) > 0 {
		flags = append(flags, theme.Warn.Render(fmt.Sprintf("%d repeated ids", len(out.Duplicates))))
	}
	if len(flags) > 0 {
		line += " [" + strings.Join(flags, ", ") + "]"
	}
	return line + "\n"
}

func typeLabel(t string) string {
	if strings.TrimSpace(t) == "" {
		return "untyped"
	}
	return t
}
