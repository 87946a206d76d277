package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/learnpath/pkg/engine"
	"github.com/matzehuels/learnpath/pkg/milestone"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(colorGray).PaddingRight(1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints run statistics on a single line.
func printStats(stats engine.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d skills", stats.Nodes),
		fmt.Sprintf("%d milestones", stats.Milestones),
		formatHours(stats.TotalHours),
	}
	if stats.EdgesRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d edges removed", stats.EdgesRemoved))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Println(line)
}

// =============================================================================
// Milestone Display
// =============================================================================

// printMilestones prints the milestones as a table, one row per milestone.
func printMilestones(res *engine.Result) {
	if len(res.Milestones) == 0 {
		printInfo("No skills to schedule")
		return
	}
	fmt.Println(milestoneTable(res.Milestones, -1).Render())
}

// milestoneTable builds the table shared by generate and browse. The row at
// index current is highlighted; pass -1 for none.
func milestoneTable(ms []milestone.Milestone, current int) *table.Table {
	rows := make([][]string, len(ms))
	for i, m := range ms {
		hours := formatHours(m.Hours)
		if m.OverCapacity {
			hours += " " + iconWarning
		}
		rows[i] = []string{
			fmt.Sprintf("%d", m.Index+1),
			phaseTitle(m.Phase),
			fmt.Sprintf("%d", len(m.Nodes)),
			hours,
			strings.Join(m.Nodes, ", "),
		}
	}

	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("#", "PHASE", "SKILLS", "HOURS", "MEMBERS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			base := lipgloss.NewStyle().PaddingRight(1)
			if row == current {
				base = base.Bold(true)
			}
			switch {
			case col == 1:
				return base.Foreground(phaseColor(ms[row].Phase))
			case col == 3 && ms[row].OverCapacity:
				return base.Foreground(colorYellow)
			case col == 4 && row != current:
				return base.Foreground(colorGray)
			}
			return base
		})
}

// printWarnings prints the engine's warnings, if any.
func printWarnings(res *engine.Result) {
	if len(res.Warnings) == 0 {
		return
	}
	printNewline()
	for _, w := range res.Warnings {
		printWarning("%s", w)
	}
}

// phaseTitle turns FOUNDATIONS into Foundations and CORE_SKILLS into
// Core Skills.
func phaseTitle(p milestone.Phase) string {
	words := strings.Split(strings.ToLower(string(p)), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func phaseColor(p milestone.Phase) lipgloss.Color {
	switch p {
	case milestone.PhaseFoundations:
		return colorGreen
	case milestone.PhaseCoreSkills:
		return colorCyan
	case milestone.PhaseAdvancedSystems:
		return colorBlue
	}
	return colorYellow
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Utilities
// =============================================================================

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
