package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/learnpath/pkg/engine"
	"github.com/matzehuels/learnpath/pkg/graph"
	"github.com/matzehuels/learnpath/pkg/milestone"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// MilestoneModel - Interactive milestone browser
// =============================================================================

// MilestoneModel is the bubbletea model for browsing a learning path. The
// milestone table sits on top; enter expands the selected milestone into its
// skills with their level, hours and prerequisites.
type MilestoneModel struct {
	Result   *engine.Result
	Nodes    map[string]graph.Node
	Cursor   int
	Expanded bool

	// prereqs maps a skill to the skills it directly depends on.
	prereqs map[string][]string
}

// NewMilestoneModel creates a browser over res. nodes supplies the skill
// details shown in the expanded view.
func NewMilestoneModel(res *engine.Result, nodes []graph.Node) MilestoneModel {
	m := MilestoneModel{
		Result:  res,
		Nodes:   make(map[string]graph.Node, len(nodes)),
		prereqs: make(map[string][]string),
	}
	for _, n := range nodes {
		m.Nodes[n.ID] = n
	}
	for _, e := range res.Edges {
		if e.IsPrerequisite() {
			m.prereqs[e.To] = append(m.prereqs[e.To], e.From)
		}
	}
	return m
}

func (m MilestoneModel) Init() tea.Cmd {
	return nil
}

func (m MilestoneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !m.Expanded {
				return m, tea.Quit
			}
			m.Expanded = false
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Result.Milestones)-1 {
				m.Cursor++
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	}
	return m, nil
}

func (m MilestoneModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Learning Path"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand  q quit"))
	b.WriteString("\n\n")

	if len(m.Result.Milestones) == 0 {
		b.WriteString(listDimStyle.Render("  No skills to schedule"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(milestoneTable(m.Result.Milestones, m.Cursor).Render())
	b.WriteString("\n")

	if m.Expanded {
		b.WriteString("\n")
		b.WriteString(m.detail(m.Result.Milestones[m.Cursor]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Result.Milestones))))

	return b.String()
}

// detail lists the members of ms, one line per skill.
func (m MilestoneModel) detail(ms milestone.Milestone) string {
	var b strings.Builder

	header := fmt.Sprintf("Milestone %d · %s", ms.Index+1, phaseTitle(ms.Phase))
	b.WriteString(listSelectedStyle.Render(header))
	b.WriteString("\n")

	for _, id := range ms.Nodes {
		n := m.Nodes[id]
		line := fmt.Sprintf("  %-24s %-13s %6s", id, n.Level, formatHours(n.Hours))
		b.WriteString(listNormalStyle.Render(line))
		if deps := m.prereqs[id]; len(deps) > 0 {
			b.WriteString(listDimStyle.Render("  needs " + strings.Join(deps, ", ")))
		}
		b.WriteString("\n")
	}

	if ms.OverCapacity {
		b.WriteString(StyleWarning.Render("  " + iconWarning + " over capacity to honor a pin"))
		b.WriteString("\n")
	}
	return b.String()
}
