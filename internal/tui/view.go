package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/schema"
)

func sectionTitle(sec schema.Section) string {
	switch sec {
	case schema.SectionBasic:
		return "Basic"
	case schema.SectionBody:
		return "Body"
	case schema.SectionMind:
		return "Mind"
	case schema.SectionDiet:
		return "Diet"
	case schema.SectionSummary:
		return "Summary"
	}
	return string(sec)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	switch m.state {
	case StateEditing:
		b.WriteString(m.headerView())
		b.WriteString("\n\n")
		b.WriteString(m.form.View())
	case StateHistory:
		b.WriteString(m.historyView())
	default:
		b.WriteString(m.headerView())
		b.WriteString("\n\n")
		b.WriteString(m.sectionView())
	}

	if m.statusLine != "" {
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render(m.statusLine))
	}
	if *m.warning != "" {
		b.WriteString("\n\n")
		b.WriteString(warningStyle.Render("⚠ " + *m.warning))
	}

	if m.state == StateConfirmClear {
		b.WriteString("\n\n")
		b.WriteString(warningStyle.Render("Reset " + m.session.Date() + " to defaults? (y/N)"))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m))
	return docStyle.Render(b.String())
}

// headerView renders the date line and the section tab bar. Each tab
// carries a completeness dot so gaps are visible without opening the
// section.
func (m Model) headerView() string {
	completeness := m.session.Completeness()

	tabs := make([]string, 0, len(schema.Sections()))
	for i, sec := range schema.Sections() {
		mark := completeMarkStyle.Render("●")
		if completeness[sec] {
			mark = incompleteMarkStyle.Render("○")
		}
		label := fmt.Sprintf("%s %s", mark, sectionTitle(sec))
		if i == m.sectionIdx {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	date := fieldLabelStyle.Render("Daybook") + "  " + m.session.Date()
	return date + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) sectionView() string {
	sec := m.currentSection()
	fields := m.registry.SectionFields(sec)

	var b strings.Builder
	for i, f := range fields {
		label := fieldLabelStyle.Render(fmt.Sprintf("%-18s", f.Label))
		value := m.session.Field(f.ID)
		if strings.TrimSpace(value) == "" {
			value = emptyValueStyle.Render("(empty)")
		}
		line := fmt.Sprintf("%s %s", label, value)
		if i == m.fieldIdx {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) historyView() string {
	var b strings.Builder
	b.WriteString(fieldLabelStyle.Render("History"))
	if m.batch.Active() {
		b.WriteString("  " + statusStyle.Render(fmt.Sprintf("multi-select (%d)", len(m.batch.Selection()))))
	}
	b.WriteString("\n\n")

	if len(m.historyDates) == 0 {
		b.WriteString(emptyValueStyle.Render("No saved entries yet."))
		return b.String()
	}

	for i, date := range m.historyDates {
		marker := "   "
		if m.batch.Active() {
			marker = "[ ]"
			if m.batch.Selected(date) {
				marker = "[x]"
			}
		}
		line := fmt.Sprintf("%s %s", marker, date)
		if date == m.session.Date() {
			line += "  " + emptyValueStyle.Render("(open)")
		}
		if i == m.historyIdx {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
