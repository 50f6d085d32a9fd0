package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/export"
	"github.com/julianstephens/daybook/internal/schema"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// The editing form owns the keyboard while active, except esc.
		if m.state == StateEditing {
			return m.updateEditing(msg)
		}

		if key.Matches(msg, m.keys.Quit) {
			// Best-effort flush before the screen goes away.
			m.session.OnEnvironmentTeardown()
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateHistory:
		return m.updateHistory(msg)
	case StateConfirmClear:
		return m.updateConfirmClear(msg)
	case StateEditing:
		return m.updateEditing(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	sections := schema.Sections()
	switch {
	case key.Matches(keyMsg, m.keys.Tab):
		m.sectionIdx = (m.sectionIdx + 1) % len(sections)
		m.fieldIdx = 0
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.sectionIdx = (m.sectionIdx - 1 + len(sections)) % len(sections)
		m.fieldIdx = 0
	case key.Matches(keyMsg, m.keys.PrevDay):
		m.shiftDate(-1)
	case key.Matches(keyMsg, m.keys.NextDay):
		m.shiftDate(1)
	case key.Matches(keyMsg, m.keys.Up):
		if m.fieldIdx > 0 {
			m.fieldIdx--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if n := len(m.registry.SectionFields(m.currentSection())); m.fieldIdx < n-1 {
			m.fieldIdx++
		}
	case key.Matches(keyMsg, m.keys.Edit):
		m.buildSectionForm()
		m.previousState = StateForm
		m.state = StateEditing
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.ClearEntry):
		m.state = StateConfirmClear
	case key.Matches(keyMsg, m.keys.History):
		m.refreshHistory()
		m.state = StateHistory
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.applyForm()
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		if err := m.session.Clear(); err != nil {
			*m.warning = err.Error()
		} else {
			m.statusLine = "Cleared " + m.session.Date()
		}
		m.state = StateForm
	case "n", "N", "esc":
		m.state = StateForm
	}
	return m, nil
}

func (m Model) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		// Leaving the history view always ends multi-select mode.
		m.batch.Disable()
		m.state = StateForm

	case key.Matches(keyMsg, m.keys.Up):
		if m.historyIdx > 0 {
			m.historyIdx--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.historyIdx < len(m.historyDates)-1 {
			m.historyIdx++
		}

	case key.Matches(keyMsg, m.keys.MultiSelect):
		if m.batch.Active() {
			m.batch.Disable()
		} else {
			m.batch.Enable()
		}

	case key.Matches(keyMsg, m.keys.Select):
		if m.batch.Active() && m.historyIdx < len(m.historyDates) {
			m.batch.Toggle(m.historyDates[m.historyIdx])
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if !m.batch.Active() {
			break
		}
		res := m.batch.Delete()
		m.statusLine = fmt.Sprintf("Deleted %d, failed %d", res.Succeeded, res.Failed)
		for _, d := range res.Deleted {
			if d == m.session.Date() {
				// The open record's backing row is gone; re-reconcile so
				// the form shows a fresh default entry.
				if err := m.session.Reload(); err != nil {
					*m.warning = err.Error()
				}
				break
			}
		}
		m.refreshHistory()

	case key.Matches(keyMsg, m.keys.Export):
		if !m.batch.Active() {
			break
		}
		docs, err := m.batch.Export()
		if err != nil {
			*m.warning = err.Error()
			break
		}
		if len(docs) == 0 {
			m.statusLine = "Nothing to export"
			break
		}
		path := export.BatchFilename(time.Now())
		if err := export.WriteBatchFile(docs, path); err != nil {
			*m.warning = err.Error()
			break
		}
		m.statusLine = fmt.Sprintf("Exported %d to %s", len(docs), path)

	case key.Matches(keyMsg, m.keys.Enter):
		if m.historyIdx < len(m.historyDates) {
			// Navigation leaves the history view, which ends
			// multi-select mode.
			m.batch.Disable()
			m.switchDate(m.historyDates[m.historyIdx])
			m.state = StateForm
		}
	}
	return m, nil
}
