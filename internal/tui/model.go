package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/batch"
	"github.com/julianstephens/daybook/internal/schema"
	"github.com/julianstephens/daybook/internal/session"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/suggest"
)

type SessionState int

const (
	StateForm SessionState = iota
	StateEditing
	StateHistory
	StateConfirmClear
)

// fieldBinding carries one field's edit buffer between the session record
// and the huh form.
type fieldBinding struct {
	id    string
	value string
}

type Model struct {
	store    storage.Provider
	registry *schema.Registry
	session  *session.Session
	batch    *batch.Controller

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	sectionIdx int
	fieldIdx   int

	form         *huh.Form
	formBindings []*fieldBinding

	historyDates []string
	historyIdx   int

	statusLine string
	// warning is shared across model copies so session callbacks reach
	// the rendered view.
	warning  *string
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, registry *schema.Registry, sess *session.Session, batchCtl *batch.Controller) Model {
	warning := new(string)
	m := Model{
		store:    store,
		registry: registry,
		session:  sess,
		batch:    batchCtl,
		state:    StateForm,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		warning:  warning,
	}

	// Route session warnings (corrupt records etc.) onto the status line
	// instead of stderr, which the alt screen would swallow. The pointer
	// is shared by every copy of the model bubbletea makes.
	sess.SetWarnFunc(func(format string, args ...any) {
		*warning = fmt.Sprintf(format, args...)
	})

	today := time.Now().Format("2006-01-02")
	if err := sess.SwitchDate(today); err != nil {
		*warning = err.Error()
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) currentSection() schema.Section {
	return schema.Sections()[m.sectionIdx]
}

// buildSectionForm creates a huh form editing every field of the current
// section, seeded from the in-memory record and, for tracked fields, the
// suggestion store.
func (m *Model) buildSectionForm() {
	sec := m.currentSection()
	fields := m.registry.SectionFields(sec)

	m.formBindings = m.formBindings[:0]
	var widgets []huh.Field
	for _, f := range fields {
		b := &fieldBinding{id: f.ID, value: m.session.Field(f.ID)}
		m.formBindings = append(m.formBindings, b)

		switch f.Type {
		case schema.TypeScale:
			opts := []huh.Option[string]{huh.NewOption("(empty)", "")}
			for i := 0; i <= 10; i++ {
				v := strconv.Itoa(i)
				opts = append(opts, huh.NewOption(v, v))
			}
			widgets = append(widgets, huh.NewSelect[string]().
				Title(f.Label).
				Options(opts...).
				Value(&b.value))
		case schema.TypeBool:
			opts := []huh.Option[string]{
				huh.NewOption("(empty)", ""),
				huh.NewOption("yes", "true"),
				huh.NewOption("no", "false"),
			}
			widgets = append(widgets, huh.NewSelect[string]().
				Title(f.Label).
				Options(opts...).
				Value(&b.value))
		default:
			input := huh.NewInput().
				Title(f.Label).
				Value(&b.value)
			if f.Type == schema.TypeFloat || f.Type == schema.TypeInt {
				input = input.Validate(numericValidator(f.Type))
			}
			if f.SuggestGroup != "" {
				if values, err := suggest.For(m.store, m.registry, f.ID); err == nil && len(values) > 0 {
					input = input.Suggestions(values)
				}
			}
			widgets = append(widgets, input)
		}
	}

	m.form = huh.NewForm(huh.NewGroup(widgets...)).WithTheme(huh.ThemeDracula())
}

func numericValidator(t schema.FieldType) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		var err error
		if t == schema.TypeFloat {
			_, err = strconv.ParseFloat(s, 64)
		} else {
			_, err = strconv.ParseInt(s, 10, 64)
		}
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		return nil
	}
}

// applyForm writes the completed form buffers back through the session so
// completeness stays derived from the record, then flushes.
func (m *Model) applyForm() {
	for _, b := range m.formBindings {
		if err := m.session.SetField(b.id, b.value); err != nil {
			*m.warning = err.Error()
		}
	}
	if err := m.session.OnFocusLost(); err != nil {
		*m.warning = fmt.Sprintf("save failed: %v", err)
		return
	}
	m.statusLine = "Saved " + m.session.Date()
}

func (m *Model) refreshHistory() {
	dates, err := m.store.ListDates()
	if err != nil {
		*m.warning = err.Error()
		return
	}
	m.historyDates = dates
	if m.historyIdx >= len(dates) {
		m.historyIdx = 0
	}
}

// switchDate flushes the outgoing date (environment-teardown semantics:
// best effort) before reconciling the new one.
func (m *Model) switchDate(date string) {
	m.session.OnEnvironmentTeardown()
	if err := m.session.SwitchDate(date); err != nil {
		*m.warning = err.Error()
		return
	}
	m.statusLine = ""
}

func (m *Model) shiftDate(days int) {
	t, err := time.Parse("2006-01-02", m.session.Date())
	if err != nil {
		return
	}
	m.switchDate(t.AddDate(0, 0, days).Format("2006-01-02"))
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateHistory:
		return []key.Binding{m.keys.MultiSelect, m.keys.Select, m.keys.Delete, m.keys.Export, m.keys.Back, m.keys.Help}
	default:
		return []key.Binding{m.keys.Tab, m.keys.Edit, m.keys.History, m.keys.Quit, m.keys.Help}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	form := []key.Binding{m.keys.Edit, m.keys.PrevDay, m.keys.NextDay, m.keys.ClearEntry, m.keys.History}
	history := []key.Binding{m.keys.MultiSelect, m.keys.Select, m.keys.Delete, m.keys.Export, m.keys.Enter, m.keys.Back}
	return [][]key.Binding{global, form, history}
}
