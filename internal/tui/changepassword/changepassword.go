// ABOUTME: Change-password screen backed by a huh form
// ABOUTME: Confirms the new password locally, rotates via the profile endpoint

package changepassword

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/dontuty123/shopctl/internal/rules"
	"github.com/dontuty123/shopctl/internal/tui/styles"
)

// SubmittedMsg asks the app to rotate the password
type SubmittedMsg struct {
	Current string
	New     string
}

// Model is the change-password screen
type Model struct {
	form    *huh.Form
	busy    bool
	current string
	next    string
	confirm string
}

// New creates a fresh change-password form
func New() *Model {
	m := &Model{}
	m.buildForm()
	return m
}

func (m *Model) buildForm() {
	m.current = ""
	m.next = ""
	m.confirm = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&m.current).
				Validate(rules.Password),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&m.next).
				Validate(rules.Password),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&m.confirm).
				Validate(rules.ConfirmPassword(&m.next)),
		),
	).WithTheme(huh.ThemeBase())
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update advances the form; completion emits SubmittedMsg once
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.busy {
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		current, next := m.current, m.next
		return tea.Batch(cmd, func() tea.Msg {
			return SubmittedMsg{Current: current, New: next}
		})
	}
	return cmd
}

// Reset re-arms the form after success or failure
func (m *Model) Reset() tea.Cmd {
	m.busy = false
	m.buildForm()
	return m.form.Init()
}

// View renders the form
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Change password"))
	sb.WriteString("\n")
	if m.busy {
		sb.WriteString(styles.Subtitle.Render("Updating password..."))
		sb.WriteString("\n")
	}
	sb.WriteString(m.form.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("tab: next field • enter: submit"))
	return sb.String()
}
