// ABOUTME: Login screen backed by a huh form
// ABOUTME: Validates credentials locally, surfaces server field errors inline

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/dontuty123/shopctl/internal/rules"
	"github.com/dontuty123/shopctl/internal/tui/styles"
)

// SubmittedMsg is emitted when the form completes validation
type SubmittedMsg struct {
	Email    string
	Password string
}

// Model is the login screen
type Model struct {
	form      *huh.Form
	email     string
	password  string
	submitted bool
	busy      bool
	serverErr map[string]string
}

// New creates a fresh login form
func New() *Model {
	m := &Model{}
	m.buildForm()
	return m
}

func (m *Model) buildForm() {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.email).
				Validate(rules.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password).
				Validate(rules.Password),
		),
	).WithTheme(huh.ThemeBase())
	m.submitted = false
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update advances the form; a completed form emits SubmittedMsg once
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.busy {
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted && !m.submitted {
		m.submitted = true
		m.busy = true
		m.serverErr = nil
		email, password := m.email, m.password
		return tea.Batch(cmd, func() tea.Msg {
			return SubmittedMsg{Email: email, Password: password}
		})
	}
	return cmd
}

// Fail re-arms the form after a rejected login, keeping the email and
// showing the server's per-field messages.
func (m *Model) Fail(fieldErrors map[string]string) tea.Cmd {
	m.busy = false
	m.password = ""
	m.serverErr = fieldErrors
	m.buildForm()
	return m.form.Init()
}

// View renders the form with any server-side field errors beneath it
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Log in"))
	sb.WriteString("\n")
	if m.busy {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		sb.WriteString("\n")
	}
	sb.WriteString(m.form.View())
	for _, field := range []string{"email", "password"} {
		if msg, ok := m.serverErr[field]; ok {
			sb.WriteString("\n")
			sb.WriteString(styles.StatusError.Render(field + ": " + msg))
		}
	}
	sb.WriteString("\n\n")
	sb.WriteString(styles.Help.Render("tab: next field • enter: submit • ctrl+r: register instead"))
	return sb.String()
}
