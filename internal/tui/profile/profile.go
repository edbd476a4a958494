// ABOUTME: Profile screen seeded from the server-owned user record
// ABOUTME: Edits name, contact details, birth date and the avatar image

package profile

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/dontuty123/shopctl/internal/client"
	"github.com/dontuty123/shopctl/internal/rules"
	"github.com/dontuty123/shopctl/internal/session"
	"github.com/dontuty123/shopctl/internal/tui/styles"
)

// SaveMsg asks the app to persist profile edits. AvatarPath, when set,
// is uploaded first and the stored name folded into the update.
type SaveMsg struct {
	Update     client.ProfileUpdate
	AvatarPath string
}

// Model is the profile screen
type Model struct {
	form    *huh.Form
	profile *session.Profile
	loading bool
	busy    bool

	name    string
	phone   string
	address string
	dob     string
	avatar  string
}

// New creates an empty profile screen awaiting data
func New() *Model {
	return &Model{loading: true}
}

// SetProfile seeds the form from a fetched profile
func (m *Model) SetProfile(p *session.Profile) tea.Cmd {
	m.profile = p
	m.loading = false
	m.busy = false
	m.name = p.Name
	m.phone = p.Phone
	m.address = p.Address
	m.dob = dateOnly(p.DateOfBirth)
	m.avatar = ""
	m.buildForm()
	return m.form.Init()
}

// SetLoading flags an in-flight profile fetch
func (m *Model) SetLoading() {
	m.loading = true
}

// Fail re-arms the form after a rejected update
func (m *Model) Fail() tea.Cmd {
	m.busy = false
	m.buildForm()
	return m.form.Init()
}

func (m *Model) buildForm() {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.name).Validate(rules.Name),
			huh.NewInput().Title("Phone").Value(&m.phone).Validate(rules.Phone),
			huh.NewInput().Title("Address").Value(&m.address).Validate(rules.Address),
			huh.NewInput().Title("Date of birth (YYYY-MM-DD)").Value(&m.dob).Validate(rules.DateOfBirth),
			huh.NewInput().Title("Avatar image path (optional)").Value(&m.avatar).Validate(validateAvatar),
		),
	).WithTheme(huh.ThemeBase())
}

// validateAvatar applies the client-side upload constraints before any
// network call: under 1MB and an image extension.
func validateAvatar(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return client.ValidateAvatarFile(strings.TrimSpace(path))
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

// Update advances the form; completion emits SaveMsg once
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.loading || m.busy || m.form == nil {
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		update := client.ProfileUpdate{
			Name:        m.name,
			Phone:       m.phone,
			Address:     m.address,
			DateOfBirth: isoDate(m.dob),
		}
		avatarPath := strings.TrimSpace(m.avatar)
		return tea.Batch(cmd, func() tea.Msg {
			return SaveMsg{Update: update, AvatarPath: avatarPath}
		})
	}
	return cmd
}

// View renders the form with the read-only account email above it
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("My profile"))
	sb.WriteString("\n")

	if m.loading {
		sb.WriteString(styles.Subtitle.Render("Loading profile..."))
		return sb.String()
	}

	if m.profile != nil {
		sb.WriteString(styles.Subtitle.Render("Email: " + m.profile.Email))
		sb.WriteString("\n")
		if m.profile.Avatar != "" {
			sb.WriteString(styles.Subtitle.Render("Avatar: " + m.profile.Avatar))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")

	if m.busy {
		sb.WriteString(styles.Subtitle.Render("Saving profile..."))
		sb.WriteString("\n")
	}
	sb.WriteString(m.form.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("tab: next field • enter: save"))
	return sb.String()
}

// dateOnly trims an RFC3339 timestamp to its date part for editing
func dateOnly(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// isoDate expands a YYYY-MM-DD date to the timestamp the server stores
func isoDate(d string) string {
	if d == "" {
		return ""
	}
	return d + "T00:00:00.000Z"
}
