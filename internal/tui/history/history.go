// ABOUTME: Purchase history screen with status tabs
// ABOUTME: Tabs map straight onto the purchases endpoint's status filter

package history

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dontuty123/shopctl/internal/client"
	"github.com/dontuty123/shopctl/internal/tui/styles"
)

// ReloadMsg asks the app to fetch purchases for a status
type ReloadMsg struct {
	Status int
}

type tab struct {
	status int
	name   string
}

var tabs = []tab{
	{client.StatusAll, "All"},
	{client.StatusWaitForConfirmation, "To confirm"},
	{client.StatusWaitForGetting, "To ship"},
	{client.StatusInProgress, "Shipping"},
	{client.StatusDelivered, "Delivered"},
	{client.StatusCancelled, "Cancelled"},
}

// Model is the purchase history screen
type Model struct {
	width     int
	height    int
	loading   bool
	tabIndex  int
	purchases []client.Purchase
	scroll    int
}

// New creates the history screen on the All tab
func New() *Model {
	return &Model{loading: true}
}

// Status returns the currently selected tab's purchase status
func (m *Model) Status() int {
	return tabs[m.tabIndex].status
}

// SetSize updates layout dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetPurchases installs fetched purchases
func (m *Model) SetPurchases(purchases []client.Purchase) {
	m.purchases = purchases
	m.loading = false
	m.scroll = 0
}

// SetLoading flags an in-flight fetch
func (m *Model) SetLoading() {
	m.loading = true
}

// Update handles key input
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "left", "h":
		if m.tabIndex > 0 {
			m.tabIndex--
			return m.reload()
		}
	case "right", "l":
		if m.tabIndex < len(tabs)-1 {
			m.tabIndex++
			return m.reload()
		}
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		if m.scroll < len(m.purchases)-1 {
			m.scroll++
		}
	}
	return nil
}

func (m *Model) reload() tea.Cmd {
	m.loading = true
	status := tabs[m.tabIndex].status
	return func() tea.Msg { return ReloadMsg{Status: status} }
}

// View renders the tab bar and purchase list
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Purchase history"))
	sb.WriteString("\n")

	var labels []string
	for i, t := range tabs {
		if i == m.tabIndex {
			labels = append(labels, styles.ActiveTab.Render(t.name))
		} else {
			labels = append(labels, styles.InactiveTab.Render(t.name))
		}
	}
	sb.WriteString(strings.Join(labels, "  "))
	sb.WriteString("\n\n")

	switch {
	case m.loading:
		sb.WriteString(styles.Subtitle.Render("Loading purchases..."))
	case len(m.purchases) == 0:
		sb.WriteString(styles.Subtitle.Render("No purchases here yet"))
	default:
		for i := m.scroll; i < len(m.purchases); i++ {
			sb.WriteString(m.renderPurchase(m.purchases[i]))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("←/→: status tab • ↑/↓: scroll"))
	return sb.String()
}

func (m *Model) renderPurchase(p client.Purchase) string {
	nameWidth := 40
	total := p.Price * p.BuyCount
	return fmt.Sprintf("%-*s x%-3d %s %s",
		nameWidth, styles.Truncate(p.Product.Name, nameWidth),
		p.BuyCount,
		styles.OldPrice.Render(styles.FormatCurrency(p.PriceBeforeDiscount)),
		styles.Price.Render(styles.FormatCurrency(total)))
}
