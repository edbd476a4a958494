// ABOUTME: Cart screen rendering extended purchases with selection state
// ABOUTME: Batches quantity edits, deletes and the buy action for the app

package cartview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dontuty123/shopctl/internal/cart"
	"github.com/dontuty123/shopctl/internal/client"
	"github.com/dontuty123/shopctl/internal/tui/styles"
)

// UpdateQuantityMsg asks the app to commit a quantity change
type UpdateQuantityMsg struct {
	Row       int
	ProductID string
	BuyCount  int
}

// DeleteMsg asks the app to bulk-delete purchases
type DeleteMsg struct {
	IDs []string
}

// BuyMsg asks the app to submit the checked rows as one batch
type BuyMsg struct {
	Orders []client.Order
}

// Model is the cart screen
type Model struct {
	width   int
	height  int
	loading bool

	state  cart.State
	cursor int

	editing   bool
	editInput textinput.Model
}

// New creates an empty cart screen awaiting data
func New() *Model {
	edit := textinput.New()
	edit.CharLimit = 5
	edit.Width = 5
	return &Model{loading: true, editInput: edit}
}

// State exposes the cart view state for the app's commit callbacks
func (m *Model) State() *cart.State {
	return &m.state
}

// Editing reports whether the typed-quantity input is active
func (m *Model) Editing() bool {
	return m.editing
}

// SetSize updates layout dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetPurchases rebuilds the rows from a fresh server fetch
func (m *Model) SetPurchases(purchases []client.Purchase) {
	m.state.Rebuild(purchases)
	m.loading = false
	if m.cursor >= len(m.state.Items) {
		m.cursor = 0
	}
}

// SetLoading flags an in-flight refetch
func (m *Model) SetLoading() {
	m.loading = true
}

// Update handles key input
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if m.editing {
		return m.updateEdit(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Items)-1 {
			m.cursor++
		}
	case " ":
		m.state.ToggleOne(m.cursor)
	case "a":
		m.state.ToggleAll()
	case "+", "=":
		return m.stepQuantity(1)
	case "-":
		return m.stepQuantity(-1)
	case "e":
		if item := m.current(); item != nil && !item.Disabled {
			m.editing = true
			m.editInput.SetValue(strconv.Itoa(item.BuyCount))
			return m.editInput.Focus()
		}
	case "d":
		if item := m.current(); item != nil {
			ids := []string{item.ID}
			return func() tea.Msg { return DeleteMsg{IDs: ids} }
		}
	case "D":
		if ids := m.state.CheckedIDs(); len(ids) > 0 {
			return func() tea.Msg { return DeleteMsg{IDs: ids} }
		}
	case "b":
		// Buying with nothing checked is a no-op
		if orders := m.state.CheckedOrders(); len(orders) > 0 {
			return func() tea.Msg { return BuyMsg{Orders: orders} }
		}
	}
	return nil
}

// updateEdit handles the typed-quantity input. Typing only changes the
// local display; enter is the blur-commit.
func (m *Model) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.editInput.Blur()
		count, err := strconv.Atoi(strings.TrimSpace(m.editInput.Value()))
		if err != nil {
			m.state.RevertTyped(m.cursor)
			return nil
		}
		return m.commitQuantity(count)
	case "esc":
		m.editing = false
		m.editInput.Blur()
		m.state.RevertTyped(m.cursor)
		return nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	if count, err := strconv.Atoi(strings.TrimSpace(m.editInput.Value())); err == nil {
		m.state.SetTyped(m.cursor, count)
	}
	return cmd
}

func (m *Model) stepQuantity(delta int) tea.Cmd {
	item := m.current()
	if item == nil || item.Disabled {
		return nil
	}
	return m.commitQuantity(item.Committed() + delta)
}

// commitQuantity applies the range/no-op rules; rejected edits revert
// the display with no server call.
func (m *Model) commitQuantity(count int) tea.Cmd {
	row := m.cursor
	if !m.state.CanCommit(row, count) {
		m.state.RevertTyped(row)
		return nil
	}
	item := m.state.Items[row]
	m.state.BeginCommit(row, count)
	productID := item.Product.ID
	return func() tea.Msg {
		return UpdateQuantityMsg{Row: row, ProductID: productID, BuyCount: count}
	}
}

func (m *Model) current() *cart.Item {
	if m.cursor < 0 || m.cursor >= len(m.state.Items) {
		return nil
	}
	return &m.state.Items[m.cursor]
}

// View renders the cart grid with the totals footer
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Cart"))
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString(styles.Subtitle.Render("Loading cart..."))
	case len(m.state.Items) == 0:
		sb.WriteString(styles.Subtitle.Render("Your cart is empty"))
	default:
		for i, item := range m.state.Items {
			sb.WriteString(m.renderRow(i, item))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(m.renderTotals())
	}

	sb.WriteString("\n\n")
	sb.WriteString(styles.Help.Render("space: check • a: check all • +/-/e: quantity • d: delete • D: delete checked • b: buy"))
	return sb.String()
}

func (m *Model) renderRow(i int, item cart.Item) string {
	check := "[ ]"
	if item.Checked {
		check = "[x]"
	}

	qty := strconv.Itoa(item.BuyCount)
	if m.editing && i == m.cursor {
		qty = m.editInput.View()
	}

	nameWidth := 34
	line := fmt.Sprintf("%s %-*s %10s x%-4s %10s",
		check,
		nameWidth, styles.Truncate(item.Product.Name, nameWidth),
		styles.FormatCurrency(item.Price),
		qty,
		styles.FormatCurrency(item.Price*item.BuyCount))

	switch {
	case item.Disabled:
		return styles.DisabledRow.Render("  " + line + " (updating)")
	case i == m.cursor:
		return styles.SelectedRow.Render("> " + line)
	default:
		return "  " + line
	}
}

func (m *Model) renderTotals() string {
	count := m.state.CheckedCount()
	total := m.state.PaymentTotal()
	savings := m.state.SavingsTotal()

	line := fmt.Sprintf("Total (%d items): %s", count, styles.Price.Render(styles.FormatCurrency(total)))
	if savings > 0 {
		line += styles.Subtitle.Render(fmt.Sprintf("  saved %s", styles.FormatCurrency(savings)))
	}
	return line
}
