// ABOUTME: Product detail screen with quantity selection
// ABOUTME: Renders the product description through glamour

package productdetail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/dontuty123/shopctl/internal/client"
	"github.com/dontuty123/shopctl/internal/tui/styles"
	"github.com/dontuty123/shopctl/internal/tui/widgets"
)

// AddToCartMsg asks the app to add the product to the cart
type AddToCartMsg struct {
	ProductID string
	BuyCount  int
}

// BuyNowMsg asks the app to add to cart and jump to the cart screen
type BuyNowMsg struct {
	ProductID string
	BuyCount  int
}

// Model is the product detail screen
type Model struct {
	width       int
	height      int
	loading     bool
	product     *client.Product
	description string
	qty         int
}

// New creates an empty detail screen awaiting data
func New() *Model {
	return &Model{loading: true, qty: 1}
}

// SetSize updates layout dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetProduct installs the fetched product and renders its description
func (m *Model) SetProduct(p *client.Product) {
	m.product = p
	m.loading = false
	m.qty = 1
	m.description = renderDescription(p.Description, m.width)
}

// SetLoading flags an in-flight fetch
func (m *Model) SetLoading() {
	m.loading = true
	m.product = nil
}

func renderDescription(desc string, width int) string {
	if desc == "" {
		return ""
	}
	if width <= 0 || width > 100 {
		width = 100
	}
	out, err := glamour.Render(desc, "dark")
	if err != nil {
		return desc
	}
	return out
}

// Update handles key input
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.product == nil {
		return nil
	}

	switch keyMsg.String() {
	case "+", "=", "up":
		if m.qty < m.product.Quantity {
			m.qty++
		}
	case "-", "down":
		if m.qty > 1 {
			m.qty--
		}
	case "a", "enter":
		id, qty := m.product.ID, m.qty
		return func() tea.Msg { return AddToCartMsg{ProductID: id, BuyCount: qty} }
	case "b":
		id, qty := m.product.ID, m.qty
		return func() tea.Msg { return BuyNowMsg{ProductID: id, BuyCount: qty} }
	}
	return nil
}

// View renders the product record
func (m *Model) View() string {
	if m.loading || m.product == nil {
		return styles.Subtitle.Render("Loading product...")
	}
	p := m.product

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(p.Name))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(p.Category.Name))
	sb.WriteString("\n\n")

	sb.WriteString(styles.OldPrice.Render(styles.FormatCurrency(p.PriceBeforeDiscount)))
	sb.WriteString("  ")
	sb.WriteString(styles.Price.Render(styles.FormatCurrency(p.Price)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s %.1f • %d sold • %d in stock %s\n\n",
		widgets.RatingStars(p.Rating), p.Rating, p.Sold, p.Quantity,
		widgets.StockBar(p.Sold, p.Quantity, 10)))

	sb.WriteString(fmt.Sprintf("Quantity: %d\n", m.qty))

	if m.description != "" {
		sb.WriteString("\n")
		sb.WriteString(m.description)
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("+/-: quantity • a: add to cart • b: buy now • esc: back"))
	return sb.String()
}
