// ABOUTME: Product listing screen with search, category filter and paging
// ABOUTME: Pure view state; the app shell owns the actual fetches

package products

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dontuty123/shopctl/internal/client"
	"github.com/dontuty123/shopctl/internal/tui/styles"
	"github.com/dontuty123/shopctl/internal/tui/widgets"
)

// OpenDetailMsg asks the app to open a product detail screen
type OpenDetailMsg struct {
	ID string
}

// AddToCartMsg asks the app to add a product to the cart
type AddToCartMsg struct {
	ProductID string
	BuyCount  int
}

// ReloadMsg asks the app to refetch the listing with a new query
type ReloadMsg struct {
	Query client.ProductQuery
}

type sortOption struct {
	label  string
	sortBy string
	order  string
}

var sortOptions = []sortOption{
	{"newest", "createdAt", "desc"},
	{"best selling", "sold", "desc"},
	{"price low-high", "price", "asc"},
	{"price high-low", "price", "desc"},
}

// Model is the product listing screen
type Model struct {
	width   int
	height  int
	loading bool

	list       *client.ProductList
	categories []client.Category
	query      client.ProductQuery

	cursor    int
	search    textinput.Model
	searching bool
	catIndex  int // -1 means all categories
	sortIndex int
}

// New creates the listing with the default query
func New() *Model {
	search := textinput.New()
	search.Placeholder = "search products"
	search.CharLimit = 160

	return &Model{
		search:   search,
		catIndex: -1,
		loading:  true,
		query:    client.ProductQuery{Page: 1, Limit: 10, SortBy: "createdAt", Order: "desc"},
	}
}

// Query returns the current listing query
func (m *Model) Query() client.ProductQuery {
	return m.query
}

// SetSize updates layout dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetData installs fetched products and categories
func (m *Model) SetData(list *client.ProductList, categories []client.Category) {
	m.list = list
	if categories != nil {
		m.categories = categories
	}
	m.loading = false
	if m.list != nil && m.cursor >= len(m.list.Products) {
		m.cursor = 0
	}
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

	if m.searching {
		return m.updateSearch(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.list != nil && m.cursor < len(m.list.Products)-1 {
			m.cursor++
		}
	case "left":
		if m.query.Page > 1 {
			m.query.Page--
			return m.reload()
		}
	case "right":
		if m.list != nil && m.query.Page < m.list.Pagination.PageSize {
			m.query.Page++
			return m.reload()
		}
	case "enter":
		if p := m.selected(); p != nil {
			id := p.ID
			return func() tea.Msg { return OpenDetailMsg{ID: id} }
		}
	case "a":
		if p := m.selected(); p != nil {
			id := p.ID
			return func() tea.Msg { return AddToCartMsg{ProductID: id, BuyCount: 1} }
		}
	case "/":
		m.searching = true
		m.search.SetValue(m.query.Name)
		return m.search.Focus()
	case "f":
		m.cycleCategory()
		return m.reload()
	case "s":
		m.sortIndex = (m.sortIndex + 1) % len(sortOptions)
		m.query.SortBy = sortOptions[m.sortIndex].sortBy
		m.query.Order = sortOptions[m.sortIndex].order
		m.query.Page = 1
		return m.reload()
	case "r":
		return m.reload()
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.query.Name = strings.TrimSpace(m.search.Value())
		m.query.Page = 1
		return m.reload()
	case "esc":
		m.searching = false
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *Model) cycleCategory() {
	m.catIndex++
	if m.catIndex >= len(m.categories) {
		m.catIndex = -1
	}
	if m.catIndex == -1 {
		m.query.Category = ""
	} else {
		m.query.Category = m.categories[m.catIndex].ID
	}
	m.query.Page = 1
}

func (m *Model) reload() tea.Cmd {
	m.loading = true
	m.cursor = 0
	query := m.query
	return func() tea.Msg { return ReloadMsg{Query: query} }
}

func (m *Model) selected() *client.Product {
	if m.list == nil || m.cursor < 0 || m.cursor >= len(m.list.Products) {
		return nil
	}
	return &m.list.Products[m.cursor]
}

// View renders the listing
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Products"))
	sb.WriteString("\n")

	sb.WriteString(m.filterLine())
	sb.WriteString("\n\n")

	if m.searching {
		sb.WriteString(m.search.View())
		sb.WriteString("\n\n")
	}

	switch {
	case m.loading:
		sb.WriteString(styles.Subtitle.Render("Loading products..."))
	case m.list == nil || len(m.list.Products) == 0:
		sb.WriteString(styles.Subtitle.Render("No products found"))
	default:
		for i, p := range m.list.Products {
			sb.WriteString(m.renderRow(i, p))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("page %d/%d", m.list.Pagination.Page, m.list.Pagination.PageSize)))
	}

	sb.WriteString("\n\n")
	sb.WriteString(styles.Help.Render("↑/↓: select • ←/→: page • enter: detail • a: add to cart • /: search • f: category • s: sort"))
	return sb.String()
}

func (m *Model) filterLine() string {
	cat := "all"
	if m.catIndex >= 0 && m.catIndex < len(m.categories) {
		cat = m.categories[m.catIndex].Name
	}
	line := fmt.Sprintf("category: %s • sort: %s", cat, sortOptions[m.sortIndex].label)
	if m.query.Name != "" {
		line += fmt.Sprintf(" • search: %q", m.query.Name)
	}
	return styles.Subtitle.Render(line)
}

func (m *Model) renderRow(i int, p client.Product) string {
	nameWidth := 40
	if m.width > 80 {
		nameWidth = m.width - 44
	}
	row := fmt.Sprintf("%-*s %10s %s  sold %d",
		nameWidth, styles.Truncate(p.Name, nameWidth),
		styles.FormatCurrency(p.Price),
		widgets.RatingStars(p.Rating),
		p.Sold)
	if i == m.cursor {
		return styles.SelectedRow.Render("> " + row)
	}
	return "  " + row
}
