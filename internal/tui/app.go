// ABOUTME: Root bubbletea model for the storefront TUI
// ABOUTME: Routes screens through guards, runs API calls, shows notifications

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/dontuty123/shopctl/internal/cache"
	"github.com/dontuty123/shopctl/internal/client"
	"github.com/dontuty123/shopctl/internal/config"
	"github.com/dontuty123/shopctl/internal/session"
	"github.com/dontuty123/shopctl/internal/tui/cartview"
	"github.com/dontuty123/shopctl/internal/tui/changepassword"
	"github.com/dontuty123/shopctl/internal/tui/history"
	"github.com/dontuty123/shopctl/internal/tui/login"
	"github.com/dontuty123/shopctl/internal/tui/productdetail"
	"github.com/dontuty123/shopctl/internal/tui/products"
	"github.com/dontuty123/shopctl/internal/tui/profile"
	"github.com/dontuty123/shopctl/internal/tui/register"
	"github.com/dontuty123/shopctl/internal/tui/styles"
)

const notificationTTL = 3 * time.Second

// Messages produced by async commands. Every fetch carries the
// generation it was issued under; stale generations are dropped so a
// response cannot mutate a screen the user already left.
type (
	sessionInvalidatedMsg struct{}

	notifExpireMsg struct{ seq int }

	productsLoadedMsg struct {
		gen        int
		list       *client.ProductList
		categories []client.Category
		err        error
	}

	productLoadedMsg struct {
		gen     int
		product *client.Product
		err     error
	}

	cartLoadedMsg struct {
		gen       int
		purchases []client.Purchase
		err       error
	}

	quantityUpdatedMsg struct {
		gen int
		row int
		err error
	}

	purchasesDeletedMsg struct {
		gen   int
		count int
		err   error
	}

	boughtMsg struct {
		gen     int
		message string
		err     error
	}

	addedToCartMsg struct {
		gen    int
		goCart bool
		err    error
	}

	loginDoneMsg struct {
		profile *session.Profile
		err     error
	}

	registerDoneMsg struct {
		profile *session.Profile
		err     error
	}

	logoutDoneMsg struct{ err error }

	profileLoadedMsg struct {
		gen     int
		profile *session.Profile
		err     error
	}

	profileSavedMsg struct {
		gen     int
		profile *session.Profile
		err     error
	}

	passwordChangedMsg struct {
		gen int
		err error
	}

	historyLoadedMsg struct {
		gen       int
		purchases []client.Purchase
		err       error
	}
)

type notification struct {
	text  string
	isErr bool
}

// App is the root model
type App struct {
	cfg      *config.Config
	client   *client.Client
	sessions *session.Service
	cache    *cache.Cache

	screen Screen
	width  int
	height int

	// gen counts navigations; ctx is canceled when a screen is left
	gen    int
	ctx    context.Context
	cancel context.CancelFunc

	notif    *notification
	notifSeq int

	login    *login.Model
	register *register.Model
	products *products.Model
	detail   *productdetail.Model
	cart     *cartview.Model
	profile  *profile.Model
	changepw *changepassword.Model
	history  *history.Model
}

// New creates the TUI application
func New(cfg *config.Config, apiClient *client.Client, sessions *session.Service) *App {
	a := &App{
		cfg:      cfg,
		client:   apiClient,
		sessions: sessions,
		cache:    cache.New(cfg.CacheTTL),
		ctx:      context.Background(),
	}
	a.resetChildren()
	return a
}

// resetChildren rebuilds every child model, discarding all in-memory
// view state. Used at boot and as the "full reload" after a 401.
func (a *App) resetChildren() {
	a.login = login.New()
	a.register = register.New()
	a.products = products.New()
	a.detail = productdetail.New()
	a.cart = cartview.New()
	a.profile = profile.New()
	a.changepw = changepassword.New()
	a.history = history.New()
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.navigate(ScreenProducts)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.products.SetSize(msg.Width, a.contentHeight())
		a.detail.SetSize(msg.Width, a.contentHeight())
		a.cart.SetSize(msg.Width, a.contentHeight())
		a.history.SetSize(msg.Width, a.contentHeight())
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case sessionInvalidatedMsg:
		// The involuntary termination path: storage is already
		// cleared by the client; discard all in-memory state too.
		a.resetChildren()
		cmd := a.navigate(ScreenProducts)
		return a, tea.Batch(cmd, a.notifyError("Session expired, please log in again"))

	case notifExpireMsg:
		if msg.seq == a.notifSeq {
			a.notif = nil
		}
		return a, nil
	}

	if model, cmd, handled := a.handleChildMsg(msg); handled {
		return model, cmd
	}
	if model, cmd, handled := a.handleResultMsg(msg); handled {
		return model, cmd
	}

	// Anything else (form internals, blink ticks) belongs to the
	// active screen.
	return a, a.updateChild(msg)
}

// handleKey routes global shortcuts, then the active screen
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+p":
		return a, a.navigate(ScreenProducts)
	case "ctrl+b":
		return a, a.navigate(ScreenCart)
	case "ctrl+u":
		return a, a.navigate(ScreenProfile)
	case "ctrl+y":
		return a, a.navigate(ScreenHistory)
	case "ctrl+l":
		return a, a.navigate(ScreenLogin)
	case "ctrl+r":
		return a, a.navigate(ScreenRegister)
	case "ctrl+n":
		return a, a.navigate(ScreenChangePassword)
	case "ctrl+x":
		if a.sessions.Current().IsAuthenticated {
			return a, a.doLogout()
		}
		return a, nil
	case "esc":
		if a.canGoBack() {
			return a, a.navigate(ScreenProducts)
		}
	}
	return a, a.updateChild(msg)
}

// canGoBack reports whether esc should return to the product listing
func (a *App) canGoBack() bool {
	switch a.screen {
	case ScreenProductDetail, ScreenHistory:
		return true
	case ScreenCart:
		return !a.cart.Editing()
	}
	return false
}

// handleChildMsg reacts to requests emitted by screen models
func (a *App) handleChildMsg(msg tea.Msg) (tea.Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case login.SubmittedMsg:
		return a, a.doLogin(msg.Email, msg.Password), true
	case register.SubmittedMsg:
		return a, a.doRegister(msg.Email, msg.Password), true
	case products.ReloadMsg:
		return a, a.loadProducts(msg.Query), true
	case products.OpenDetailMsg:
		return a, a.openDetail(msg.ID), true
	case products.AddToCartMsg:
		return a, a.addToCart(msg.ProductID, msg.BuyCount, false), true
	case productdetail.AddToCartMsg:
		return a, a.addToCart(msg.ProductID, msg.BuyCount, false), true
	case productdetail.BuyNowMsg:
		return a, a.addToCart(msg.ProductID, msg.BuyCount, true), true
	case cartview.UpdateQuantityMsg:
		return a, a.updateQuantity(msg.Row, msg.ProductID, msg.BuyCount), true
	case cartview.DeleteMsg:
		return a, a.deletePurchases(msg.IDs), true
	case cartview.BuyMsg:
		return a, a.buyProducts(msg.Orders), true
	case profile.SaveMsg:
		return a, a.saveProfile(msg.Update, msg.AvatarPath), true
	case changepassword.SubmittedMsg:
		return a, a.changePassword(msg.Current, msg.New), true
	case history.ReloadMsg:
		return a, a.loadHistory(msg.Status), true
	}
	return a, nil, false
}

// handleResultMsg applies async API results, dropping stale generations
func (a *App) handleResultMsg(msg tea.Msg) (tea.Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		if msg.gen != a.gen {
			return a, nil, true
		}
		if msg.err != nil {
			return a, a.reportError(msg.err, "Could not load products"), true
		}
		a.products.SetData(msg.list, msg.categories)
		return a, nil, true

	case productLoadedMsg:
		if msg.gen != a.gen {
			return a, nil, true
		}
		if msg.err != nil {
			cmd := a.navigate(ScreenProducts)
			return a, tea.Batch(cmd, a.reportError(msg.err, "Could not load product")), true
		}
		a.detail.SetProduct(msg.product)
		return a, nil, true

	case cartLoadedMsg:
		if msg.gen != a.gen {
			return a, nil, true
		}
		if msg.err != nil {
			return a, a.reportError(msg.err, "Could not load cart"), true
		}
		a.cart.SetPurchases(msg.purchases)
		return a, nil, true

	case quantityUpdatedMsg:
		if msg.gen != a.gen {
			return a, nil, true
		}
		a.cart.State().FinishCommit(msg.row, msg.err == nil)
		if msg.err != nil {
			return a, a.reportError(msg.err, "Quantity update failed, reverted"), true
		}
		return a, nil, true

	case purchasesDeletedMsg:
		if msg.gen != a.gen {
			return a, nil, true
		}
		if msg.err != nil {
			return a, a.reportError(msg.err, "Could not delete items"), true
		}
		a.cart.SetLoading()
		word := "items"
		if msg.count == 1 {
			word = "item"
		}
		return a, tea.Batch(a.loadCart(), a.notifyOK(fmt.Sprintf("Deleted %d %s", msg.count, word))), true

	case boughtMsg:
		if msg.gen != a.gen {
			return a, nil, true
		}
		if msg.err != nil {
			return a, a.reportError(msg.err, "Purchase failed"), true
		}
		text := msg.message
		if text == "" {
			text = "Purchase placed"
		}
		a.cart.SetLoading()
		return a, tea.Batch(a.loadCart(), a.notifyOK(text)), true

	case addedToCartMsg:
		if msg.gen != a.gen {
			return a, nil, true
		}
		if msg.err != nil {
			return a, a.reportError(msg.err, "Could not add to cart"), true
		}
		if msg.goCart {
			return a, tea.Batch(a.navigate(ScreenCart), a.notifyOK("Added to cart")), true
		}
		return a, a.notifyOK("Added to cart"), true

	case loginDoneMsg:
		if msg.err != nil {
			var cmds []tea.Cmd
			if entity := client.AsEntityError(msg.err); entity != nil {
				cmds = append(cmds, a.login.Fail(entity.Fields))
			} else {
				cmds = append(cmds, a.login.Fail(nil))
			}
			cmds = append(cmds, a.reportError(msg.err, "Login failed"))
			return a, tea.Batch(cmds...), true
		}
		cmd := a.navigate(ScreenProducts)
		return a, tea.Batch(cmd, a.notifyOK("Welcome back, "+displayName(msg.profile))), true

	case registerDoneMsg:
		if msg.err != nil {
			var cmds []tea.Cmd
			if entity := client.AsEntityError(msg.err); entity != nil {
				cmds = append(cmds, a.register.Fail(entity.Fields))
			} else {
				cmds = append(cmds, a.register.Fail(nil))
			}
			cmds = append(cmds, a.reportError(msg.err, "Registration failed"))
			return a, tea.Batch(cmds...), true
		}
		cmd := a.navigate(ScreenProducts)
		return a, tea.Batch(cmd, a.notifyOK("Welcome, "+displayName(msg.profile))), true

	case logoutDoneMsg:
		if msg.err != nil {
			return a, a.reportError(msg.err, "Logout failed"), true
		}
		a.resetChildren()
		cmd := a.navigate(ScreenProducts)
		return a, tea.Batch(cmd, a.notifyOK("Logged out")), true

	case profileLoadedMsg:
		if msg.gen != a.gen {
			return a, nil, true
		}
		if msg.err != nil {
			return a, a.reportError(msg.err, "Could not load profile"), true
		}
		return a, a.profile.SetProfile(msg.profile), true

	case profileSavedMsg:
		if msg.gen != a.gen {
			return a, nil, true
		}
		if msg.err != nil {
			return a, tea.Batch(a.profile.Fail(), a.reportError(msg.err, "Could not save profile")), true
		}
		cmd := a.profile.SetProfile(msg.profile)
		return a, tea.Batch(cmd, a.notifyOK("Profile updated")), true

	case passwordChangedMsg:
		if msg.gen != a.gen {
			return a, nil, true
		}
		if msg.err != nil {
			return a, tea.Batch(a.changepw.Reset(), a.reportError(msg.err, "Could not change password")), true
		}
		return a, tea.Batch(a.changepw.Reset(), a.notifyOK("Password changed")), true

	case historyLoadedMsg:
		if msg.gen != a.gen {
			return a, nil, true
		}
		if msg.err != nil {
			return a, a.reportError(msg.err, "Could not load purchases"), true
		}
		a.history.SetPurchases(msg.purchases)
		return a, nil, true
	}
	return a, nil, false
}

// updateChild forwards a message to the active screen model
func (a *App) updateChild(msg tea.Msg) tea.Cmd {
	switch a.screen {
	case ScreenLogin:
		return a.login.Update(msg)
	case ScreenRegister:
		return a.register.Update(msg)
	case ScreenProducts:
		return a.products.Update(msg)
	case ScreenProductDetail:
		return a.detail.Update(msg)
	case ScreenCart:
		return a.cart.Update(msg)
	case ScreenProfile:
		return a.profile.Update(msg)
	case ScreenChangePassword:
		return a.changepw.Update(msg)
	case ScreenHistory:
		return a.history.Update(msg)
	}
	return nil
}

// navigate moves to a screen through the guards, cancels the previous
// screen's requests, and kicks off the new screen's initial load.
func (a *App) navigate(target Screen) tea.Cmd {
	authed := a.sessions.Current().IsAuthenticated
	resolved, _ := guardScreen(target, authed)

	a.gen++
	if a.cancel != nil {
		a.cancel()
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.screen = resolved

	switch resolved {
	case ScreenProducts:
		a.products.SetLoading()
		return a.loadProducts(a.products.Query())
	case ScreenLogin:
		a.login = login.New()
		return a.login.Init()
	case ScreenRegister:
		a.register = register.New()
		return a.register.Init()
	case ScreenCart:
		a.cart.SetLoading()
		return a.loadCart()
	case ScreenProfile:
		a.profile.SetLoading()
		return a.loadProfile()
	case ScreenChangePassword:
		a.changepw = changepassword.New()
		return a.changepw.Init()
	case ScreenHistory:
		a.history.SetLoading()
		return a.loadHistory(a.history.Status())
	}
	return nil
}

// openDetail navigates to a product's detail screen
func (a *App) openDetail(id string) tea.Cmd {
	a.gen++
	if a.cancel != nil {
		a.cancel()
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.screen = ScreenProductDetail
	a.detail.SetLoading()

	ctx, gen := a.ctx, a.gen
	return func() tea.Msg {
		key := "product/" + id
		if v, ok := a.cache.Get(key); ok {
			if p, ok := v.(*client.Product); ok {
				return productLoadedMsg{gen: gen, product: p}
			}
		}
		p, err := a.client.GetProduct(ctx, id)
		if err == nil {
			a.cache.Set(key, p)
		}
		return productLoadedMsg{gen: gen, product: p, err: err}
	}
}

// loadProducts fetches the listing and categories concurrently,
// serving repeats from the cache.
func (a *App) loadProducts(query client.ProductQuery) tea.Cmd {
	ctx, gen := a.ctx, a.gen
	return func() tea.Msg {
		listKey := "products?" + query.CacheKey()

		var list *client.ProductList
		var categories []client.Category
		if v, ok := a.cache.Get(listKey); ok {
			list, _ = v.(*client.ProductList)
		}
		if v, ok := a.cache.Get("categories"); ok {
			categories, _ = v.([]client.Category)
		}

		g, gctx := errgroup.WithContext(ctx)
		if list == nil {
			g.Go(func() error {
				l, err := a.client.ListProducts(gctx, query)
				if err != nil {
					return err
				}
				a.cache.Set(listKey, l)
				list = l
				return nil
			})
		}
		if categories == nil {
			g.Go(func() error {
				c, err := a.client.ListCategories(gctx)
				if err != nil {
					return err
				}
				a.cache.Set("categories", c)
				categories = c
				return nil
			})
		}
		err := g.Wait()
		return productsLoadedMsg{gen: gen, list: list, categories: categories, err: err}
	}
}

func (a *App) loadCart() tea.Cmd {
	ctx, gen := a.ctx, a.gen
	return func() tea.Msg {
		purchases, err := a.client.ListPurchases(ctx, client.StatusInCart)
		return cartLoadedMsg{gen: gen, purchases: purchases, err: err}
	}
}

func (a *App) loadProfile() tea.Cmd {
	ctx, gen := a.ctx, a.gen
	return func() tea.Msg {
		p, err := a.client.GetProfile(ctx)
		return profileLoadedMsg{gen: gen, profile: p, err: err}
	}
}

func (a *App) loadHistory(status int) tea.Cmd {
	ctx, gen := a.ctx, a.gen
	return func() tea.Msg {
		purchases, err := a.client.ListPurchases(ctx, status)
		return historyLoadedMsg{gen: gen, purchases: purchases, err: err}
	}
}

func (a *App) doLogin(email, password string) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		p, err := a.client.Login(ctx, client.Credentials{Email: email, Password: password})
		return loginDoneMsg{profile: p, err: err}
	}
}

func (a *App) doRegister(email, password string) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		p, err := a.client.Register(ctx, client.Credentials{Email: email, Password: password})
		return registerDoneMsg{profile: p, err: err}
	}
}

func (a *App) doLogout() tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		return logoutDoneMsg{err: a.client.Logout(ctx)}
	}
}

func (a *App) addToCart(productID string, buyCount int, goCart bool) tea.Cmd {
	ctx, gen := a.ctx, a.gen
	return func() tea.Msg {
		_, err := a.client.AddToCart(ctx, productID, buyCount)
		return addedToCartMsg{gen: gen, goCart: goCart, err: err}
	}
}

func (a *App) updateQuantity(row int, productID string, buyCount int) tea.Cmd {
	ctx, gen := a.ctx, a.gen
	return func() tea.Msg {
		_, err := a.client.UpdatePurchase(ctx, productID, buyCount)
		return quantityUpdatedMsg{gen: gen, row: row, err: err}
	}
}

func (a *App) deletePurchases(ids []string) tea.Cmd {
	ctx, gen := a.ctx, a.gen
	return func() tea.Msg {
		count, err := a.client.DeletePurchases(ctx, ids)
		return purchasesDeletedMsg{gen: gen, count: count, err: err}
	}
}

func (a *App) buyProducts(orders []client.Order) tea.Cmd {
	ctx, gen := a.ctx, a.gen
	return func() tea.Msg {
		message, _, err := a.client.BuyProducts(ctx, orders)
		return boughtMsg{gen: gen, message: message, err: err}
	}
}

func (a *App) saveProfile(update client.ProfileUpdate, avatarPath string) tea.Cmd {
	ctx, gen := a.ctx, a.gen
	return func() tea.Msg {
		if avatarPath != "" {
			name, err := a.client.UploadAvatar(ctx, avatarPath)
			if err != nil {
				return profileSavedMsg{gen: gen, err: err}
			}
			update.Avatar = name
		}
		p, err := a.client.UpdateProfile(ctx, update)
		return profileSavedMsg{gen: gen, profile: p, err: err}
	}
}

func (a *App) changePassword(current, next string) tea.Cmd {
	ctx, gen := a.ctx, a.gen
	return func() tea.Msg {
		return passwordChangedMsg{gen: gen, err: a.client.ChangePassword(ctx, current, next)}
	}
}

// reportError shows a toast for a failed call. Unauthorized errors are
// swallowed here because sessionInvalidatedMsg handles them globally.
func (a *App) reportError(err error, fallback string) tea.Cmd {
	if client.IsUnauthorized(err) {
		return nil
	}
	if entity := client.AsEntityError(err); entity != nil {
		return a.notifyError(entity.Error())
	}
	text := fallback
	if err != nil {
		text = fmt.Sprintf("%s: %v", fallback, err)
	}
	return a.notifyError(text)
}

func (a *App) notifyOK(text string) tea.Cmd {
	return a.notify(text, false)
}

func (a *App) notifyError(text string) tea.Cmd {
	return a.notify(text, true)
}

func (a *App) notify(text string, isErr bool) tea.Cmd {
	a.notif = &notification{text: text, isErr: isErr}
	a.notifSeq++
	seq := a.notifSeq
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return notifExpireMsg{seq: seq}
	})
}

// View implements tea.Model
func (a *App) View() string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n\n")

	switch a.screen {
	case ScreenLogin:
		sb.WriteString(a.login.View())
	case ScreenRegister:
		sb.WriteString(a.register.View())
	case ScreenProducts:
		sb.WriteString(a.products.View())
	case ScreenProductDetail:
		sb.WriteString(a.detail.View())
	case ScreenCart:
		sb.WriteString(a.cart.View())
	case ScreenProfile:
		sb.WriteString(a.profile.View())
	case ScreenChangePassword:
		sb.WriteString(a.changepw.View())
	case ScreenHistory:
		sb.WriteString(a.history.View())
	default:
		sb.WriteString(styles.Subtitle.Render("Nothing here. Press ctrl+p for products."))
	}

	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

func (a *App) renderHeader() string {
	brand := styles.Title.Render("shopctl")
	who := "guest"
	if cur := a.sessions.Current(); cur.IsAuthenticated {
		who = displayName(cur.Profile)
	}
	right := styles.Subtitle.Render(fmt.Sprintf("%s • %s", a.screen, who))
	return lipgloss.JoinHorizontal(lipgloss.Top, brand, "  ", right)
}

func (a *App) renderFooter() string {
	var sb strings.Builder
	if a.notif != nil {
		style := styles.StatusOK
		if a.notif.isErr {
			style = styles.StatusError
		}
		sb.WriteString(style.Render(a.notif.text))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Help.Render("ctrl+p: products • ctrl+b: cart • ctrl+u: profile • ctrl+y: orders • ctrl+l: login • ctrl+x: logout • ctrl+c: quit"))
	return sb.String()
}

func (a *App) contentHeight() int {
	h := a.height - 6
	if h < 5 {
		return 5
	}
	return h
}

func displayName(p *session.Profile) string {
	if p == nil {
		return "guest"
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

// Run starts the TUI and wires the client's unauthorized hook to the
// program so a 401 from any endpoint forces the reload path.
func Run(cfg *config.Config, apiClient *client.Client, sessions *session.Service) error {
	app := New(cfg, apiClient, sessions)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	apiClient.OnUnauthorized(func() {
		p.Send(sessionInvalidatedMsg{})
	})

	_, err := p.Run()
	return err
}
