// ABOUTME: Route guards evaluated on every screen navigation
// ABOUTME: Auth-only screens redirect to login, guest-only to products

package tui

// Screen identifies a TUI screen
type Screen int

const (
	ScreenProducts Screen = iota
	ScreenProductDetail
	ScreenLogin
	ScreenRegister
	ScreenCart
	ScreenProfile
	ScreenChangePassword
	ScreenHistory
	ScreenNotFound
)

// String returns the screen's route name
func (s Screen) String() string {
	switch s {
	case ScreenProducts:
		return "products"
	case ScreenProductDetail:
		return "product-detail"
	case ScreenLogin:
		return "login"
	case ScreenRegister:
		return "register"
	case ScreenCart:
		return "cart"
	case ScreenProfile:
		return "profile"
	case ScreenChangePassword:
		return "change-password"
	case ScreenHistory:
		return "purchase-history"
	default:
		return "not-found"
	}
}

// guardScreen resolves a navigation target against the session state.
// It is a pure function: one redirect, no history juggling, evaluated
// fresh on every navigation.
func guardScreen(target Screen, authenticated bool) (Screen, bool) {
	switch target {
	case ScreenCart, ScreenProfile, ScreenChangePassword, ScreenHistory:
		if !authenticated {
			return ScreenLogin, true
		}
	case ScreenLogin, ScreenRegister:
		if authenticated {
			return ScreenProducts, true
		}
	}
	return target, false
}
