// ABOUTME: Client-side cart view state layered over server-fetched purchases
// ABOUTME: Tracks per-row checked/disabled flags and derives payment totals

package cart

import "github.com/dontuty123/shopctl/internal/client"

// Item is a cart line extended with local-only UI flags. Checked and
// Disabled never reach the server. BuyCount doubles as the display
// quantity; committed tracks the last server-confirmed value so
// dropped or failed edits can restore it.
type Item struct {
	client.Purchase
	Checked  bool
	Disabled bool

	committed int
}

// Committed returns the last server-confirmed quantity
func (i Item) Committed() int {
	return i.committed
}

// State holds the extended cart rows between refetches
type State struct {
	Items []Item
}

// Rebuild replaces the rows from a fresh server fetch. Checked flags
// survive for rows whose purchase id persists; new rows start
// unchecked and Disabled always resets.
func (s *State) Rebuild(purchases []client.Purchase) {
	checked := make(map[string]bool, len(s.Items))
	for _, item := range s.Items {
		if item.Checked {
			checked[item.ID] = true
		}
	}

	items := make([]Item, 0, len(purchases))
	for _, p := range purchases {
		items = append(items, Item{
			Purchase:  p,
			Checked:   checked[p.ID],
			committed: p.BuyCount,
		})
	}
	s.Items = items
}

// ToggleOne flips a single row's checked flag
func (s *State) ToggleOne(i int) {
	if i < 0 || i >= len(s.Items) {
		return
	}
	s.Items[i].Checked = !s.Items[i].Checked
}

// AllChecked reports whether every row is checked. An empty cart
// counts as all-checked, matching the select-all checkbox semantics.
func (s *State) AllChecked() bool {
	for _, item := range s.Items {
		if !item.Checked {
			return false
		}
	}
	return true
}

// ToggleAll sets every row to the negation of AllChecked, so one
// control serves as both select-all and deselect-all.
func (s *State) ToggleAll() {
	next := !s.AllChecked()
	for i := range s.Items {
		s.Items[i].Checked = next
	}
}

// SetTyped updates only the local display quantity; no server call
func (s *State) SetTyped(i, count int) {
	if i < 0 || i >= len(s.Items) {
		return
	}
	s.Items[i].BuyCount = count
}

// RevertTyped restores the display quantity to the committed value,
// used when a typed edit is dropped without a server call.
func (s *State) RevertTyped(i int) {
	if i < 0 || i >= len(s.Items) {
		return
	}
	s.Items[i].BuyCount = s.Items[i].committed
}

// CanCommit reports whether a quantity change should go to the server:
// in range [1, stock] and different from the committed value. Edits
// failing this are silently dropped.
func (s *State) CanCommit(i, count int) bool {
	if i < 0 || i >= len(s.Items) {
		return false
	}
	item := s.Items[i]
	return count >= 1 && count <= item.Product.Quantity && count != item.committed
}

// BeginCommit marks the row disabled for the in-flight update and
// shows the requested quantity.
func (s *State) BeginCommit(i, count int) {
	if i < 0 || i >= len(s.Items) {
		return
	}
	s.Items[i].Disabled = true
	s.Items[i].BuyCount = count
}

// FinishCommit re-enables the row. A successful update promotes the
// requested quantity to committed; a failed one rolls the display
// back.
func (s *State) FinishCommit(i int, ok bool) {
	if i < 0 || i >= len(s.Items) {
		return
	}
	s.Items[i].Disabled = false
	if ok {
		s.Items[i].committed = s.Items[i].BuyCount
	} else {
		s.Items[i].BuyCount = s.Items[i].committed
	}
}

// CheckedCount returns the number of checked rows
func (s *State) CheckedCount() int {
	n := 0
	for _, item := range s.Items {
		if item.Checked {
			n++
		}
	}
	return n
}

// CheckedIDs returns the purchase ids of the checked rows
func (s *State) CheckedIDs() []string {
	ids := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		if item.Checked {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// CheckedOrders returns the buy-products payload for the checked rows.
// Empty when nothing is checked, in which case buying is a no-op.
func (s *State) CheckedOrders() []client.Order {
	orders := make([]client.Order, 0, len(s.Items))
	for _, item := range s.Items {
		if item.Checked {
			orders = append(orders, client.Order{
				ProductID: item.Product.ID,
				BuyCount:  item.BuyCount,
			})
		}
	}
	return orders
}

// PaymentTotal sums price * buy_count over the checked rows
func (s *State) PaymentTotal() int {
	total := 0
	for _, item := range s.Items {
		if item.Checked {
			total += item.Price * item.BuyCount
		}
	}
	return total
}

// SavingsTotal sums the per-row unit discount over the checked rows
func (s *State) SavingsTotal() int {
	total := 0
	for _, item := range s.Items {
		if item.Checked {
			total += item.PriceBeforeDiscount - item.Price
		}
	}
	return total
}
