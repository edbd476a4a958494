// ABOUTME: Tests for the cart screen model
// ABOUTME: Drives key input and checks the commands it emits

package cartview

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dontuty123/shopctl/internal/client"
)

func testPurchases() []client.Purchase {
	return []client.Purchase{
		{
			ID:       "p1",
			BuyCount: 2,
			Price:    100,
			Product:  client.Product{ID: "prod1", Name: "Phone", Price: 100, Quantity: 10},
		},
		{
			ID:       "p2",
			BuyCount: 3,
			Price:    200,
			Product:  client.Product{ID: "prod2", Name: "Case", Price: 200, Quantity: 5},
		},
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestIncrementEmitsUpdate(t *testing.T) {
	m := New()
	m.SetPurchases(testPurchases())

	msg := runCmd(m.Update(key("+")))
	update, ok := msg.(UpdateQuantityMsg)
	if !ok {
		t.Fatalf("expected UpdateQuantityMsg, got %T", msg)
	}
	if update.Row != 0 || update.ProductID != "prod1" || update.BuyCount != 3 {
		t.Errorf("unexpected update: %+v", update)
	}
	if !m.State().Items[0].Disabled {
		t.Error("row must be disabled while the update is in flight")
	}
}

func TestDecrementBelowOneIsLocalNoop(t *testing.T) {
	m := New()
	m.SetPurchases([]client.Purchase{{
		ID:       "p1",
		BuyCount: 1,
		Price:    100,
		Product:  client.Product{ID: "prod1", Quantity: 10},
	}})

	if msg := runCmd(m.Update(key("-"))); msg != nil {
		t.Errorf("expected no command for quantity 0, got %v", msg)
	}
	if got := m.State().Items[0].BuyCount; got != 1 {
		t.Errorf("expected quantity unchanged at 1, got %d", got)
	}
	if m.State().Items[0].Disabled {
		t.Error("rejected edit must not disable the row")
	}
}

func TestIncrementAboveStockIsLocalNoop(t *testing.T) {
	m := New()
	m.SetPurchases([]client.Purchase{{
		ID:       "p1",
		BuyCount: 5,
		Price:    100,
		Product:  client.Product{ID: "prod1", Quantity: 5},
	}})

	if msg := runCmd(m.Update(key("+"))); msg != nil {
		t.Errorf("expected no command above stock, got %v", msg)
	}
}

func TestTypedEditCommitsOnEnter(t *testing.T) {
	m := New()
	m.SetPurchases(testPurchases())

	m.Update(key("e"))
	if !m.Editing() {
		t.Fatal("expected editing mode after e")
	}

	m.editInput.SetValue("7")
	msg := runCmd(m.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	update, ok := msg.(UpdateQuantityMsg)
	if !ok {
		t.Fatalf("expected UpdateQuantityMsg, got %T", msg)
	}
	if update.BuyCount != 7 {
		t.Errorf("expected count 7, got %d", update.BuyCount)
	}
	if m.Editing() {
		t.Error("enter must leave editing mode")
	}
}

func TestTypedEditSameValueIsDropped(t *testing.T) {
	m := New()
	m.SetPurchases(testPurchases())

	m.Update(key("e"))
	m.editInput.SetValue("2") // same as committed
	if msg := runCmd(m.Update(tea.KeyMsg{Type: tea.KeyEnter})); msg != nil {
		t.Errorf("expected no command for unchanged quantity, got %v", msg)
	}
}

func TestTypedEditEscReverts(t *testing.T) {
	m := New()
	m.SetPurchases(testPurchases())

	m.Update(key("e"))
	m.editInput.SetValue("9")
	m.State().SetTyped(0, 9)

	runCmd(m.Update(tea.KeyMsg{Type: tea.KeyEsc}))
	if m.Editing() {
		t.Error("esc must leave editing mode")
	}
	if got := m.State().Items[0].BuyCount; got != 2 {
		t.Errorf("expected revert to 2, got %d", got)
	}
}

func TestCheckAndBuy(t *testing.T) {
	m := New()
	m.SetPurchases(testPurchases())

	// Buying with nothing checked does nothing
	if msg := runCmd(m.Update(key("b"))); msg != nil {
		t.Errorf("expected no command with nothing checked, got %v", msg)
	}

	m.Update(key(" ")) // check row 0
	msg := runCmd(m.Update(key("b")))
	buy, ok := msg.(BuyMsg)
	if !ok {
		t.Fatalf("expected BuyMsg, got %T", msg)
	}
	if len(buy.Orders) != 1 || buy.Orders[0].ProductID != "prod1" || buy.Orders[0].BuyCount != 2 {
		t.Errorf("unexpected orders: %+v", buy.Orders)
	}
}

func TestDeleteRowAndChecked(t *testing.T) {
	m := New()
	m.SetPurchases(testPurchases())

	msg := runCmd(m.Update(key("d")))
	del, ok := msg.(DeleteMsg)
	if !ok {
		t.Fatalf("expected DeleteMsg, got %T", msg)
	}
	if len(del.IDs) != 1 || del.IDs[0] != "p1" {
		t.Errorf("unexpected ids: %v", del.IDs)
	}

	// Bulk delete with nothing checked does nothing
	if msg := runCmd(m.Update(key("D"))); msg != nil {
		t.Errorf("expected no command with nothing checked, got %v", msg)
	}

	m.Update(key("a")) // check all
	msg = runCmd(m.Update(key("D")))
	del, ok = msg.(DeleteMsg)
	if !ok {
		t.Fatalf("expected DeleteMsg, got %T", msg)
	}
	if len(del.IDs) != 2 {
		t.Errorf("expected both ids, got %v", del.IDs)
	}
}

func TestCursorMovement(t *testing.T) {
	m := New()
	m.SetPurchases(testPurchases())

	m.Update(key("j"))
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}
	m.Update(key("j")) // clamped at last row
	if m.cursor != 1 {
		t.Errorf("expected cursor clamped at 1, got %d", m.cursor)
	}
	m.Update(key("k"))
	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
}
