// ABOUTME: Tests for the purchase history screen
// ABOUTME: Tab switching must request the matching status filter

package history

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dontuty123/shopctl/internal/client"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabSwitchRequestsStatus(t *testing.T) {
	m := New()
	m.SetPurchases(nil)

	if m.Status() != client.StatusAll {
		t.Errorf("expected initial status All, got %d", m.Status())
	}

	cmd := m.Update(key("l"))
	if cmd == nil {
		t.Fatal("expected reload command")
	}
	reload, ok := cmd().(ReloadMsg)
	if !ok {
		t.Fatalf("expected ReloadMsg, got %T", cmd())
	}
	if reload.Status != client.StatusWaitForConfirmation {
		t.Errorf("expected status %d, got %d", client.StatusWaitForConfirmation, reload.Status)
	}
}

func TestTabSwitchClampsAtEdges(t *testing.T) {
	m := New()
	m.SetPurchases(nil)

	if cmd := m.Update(key("h")); cmd != nil {
		t.Error("expected no reload when already at first tab")
	}

	for i := 0; i < 10; i++ {
		m.Update(key("l"))
	}
	if m.Status() != client.StatusCancelled {
		t.Errorf("expected clamp at Cancelled, got %d", m.Status())
	}
}
