package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func runeEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyBindingManager(t *testing.T) {
	km := NewKeyBindingManager()

	// Test single key binding
	handledSpace := false
	km.RegisterKeyBinding(
		KeyAction{
			name:    "toggle",
			handler: func() { handledSpace = true },
		},
		[]tcell.Key{},
		[]rune{' '},
	)

	if !km.HandleKey(runeEvent(' ')) {
		t.Errorf("Expected space key to be handled")
	}
	if !handledSpace {
		t.Errorf("Expected handler to be called")
	}

	// Test 'gg' sequence
	goStartCalled := false
	km.RegisterSequence(
		KeyAction{
			name:    "goStart",
			handler: func() { goStartCalled = true },
		},
		"gg",
	)

	// First 'g' should be pending
	if !km.HandleKey(runeEvent('g')) {
		t.Errorf("Expected first 'g' to be consumed")
	}
	if goStartCalled {
		t.Errorf("Handler should not be called yet")
	}
	if !km.Pending() {
		t.Errorf("Expected a pending sequence")
	}

	// Second 'g' should trigger goStart
	if !km.HandleKey(runeEvent('g')) {
		t.Errorf("Expected second 'g' (gg sequence) to be handled")
	}
	if !goStartCalled {
		t.Errorf("Expected handler to be called for 'gg'")
	}
	if km.Pending() {
		t.Errorf("Expected sequence to be complete")
	}
}

func TestKeyBindingManagerSpecialKeys(t *testing.T) {
	km := NewKeyBindingManager()

	next := 0
	km.RegisterKeyBinding(
		KeyAction{
			name:    "next",
			handler: func() { next++ },
		},
		[]tcell.Key{tcell.KeyRight},
		[]rune{'n'},
	)

	km.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	km.HandleKey(runeEvent('n'))
	if next != 2 {
		t.Errorf("Expected next to be called twice, got %d", next)
	}

	if km.HandleKey(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone)) {
		t.Errorf("Expected unbound key to pass through")
	}
	if km.HandleKey(runeEvent('x')) {
		t.Errorf("Expected unbound rune to pass through")
	}
}

func TestKeyBindingManagerReset(t *testing.T) {
	km := NewKeyBindingManager()

	goStartCalled := false
	km.RegisterSequence(
		KeyAction{
			name:    "goStart",
			handler: func() { goStartCalled = true },
		},
		"gg",
	)

	// Press 'g'
	km.HandleKey(runeEvent('g'))

	// Press non-'g' key - should reset pending
	handleOtherCalled := false
	km.RegisterKeyBinding(
		KeyAction{
			name:    "other",
			handler: func() { handleOtherCalled = true },
		},
		[]tcell.Key{},
		[]rune{'h'},
	)

	if !km.HandleKey(runeEvent('h')) {
		t.Errorf("Expected 'h' to be handled")
	}
	if !handleOtherCalled {
		t.Errorf("Expected 'h' handler to be called")
	}
	if goStartCalled {
		t.Errorf("goStart should not have been called")
	}

	// A special key also drops the prefix
	km.HandleKey(runeEvent('g'))
	km.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if km.Pending() {
		t.Errorf("Expected special key to reset pending sequence")
	}
}
