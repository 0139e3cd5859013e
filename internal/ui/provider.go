package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/clicker/internal/counter"
	"github.com/five82/clicker/internal/store"
)

// Connect subscribes the view to s. Whenever a dispatch changes the view's
// props, send receives a message carrying the new props. Dispatches that leave
// the props as they were send nothing.
//
// send is usually (*tea.Program).Send, which blocks until the event loop takes
// the message, so dispatches must not be made from inside Update.
func Connect(s *store.Store[counter.State], send func(tea.Msg)) (disconnect func()) {
	_, disconnect = store.Select(s, SelectProps, store.Equal[Props], func(p Props) {
		send(propsMsg(p))
	})
	return disconnect
}
