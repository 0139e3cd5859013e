// Package ui provides the Bubble Tea counter view for clicker.
//
// The view never owns application state. Connect subscribes it to the store
// once at startup; every dispatch that changes the selected Props is
// forwarded into the program as a message, and key presses come back out as
// dispatches run in tea.Cmds.
//
//	key press ──→ dispatchCmd ──→ store.Dispatch(IncreaseCount)
//	                                     │
//	                  listener (Connect) ←┘
//	                         │
//	              program.Send(propsMsg) ──→ Update ──→ View
package ui
