// Package store implements a unidirectional state container.
//
// # Overview
//
// A Store owns one state value and a registry of listeners. The only way to
// change the state is Dispatch, which runs the store's Reducer and then tells
// every listener that something happened:
//
//	caller                 Store                      listeners
//	──────                 ─────                      ─────────
//	Dispatch(action) ───→  next, err := reducer(&cur, action)
//	                       cur = next         (under lock)
//	                       snapshot listeners (under lock)
//	                       for each l in snapshot ───→ l()
//	                                                    └─→ GetState()
//	          ←─────────── return
//
// # Reducers
//
// A Reducer is a pure function. It receives nil on its first call (the
// InitType dispatch made by New) and must then return its default state. For
// any action it does not recognise it returns the prior state unchanged.
// Reducers may return an error; Dispatch then keeps the old state, notifies
// nobody and hands the error back to its caller.
//
// # Listener Bookkeeping
//
// The listener slice is copy-on-write. Dispatch captures the slice when the
// new state is installed and iterates that capture, so a listener that
// subscribes or unsubscribes while being notified changes the set for the
// next dispatch only. Unsubscribe functions are idempotent.
//
// # Concurrency Model
//
//   - Dispatch holds a dispatch mutex while the reducer runs, so reducer
//     applications are serialized and fold-equivalent to the call order.
//   - State and listeners sit behind a sync.RWMutex held only for the swap
//     and the snapshot.
//   - Listeners run outside both locks on the dispatching goroutine. They may
//     call GetState, Subscribe, unsubscribe or Dispatch.
//   - A reducer may call GetState but must never call Dispatch on its own
//     store; that deadlocks.
//
// # Selectors
//
// Select wires a Selector and an equality function onto Subscribe, the
// equivalent of mapping state to a component's props. It is a consumer-side
// filter; the store itself always notifies.
package store
