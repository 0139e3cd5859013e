// Package app is the composition root for clicker.
//
// # Overview
//
// Run wires configuration, logging, the store, the optional change feed, the
// optional auto-clicker and the UI:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()          Read config.toml
//	       ├─────> logging.OpenFile()     slog to the log file
//	       ├─────> counter.NewStore()     The one store, passed explicitly
//	       ├─────> startFeed()            watermill publisher listener
//	       ├─────> StartAutoClicker()     Background IncreaseCount ticker
//	       └─────> ui.Run()               TUI (blocks)
//
// Replay skips the UI: it folds an action script into a fresh store and
// prints the resulting state.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - Log file cannot be opened
//   - Feed transport cannot be created
//
// Recoverable errors (logged, the app keeps running):
//   - Failed dispatches from the auto-clicker
//   - Feed publish failures
package app
