// Package app is the composition root for perch.
//
// Run loads the config file and preferences, opens the JSON log file, builds
// the backend client and the widget board, optionally serves Prometheus
// metrics, and then hands control to the UI. When the UI exits the board is
// stopped and every in-flight request is awaited before Run returns.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config.toml + env overrides
//	       ├─────> OpenLogger()         JSON records to <log_dir>/perch.log
//	       ├─────> backend.NewClient()  HTTP client for the dashboard API
//	       ├─────> ServeMetrics()       Only when metrics_addr is set
//	       ├─────> widget.NewBoard()    One fetcher per widget
//	       └─────> ui.Run()             Start TUI (blocks)
//
// Fatal errors are configuration problems, an unwritable log directory, an
// invalid API URL and a metrics address that cannot be bound. Backend
// failures never stop the program; widgets show them and keep polling.
package app
