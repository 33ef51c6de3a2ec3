// Package ui provides terminal output formatting for kamalw.
//
// All diagnostics go to ui.Out (defaults to os.Stderr) so that stdout
// belongs entirely to the wrapped tool. Styling:
//   - Info:    → Cyan arrow
//   - Success: ✔ Green checkmark
//   - Fail:    ✘ Red X
//   - Warn:    ○ Yellow circle
//
// ui.Out is a variable to allow redirection in tests.
package ui
