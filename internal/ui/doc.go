// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a form based workflow over the roster:
//  1. [MenuView] : Pick a collection or the dashboard
//  2. [ListView] : Browse the students, courses or instructors
//  3. [FormView] : Add or edit a record with textinput fields
//  4. [ConfirmView] : Confirm a delete with y/n
//  5. [DashboardView] : Show record counts
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Repository calls run inside tea.Cmd functions and report back with a Msg, so Update itself never touches storage.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, a/e/d, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
