package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/roster/internal/repositories"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRecordsLoaded MsgKind = iota
	MsgRecordSaved
	MsgRecordDeleted
	MsgSummaryLoaded
)

type recordsLoaded struct {
	entity Entity
	items  []recordItem
}

type recordSaved struct {
	entity Entity
	status string
	err    error
}

type recordDeleted struct {
	entity Entity
	label  string
	err    error
}

// recordsLoadedMsg is the constructor for [MsgRecordsLoaded]
func recordsLoadedMsg(entity Entity, items []recordItem) Msg {
	return Msg{kind: MsgRecordsLoaded, data: recordsLoaded{entity, items}}
}

// recordSavedMsg is the constructor for [MsgRecordSaved]
func recordSavedMsg(entity Entity, status string, err error) Msg {
	return Msg{kind: MsgRecordSaved, data: recordSaved{entity, status, err}}
}

// recordDeletedMsg is the constructor for [MsgRecordDeleted]
func recordDeletedMsg(entity Entity, label string, err error) Msg {
	return Msg{kind: MsgRecordDeleted, data: recordDeleted{entity, label, err}}
}

// summaryLoadedMsg is the constructor for [MsgSummaryLoaded]
func summaryLoadedMsg(summary repositories.Summary) Msg {
	return Msg{kind: MsgSummaryLoaded, data: summary}
}
