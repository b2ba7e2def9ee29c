package tui

import "memberbook/internal/model"

type tab int

const (
	tabRegister tab = iota
	tabList
	tabGraph
	tabReport
)

func (t tab) title() string {
	switch t {
	case tabRegister:
		return "Register"
	case tabList:
		return "Members"
	case tabGraph:
		return "Age graph"
	case tabReport:
		return "Age report"
	default:
		return "?"
	}
}

var allTabs = []tab{tabRegister, tabList, tabGraph, tabReport}

// Completion messages for remote calls and file reads. Cache and session
// mutations happen only when these arrive in Update, so they apply in
// completion order.

type membersLoadedMsg struct {
	members []model.Member
	err     error
}

type createDoneMsg struct {
	created model.Member
	err     error
}

type submitDoneMsg struct {
	result model.Member
	err    error
}

type deleteDoneMsg struct {
	id  string
	err error
}

// imageReadMsg carries raw file bytes for the edit session; encoding and
// staging happen on the update loop via the session.
type imageReadMsg struct {
	data []byte
	err  error
}

type confirmFocus int

const (
	confirmFocusConfirm confirmFocus = iota
	confirmFocusCancel
)
