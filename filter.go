package main

import (
	"slices"

	"github.com/go-ini/ini"
)

const (
	baseSection        = "base"
	supportedBoardsKey = "supported_boards"
	relatedSessionsKey = "related_sessions"
	allBoards          = "ALL"
)

// selectSessions returns the sections frag contributes for board. When the
// fragment does not apply, sessions is nil and reason says why.
func selectSessions(frag *ini.File, board string) (sessions []string, reason string) {
	base, err := frag.GetSection(baseSection)
	if err != nil {
		return nil, "no [base] section"
	}

	supported, ok := option(frag, base, supportedBoardsKey)
	if !ok {
		return nil, "[base] has no " + supportedBoardsKey
	}
	related, ok := option(frag, base, relatedSessionsKey)
	if !ok {
		return nil, "[base] has no " + relatedSessionsKey
	}

	boards := splitList(supported)
	if !slices.Contains(boards, board) && !slices.Contains(boards, allBoards) {
		return nil, "board not supported"
	}
	return deduplicateNames(splitList(related)), ""
}

// option looks name up in sec and then in the fragment's DEFAULT section.
func option(frag *ini.File, sec *ini.Section, name string) (string, bool) {
	if key, err := sec.GetKey(name); err == nil {
		return key.Value(), true
	}
	if key, err := frag.Section(ini.DefaultSection).GetKey(name); err == nil {
		return key.Value(), true
	}
	return "", false
}
