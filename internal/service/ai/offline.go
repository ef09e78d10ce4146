package ai

import (
	"math/rand"

	"github.com/ashstar-ai/mainframe/internal/model/persona"
)

// OfflineTable maps persona identifiers to canned degraded replies. Every
// entry embeds its mood tag inline, so picks need no extra formatting.
type OfflineTable map[string][]string

// DefaultOfflineTable holds the shipped simulation replies. Each persona's
// list is non-empty, which is what guarantees Pick always answers.
func DefaultOfflineTable() OfflineTable {
	return OfflineTable{
		"taskmaster": {
			"{{WARNING}} Neural link unstable. Focus on your priority list.",
			"{{WARNING}} Mainframe congestion detected. Work the top three items and report back.",
		},
		"fitmentor": {
			"{{WARNING}} Data packet dropped. Keep pushing through your sets.",
			"{{WARNING}} Signal lost mid-rep. No excuses — finish the workout.",
		},
		"codebuddy": {
			"{{WARNING}} API Rate Limit Exceeded. Check your syntax.",
			"{{WARNING}} Upstream compiler offline. Re-read the stack trace while I reconnect.",
		},
		"ideaforge": {
			"{{WARNING}} Creative block in network. Try brainstorming fresh ideas.",
			"{{WARNING}} Inspiration feed interrupted. Sketch three rough concepts and we refine later.",
		},
		"companion": {
			"{{LOVE}} I'm having trouble connecting, but I'm still here for you.",
			"{{LOVE}} The line is fuzzy right now, but don't go anywhere — tell me more.",
		},
	}
}

// Selector picks a canned reply for a persona once every provider has
// failed. The random source is injectable so tests can pin the pick.
type Selector struct {
	table     OfflineTable
	defaultID string
	intn      func(n int) int
}

// SelectorOption customizes a Selector.
type SelectorOption func(*Selector)

// WithRandSource replaces the pick function, e.g. with a seeded rand.
func WithRandSource(intn func(n int) int) SelectorOption {
	return func(s *Selector) {
		s.intn = intn
	}
}

// NewSelector builds a Selector over the given table. Personas absent from
// the table fall back to the default persona's list.
func NewSelector(table OfflineTable, opts ...SelectorOption) *Selector {
	s := &Selector{
		table:     table,
		defaultID: persona.DefaultID,
		intn:      rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pick returns one canned reply for the persona, chosen uniformly. This is
// the terminal answer path and never fails.
func (s *Selector) Pick(personaID string) string {
	entries, ok := s.table[personaID]
	if !ok || len(entries) == 0 {
		entries = s.table[s.defaultID]
	}
	return entries[s.intn(len(entries))]
}
