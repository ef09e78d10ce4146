package ai_test

import (
	"strings"
	"testing"

	"github.com/ashstar-ai/mainframe/internal/service/ai"
)

func TestPickReturnsEntryFromPersonaTable(t *testing.T) {
	table := ai.DefaultOfflineTable()
	selector := ai.NewSelector(table, ai.WithRandSource(func(n int) int { return 0 }))

	got := selector.Pick("fitmentor")
	if got != table["fitmentor"][0] {
		t.Fatalf("unexpected pick: %q", got)
	}
	if !strings.Contains(got, "{{") || !strings.Contains(got, "}}") {
		t.Fatalf("offline reply missing mood tag: %q", got)
	}
}

func TestPickUnknownPersonaUsesDefaultTable(t *testing.T) {
	table := ai.DefaultOfflineTable()
	selector := ai.NewSelector(table, ai.WithRandSource(func(n int) int { return 0 }))

	got := selector.Pick("ghost")
	if got != table["companion"][0] {
		t.Fatalf("expected companion fallback, got %q", got)
	}
}

func TestPickCoversWholeList(t *testing.T) {
	table := ai.OfflineTable{
		"companion": {"{{LOVE}} a", "{{LOVE}} b", "{{LOVE}} c"},
	}
	for i := 0; i < 3; i++ {
		idx := i
		selector := ai.NewSelector(table, ai.WithRandSource(func(n int) int { return idx % n }))
		got := selector.Pick("companion")
		if got != table["companion"][idx] {
			t.Fatalf("pick %d: got %q", idx, got)
		}
	}
}

func TestDefaultTableNonEmptyPerPersona(t *testing.T) {
	for id, entries := range ai.DefaultOfflineTable() {
		if len(entries) == 0 {
			t.Fatalf("persona %s has empty offline list", id)
		}
		for _, entry := range entries {
			if strings.TrimSpace(entry) == "" {
				t.Fatalf("persona %s has blank offline entry", id)
			}
		}
	}
}
