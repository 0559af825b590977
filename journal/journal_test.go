package journal_test

import (
	"testing"

	"github.com/Tully9/CernAtlasSBOM/journal"
)

func TestUnify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  foo  \t  \r\n   bar  ", "foo bar"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := journal.Unify(tt.input); got != tt.expected {
			t.Errorf("Unify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestJournalRoundTrip(t *testing.T) {
	journal.Configure(t.TempDir())

	events, err := journal.Events()
	if err != nil {
		t.Fatalf("Events() on a fresh journal error = %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("fresh journal has %d events, want 0", len(events))
	}

	if err := journal.Post("generate", "Athena", "stored v1 with 42 dependencies"); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if err := journal.Post("generate", "AnalysisBase", "multi\nline\tdetail"); err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	events, err = journal.Events()
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Events() = %d entries, want 2", len(events))
	}
	first := events[0]
	if first.Event != "generate" || first.Detail != "Athena" || first.When == 0 {
		t.Errorf("first event = %+v, want a stamped generate/Athena entry", first)
	}
	if events[1].Comment != "multi line detail" {
		t.Errorf("comment = %q, whitespace must collapse to single spaces", events[1].Comment)
	}
}

func TestJournalUnconfigured(t *testing.T) {
	journal.Configure("")
	if err := journal.Post("generate", "Athena", "nope"); err == nil {
		t.Error("Post() without configuration must fail")
	}
}
