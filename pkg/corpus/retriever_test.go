package corpus

import (
	"strings"
	"testing"
)

func TestSplitIntoChunks(t *testing.T) {
	long := strings.Repeat("The apex frame is the stance from which coaching proceeds. ", 2)

	tests := []struct {
		name      string
		corpus    string
		delimiter string
		wantLen   int
	}{
		{
			name:      "short fragment dropped",
			corpus:    "short\n---\n" + long,
			delimiter: "---",
			wantLen:   1,
		},
		{
			name:      "all fragments short",
			corpus:    "a---b---c",
			delimiter: "---",
			wantLen:   0,
		},
		{
			name:      "empty corpus",
			corpus:    "",
			delimiter: "---",
			wantLen:   0,
		},
		{
			name:      "two long fragments",
			corpus:    long + "---" + long,
			delimiter: "---",
			wantLen:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitIntoChunks(tt.corpus, tt.delimiter)
			if len(chunks) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(chunks), tt.wantLen)
			}
			for i, c := range chunks {
				if c.Index != i {
					t.Errorf("chunk %d has Index %d", i, c.Index)
				}
				if c.Text != strings.TrimSpace(c.Text) {
					t.Errorf("chunk %d not trimmed: %q", i, c.Text)
				}
				if len(c.Text) <= MinChunkLength {
					t.Errorf("chunk %d shorter than minimum: %d", i, len(c.Text))
				}
			}
		})
	}
}

func TestRetrieveRelevantDropsShortAtSplit(t *testing.T) {
	corpus := "short---The apex frame is the stance from which all coaching proceeds, nobody outranks the user."
	chunks := SplitIntoChunks(corpus, "---")

	got := RetrieveRelevant("apex frame", chunks, []string{"apex", "frame"}, 5)
	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1", len(got))
	}
	if !strings.Contains(got[0].Text, "apex frame") {
		t.Errorf("wrong chunk returned: %q", got[0].Text)
	}
}

func TestRetrieveRelevantScoring(t *testing.T) {
	chunks := []Chunk{
		{Index: 0, Text: "Iteration over intensity: small boring repetitions move the baseline."},
		{Index: 1, Text: "Wants versus Shoulds: a want survives the empty-room test."},
		{Index: 2, Text: "Scope is the container of current work, one scope few wants."},
	}
	terms := []string{"want", "should", "iteration", "scope"}

	t.Run("never more than maxChunks", func(t *testing.T) {
		got := RetrieveRelevant("wants shoulds iteration scope baseline", chunks, terms, 2)
		if len(got) > 2 {
			t.Errorf("got %d chunks, want <= 2", len(got))
		}
	})

	t.Run("zero score excluded", func(t *testing.T) {
		got := RetrieveRelevant("完全无关", chunks, terms, 5)
		if len(got) != 0 {
			t.Errorf("got %d chunks, want 0", len(got))
		}
	})

	t.Run("doctrine term boost wins", func(t *testing.T) {
		got := RetrieveRelevant("tell me about my wants", chunks, terms, 1)
		if len(got) != 1 {
			t.Fatalf("got %d chunks, want 1", len(got))
		}
		// "want" is a doctrine term present in both: chunks 1 and 2 score,
		// tie broken by corpus order.
		if got[0].Index != 1 {
			t.Errorf("got chunk %d, want 1", got[0].Index)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := RetrieveRelevant("iteration and scope and wants", chunks, terms, 3)
		b := RetrieveRelevant("iteration and scope and wants", chunks, terms, 3)
		if len(a) != len(b) {
			t.Fatalf("non-deterministic lengths: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i].Index != b[i].Index {
				t.Errorf("position %d differs: %d vs %d", i, a[i].Index, b[i].Index)
			}
		}
	})

	t.Run("empty chunk list", func(t *testing.T) {
		if got := RetrieveRelevant("wants", nil, terms, 3); len(got) != 0 {
			t.Errorf("got %d chunks, want 0", len(got))
		}
	})
}

func TestTokenize(t *testing.T) {
	got := tokenize("Call Bob re: the APEX-frame doctrine, ok?")
	want := []string{"call", "apex", "frame", "doctrine"}
	if len(got) != len(want) {
		t.Fatalf("tokenize returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("term %d = %q, want %q", i, got[i], want[i])
		}
	}
}
