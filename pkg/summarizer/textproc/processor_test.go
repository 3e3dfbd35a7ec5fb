package textproc

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	tests := []struct {
		name string
		text string
		opts CleanOptions
		want string
	}{
		{
			name: "lowercases and collapses whitespace",
			text: "The  Quick\tBrown\n\nFox",
			opts: CleanOptions{},
			want: "the quick brown fox",
		},
		{
			name: "keeps punctuation and numbers by default",
			text: "Revenue grew 12% in Q3, beating estimates.",
			opts: CleanOptions{},
			want: "revenue grew 12% in q3, beating estimates.",
		},
		{
			name: "strips punctuation on request",
			text: "Hello, world! It's fine.",
			opts: CleanOptions{RemovePunctuation: true},
			want: "hello world its fine",
		},
		{
			name: "strips numbers on request",
			text: "about 42 things in 2024",
			opts: CleanOptions{RemoveNumbers: true},
			want: "about things in",
		},
		{
			name: "empty input",
			text: "   ",
			opts: CleanOptions{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.CleanText(tt.text, tt.opts)
			if got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	text := "The market opened sharply higher this morning. Analysts expect the rally to continue through the quarter. Ok."
	sentences, err := p.SplitSentences(text)
	if err != nil {
		t.Fatalf("SplitSentences returned error: %v", err)
	}

	if len(sentences) != 2 {
		t.Fatalf("got %d sentences, want 2 (short fragment dropped): %v", len(sentences), sentences)
	}
	if !strings.HasPrefix(sentences[0], "The market opened") {
		t.Errorf("unexpected first sentence: %q", sentences[0])
	}
	for _, s := range sentences {
		if len(s) <= minSplitLength {
			t.Errorf("sentence below split length survived: %q", s)
		}
	}
}

func TestSplitSentencesEmpty(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	sentences, err := p.SplitSentences("   ")
	if err != nil {
		t.Fatalf("SplitSentences returned error: %v", err)
	}
	if len(sentences) != 0 {
		t.Errorf("got %d sentences for blank input, want 0", len(sentences))
	}
}

func TestPreprocessForSummarization(t *testing.T) {
	p := NewProcessor(Config{MinSentenceLength: 10, MaxSentenceLength: 80})

	long := "This sentence keeps going well past the configured maximum length bound because it enumerates far too many unnecessary details about nothing in particular at all."
	text := "The central bank held interest rates steady on Tuesday. " + long

	sentences, err := p.PreprocessForSummarization(text)
	if err != nil {
		t.Fatalf("PreprocessForSummarization returned error: %v", err)
	}

	if len(sentences) != 1 {
		t.Fatalf("got %d sentences, want 1 (overlong sentence dropped): %v", len(sentences), sentences)
	}
	want := "the central bank held interest rates steady on tuesday."
	if sentences[0] != want {
		t.Errorf("got %q, want %q", sentences[0], want)
	}
}

func TestTokenizeWords(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	tests := []struct {
		name            string
		text            string
		removeStopwords bool
		want            []string
	}{
		{
			name:            "keeps everything without filtering",
			text:            "Dogs chase cats",
			removeStopwords: false,
			want:            []string{"dogs", "chase", "cats"},
		},
		{
			name:            "drops stop words and short tokens",
			text:            "the quick brown fox jumps over an old log",
			removeStopwords: true,
			want:            []string{"quick", "brown", "fox", "jumps", "old", "log"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.TokenizeWords(tt.text, tt.removeStopwords)
			if err != nil {
				t.Fatalf("TokenizeWords returned error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIsStopWord(t *testing.T) {
	if !IsStopWord("the") {
		t.Error("expected 'the' to be a stop word")
	}
	if IsStopWord("market") {
		t.Error("did not expect 'market' to be a stop word")
	}
}
