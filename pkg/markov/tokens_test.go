package markov

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
)

func TestDefaultTokenizer(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		opts     []TokenizerOption
		expected []string
	}{
		{name: "Spaces", input: "a b c", expected: []string{"a", "b", "c"}},
		{name: "Double space keeps empty token", input: "a  b", expected: []string{"a", "", "b"}},
		{name: "Trailing newline", input: "one\ntwo three\n", expected: []string{"one", "two", "three", ""}},
		{name: "Empty input is one empty token", input: "", expected: []string{""}},
		{name: "Tabs are not separators", input: "tab\tsep", expected: []string{"tab\tsep"}},
		{name: "Carriage returns stay attached", input: "x\r\ny", expected: []string{"x\r", "y"}},
		{name: "Punctuation stays attached", input: "Hello, world.", expected: []string{"Hello,", "world."}},
		{name: "Invalid UTF-8 passes through", input: "a\xffb c", expected: []string{"a\xffb", "c"}},
		{name: "Multibyte runes", input: "héllo wörld", expected: []string{"héllo", "wörld"}},
		{
			name:     "Skip empty",
			input:    "  a  b\n\n",
			opts:     []TokenizerOption{WithSkipEmpty(true)},
			expected: []string{"a", "b"},
		},
		{
			name:     "Skip empty on empty input",
			input:    "",
			opts:     []TokenizerOption{WithSkipEmpty(true)},
			expected: []string{},
		},
		{
			name:     "Custom split runes",
			input:    "a,b c",
			opts:     []TokenizerOption{WithSplitRunes(',')},
			expected: []string{"a", "b c"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Tokenize(NewDefaultTokenizer(tc.opts...), strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Tokenize() failed: %v", err)
			}
			if !slices.Equal(tokens, tc.expected) {
				t.Errorf("Tokenize(%q) = %q, want %q", tc.input, tokens, tc.expected)
			}
		})
	}
}

func TestStreamTokenizerEOF(t *testing.T) {
	stream := NewDefaultTokenizer().NewStream(strings.NewReader("a"))
	if token, err := stream.Next(); err != nil || token != "a" {
		t.Fatalf("Next() = %q, %v; want a", token, err)
	}
	for i := 0; i < 2; i++ {
		if _, err := stream.Next(); !errors.Is(err, io.EOF) {
			t.Errorf("Next() after the end = %v, want io.EOF", err)
		}
	}
}

var errBoom = errors.New("boom")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errBoom }

func TestTokenizeReadError(t *testing.T) {
	_, err := Tokenize(NewDefaultTokenizer(), failingReader{})
	if !errors.Is(err, errBoom) {
		t.Errorf("Tokenize() error = %v, want it to wrap the read error", err)
	}
}

func TestJoin(t *testing.T) {
	tokens := []string{"one", "", "fish"}
	if got := Join(NewDefaultTokenizer(), tokens); got != "one  fish" {
		t.Errorf("Join() = %q", got)
	}
	if got := Join(NewDefaultTokenizer(WithSeparator("_")), tokens); got != "one__fish" {
		t.Errorf("Join() with separator = %q", got)
	}
	if got := Join(NewDefaultTokenizer(), nil); got != "" {
		t.Errorf("Join(nil) = %q", got)
	}
}

func TestTokenizeTrainRoundTrip(t *testing.T) {
	tokens, err := Tokenize(NewDefaultTokenizer(), strings.NewReader("a b a c a b"))
	if err != nil {
		t.Fatal(err)
	}
	g := newTrainedGenerator(t, tokens)
	if g.TotalTransitions() != 5 || len(g.States()) != 3 {
		t.Errorf("unexpected model from tokenized text:\n%s", g.Render())
	}
}
