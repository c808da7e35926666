package markov

import (
	"bufio"
	"errors"
	"io"
	"slices"
	"strings"
	"unicode/utf8"
)

// DefaultTokenizer is a default implementation of the Tokenizer interface.
// It splits text on single spaces and newlines and nothing else: no other
// whitespace, case or punctuation handling. Consecutive separators produce empty
// tokens, and input ending in a separator produces a trailing empty token.
// Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	separator  string
	splitRunes []rune
	skipEmpty  bool
}

// TokenizerOption Is a function that configures a DefaultTokenizer.
type TokenizerOption func(*DefaultTokenizer)

// WithSeparator Sets the string used for joining tokens during generation.
// Default: " "
func WithSeparator(sep string) TokenizerOption {
	return func(t *DefaultTokenizer) {
		t.separator = sep
	}
}

// WithSplitRunes sets the runes that end a token.
// Default: ' ', '\n'
func WithSplitRunes(runes ...rune) TokenizerOption {
	return func(t *DefaultTokenizer) {
		if len(runes) > 0 {
			t.splitRunes = slices.Clone(runes)
		}
	}
}

// WithSkipEmpty drops the empty tokens produced by consecutive separators.
// Default: false
func WithSkipEmpty(skip bool) TokenizerOption {
	return func(t *DefaultTokenizer) {
		t.skipEmpty = skip
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more TokenizerOption functions.
func NewDefaultTokenizer(opts ...TokenizerOption) *DefaultTokenizer {
	t := &DefaultTokenizer{
		separator:  " ",
		splitRunes: []rune{' ', '\n'},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Separator Returns the configured separator string.
func (t *DefaultTokenizer) Separator() string {
	return t.separator
}

// NewStream Returns the stream processor.
func (t *DefaultTokenizer) NewStream(r io.Reader) StreamTokenizer {
	return &DefaultStreamTokenizer{
		reader:     bufio.NewReader(r),
		splitRunes: t.splitRunes,
		skipEmpty:  t.skipEmpty,
	}
}

// DefaultStreamTokenizer is the default implementation of the StreamTokenizer interface.
// It reads the stream rune by rune through a bufio.Reader.
type DefaultStreamTokenizer struct {
	reader     *bufio.Reader
	buf        strings.Builder
	splitRunes []rune
	skipEmpty  bool
	done       bool
}

// Next returns the next token from the stream. When the stream is exhausted, it
// returns an empty string and io.EOF. Any other error indicates a problem reading
// from the underlying stream.
func (s *DefaultStreamTokenizer) Next() (string, error) {
	for !s.done {
		r, size, err := s.reader.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", err
			}
			// The text after the last separator is always a token, even when empty.
			s.done = true
			if token := s.take(); token != "" || !s.skipEmpty {
				return token, nil
			}
			break
		}

		if r == utf8.RuneError && size == 1 {
			// Keep invalid bytes as they are rather than writing U+FFFD.
			_ = s.reader.UnreadRune()
			b, _ := s.reader.ReadByte()
			s.buf.WriteByte(b)
			continue
		}

		if slices.Contains(s.splitRunes, r) {
			if token := s.take(); token != "" || !s.skipEmpty {
				return token, nil
			}
			continue
		}
		s.buf.WriteRune(r)
	}
	return "", io.EOF
}

func (s *DefaultStreamTokenizer) take() string {
	token := s.buf.String()
	s.buf.Reset()
	return token
}
