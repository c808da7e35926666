package markov

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Tokenizer is an interface that defines the contract for splitting input text
// into tokens and joining generated tokens back into text. This allows the
// generator to stay independent of the tokenization strategy.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
	// Separator returns the string placed between tokens when building output.
	Separator() string
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of data, returning one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (string, error)
}

// Tokenize reads r to the end and returns every token in order.
func Tokenize(t Tokenizer, r io.Reader) ([]string, error) {
	stream := t.NewStream(r)
	var tokens []string
	for {
		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return tokens, nil
			}
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		tokens = append(tokens, token)
	}
}

// Join builds output text from tokens using the tokenizer's separator.
func Join(t Tokenizer, tokens []string) string {
	return strings.Join(tokens, t.Separator())
}
