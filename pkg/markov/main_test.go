package markov

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// abacab is the canonical training sequence used across tests:
// a -> {b: 2, c: 1}, b -> {a: 1}, c -> {a: 1}, five transitions in total.
var abacab = []string{"a", "b", "a", "c", "a", "b"}

// newTrainedGenerator creates a seeded Generator and trains it on tokens.
func newTrainedGenerator(t testing.TB, tokens []string, opts ...Option) *Generator[string] {
	t.Helper()
	g := New[string](append([]Option{WithSeed(42)}, opts...)...)
	if err := g.Train(tokens); err != nil {
		t.Fatalf("setup: Train() failed: %v", err)
	}
	return g
}

// countingRecorder is a Recorder that keeps totals for assertions.
type countingRecorder struct {
	trained  int
	emitted  int
	restarts map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{restarts: make(map[string]int)}
}

func (r *countingRecorder) TransitionsTrained(n int) { r.trained += n }
func (r *countingRecorder) TokenEmitted()            { r.emitted++ }
func (r *countingRecorder) Restarted(cause string)   { r.restarts[cause]++ }

var (
	benchmarkCorpus []string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a token corpus for benchmarking.
func createBenchmarkCorpus() []string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				sb.Reset()
				sb.WriteString("this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. ")
				break
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus, _ = Tokenize(NewDefaultTokenizer(WithSkipEmpty(true)), strings.NewReader(sb.String()))
	})
	return benchmarkCorpus
}
