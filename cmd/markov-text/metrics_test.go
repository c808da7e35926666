package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CTAG07/markov-text/pkg/markov"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ markov.Recorder = (*runMetrics)(nil)

func TestRunMetrics_Textfile(t *testing.T) {
	m := newRunMetrics()
	m.TransitionsTrained(5)
	m.TransitionsTrained(2)
	for range 4 {
		m.TokenEmitted()
	}
	m.Restarted(markov.RestartDeadEnd)
	m.Restarted(markov.RestartDeadEnd)
	m.Restarted(markov.RestartDrawsExhausted)
	m.modelStates.Set(6)
	m.observeStage("train", 20*time.Millisecond)

	assert.Equal(t, 3, m.restartCount)

	path := filepath.Join(t.TempDir(), "markov.prom")
	require.NoError(t, m.writeTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "markov_text_transitions_trained_total 7\n")
	assert.Contains(t, out, "markov_text_tokens_generated_total 4\n")
	assert.Contains(t, out, `markov_text_restarts_total{cause="dead_end"} 2`)
	assert.Contains(t, out, `markov_text_restarts_total{cause="draws_exhausted"} 1`)
	assert.Contains(t, out, "markov_text_model_states 6\n")
	assert.Contains(t, out, `markov_text_stage_duration_seconds_count{stage="train"} 1`)
}

func TestRunMetrics_DrivenByGenerator(t *testing.T) {
	m := newRunMetrics()
	gen := markov.New[string](markov.WithSeed(1), markov.WithRecorder(m))
	require.NoError(t, gen.Train([]string{"x", "y", "z"}))

	out, err := gen.Generate(12)
	require.NoError(t, err)
	require.Len(t, out, 12)

	path := filepath.Join(t.TempDir(), "markov.prom")
	require.NoError(t, m.writeTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "markov_text_tokens_generated_total 12\n")
	assert.Contains(t, string(data), "markov_text_transitions_trained_total 2\n")
	assert.Positive(t, m.restartCount)
}
