package markov

// Restart causes passed to Recorder.Restarted.
const (
	RestartDeadEnd        = "dead_end"
	RestartDrawsExhausted = "draws_exhausted"
)

// Recorder receives training and generation events from a Generator.
// Implementations may forward them to Prometheus or any other metrics system.
type Recorder interface {
	// TransitionsTrained is called once per Train call with the number of pairs recorded.
	TransitionsTrained(n int)
	// TokenEmitted is called for every token a generation walk yields.
	TokenEmitted()
	// Restarted is called when a walk jumps to a new random state.
	Restarted(cause string)
}

// NoopRecorder is a Recorder that does nothing. It is the default.
type NoopRecorder struct{}

func (NoopRecorder) TransitionsTrained(int) {}
func (NoopRecorder) TokenEmitted()          {}
func (NoopRecorder) Restarted(string)       {}
