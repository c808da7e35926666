/*
Package markov provides a small, generic toolkit for training first-order Markov
chain models in memory and sampling new sequences from them.

A Generator is parameterized over any comparable token type. It is trained once
from an ordered slice of tokens, after which it can pick random start states,
step from one state to the next weighted by observed counts, and drive bounded
walks through the chain. Dead ends are reported as errors by the sampling
primitives and turned into restarts by the walk, so generation never loops.

The package also includes a plain whitespace Tokenizer for text input, a
Recorder hook for metrics, and a Render dump of the model for debugging.
*/
package markov
