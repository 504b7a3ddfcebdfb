/*
Package hmm decodes contiguous Han scalar runs that the MP route left
as out-of-vocabulary single characters, tagging each scalar B/M/E/S by
Viterbi decoding over pre-shipped log-probability tables.
*/
package hmm

import "math"

// State is one of the four BMES tags.
type State int

const (
	B State = iota
	M
	E
	S
	numStates = 4
)

func (s State) String() string {
	switch s {
	case B:
		return "B"
	case M:
		return "M"
	case E:
		return "E"
	case S:
		return "S"
	default:
		return "?"
	}
}

// MinFloat is the soft -infinity used for impossible transitions and
// missing emissions. It must survive addition without overflowing to
// -Inf, unlike math.Inf(-1).
const MinFloat = -3.14e100

// preds[s] lists the states allowed to transition into s. Transitions
// not listed here are forbidden (B->B, B->S, M->B, M->S, E->M, E->E,
// S->M, S->E).
var preds = [numStates][]State{
	B: {E, S},
	M: {B, M},
	E: {B, M},
	S: {E, S},
}

// Decode runs Viterbi over runes and returns one state per scalar.
// Length must be >= 1; length 1 trivially yields S.
func Decode(runes []rune) []State {
	n := len(runes)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []State{S}
	}

	v := make([][numStates]float64, n)
	back := make([][numStates]State, n)

	for s := State(0); s < numStates; s++ {
		v[0][s] = startProb[s] + emit(s, runes[0])
	}

	for t := 1; t < n; t++ {
		for _, s := range []State{B, M, E, S} {
			best := math.Inf(-1)
			var bestPrev State
			em := emit(s, runes[t])
			for _, p := range preds[s] {
				score := v[t-1][p] + transProb[p][s] + em
				if score >= best {
					best = score
					bestPrev = p
				}
			}
			v[t][s] = best
			back[t][s] = bestPrev
		}
	}

	last := E
	if v[n-1][S] >= v[n-1][E] {
		last = S
	}

	path := make([]State, n)
	path[n-1] = last
	for t := n - 1; t > 0; t-- {
		path[t-1] = back[t][path[t]]
	}
	return path
}

func emit(s State, r rune) float64 {
	if p, ok := emitProb[s][r]; ok {
		return p
	}
	return MinFloat
}

// GroupWords folds a BMES tag sequence into words: consecutive
// B (M*) E is one word, S is one word on its own.
func GroupWords(runes []rune, states []State) []string {
	var words []string
	begin := 0
	for i, st := range states {
		switch st {
		case B:
			begin = i
		case E:
			words = append(words, string(runes[begin:i+1]))
		case S:
			words = append(words, string(runes[i:i+1]))
		case M:
			// accumulate, closed out by the following E
		}
	}
	return words
}

// Cut decodes runes and groups the result into words in one call.
func Cut(runes []rune) []string {
	if len(runes) == 0 {
		return nil
	}
	return GroupWords(runes, Decode(runes))
}
