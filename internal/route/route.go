/*
Package route solves the maximum-log-probability segmentation over a
DAG via right-to-left dynamic programming under a unigram model.
*/
package route

import (
	"math"

	"github.com/duanmu/hanseg/internal/dag"
)

// FreqLookup answers the unigram log-probability of a candidate word:
// ln(max(freq(w),1)) - ln(total_freq). pkg/dictionary.Dictionary
// implements this directly.
type FreqLookup interface {
	LogFreq(word string) float64
}

// Step is route[i] = (best cumulative log-prob from i to N, best end j).
type Step struct {
	Score float64
	End   int
}

// Solve computes route[0..N] for chars over graph using freq. Ties
// (equal score) prefer the largest j, biasing toward longer matches.
func Solve(chars []rune, graph dag.Graph, freq FreqLookup) []Step {
	n := len(chars)
	route := make([]Step, n+1)
	route[n] = Step{Score: 0.0, End: n}

	for i := n - 1; i >= 0; i-- {
		best := math.Inf(-1)
		bestJ := i + 1
		for _, j := range graph[i] {
			word := string(chars[i:j])
			score := freq.LogFreq(word) + route[j].Score
			if score >= best {
				best = score
				bestJ = j
			}
		}
		route[i] = Step{Score: best, End: bestJ}
	}
	return route
}

// Walk emits the scalar-index boundaries of the segmentation encoded
// by route, starting at 0: the returned slice is [0, route[0].End,
// route[route[0].End].End, ..., N].
func Walk(route []Step) []int {
	n := len(route) - 1
	bounds := []int{0}
	i := 0
	for i < n {
		j := route[i].End
		bounds = append(bounds, j)
		i = j
	}
	return bounds
}
