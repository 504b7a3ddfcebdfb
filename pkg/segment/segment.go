/*
Package segment exposes the cutter façade: Cut, CutAll, CutForSearch,
Tokenize and Tag, built on top of pkg/charspan, pkg/dictionary,
internal/dag, internal/route and internal/hmm.
*/
package segment

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/duanmu/hanseg/internal/dag"
	"github.com/duanmu/hanseg/internal/hmm"
	"github.com/duanmu/hanseg/internal/route"
	"github.com/duanmu/hanseg/pkg/charspan"
	"github.com/duanmu/hanseg/pkg/dictionary"
)

// Cutter is the segmentation entry point: a dictionary plus the
// cutting modes and the dictionary mutation passthrough.
type Cutter struct {
	dict *dictionary.Dictionary
}

// New wraps an existing dictionary in a Cutter.
func New(dict *dictionary.Dictionary) *Cutter {
	return &Cutter{dict: dict}
}

// NewDefault builds a Cutter over the embedded default dictionary.
func NewDefault() (*Cutter, error) {
	d, err := dictionary.NewDefault()
	if err != nil {
		return nil, err
	}
	return New(d), nil
}

// NewEmpty builds a Cutter over an empty dictionary. Every Han scalar
// is OOV until words are added or loaded.
func NewEmpty() *Cutter {
	return New(dictionary.New())
}

// NewWithDict builds a Cutter over a dictionary loaded from stream.
func NewWithDict(stream io.Reader) (*Cutter, error) {
	d, err := dictionary.NewWithDict(stream)
	if err != nil {
		return nil, err
	}
	return New(d), nil
}

// Dictionary returns the underlying dictionary, e.g. for mutation or
// stats reporting from cmd/hanseg.
func (c *Cutter) Dictionary() *dictionary.Dictionary {
	return c.dict
}

// LoadDict merges a user dictionary stream into the cutter's
// dictionary; for duplicate words the stream's (freq, tag) wins.
func (c *Cutter) LoadDict(stream io.Reader) error {
	return c.dict.Load(stream)
}

// AddWord inserts or updates word with an explicit frequency and tag.
func (c *Cutter) AddWord(word string, freq int, tag string) {
	c.dict.Insert(word, freq, tag)
}

// AddWordSuggested inserts word using SuggestFreq's computed
// frequency, for callers that don't have a corpus frequency at hand.
func (c *Cutter) AddWordSuggested(word, tag string) int {
	return c.dict.InsertSuggested(word, tag)
}

// RemoveWord deletes word from the dictionary.
func (c *Cutter) RemoveWord(word string) bool {
	return c.dict.Remove(word)
}

// SuggestFreq reports the frequency that would make word its own MP
// segmentation, without mutating the dictionary.
func (c *Cutter) SuggestFreq(word string) int {
	return c.dict.SuggestFreq(word)
}

// Cut segments text into words using the MP route, recovering
// out-of-vocabulary runs with the HMM decoder when hmmEnabled is true.
func (c *Cutter) Cut(text string, hmmEnabled bool) []string {
	var words []string
	c.walkBlocks(text, func(kind blockKind, block charspan.Index, raw string) {
		switch kind {
		case blockHan:
			words = append(words, c.cutHanBlock(block.Runes, hmmEnabled)...)
		default:
			words = append(words, raw)
		}
	})
	return words
}

// CutAll returns every dictionary word over text: for each position,
// every multi-scalar DAG candidate, plus single-scalar atoms where no
// multi-scalar match covers them.
func (c *Cutter) CutAll(text string) []string {
	var words []string
	c.walkBlocks(text, func(kind blockKind, block charspan.Index, raw string) {
		switch kind {
		case blockHan:
			words = append(words, c.cutAllBlock(block.Runes)...)
		default:
			words = append(words, raw)
		}
	})
	return words
}

// CutForSearch returns Cut's tokens interleaved with their dictionary
// sub-fragments: each base token first, then its 2-gram fragments in
// ascending start order, then its 3-gram fragments likewise.
func (c *Cutter) CutForSearch(text string, hmmEnabled bool) []string {
	base := c.Cut(text, hmmEnabled)
	var out []string
	for _, w := range base {
		out = append(out, w)
		out = append(out, c.searchFragments(w)...)
	}
	return out
}

// searchFragments returns word's dictionary 2-gram and 3-gram
// sub-fragments, ascending length then ascending start.
func (c *Cutter) searchFragments(word string) []string {
	runes := []rune(word)
	n := len(runes)
	if n <= 2 {
		return nil
	}

	var frags []string
	for i := 0; i+1 < n; i++ {
		end := i + 2
		if end >= n {
			end = n
		}
		g := string(runes[i:end])
		if c.dict.HasWord(g) {
			frags = append(frags, g)
		}
	}
	if n > 3 {
		for i := 0; i < n-2; i++ {
			end := i + 3
			if end >= n {
				end = n
			}
			g := string(runes[i:end])
			if c.dict.HasWord(g) {
				frags = append(frags, g)
			}
		}
	}
	return frags
}

// TokenizeMode selects Tokenize's fragment behavior.
type TokenizeMode int

const (
	// Default emits one Token per Cut output word.
	Default TokenizeMode = iota
	// Search additionally emits CutForSearch's sub-fragments.
	Search
)

// Token is a cut word with its half-open byte span in the original
// input.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize returns Cut's (or, in Search mode, CutForSearch's) words
// annotated with their byte offsets into text.
func (c *Cutter) Tokenize(text string, mode TokenizeMode, hmmEnabled bool) []Token {
	words := c.Cut(text, hmmEnabled)
	var toks []Token
	byteOff := 0
	for _, w := range words {
		toks = append(toks, Token{Text: w, Start: byteOff, End: byteOff + len(w)})
		if mode == Search {
			for _, frag := range c.searchFragments(w) {
				off := indexRuneSubstring(w, frag)
				start := byteOff + off
				toks = append(toks, Token{Text: frag, Start: start, End: start + len(frag)})
			}
		}
		byteOff += len(w)
	}
	return toks
}

// indexRuneSubstring returns the byte offset of frag's first
// occurrence in word, assuming frag is one of word's contiguous
// rune-aligned sub-fragments (true for searchFragments' output).
func indexRuneSubstring(word, frag string) int {
	wr, fr := []rune(word), []rune(frag)
	for i := 0; i+len(fr) <= len(wr); i++ {
		if string(wr[i:i+len(fr)]) == frag {
			return len(string(wr[:i]))
		}
	}
	return 0
}

// TaggedWord is a word with its part-of-speech tag.
type TaggedWord struct {
	Text string
	Tag  string
}

// Tag segments text and assigns each word its dictionary tag, falling
// back to the eng/m/x heuristic for OOV words.
func (c *Cutter) Tag(text string, hmmEnabled bool) []TaggedWord {
	words := c.Cut(text, hmmEnabled)
	out := make([]TaggedWord, 0, len(words))
	for _, w := range words {
		if tag, ok := c.dict.Tag(w); ok {
			out = append(out, TaggedWord{Text: w, Tag: tag})
			continue
		}
		out = append(out, TaggedWord{Text: w, Tag: heuristicTag(w)})
	}
	return out
}

// heuristicTag classifies an out-of-vocabulary word by its ASCII
// letters and digits only (other characters are not counted): words
// with digits and no letters tag "m" (numeral, so "3.14" is "m"),
// words with neither tag "x" (unclassified), everything else tags
// "eng".
func heuristicTag(word string) string {
	eng, m := 0, 0
	for _, r := range word {
		switch {
		case r >= '0' && r <= '9':
			m++
			eng++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			eng++
		}
	}
	switch {
	case eng == 0:
		return "x"
	case eng == m:
		return "m"
	default:
		return "eng"
	}
}

// blockKind classifies a pre-segmentation run.
type blockKind int

const (
	blockHan blockKind = iota
	blockOther
)

// walkBlocks splits text into maximal Han runs and maximal
// AlphaNum/Other runs (the latter always emitted verbatim, one scalar
// at a time for Other, one run at a time for AlphaNum), and invokes
// fn on each. Splitting at non-word characters keeps DAG sizes
// bounded to homogeneous runs.
func (c *Cutter) walkBlocks(text string, fn func(kind blockKind, block charspan.Index, raw string)) {
	idx := charspan.Build(text)
	n := idx.Len()
	i := 0
	for i < n {
		switch idx.ClassAt(i) {
		case charspan.Han:
			j := i + 1
			for j < n && idx.ClassAt(j) == charspan.Han {
				j++
			}
			sub := charspan.Index{Runes: idx.Runes[i:j]}
			fn(blockHan, sub, "")
			i = j
		case charspan.AlphaNum:
			j := i + 1
			for j < n && idx.ClassAt(j) == charspan.AlphaNum {
				j++
			}
			fn(blockOther, charspan.Index{}, idx.Slice(text, i, j))
			i = j
		default:
			fn(blockOther, charspan.Index{}, idx.Slice(text, i, i+1))
			i++
		}
	}
}

// cutHanBlock runs the MP route over a Han-only scalar run, then
// folds maximal sub-runs of adjacent out-of-vocabulary single-scalar
// route steps into the HMM decoder (or emits them as bare single
// characters when hmmEnabled is false).
func (c *Cutter) cutHanBlock(block []rune, hmmEnabled bool) []string {
	n := len(block)
	if n == 0 {
		return nil
	}
	g := dag.Build(block, c.dict)
	rt := route.Solve(block, g, c.dict)

	var words []string
	bufStart := -1
	flush := func(end int) {
		if bufStart < 0 {
			return
		}
		seg := block[bufStart:end]
		if hmmEnabled {
			if grouped := hmm.Cut(seg); len(grouped) > 0 {
				words = append(words, grouped...)
			} else {
				log.Warnf("segment: hmm decode returned no words for %q, falling back to singles", string(seg))
				for _, r := range seg {
					words = append(words, string(r))
				}
			}
		} else {
			for _, r := range seg {
				words = append(words, string(r))
			}
		}
		bufStart = -1
	}

	x := 0
	for x < n {
		y := rt[x].End
		singleGap := y == x+1 && !c.dict.HasWord(string(block[x:y]))
		if singleGap {
			if bufStart < 0 {
				bufStart = x
			}
		} else {
			flush(x)
			words = append(words, string(block[x:y]))
		}
		x = y
	}
	flush(n)
	return words
}

// cutAllBlock enumerates the DAG in ascending start, ascending end
// order: a lone single-scalar candidate is suppressed once it falls
// within a previously emitted multi-scalar span, but any genuine
// multi-scalar match is always emitted regardless of coverage.
func (c *Cutter) cutAllBlock(block []rune) []string {
	n := len(block)
	if n == 0 {
		return nil
	}
	g := dag.Build(block, c.dict)

	var words []string
	oldEnd := 0
	for i := 0; i < n; i++ {
		list := g[i]
		if len(list) == 1 && i >= oldEnd {
			j := list[0]
			words = append(words, string(block[i:j]))
			oldEnd = j
			continue
		}
		for _, j := range list {
			if j > i+1 {
				words = append(words, string(block[i:j]))
				oldEnd = j
			}
		}
	}
	return words
}
