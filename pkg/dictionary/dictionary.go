/*
Package dictionary holds the word -> (frequency, tag) mapping that
backs segmentation, plus the prefix index used to enumerate candidate
words at a given scalar position. It owns load/insert/remove/suggest
mutation and keeps total_freq in sync with the sum of all entries.
*/
package dictionary

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/charmbracelet/log"
)

// Dictionary is an ordered mapping word -> (freq, tag) with a prefix
// index over its keys. It is owned by a cutter instance and shared by
// reference across concurrent reads; mutation must be externally
// serialized.
type Dictionary struct {
	mu        sync.RWMutex
	index     *prefixIndex
	totalFreq int64
	size      int
}

// New returns an empty dictionary with no entries.
func New() *Dictionary {
	return &Dictionary{index: newPrefixIndex()}
}

// NewWithDict returns a dictionary pre-loaded from stream.
func NewWithDict(stream io.Reader) (*Dictionary, error) {
	d := New()
	if err := d.Load(stream); err != nil {
		return nil, err
	}
	return d, nil
}

// Load parses stream and merges its entries into the dictionary: for
// duplicate words the latest (freq, tag) wins. Load is transactional
// at the stream level — parseStream fully parses the stream first, so
// a ParseError never leaves the dictionary partially mutated.
func (d *Dictionary) Load(stream io.Reader) error {
	words, err := parseStream(stream)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, w := range words {
		d.insertLocked(w.Text, w.Freq, w.Tag)
	}
	log.Debugf("dictionary: loaded %d entries, total_freq=%d", len(words), d.totalFreq)
	return nil
}

// Insert adds or updates word with an explicit frequency and tag. It
// updates the trie and total_freq.
func (d *Dictionary) Insert(word string, freq int, tag string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.insertLocked(word, freq, tag)
}

// InsertSuggested adds word using SuggestFreq's computed frequency,
// the insert-with-no-explicit-frequency path. It returns the
// frequency that was chosen.
func (d *Dictionary) InsertSuggested(word, tag string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	freq := d.suggestFreqLocked(word)
	d.insertLocked(word, freq, tag)
	return freq
}

func (d *Dictionary) insertLocked(word string, freq int, tag string) {
	if old, ok := d.index.get(word); ok {
		d.totalFreq -= int64(old.Freq)
	} else {
		d.size++
	}
	d.index.insertTerminal(word, Word{Text: word, Freq: freq, Tag: tag})
	d.totalFreq += int64(freq)
}

// Remove deletes word and updates total_freq. Proper-prefix
// non-terminal nodes remain in the trie as long as they are prefixes
// of some surviving word.
func (d *Dictionary) Remove(word string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	old, ok := d.index.get(word)
	if !ok {
		return false
	}
	d.index.removeTerminal(word)
	d.totalFreq -= int64(old.Freq)
	d.size--
	return true
}

// HasWord reports whether word is a terminal dictionary key.
func (d *Dictionary) HasWord(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.index.get(word)
	return ok
}

// Frequency returns word's frequency, or 0 if word is not a key.
func (d *Dictionary) Frequency(word string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	w, ok := d.index.get(word)
	if !ok {
		return 0
	}
	return w.Freq
}

// Tag returns word's POS tag and whether word is a key.
func (d *Dictionary) Tag(word string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	w, ok := d.index.get(word)
	if !ok {
		return "", false
	}
	return w.Tag, true
}

// TotalFreq returns the sum of all entry frequencies.
func (d *Dictionary) TotalFreq() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.totalFreq
}

// Size returns the number of terminal entries.
func (d *Dictionary) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.size
}

// PrefixScan yields every j>i such that chars[i:j] is a terminal key,
// in ascending order of j, satisfying internal/dag's PrefixScanner
// contract directly.
func (d *Dictionary) PrefixScan(chars []rune, i int) []int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index.scanPrefixes(chars, i)
}

// LogFreq implements internal/route's FreqLookup: ln(max(freq(w),1)) - ln(total_freq).
func (d *Dictionary) LogFreq(word string) float64 {
	d.mu.RLock()
	freq := 1
	if w, ok := d.index.get(word); ok && w.Freq > 0 {
		freq = w.Freq
	}
	total := d.totalFreq
	d.mu.RUnlock()
	if total <= 0 {
		total = 1
	}
	return math.Log(float64(freq)) - math.Log(float64(total))
}

// SuggestFreq computes the frequency that would make word its own MP
// segmentation, without mutating the dictionary: with T the current
// total frequency and w1..wk word's current MP segmentation, it
// returns max(1, ceil(T * prod(freq(wi)/T))).
func (d *Dictionary) SuggestFreq(word string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.suggestFreqLocked(word)
}

// suggestFreqLocked runs the MP recurrence directly against this
// Dictionary rather than through internal/dag + internal/route, which
// would invert the dependency direction. The word is short (a handful
// of scalars), so a private, scoped copy of the same DAG/MP
// recurrence is cheap.
func (d *Dictionary) suggestFreqLocked(word string) int {
	chars := []rune(word)
	n := len(chars)
	if n == 0 {
		return 1
	}
	total := d.totalFreq
	if total <= 0 {
		total = 1
	}
	totalF := float64(total)
	logTotal := math.Log(totalF)

	type step struct {
		score float64
		end   int
	}
	route := make([]step, n+1)
	route[n] = step{score: 0.0, end: n}

	for i := n - 1; i >= 0; i-- {
		ends := d.index.scanPrefixes(chars, i)
		if len(ends) == 0 {
			ends = []int{i + 1}
		}
		best := math.Inf(-1)
		bestJ := i + 1
		for _, j := range ends {
			frag := string(chars[i:j])
			freq := 1
			if w, ok := d.index.get(frag); ok && w.Freq > 0 {
				freq = w.Freq
			}
			score := math.Log(float64(freq)) - logTotal + route[j].score
			if score >= best {
				best = score
				bestJ = j
			}
		}
		route[i] = step{score: best, end: bestJ}
	}

	product := 1.0
	i := 0
	for i < n {
		j := route[i].end
		frag := string(chars[i:j])
		freq := 1
		if w, ok := d.index.get(frag); ok && w.Freq > 0 {
			freq = w.Freq
		}
		product *= float64(freq) / totalF
		i = j
	}

	suggested := int(math.Ceil(totalF * product))
	if suggested < 1 {
		suggested = 1
	}
	return suggested
}

// String reports basic dictionary stats, useful for debug logging.
func (d *Dictionary) String() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fmt.Sprintf("dictionary{entries=%d total_freq=%d}", d.size, d.totalFreq)
}
