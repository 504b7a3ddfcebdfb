package dictionary

import (
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// prefixIndex answers "which dictionary words start at this position"
// with a patricia radix trie over UTF-8 byte keys. VisitPrefixes
// visits every node on the path from the root down to (and including)
// the queried key, in ascending key-length order, which is exactly
// dag[i]'s required ascending-j order.
type prefixIndex struct {
	trie *patricia.Trie
}

func newPrefixIndex() *prefixIndex {
	return &prefixIndex{trie: patricia.NewTrie()}
}

// insertTerminal marks word as a terminal key and ensures every
// proper prefix of word has a (possibly non-terminal) node, so that
// prefix scanning can walk through and prune on intermediate nodes.
func (p *prefixIndex) insertTerminal(word string, w Word) {
	key := patricia.Prefix(word)
	if p.trie.Get(key) != nil {
		p.trie.Delete(key)
	}
	p.trie.Insert(key, entry{terminal: true, word: w})

	runes := []rune(word)
	byteEnd := 0
	for i := 0; i < len(runes)-1; i++ {
		byteEnd += utf8.RuneLen(runes[i])
		prefixKey := patricia.Prefix(word[:byteEnd])
		if p.trie.Get(prefixKey) == nil {
			p.trie.Insert(prefixKey, entry{terminal: false})
		}
	}
}

// removeTerminal demotes word back to a non-terminal placeholder if it
// is still a proper prefix of some other surviving key, or deletes the
// node outright when it has no descendants left. Proper-prefix
// placeholder nodes for word's own prefixes are untouched — they may
// still be prefixes of other surviving words.
func (p *prefixIndex) removeTerminal(word string) bool {
	key := patricia.Prefix(word)
	existing := p.trie.Get(key)
	if existing == nil {
		return false
	}
	e, ok := existing.(entry)
	if !ok || !e.terminal {
		return false
	}

	hasDescendant := false
	_ = p.trie.VisitSubtree(key, func(k patricia.Prefix, item patricia.Item) error {
		if len(k) > len(key) {
			hasDescendant = true
		}
		return nil
	})

	p.trie.Delete(key)
	if hasDescendant {
		p.trie.Insert(key, entry{terminal: false})
	}
	return true
}

func (p *prefixIndex) get(word string) (Word, bool) {
	item := p.trie.Get(patricia.Prefix(word))
	if item == nil {
		return Word{}, false
	}
	e, ok := item.(entry)
	if !ok || !e.terminal {
		return Word{}, false
	}
	return e.word, true
}

// scanPrefixes returns, in ascending scalar order, every end index j
// (exclusive, j>i) such that chars[i:j] is a terminal key. It never
// inserts the DAG's i+1 fallback — that is internal/dag's job.
func (p *prefixIndex) scanPrefixes(chars []rune, i int) []int {
	n := len(chars)
	if i >= n {
		return nil
	}
	remainder := string(chars[i:])

	cum := make([]int, n-i+1)
	byteLen := 0
	for k := 0; k < n-i; k++ {
		cum[k] = byteLen
		byteLen += utf8.RuneLen(chars[i+k])
	}
	cum[n-i] = byteLen

	var ends []int
	err := p.trie.VisitPrefixes(patricia.Prefix(remainder), func(k patricia.Prefix, item patricia.Item) error {
		e, ok := item.(entry)
		if !ok || !e.terminal {
			return nil
		}
		plen := len(k)
		for idx, b := range cum {
			if b == plen && idx > 0 {
				ends = append(ends, i+idx)
				break
			}
		}
		return nil
	})
	if err != nil {
		log.Errorf("dictionary: prefix scan at %d failed: %v", i, err)
		return nil
	}
	return ends
}
