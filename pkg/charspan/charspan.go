// Package charspan maps byte offsets to Unicode scalar indices and
// classifies runes into the Han / AlphaNum / Other buckets the cutter
// uses for block pre-segmentation.
package charspan

import "unicode/utf8"

// Class is the character bucket a scalar falls into.
type Class int

const (
	// Other covers punctuation, whitespace, and anything neither Han
	// nor AlphaNum.
	Other Class = iota
	// Han covers the Unified CJK ideograph blocks plus compatibility
	// ideographs.
	Han
	// AlphaNum covers ASCII letters, digits, and the extra symbols
	// allowed inside a number/English run (`.`, `+`, `-`, `#`, `&`,
	// `%`, `_`).
	AlphaNum
)

// ClassOf classifies a single rune.
func ClassOf(r rune) Class {
	switch {
	case isHan(r):
		return Han
	case isAlphaNum(r):
		return AlphaNum
	default:
		return Other
	}
}

func isHan(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK Unified Ideographs Extension A
		return true
	case r >= 0x20000 && r <= 0x2A6DF: // Extension B
		return true
	case r >= 0xF900 && r <= 0xFAFF: // CJK Compatibility Ideographs
		return true
	case r >= 0x2F800 && r <= 0x2FA1F: // CJK Compatibility Ideographs Supplement
		return true
	default:
		return false
	}
}

func isAlphaNum(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '+' || r == '-' || r == '#' || r == '&' || r == '%' || r == '_':
		return true
	default:
		return false
	}
}

// Index holds the byte-offset table for a scanned string: Bytes[i] is
// the byte offset of scalar i, and Bytes[len(Runes)] is len(s). It is
// scratch allocated fresh per cut and discarded at the end of the call.
type Index struct {
	Runes []rune
	Bytes []int
}

// Build scans s once and produces the scalar/byte index table.
func Build(s string) Index {
	idx := Index{
		Runes: make([]rune, 0, len(s)),
		Bytes: make([]int, 0, len(s)+1),
	}
	for i, r := range s {
		idx.Runes = append(idx.Runes, r)
		idx.Bytes = append(idx.Bytes, i)
	}
	idx.Bytes = append(idx.Bytes, len(s))
	return idx
}

// Len returns the number of scalars indexed.
func (ix Index) Len() int { return len(ix.Runes) }

// ByteRange returns the half-open byte range [start,end) in the
// original string covered by scalar positions [i,j).
func (ix Index) ByteRange(i, j int) (int, int) {
	return ix.Bytes[i], ix.Bytes[j]
}

// Slice returns the substring of s (the string ix was built from)
// covered by scalar positions [i,j).
func (ix Index) Slice(s string, i, j int) string {
	a, b := ix.ByteRange(i, j)
	return s[a:b]
}

// ClassAt classifies the scalar at position i.
func (ix Index) ClassAt(i int) Class {
	return ClassOf(ix.Runes[i])
}

// RuneLen is utf8.RuneLen exposed for callers already importing this
// package for classification.
func RuneLen(r rune) int {
	return utf8.RuneLen(r)
}
