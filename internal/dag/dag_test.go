package dag

import "testing"

// mapScanner serves canned prefix-scan hits keyed by start position.
type mapScanner map[int][]int

func (m mapScanner) PrefixScan(chars []rune, i int) []int { return m[i] }

func TestBuildFallsBackToSingleScalar(t *testing.T) {
	chars := []rune("甲乙丙")
	g := Build(chars, mapScanner{})

	if len(g) != 3 {
		t.Fatalf("len(g) = %d, want 3", len(g))
	}
	for i, ends := range g {
		if len(ends) != 1 || ends[0] != i+1 {
			t.Errorf("g[%d] = %v, want [%d]", i, ends, i+1)
		}
	}
}

func TestBuildKeepsScannerHits(t *testing.T) {
	chars := []rune("南京市长")
	scanner := mapScanner{
		0: {1, 2, 3},
		1: {3},
	}
	g := Build(chars, scanner)

	want := [][]int{{1, 2, 3}, {3}, {3}, {4}}
	for i, ends := range g {
		if len(ends) != len(want[i]) {
			t.Fatalf("g[%d] = %v, want %v", i, ends, want[i])
		}
		for k := range ends {
			if ends[k] != want[i][k] {
				t.Errorf("g[%d] = %v, want %v", i, ends, want[i])
				break
			}
		}
	}
}

func TestBuildEveryEntryNonEmptyAndSorted(t *testing.T) {
	chars := []rune("一二三四五六")
	scanner := mapScanner{
		0: {2, 4},
		3: {5},
	}
	g := Build(chars, scanner)

	for i, ends := range g {
		if len(ends) == 0 {
			t.Fatalf("g[%d] is empty", i)
		}
		for k := 1; k < len(ends); k++ {
			if ends[k] <= ends[k-1] {
				t.Errorf("g[%d] = %v not strictly ascending", i, ends)
			}
		}
		if ends[0] <= i {
			t.Errorf("g[%d] = %v has an end <= start", i, ends)
		}
	}
}
