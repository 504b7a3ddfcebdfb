package charspan

import "testing"

func TestClassOf(t *testing.T) {
	cases := []struct {
		r    rune
		want Class
	}{
		{'中', Han},
		{'国', Han},
		{'a', AlphaNum},
		{'Z', AlphaNum},
		{'9', AlphaNum},
		{'.', AlphaNum},
		{'_', AlphaNum},
		{' ', Other},
		{'，', Other},
		{'!', Other},
	}
	for _, c := range cases {
		if got := ClassOf(c.r); got != c.want {
			t.Errorf("ClassOf(%q) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestBuildByteRange(t *testing.T) {
	s := "中a国"
	idx := Build(s)
	if idx.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", idx.Len())
	}
	if idx.Slice(s, 0, 1) != "中" {
		t.Errorf("Slice(0,1) = %q, want 中", idx.Slice(s, 0, 1))
	}
	if idx.Slice(s, 1, 2) != "a" {
		t.Errorf("Slice(1,2) = %q, want a", idx.Slice(s, 1, 2))
	}
	if idx.Slice(s, 2, 3) != "国" {
		t.Errorf("Slice(2,3) = %q, want 国", idx.Slice(s, 2, 3))
	}
	if idx.Slice(s, 0, 3) != s {
		t.Errorf("Slice(0,3) = %q, want %q", idx.Slice(s, 0, 3), s)
	}
	a, b := idx.ByteRange(0, 1)
	if a != 0 || b != 3 {
		t.Errorf("ByteRange(0,1) = (%d,%d), want (0,3)", a, b)
	}
}

func TestClassAt(t *testing.T) {
	idx := Build("中a ")
	if idx.ClassAt(0) != Han {
		t.Errorf("ClassAt(0) = %v, want Han", idx.ClassAt(0))
	}
	if idx.ClassAt(1) != AlphaNum {
		t.Errorf("ClassAt(1) = %v, want AlphaNum", idx.ClassAt(1))
	}
	if idx.ClassAt(2) != Other {
		t.Errorf("ClassAt(2) = %v, want Other", idx.ClassAt(2))
	}
}

func TestRuneLen(t *testing.T) {
	if RuneLen('a') != 1 {
		t.Errorf("RuneLen('a') = %d, want 1", RuneLen('a'))
	}
	if RuneLen('中') != 3 {
		t.Errorf("RuneLen('中') = %d, want 3", RuneLen('中'))
	}
}
