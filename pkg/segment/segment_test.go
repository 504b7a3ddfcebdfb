package segment

import (
	"strings"
	"testing"
)

func newDefaultCutter(t *testing.T) *Cutter {
	t.Helper()
	c, err := NewDefault()
	if err != nil {
		t.Fatalf("NewDefault() error = %v", err)
	}
	return c
}

func assertWords(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v (mismatch at %d)", got, want, i)
		}
	}
}

func TestCutAccurateNoHMM(t *testing.T) {
	c := newDefaultCutter(t)
	got := c.Cut("我们中出了一个叛徒", false)
	assertWords(t, got, []string{"我们", "中", "出", "了", "一个", "叛徒"})
}

func TestCutAccurateWithHMM(t *testing.T) {
	c := newDefaultCutter(t)
	got := c.Cut("南京市长江大桥", true)
	assertWords(t, got, []string{"南京市", "长江大桥"})
}

func TestCutHMMRecoversOOV(t *testing.T) {
	c := newDefaultCutter(t)
	got := c.Cut("他来到了网易杭研大厦", true)
	assertWords(t, got, []string{"他", "来到", "了", "网易", "杭研", "大厦"})
}

func TestCutHMMOffLeavesOOVAsSingles(t *testing.T) {
	c := newDefaultCutter(t)
	got := c.Cut("他来到了网易杭研大厦", false)
	assertWords(t, got, []string{"他", "来到", "了", "网易", "杭", "研", "大厦"})
}

func TestCutAll(t *testing.T) {
	c := newDefaultCutter(t)
	got := c.CutAll("南京市长江大桥")
	assertWords(t, got, []string{"南京", "南京市", "京市", "长江", "长江大桥", "大桥"})
}

func TestCutForSearchFragmentOrder(t *testing.T) {
	c := newDefaultCutter(t)
	got := c.CutForSearch("小明硕士毕业于中国科学院计算所", true)
	// base token first, then 2-gram fragments ascending start, then
	// 3-gram fragments ascending start.
	want := []string{
		"小明", "硕士", "毕业于",
		"中国科学院", "中国", "科学", "学院", "科学院",
		"计算所",
	}
	assertWords(t, got, want)
}

func TestCutForSearchShortTokensPassThrough(t *testing.T) {
	c := newDefaultCutter(t)
	got := c.CutForSearch("我们", false)
	assertWords(t, got, []string{"我们"})
}

func TestCutCoverage(t *testing.T) {
	c := newDefaultCutter(t)
	inputs := []string{
		"我们中出了一个叛徒",
		"南京市长江大桥",
		"hello, 世界！abc123 南京市长江大桥。",
		"iPhone15 发布了",
		"",
		"   ",
		"，。！",
	}
	for _, in := range inputs {
		for _, hmmOn := range []bool{false, true} {
			got := c.Cut(in, hmmOn)
			if joined := strings.Join(got, ""); joined != in {
				t.Errorf("Cut(%q, %v) tokens %v concatenate to %q, want input", in, hmmOn, got, joined)
			}
		}
	}
}

func TestCutEmptyInput(t *testing.T) {
	c := newDefaultCutter(t)
	if got := c.Cut("", true); len(got) != 0 {
		t.Errorf("Cut(\"\") = %v, want empty", got)
	}
	if got := c.CutAll(""); len(got) != 0 {
		t.Errorf("CutAll(\"\") = %v, want empty", got)
	}
	if got := c.CutForSearch("", true); len(got) != 0 {
		t.Errorf("CutForSearch(\"\") = %v, want empty", got)
	}
}

func TestCutKeepsAlphaNumRunsWhole(t *testing.T) {
	c := newDefaultCutter(t)
	got := c.Cut("hello世界abc123", false)
	assertWords(t, got, []string{"hello", "世界", "abc123"})
}

func TestTokenizeDefaultSpans(t *testing.T) {
	c := newDefaultCutter(t)
	input := "南京市长江大桥"
	got := c.Tokenize(input, Default, true)
	want := []Token{
		{Text: "南京市", Start: 0, End: 9},
		{Text: "长江大桥", Start: 9, End: 21},
	}
	if len(got) != len(want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tokenize[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeSearchSpans(t *testing.T) {
	c := newDefaultCutter(t)
	input := "南京市长江大桥"
	got := c.Tokenize(input, Search, true)
	want := []Token{
		{Text: "南京市", Start: 0, End: 9},
		{Text: "南京", Start: 0, End: 6},
		{Text: "京市", Start: 3, End: 9},
		{Text: "长江大桥", Start: 9, End: 21},
		{Text: "长江", Start: 9, End: 15},
		{Text: "大桥", Start: 15, End: 21},
	}
	if len(got) != len(want) {
		t.Fatalf("Tokenize(Search) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tokenize(Search)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestTokenizeSpanConsistency checks input[start:end] == text for
// every token, on mixed inputs and in both modes.
func TestTokenizeSpanConsistency(t *testing.T) {
	c := newDefaultCutter(t)
	inputs := []string{
		"我们中出了一个叛徒",
		"hello, 世界！南京市长江大桥。",
		"小明硕士毕业于中国科学院计算所",
	}
	for _, in := range inputs {
		for _, mode := range []TokenizeMode{Default, Search} {
			for _, tok := range c.Tokenize(in, mode, true) {
				if tok.Start < 0 || tok.End > len(in) || tok.Start >= tok.End {
					t.Fatalf("Tokenize(%q) span out of range: %+v", in, tok)
				}
				if in[tok.Start:tok.End] != tok.Text {
					t.Errorf("Tokenize(%q): input[%d:%d] = %q, token text %q",
						in, tok.Start, tok.End, in[tok.Start:tok.End], tok.Text)
				}
			}
		}
	}
}

func TestTag(t *testing.T) {
	c := newDefaultCutter(t)
	got := c.Tag("我爱北京天安门", true)
	want := []TaggedWord{
		{Text: "我", Tag: "r"},
		{Text: "爱", Tag: "v"},
		{Text: "北京", Tag: "ns"},
		{Text: "天安门", Tag: "ns"},
	}
	if len(got) != len(want) {
		t.Fatalf("Tag = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tag[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTagHeuristics(t *testing.T) {
	c := newDefaultCutter(t)
	got := c.Tag("abc 123 3.14", false)
	byText := map[string]string{}
	for _, tw := range got {
		byText[tw.Text] = tw.Tag
	}
	cases := map[string]string{
		"abc":  "eng",
		"123":  "m",
		"3.14": "m",
		" ":    "x",
	}
	for text, wantTag := range cases {
		if tag, ok := byText[text]; !ok || tag != wantTag {
			t.Errorf("Tag heuristic for %q = %q, want %q (all: %v)", text, tag, wantTag, got)
		}
	}
}

func TestAddRemoveWordRoundTrip(t *testing.T) {
	c := newDefaultCutter(t)
	base := []string{"我们", "中", "出", "了", "一个", "叛徒"}

	c.AddWord("中出", 1000, "v")
	got := c.Cut("我们中出了一个叛徒", false)
	assertWords(t, got, []string{"我们", "中出", "了", "一个", "叛徒"})

	if !c.RemoveWord("中出") {
		t.Fatal("RemoveWord(中出) = false, want true")
	}
	got = c.Cut("我们中出了一个叛徒", false)
	assertWords(t, got, base)
}

func TestSuggestFreqIdempotence(t *testing.T) {
	c := newDefaultCutter(t)
	word := "网易大厦"

	freq := c.SuggestFreq(word)
	if freq < 1 {
		t.Fatalf("SuggestFreq(%q) = %d, want >= 1", word, freq)
	}
	c.AddWord(word, freq, "")
	got := c.Cut(word, false)
	assertWords(t, got, []string{word})
}

func TestAddWordSuggestedReturnsChosenFreq(t *testing.T) {
	c := newDefaultCutter(t)
	freq := c.AddWordSuggested("计算机学院", "nt")
	if freq < 1 {
		t.Fatalf("AddWordSuggested = %d, want >= 1", freq)
	}
	got := c.Cut("计算机学院", false)
	assertWords(t, got, []string{"计算机学院"})
}

func TestLoadDictMergesIntoCutter(t *testing.T) {
	c := NewEmpty()
	err := c.LoadDict(strings.NewReader("杭研 1000 nz\n大厦 500 n\n"))
	if err != nil {
		t.Fatalf("LoadDict error = %v", err)
	}
	got := c.Cut("杭研大厦", false)
	assertWords(t, got, []string{"杭研", "大厦"})
}

func TestNewWithDict(t *testing.T) {
	c, err := NewWithDict(strings.NewReader("你好 100 l\n"))
	if err != nil {
		t.Fatalf("NewWithDict error = %v", err)
	}
	got := c.Cut("你好", false)
	assertWords(t, got, []string{"你好"})
}

func TestHeuristicTag(t *testing.T) {
	cases := []struct {
		word string
		want string
	}{
		{"hello", "eng"},
		{"GPU", "eng"},
		{"2024", "m"},
		{"3.14", "m"},
		{"abc123", "eng"},
		{"，", "x"},
		{"？？", "x"},
	}
	for _, cse := range cases {
		if got := heuristicTag(cse.word); got != cse.want {
			t.Errorf("heuristicTag(%q) = %q, want %q", cse.word, got, cse.want)
		}
	}
}
