// Package cli provides an interactive REPL over a Cutter, for
// debugging segmentation from the terminal.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/duanmu/hanseg/pkg/segment"
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// InputHandler reads lines from stdin and prints their segmentation.
type InputHandler struct {
	cutter       *segment.Cutter
	hmm          bool
	mode         string // "cut", "cut-all", "cut-search", "tag"
	requestCount int
}

// NewInputHandler builds a REPL over cutter, running in mode with HMM
// recovery enabled per hmmEnabled.
func NewInputHandler(cutter *segment.Cutter, mode string, hmmEnabled bool) *InputHandler {
	return &InputHandler{cutter: cutter, mode: mode, hmm: hmmEnabled}
}

// Start begins the REPL loop. It returns when stdin closes or errors.
func (h *InputHandler) Start() error {
	log.Print("hanseg CLI [" + h.mode + "]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a sentence and press Enter (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleLine(line)
	}
}

func (h *InputHandler) handleLine(text string) {
	h.requestCount++
	start := time.Now()

	switch h.mode {
	case "cut-all":
		words := h.cutter.CutAll(text)
		h.printWords(words, time.Since(start))
	case "cut-search":
		words := h.cutter.CutForSearch(text, h.hmm)
		h.printWords(words, time.Since(start))
	case "tag":
		tagged := h.cutter.Tag(text, h.hmm)
		elapsed := time.Since(start)
		log.Debugf("took %v for %q", elapsed, text)
		for i, t := range tagged {
			log.Printf("%2d. %s/%s", i+1, wordStyle.Render(t.Text), t.Tag)
		}
	default:
		words := h.cutter.Cut(text, h.hmm)
		h.printWords(words, time.Since(start))
	}
}

func (h *InputHandler) printWords(words []string, elapsed time.Duration) {
	log.Debugf("took %v for %d words", elapsed, len(words))
	if len(words) == 0 {
		log.Warn("no words produced")
		return
	}
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = wordStyle.Render(w)
	}
	fmt.Println(strings.Join(parts, " / "))
}
