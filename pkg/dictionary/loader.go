package dictionary

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// parseLine splits a dictionary line into word/freq/tag: fields
// separated by runs of ASCII whitespace, tag optional, extra fields
// ignored.
func parseLine(line string, lineNo int) (Word, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
	})
	if len(fields) == 0 {
		return Word{}, nil // blank line, caller skips
	}
	word := fields[0]
	if word == "" {
		return Word{}, &ParseError{Line: lineNo, Cause: CauseEmptyWord, Text: line}
	}
	if len(fields) < 2 {
		return Word{}, &ParseError{Line: lineNo, Cause: CauseMissingFrequency, Text: line}
	}
	freq, err := strconv.Atoi(fields[1])
	if err != nil || freq < 0 {
		return Word{}, &ParseError{Line: lineNo, Cause: CauseInvalidFrequency, Text: line}
	}
	tag := ""
	if len(fields) >= 3 {
		tag = fields[2]
	}
	return Word{Text: word, Freq: freq, Tag: tag}, nil
}

// parseStream parses an entire dictionary stream into a slice of
// words, failing on the first malformed line. It performs no mutation
// of any Dictionary, which is what makes Load transactional: the
// whole stream is parsed before any entry is applied.
func parseStream(r io.Reader) ([]Word, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var words []Word
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		w, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.Debugf("dictionary: parsed %d entries from stream", len(words))
	return words, nil
}
