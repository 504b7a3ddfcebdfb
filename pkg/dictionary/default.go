package dictionary

import (
	"bytes"
	"compress/gzip"
	_ "embed"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

//go:embed data/default.txt.gz
var defaultDictGz []byte

var (
	defaultOnce  sync.Once
	defaultBytes []byte
	defaultErr   error
)

// decodeDefault gunzips the embedded default dictionary exactly once;
// every NewDefault call after the first reuses the cached bytes
// instead of re-inflating.
func decodeDefault() ([]byte, error) {
	defaultOnce.Do(func() {
		zr, err := gzip.NewReader(bytes.NewReader(defaultDictGz))
		if err != nil {
			defaultErr = fmt.Errorf("dictionary: open embedded default: %w", err)
			return
		}
		defer zr.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(zr); err != nil {
			defaultErr = fmt.Errorf("dictionary: inflate embedded default: %w", err)
			return
		}
		defaultBytes = buf.Bytes()
	})
	return defaultBytes, defaultErr
}

// NewDefault returns a dictionary pre-loaded from the embedded default
// word list, the Go equivalent of jieba's bundled dict.txt.
func NewDefault() (*Dictionary, error) {
	raw, err := decodeDefault()
	if err != nil {
		return nil, err
	}
	d, err := NewWithDict(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("dictionary: parse embedded default: %w", err)
	}
	log.Debugf("dictionary: default loaded, %d entries, total_freq=%d", d.Size(), d.TotalFreq())
	return d, nil
}
