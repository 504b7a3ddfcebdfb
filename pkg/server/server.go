package server

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/duanmu/hanseg/pkg/segment"
)

// Server handles the msgpack IPC for word segmentation.
type Server struct {
	cutter *segment.Cutter
	reader io.Reader
	writer io.Writer
}

// NewServer creates a new segmentation server using stdin/stdout for IPC.
func NewServer(cutter *segment.Cutter) *Server {
	return &Server{cutter: cutter, reader: os.Stdin, writer: os.Stdout}
}

// Start begins listening for length-prefixed msgpack requests.
func (s *Server) Start() error {
	log.Debug("Starting Server.")
	s.sendResponse(map[string]string{"status": "ready"})

	for {
		payload, err := readFrame(s.reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Reading frame: %v", err)
			return err
		}
		s.handleRequest(payload)
	}
}

// readFrame reads a 4-byte big-endian length prefix followed by that
// many bytes of msgpack payload.
func readFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeFrame writes payload prefixed with its 4-byte big-endian length.
func writeFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

type cmdEnvelope struct {
	Cmd string `msgpack:"cmd"`
	ID  string `msgpack:"id"`
}

// handleRequest decodes the command envelope, then re-decodes the
// same payload into the matching typed request.
func (s *Server) handleRequest(payload []byte) {
	var env cmdEnvelope
	if err := msgpack.Unmarshal(payload, &env); err != nil {
		s.sendError("", "invalid msgpack request", 400)
		log.Errorf("Unmarshaling envelope: %v", err)
		return
	}

	switch env.Cmd {
	case "cut":
		var req CutRequest
		if err := msgpack.Unmarshal(payload, &req); err != nil {
			s.sendError(env.ID, "invalid cut request", 400)
			return
		}
		s.handleCut(req)
	case "tokenize":
		var req TokenizeRequest
		if err := msgpack.Unmarshal(payload, &req); err != nil {
			s.sendError(env.ID, "invalid tokenize request", 400)
			return
		}
		s.handleTokenize(req)
	case "tag":
		var req TagRequest
		if err := msgpack.Unmarshal(payload, &req); err != nil {
			s.sendError(env.ID, "invalid tag request", 400)
			return
		}
		s.handleTag(req)
	case "dict":
		var req DictionaryRequest
		if err := msgpack.Unmarshal(payload, &req); err != nil {
			s.sendError(env.ID, "invalid dict request", 400)
			return
		}
		s.handleDictionary(req)
	case "health":
		s.sendResponse(map[string]string{"status": "ok"})
	default:
		s.sendError(env.ID, fmt.Sprintf("unknown command: %s", env.Cmd), 400)
	}
}

func (s *Server) handleCut(req CutRequest) {
	if req.Text == "" {
		s.sendError(req.ID, "missing 't' (text)", 400)
		return
	}

	start := time.Now()
	var words []string
	switch req.Mode {
	case ModeCutAll:
		words = s.cutter.CutAll(req.Text)
	case ModeCutSearch:
		words = s.cutter.CutForSearch(req.Text, req.HMM)
	default:
		words = s.cutter.Cut(req.Text, req.HMM)
	}
	elapsed := time.Since(start)

	s.sendResponse(CutResponse{
		ID:        req.ID,
		Words:     words,
		Count:     len(words),
		TimeTaken: elapsed.Milliseconds(),
	})
}

func (s *Server) handleTokenize(req TokenizeRequest) {
	if req.Text == "" {
		s.sendError(req.ID, "missing 't' (text)", 400)
		return
	}

	mode := segment.Default
	if req.Search {
		mode = segment.Search
	}

	start := time.Now()
	toks := s.cutter.Tokenize(req.Text, mode, req.HMM)
	elapsed := time.Since(start)

	spans := make([]TokenSpan, len(toks))
	for i, t := range toks {
		spans[i] = TokenSpan{Word: t.Text, Start: t.Start, End: t.End}
	}

	s.sendResponse(TokenizeResponse{ID: req.ID, Tokens: spans, TimeTaken: elapsed.Milliseconds()})
}

func (s *Server) handleTag(req TagRequest) {
	if req.Text == "" {
		s.sendError(req.ID, "missing 't' (text)", 400)
		return
	}

	start := time.Now()
	tagged := s.cutter.Tag(req.Text, req.HMM)
	elapsed := time.Since(start)

	pairs := make([]TaggedPair, len(tagged))
	for i, t := range tagged {
		pairs[i] = TaggedPair{Word: t.Text, Tag: t.Tag}
	}

	s.sendResponse(TagResponse{ID: req.ID, Tagged: pairs, TimeTaken: elapsed.Milliseconds()})
}

func (s *Server) handleDictionary(req DictionaryRequest) {
	switch req.Action {
	case "add_word":
		if req.Word == "" {
			s.sendError(req.ID, "missing 'w' (word)", 400)
			return
		}
		freq := 0
		if req.Freq != nil {
			freq = *req.Freq
			s.cutter.AddWord(req.Word, freq, req.Tag)
		} else {
			freq = s.cutter.AddWordSuggested(req.Word, req.Tag)
		}
		s.sendResponse(DictionaryResponse{ID: req.ID, Status: "ok", Freq: freq})
	case "remove_word":
		if req.Word == "" {
			s.sendError(req.ID, "missing 'w' (word)", 400)
			return
		}
		removed := s.cutter.RemoveWord(req.Word)
		status := "ok"
		if !removed {
			status = "not_found"
		}
		s.sendResponse(DictionaryResponse{ID: req.ID, Status: status})
	case "suggest_freq":
		if req.Word == "" {
			s.sendError(req.ID, "missing 'w' (word)", 400)
			return
		}
		freq := s.cutter.SuggestFreq(req.Word)
		s.sendResponse(DictionaryResponse{ID: req.ID, Status: "ok", Freq: freq})
	case "stats":
		d := s.cutter.Dictionary()
		s.sendResponse(DictionaryResponse{ID: req.ID, Status: "ok", Size: d.Size(), TotalFreq: d.TotalFreq()})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

// sendResponse marshals response into msgpack and writes it as a
// length-prefixed frame.
func (s *Server) sendResponse(response interface{}) {
	data, err := msgpack.Marshal(response)
	if err != nil {
		log.Errorf("Marshaling response: %v", err)
		return
	}
	if err := writeFrame(s.writer, data); err != nil {
		log.Errorf("Writing response frame: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
