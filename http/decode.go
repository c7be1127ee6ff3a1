package http

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/fwojciec/webchunk"
)

// wireResponse covers both body shapes the extraction service is known to
// return, plus the embedded error field.
type wireResponse struct {
	Results []wireResult    `json:"results"`
	Chunks  []wireChunk     `json:"chunks"`
	Error   json.RawMessage `json:"error"`
}

type wireResult struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type wireChunk struct {
	ID      json.RawMessage `json:"id"`
	Content string          `json:"content"`
	Score   *float64        `json:"score"`
}

type wireError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// decodeResponse normalizes a 2xx body into a ScrapeResponse.
//
// "results" is the canonical shape and wins when both are present. In the
// "chunks" shape a missing id becomes the element index and a missing score
// becomes 0. A body with neither key yields an empty list. A non-null
// "error" field is an application error.
func decodeResponse(data []byte) (*webchunk.ScrapeResponse, error) {
	var w wireResponse
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, webchunk.Errorf(webchunk.ETRANSPORT, "decoding response: %v", err)
	}

	if err := applicationError(w.Error); err != nil {
		return nil, err
	}

	resp := &webchunk.ScrapeResponse{Chunks: []webchunk.ContentChunk{}}
	switch {
	case w.Results != nil:
		for i, r := range w.Results {
			resp.Chunks = append(resp.Chunks, webchunk.ContentChunk{
				ID:      i,
				Content: r.Text,
				Score:   r.Score,
				Hash:    webchunk.HashContent(r.Text),
			})
		}
	case w.Chunks != nil:
		for i, c := range w.Chunks {
			chunk := webchunk.ContentChunk{
				ID:      parseID(c.ID, i),
				Content: c.Content,
				Hash:    webchunk.HashContent(c.Content),
			}
			if c.Score != nil {
				chunk.Score = *c.Score
			}
			resp.Chunks = append(resp.Chunks, chunk)
		}
	}
	return resp, nil
}

// applicationError interprets the embedded error field, which may be a
// string or an object such as {"error": "...", "status": 422}. Falsy JSON
// values (null, false, 0, "") mean no error.
func applicationError(raw json.RawMessage) error {
	if isFalsy(raw) {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return webchunk.Errorf(webchunk.EAPPLICATION, "%s", orUnknown(s))
	}

	var we wireError
	if err := json.Unmarshal(raw, &we); err == nil {
		msg := we.Error
		if msg == "" {
			msg = we.Message
		}
		return webchunk.StatusErrorf(webchunk.EAPPLICATION, we.Status, "%s", orUnknown(msg))
	}

	return webchunk.Errorf(webchunk.EAPPLICATION, "%s", string(raw))
}

// errorDetail extracts a human-readable reason from a non-2xx body.
// FastAPI reports {"detail": ...}; other services use {"error": ...}.
func errorDetail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
		Error  json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	for _, raw := range []json.RawMessage{body.Detail, body.Error} {
		if isFalsy(raw) {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		var we wireError
		if err := json.Unmarshal(raw, &we); err == nil && we.Error != "" {
			return we.Error
		}
		return string(raw)
	}
	return ""
}

// parseID accepts numeric or numeric-string ids and falls back to index.
func parseID(raw json.RawMessage, index int) int {
	if isFalsy(raw) && !bytes.Equal(bytes.TrimSpace(raw), []byte("0")) {
		return index
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return index
}

func isFalsy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}

func orUnknown(msg string) string {
	if msg == "" {
		return "Unknown error occurred"
	}
	return msg
}
