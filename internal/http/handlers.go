package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"gastos/internal/bot"
	"gastos/internal/selection"
)

// Wire shapes for the webhook surface. The chat platform posts inbound
// events here and renders the reply it gets back.
type (
	messageRequest struct {
		User string `json:"user"`
		Text string `json:"text"`
	}

	choiceRequest struct {
		User    string `json:"user"`
		Payload string `json:"payload"`
	}

	optionResponse struct {
		Label   string `json:"label"`
		Payload string `json:"payload"`
	}

	replyResponse struct {
		Text    string           `json:"text"`
		Options []optionResponse `json:"options,omitempty"`
	}
)

const maxBodyBytes = 16 << 10

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req messageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.User = sanitizeInput(req.User)
	req.Text = sanitizeInput(req.Text)
	if req.Text == "" {
		writeError(w, http.StatusUnprocessableEntity, "text is required")
		return
	}

	reply := s.handler.HandleMessage(r.Context(), bot.Message{User: req.User, Text: req.Text})
	writeReply(w, r, reply)
}

func (s *Server) handleChoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req choiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.User = sanitizeInput(req.User)
	if req.Payload == "" {
		writeError(w, http.StatusUnprocessableEntity, "payload is required")
		return
	}

	reply := s.handler.HandleChoice(r.Context(), bot.Choice{User: req.User, Payload: req.Payload})
	writeReply(w, r, reply)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		slog.WarnContext(r.Context(), "Request decode failed", "url", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeReply(w http.ResponseWriter, r *http.Request, reply bot.Reply) {
	resp := replyResponse{Text: reply.Text, Options: toOptions(reply.Options)}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(r.Context(), "Response encode failed", "url", r.URL.Path, "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func toOptions(opts []selection.Option) []optionResponse {
	if len(opts) == 0 {
		return nil
	}
	out := make([]optionResponse, len(opts))
	for i, o := range opts {
		out[i] = optionResponse{Label: o.Label, Payload: o.Payload}
	}
	return out
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	// Remove control characters except tab, newline, carriage return
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
