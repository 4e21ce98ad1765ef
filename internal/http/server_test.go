package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gastos/internal/bot"
	"gastos/internal/classify"
	"gastos/internal/selection"
	"gastos/internal/store/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	st := memory.New()
	flow := selection.NewFlow(classify.DefaultCategories(), classify.DefaultSources(), st)
	flow.Now = func() time.Time { return time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC) }
	h := bot.NewHandler(flow, st, st)
	h.Now = flow.Now
	srv := NewServer(":0", h)
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv, st
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestMessageWebhook(t *testing.T) {
	srv, _ := newTestServer(t)

	// Wrong method
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Malformed body
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader("{not json"))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	// Empty text
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"user":"ana","text":"  "}`))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Recognized expense produces a selection prompt
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"user":"ana","text":"café 3.50€"}`))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var reply replyResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &reply); err != nil {
		t.Fatalf("unmarshal reply: %v", err)
	}
	if !strings.Contains(reply.Text, "Gasto registrado") {
		t.Errorf("unexpected reply text: %q", reply.Text)
	}
	if len(reply.Options) != 8 {
		t.Fatalf("expected 8 options, got %d", len(reply.Options))
	}
}

func TestChoiceWebhookRoundTrip(t *testing.T) {
	srv, st := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"user":"ana","text":"50 almuerzo"}`))
	srv.Handler.ServeHTTP(rr, req)
	var prompt replyResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &prompt); err != nil {
		t.Fatalf("unmarshal prompt: %v", err)
	}
	if len(prompt.Options) == 0 {
		t.Fatal("expected selection options")
	}

	body, _ := json.Marshal(choiceRequest{User: "ana", Payload: prompt.Options[0].Payload})
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/choices", strings.NewReader(string(body)))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var confirm replyResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &confirm); err != nil {
		t.Fatalf("unmarshal confirmation: %v", err)
	}
	if !strings.Contains(confirm.Text, "guardado exitosamente") {
		t.Errorf("unexpected confirmation: %q", confirm.Text)
	}

	recs, err := st.ReadAll(req.Context(), "gasto")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(recs))
	}
}

func TestChoiceWebhookRequiresPayload(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/choices", strings.NewReader(`{"user":"ana","payload":""}`))
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"user":"ana","text":"hola"}`))
	srv.Handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}
