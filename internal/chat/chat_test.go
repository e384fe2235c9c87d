package chat_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/CityPulse/CityPulse-Backend/internal/chat"
	"github.com/CityPulse/CityPulse-Backend/internal/middleware"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// fakeCompleter records the turns it was given.
type fakeCompleter struct {
	reply string
	err   error
	calls int
	turns []chat.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, turns []chat.Message) (string, error) {
	f.calls++
	f.turns = turns
	return f.reply, f.err
}

// staticResolver returns the same session for every request.
type staticResolver struct{ session *utils.Session }

func (s staticResolver) Resolve(*http.Request) (utils.Session, bool) {
	if s.session == nil {
		return utils.Session{}, false
	}
	return *s.session, true
}

var member = &utils.Session{SubjectID: "u-1", Role: utils.RoleUser}

func server(h *chat.Handler, s *utils.Session) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.GateMiddleware(staticResolver{session: s}))
	r.Mount("/api/chat", chat.SetupRoutes(h))
	return r
}

func post(t *testing.T, srv http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)))
	return rec
}

func TestChat_AnonymousNeverReachesUpstream(t *testing.T) {
	fc := &fakeCompleter{reply: "hi"}
	rec := post(t, server(&chat.Handler{Completer: fc}, nil), `{"message":"hello"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if fc.calls != 0 {
		t.Errorf("expected no upstream call, got %d", fc.calls)
	}
}

func TestChat_MissingMessage(t *testing.T) {
	fc := &fakeCompleter{reply: "hi"}
	srv := server(&chat.Handler{Completer: fc}, member)

	for _, body := range []string{`{}`, `{"message":"   "}`} {
		rec := post(t, srv, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Message is required") {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	}
	if fc.calls != 0 {
		t.Errorf("expected no upstream call, got %d", fc.calls)
	}
}

func TestChat_KeyNotConfigured(t *testing.T) {
	rec := post(t, server(&chat.Handler{}, member), `{"message":"hello"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "API key not configured") {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestChat_UpstreamFailure(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("deadline exceeded")}
	rec := post(t, server(&chat.Handler{Completer: fc}, member), `{"message":"hello"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "deadline") {
		t.Errorf("expected upstream detail to be masked, got %s", rec.Body.String())
	}
}

func TestChat_Success(t *testing.T) {
	fc := &fakeCompleter{reply: "Compost it."}
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	h := &chat.Handler{Completer: fc, Now: func() time.Time { return fixed }}

	rec := post(t, server(h, member), `{"message":"What do I do with peels?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["response"] != "Compost it." || body["timestamp"] != "2025-03-01T10:00:00Z" {
		t.Errorf("unexpected body %v", body)
	}
	if len(fc.turns) != 3 || !strings.Contains(fc.turns[0].Content, "sustainable cities platform") {
		t.Errorf("expected preamble before the message, got %+v", fc.turns)
	}
}

func TestChat_RateLimited(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	h := &chat.Handler{Completer: fc, Limiter: chat.NewSubjectLimiter(1, 1)}
	srv := server(h, member)

	if rec := post(t, srv, `{"message":"one"}`); rec.Code != http.StatusOK {
		t.Fatalf("first: expected 200, got %d", rec.Code)
	}
	if rec := post(t, srv, `{"message":"two"}`); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second: expected 429, got %d", rec.Code)
	}
	if fc.calls != 1 {
		t.Errorf("expected one upstream call, got %d", fc.calls)
	}
}

func TestConversation_History(t *testing.T) {
	history := []chat.Message{
		{Role: "user", Content: "a"},
		{Role: "assistant", Content: "b"},
		{Role: "user", Content: "c"},
	}

	turns, err := chat.Conversation(history, "d", 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []chat.Message{{Role: "user", Content: "c"}, {Role: "user", Content: "d"}}
	if len(turns) != len(want) {
		t.Fatalf("got %+v, want %+v", turns, want)
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Errorf("turn %d = %+v, want %+v", i, turns[i], want[i])
		}
	}

	turns, err = chat.Conversation(history, "d", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 4 || turns[0].Role != "user" || turns[1].Role != "model" {
		t.Errorf("expected uncapped history to pass through, got %+v", turns)
	}

	if _, err := chat.Conversation([]chat.Message{{Role: "system", Content: "x"}}, "y", 0); err == nil {
		t.Error("expected unknown role to be rejected")
	}
}

func TestConversation_CapNeverOpensWithModel(t *testing.T) {
	history := []chat.Message{
		{Role: "user", Content: "q1"},
		{Role: "assistant", Content: "a1"},
		{Role: "model", Content: "a1 continued"},
		{Role: "user", Content: "q2"},
	}

	turns, err := chat.Conversation(history, "q3", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 2 || turns[0].Content != "q2" || turns[1].Content != "q3" {
		t.Errorf("expected [q2 q3], got %+v", turns)
	}
}

func TestGeminiClient_Complete(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Plant "},{"text":"trees."}]}}]}`)
	}))
	defer upstream.Close()

	client := chat.NewGeminiClient("test-key", "gemini-1.5-flash", time.Second).WithBaseURL(upstream.URL)
	reply, err := client.Complete(context.Background(), []chat.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "Plant trees." {
		t.Errorf("unexpected reply %q", reply)
	}
	if gotPath != "/v1beta/models/gemini-1.5-flash:generateContent" || gotKey != "test-key" {
		t.Errorf("unexpected request path=%q key=%q", gotPath, gotKey)
	}
	if contents, _ := gotBody["contents"].([]any); len(contents) != 1 {
		t.Errorf("expected one content entry, got %v", gotBody["contents"])
	}
}

func TestGeminiClient_ErrorStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"API key invalid","status":"PERMISSION_DENIED"}}`)
	}))
	defer upstream.Close()

	client := chat.NewGeminiClient("bad", "gemini-1.5-flash", time.Second).WithBaseURL(upstream.URL)
	_, err := client.Complete(context.Background(), []chat.Message{{Role: "user", Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "API key invalid") {
		t.Errorf("expected upstream error message, got %v", err)
	}
}

func TestNewGeminiClient_NoKey(t *testing.T) {
	if chat.NewGeminiClient("", "m", time.Second) != nil {
		t.Error("expected nil client without a key")
	}
}
