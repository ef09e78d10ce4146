package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	chatModel "github.com/ashstar-ai/mainframe/internal/model/chat"
	"github.com/ashstar-ai/mainframe/internal/model/persona"
	"github.com/ashstar-ai/mainframe/internal/pkg/logger"
	"github.com/ashstar-ai/mainframe/internal/service/ai"
	chatService "github.com/ashstar-ai/mainframe/internal/service/chat"
)

type stubResolver struct {
	result ai.Result
	err    error
}

func (s *stubResolver) Resolve(context.Context, string) (ai.Result, error) {
	return s.result, s.err
}

// memoryLog is an in-memory ConversationLog with a switch to simulate a
// persistence outage.
type memoryLog struct {
	sessions map[string]chatModel.Session
	turns    map[string][]chatModel.Turn
	fail     bool
}

func newMemoryLog() *memoryLog {
	return &memoryLog{
		sessions: make(map[string]chatModel.Session),
		turns:    make(map[string][]chatModel.Turn),
	}
}

func (m *memoryLog) CreateSession(_ context.Context, userID, personaID, title string) (chatModel.Session, error) {
	if m.fail {
		return chatModel.Session{}, errors.New("store down")
	}
	session := chatModel.Session{
		ID:        fmt.Sprintf("s-%d", len(m.sessions)+1),
		UserID:    userID,
		PersonaID: personaID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	m.sessions[session.ID] = session
	return session, nil
}

func (m *memoryLog) ListSessions(_ context.Context, userID, personaID string) ([]chatModel.Session, error) {
	if m.fail {
		return nil, errors.New("store down")
	}
	var out []chatModel.Session
	for _, s := range m.sessions {
		if s.UserID == userID && s.PersonaID == personaID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memoryLog) RecordTurn(_ context.Context, turn chatModel.Turn) error {
	if m.fail {
		return errors.New("store down")
	}
	turn.CreatedAt = time.Now().UTC()
	m.turns[turn.SessionID] = append(m.turns[turn.SessionID], turn)
	return nil
}

func (m *memoryLog) Transcript(_ context.Context, sessionID string) ([]chatModel.Turn, error) {
	if m.fail {
		return nil, errors.New("store down")
	}
	return m.turns[sessionID], nil
}

func (m *memoryLog) UserStats(context.Context, string) (chatService.Stats, error) {
	if m.fail {
		return chatService.Stats{}, errors.New("store down")
	}
	return chatService.Stats{}, nil
}

func setupRouter(resolver Resolver, log *memoryLog) *chi.Mux {
	store := persona.NewMemoryStore(persona.Seed())
	handler := New(
		log,
		resolver,
		ai.NewBuilder(store),
		ai.NewSelector(ai.DefaultOfflineTable()),
		store,
		logger.NewNop(),
	)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postChat(t *testing.T, r http.Handler, body map[string]any) (int, string) {
	t.Helper()

	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var decoded struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Code, decoded.Reply
}

func TestChatReturnsResolvedReply(t *testing.T) {
	resolver := &stubResolver{result: ai.Result{Text: "Hello", Provider: "p2"}}
	r := setupRouter(resolver, newMemoryLog())

	code, reply := postChat(t, r, map[string]any{"message": "hi", "personaId": "taskmaster"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if reply != "Hello" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestChatTotalFailureUsesOfflineTable(t *testing.T) {
	resolver := &stubResolver{err: fmt.Errorf("%w: last error: down", ai.ErrExhausted)}
	r := setupRouter(resolver, newMemoryLog())

	code, reply := postChat(t, r, map[string]any{"message": "spot me", "personaId": "fitmentor"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	table := ai.DefaultOfflineTable()["fitmentor"]
	found := false
	for _, entry := range table {
		if reply == entry {
			found = true
		}
	}
	if !found {
		t.Fatalf("reply %q not in fitmentor offline table", reply)
	}
	if !strings.Contains(reply, "{{") {
		t.Fatalf("offline reply missing mood tag: %q", reply)
	}
}

func TestChatUnexpectedErrorReturnsSentinel(t *testing.T) {
	resolver := &stubResolver{err: errors.New("panic adjacent")}
	r := setupRouter(resolver, newMemoryLog())

	code, reply := postChat(t, r, map[string]any{"message": "hi", "personaId": "codebuddy"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if reply != SentinelReply {
		t.Fatalf("expected sentinel reply, got %q", reply)
	}
}

func TestChatMalformedBodyStillAnswers(t *testing.T) {
	r := setupRouter(&stubResolver{result: ai.Result{Text: "unused"}}, newMemoryLog())

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), SentinelReply) {
		t.Fatalf("expected sentinel body, got %s", resp.Body.String())
	}
}

func TestChatLogFailureDoesNotChangeReply(t *testing.T) {
	resolver := &stubResolver{result: ai.Result{Text: "steady"}}

	body := map[string]any{
		"message":   "hi",
		"personaId": "companion",
		"userId":    "neo@ashstar.com",
		"sessionId": "s-1",
	}

	healthy := newMemoryLog()
	_, replyHealthy := postChat(t, setupRouter(resolver, healthy), body)

	broken := newMemoryLog()
	broken.fail = true
	code, replyBroken := postChat(t, setupRouter(resolver, broken), body)

	if code != http.StatusOK {
		t.Fatalf("expected 200 despite log failure, got %d", code)
	}
	if replyHealthy != replyBroken {
		t.Fatalf("log failure changed reply: %q vs %q", replyHealthy, replyBroken)
	}
}

func TestChatRecordsBothTurnsInOrder(t *testing.T) {
	resolver := &stubResolver{result: ai.Result{Text: "ack"}}
	log := newMemoryLog()
	r := setupRouter(resolver, log)

	for _, msg := range []string{"first ping", "second ping"} {
		postChat(t, r, map[string]any{
			"message":   msg,
			"personaId": "taskmaster",
			"userId":    "neo@ashstar.com",
			"sessionId": "s-9",
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/chat/s-9", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var turns []chatModel.Turn
	if err := json.Unmarshal(resp.Body.Bytes(), &turns); err != nil {
		t.Fatalf("decode transcript: %v", err)
	}
	if len(turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(turns))
	}

	wantRoles := []string{chatModel.RoleUser, chatModel.RoleAssistant, chatModel.RoleUser, chatModel.RoleAssistant}
	wantTexts := []string{"first ping", "ack", "second ping", "ack"}
	for i := range turns {
		if turns[i].Role != wantRoles[i] || turns[i].Text != wantTexts[i] {
			t.Fatalf("turn %d = %s %q, want %s %q", i, turns[i].Role, turns[i].Text, wantRoles[i], wantTexts[i])
		}
	}
}

func TestChatAnonymousExchangeSkipsLog(t *testing.T) {
	resolver := &stubResolver{result: ai.Result{Text: "ack"}}
	log := newMemoryLog()
	r := setupRouter(resolver, log)

	postChat(t, r, map[string]any{"message": "hi", "personaId": "companion"})

	if len(log.turns) != 0 {
		t.Fatalf("anonymous chat must not persist turns, got %d sessions", len(log.turns))
	}
}

func TestCreateSessionInvalidPersona(t *testing.T) {
	r := setupRouter(&stubResolver{}, newMemoryLog())

	payload, _ := json.Marshal(map[string]string{"userId": "neo@ashstar.com", "personaId": "ghost"})
	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
