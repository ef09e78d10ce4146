package chat_test

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	chatModel "github.com/ashstar-ai/mainframe/internal/model/chat"
	chat "github.com/ashstar-ai/mainframe/internal/service/chat"
	"github.com/ashstar-ai/mainframe/internal/store"
)

func newTestService(t *testing.T) *chat.Service {
	t.Helper()

	// Unique DSN per test; pooled connections to a plain :memory: DSN would
	// each see their own database.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	records, err := store.NewWithDB(db)
	if err != nil {
		t.Fatalf("migrate store: %v", err)
	}
	return chat.NewService(records)
}

func TestCreateSessionDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "neo@ashstar.com", "taskmaster", "")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if session.Title != chatModel.DefaultTitle {
		t.Fatalf("expected default title, got %q", session.Title)
	}
	if session.ID == "" {
		t.Fatal("expected generated session ID")
	}
}

func TestCreateSessionValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateSession(ctx, "", "taskmaster", ""); !errors.Is(err, chat.ErrUserRequired) {
		t.Fatalf("expected ErrUserRequired, got %v", err)
	}
	if _, err := svc.CreateSession(ctx, "neo@ashstar.com", "", ""); !errors.Is(err, chat.ErrPersonaRequired) {
		t.Fatalf("expected ErrPersonaRequired, got %v", err)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second"} {
		if _, err := svc.CreateSession(ctx, "neo@ashstar.com", "codebuddy", title); err != nil {
			t.Fatalf("CreateSession %s err: %v", title, err)
		}
	}

	sessions, err := svc.ListSessions(ctx, "neo@ashstar.com", "codebuddy")
	if err != nil {
		t.Fatalf("ListSessions err: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
}

func TestRecordTurnRejectsEmptyText(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "neo@ashstar.com", "companion", "")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	err = svc.RecordTurn(ctx, chatModel.Turn{
		SessionID: session.ID,
		Role:      chatModel.RoleUser,
		Text:      "   ",
	})
	if !errors.Is(err, chat.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestTranscriptChronological(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "neo@ashstar.com", "companion", "")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	texts := []string{"hi", "hello there", "how are you", "doing great"}
	roles := []string{chatModel.RoleUser, chatModel.RoleAssistant, chatModel.RoleUser, chatModel.RoleAssistant}
	for i, text := range texts {
		turn := chatModel.Turn{
			SessionID: session.ID,
			UserID:    "neo@ashstar.com",
			PersonaID: "companion",
			Role:      roles[i],
			Text:      text,
		}
		if err := svc.RecordTurn(ctx, turn); err != nil {
			t.Fatalf("RecordTurn %d err: %v", i, err)
		}
	}

	transcript, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(transcript) != len(texts) {
		t.Fatalf("expected %d turns, got %d", len(texts), len(transcript))
	}
	for i := 1; i < len(transcript); i++ {
		if transcript[i].CreatedAt.Before(transcript[i-1].CreatedAt) {
			t.Fatalf("transcript out of order at index %d", i)
		}
	}
}

func TestUserStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "neo@ashstar.com", "fitmentor", "")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	turn := chatModel.Turn{
		SessionID: session.ID,
		UserID:    "neo@ashstar.com",
		PersonaID: "fitmentor",
		Role:      chatModel.RoleUser,
		Text:      "leg day plan",
	}
	if err := svc.RecordTurn(ctx, turn); err != nil {
		t.Fatalf("RecordTurn err: %v", err)
	}

	stats, err := svc.UserStats(ctx, "neo@ashstar.com")
	if err != nil {
		t.Fatalf("UserStats err: %v", err)
	}
	if stats.Sessions != 1 || stats.Turns != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
