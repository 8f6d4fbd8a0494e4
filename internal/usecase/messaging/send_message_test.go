package messaging

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/primefit-labs/training-scheduler/internal/infra/repository"
	"github.com/primefit-labs/training-scheduler/internal/models"
	"github.com/primefit-labs/training-scheduler/internal/realtime"
)

// openTestDB returns an isolated in-file SQLite database in a temp directory.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dir := t.TempDir()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.Profile{},
		&models.Conversation{},
		&models.Message{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gdb
}

func seedPair(t *testing.T, gdb *gorm.DB) (a, b models.Profile) {
	t.Helper()
	a = models.Profile{Name: "Athlete", Email: "a@test.local", PasswordHash: "x", Role: "athlete"}
	b = models.Profile{Name: "Coach", Email: "b@test.local", PasswordHash: "x", Role: "coach"}
	gdb.Create(&a)
	gdb.Create(&b)
	return a, b
}

// TestSendMessage_StartsConversation verifies that messaging a recipient
// for the first time creates the conversation, and that replying from
// either side lands in the same one.
func TestSendMessage_StartsConversation(t *testing.T) {
	gdb := openTestDB(t)
	a, b := seedPair(t, gdb)

	repo := repository.NewMessagingGormRepository(gdb)
	uc := NewSendMessage(repo, realtime.NewHub(nil))
	ctx := context.Background()

	first, err := uc.Execute(ctx, SendMessageInput{
		SenderID:    a.ID,
		RecipientID: &b.ID,
		Content:     "When is the next session?",
	})
	if err != nil {
		t.Fatalf("first message: %v", err)
	}

	reply, err := uc.Execute(ctx, SendMessageInput{
		SenderID:    b.ID,
		RecipientID: &a.ID,
		Content:     "Tomorrow at 9.",
	})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}

	if first.ConversationID != reply.ConversationID {
		t.Errorf("reply opened a second conversation: %d vs %d", first.ConversationID, reply.ConversationID)
	}

	var count int64
	gdb.Model(&models.Conversation{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 conversation, got %d", count)
	}
}

// TestSendMessage_Rejections covers the guard clauses.
func TestSendMessage_Rejections(t *testing.T) {
	gdb := openTestDB(t)
	a, b := seedPair(t, gdb)

	repo := repository.NewMessagingGormRepository(gdb)
	uc := NewSendMessage(repo, realtime.NewHub(nil))
	ctx := context.Background()

	if _, err := uc.Execute(ctx, SendMessageInput{SenderID: a.ID, RecipientID: &b.ID, Content: "   "}); err == nil {
		t.Error("whitespace-only content must be rejected")
	}
	if _, err := uc.Execute(ctx, SendMessageInput{SenderID: a.ID, RecipientID: &a.ID, Content: "hi"}); err == nil {
		t.Error("messaging yourself must be rejected")
	}
	missing := uint(9999)
	if _, err := uc.Execute(ctx, SendMessageInput{SenderID: a.ID, RecipientID: &missing, Content: "hi"}); err == nil {
		t.Error("unknown recipient must be rejected")
	}
	if _, err := uc.Execute(ctx, SendMessageInput{SenderID: a.ID, ConversationID: &missing, Content: "hi"}); err == nil {
		t.Error("unknown conversation must be rejected")
	}
	if _, err := uc.Execute(ctx, SendMessageInput{SenderID: a.ID, Content: "hi"}); err == nil {
		t.Error("neither conversation nor recipient must be rejected")
	}
}

// TestOpenConversation verifies the participant check, the ordered
// history and the read-marking side effect.
func TestOpenConversation(t *testing.T) {
	gdb := openTestDB(t)
	a, b := seedPair(t, gdb)
	outsider := models.Profile{Name: "Outsider", Email: "c@test.local", PasswordHash: "x", Role: "athlete"}
	gdb.Create(&outsider)

	repo := repository.NewMessagingGormRepository(gdb)
	send := NewSendMessage(repo, realtime.NewHub(nil))
	ctx := context.Background()

	first, err := send.Execute(ctx, SendMessageInput{SenderID: a.ID, RecipientID: &b.ID, Content: "one"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := send.Execute(ctx, SendMessageInput{SenderID: a.ID, ConversationID: &first.ConversationID, Content: "two"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	open := NewOpenConversation(repo)

	if _, err := open.Execute(ctx, first.ConversationID, outsider.ID); err == nil {
		t.Error("a non-participant must not open the conversation")
	}

	msgs, err := open.Execute(ctx, first.ConversationID, b.ID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Content != "one" || msgs[1].Content != "two" {
		t.Errorf("unexpected history: %+v", msgs)
	}

	var unread int64
	gdb.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", first.ConversationID, b.ID, false).
		Count(&unread)
	if unread != 0 {
		t.Errorf("opening the thread must mark the other party's messages read, %d left", unread)
	}
}
