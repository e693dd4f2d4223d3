package conversation

import (
	"context"
	"testing"
	"time"

	"studio-server/internal/utils/platformerrors"
)

type mockMessageRepository struct {
	messages []*Message
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *Message) error {
	msg.ID = uint(len(m.messages) + 1)
	msg.CreatedAt = time.Now().UTC()
	stored := *msg
	m.messages = append(m.messages, &stored)
	return nil
}

func (m *mockMessageRepository) ListByConversation(ctx context.Context, conversationID uint) ([]*Message, error) {
	var out []*Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			c := *msg
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *mockMessageRepository) MarkRead(ctx context.Context, conversationID uint, senderType SenderType, at time.Time) error {
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID && msg.SenderType == senderType && msg.ReadAt == nil {
			t := at
			msg.ReadAt = &t
		}
	}
	return nil
}

func activeConversation() *Conversation {
	return &Conversation{ID: 1, PublicID: "proj_test", Status: ConversationStatusActive}
}

func TestAppend_PersistsInOrder(t *testing.T) {
	repo := &mockMessageRepository{}
	svc := NewMessageService(repo)
	ctx := context.Background()
	conv := activeConversation()

	first, err := svc.Append(ctx, conv, AppendInput{SenderType: SenderTypeClient, SenderName: "Alice", Content: "hello"})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := svc.Append(ctx, conv, AppendInput{SenderType: SenderTypeAdmin, SenderName: "Studio", Content: "hi there"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	history, err := svc.History(ctx, conv)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d messages, want 2", len(history))
	}
	if history[0].PublicID != first.PublicID {
		t.Error("history must be in persisted order")
	}
	if history[0].SenderType != SenderTypeClient || history[1].SenderType != SenderTypeAdmin {
		t.Error("sender types not preserved")
	}
}

func TestAppend_RejectsArchivedConversation(t *testing.T) {
	svc := NewMessageService(&mockMessageRepository{})
	conv := &Conversation{ID: 1, Status: ConversationStatusArchived}

	_, err := svc.Append(context.Background(), conv, AppendInput{SenderType: SenderTypeClient, Content: "hello"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Errorf("writing to an archived conversation should be forbidden, got %v", err)
	}
}

func TestAppend_RejectsEmptyContent(t *testing.T) {
	svc := NewMessageService(&mockMessageRepository{})
	conv := activeConversation()

	_, err := svc.Append(context.Background(), conv, AppendInput{SenderType: SenderTypeClient, Content: "   "})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("blank content should be a validation error, got %v", err)
	}

	// An attachment with no text is still a message.
	if _, err := svc.Append(context.Background(), conv, AppendInput{SenderType: SenderTypeClient, Attachments: []string{"https://cdn.example.com/f.png"}}); err != nil {
		t.Errorf("attachment-only message should be accepted, got %v", err)
	}
}

func TestAppend_RejectsUnknownSender(t *testing.T) {
	svc := NewMessageService(&mockMessageRepository{})

	_, err := svc.Append(context.Background(), activeConversation(), AppendInput{SenderType: "bot", Content: "hello"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("unknown sender type should be a validation error, got %v", err)
	}
}

func TestMarkRead_StampsOnlyGivenSender(t *testing.T) {
	repo := &mockMessageRepository{}
	svc := NewMessageService(repo)
	ctx := context.Background()
	conv := activeConversation()

	if _, err := svc.Append(ctx, conv, AppendInput{SenderType: SenderTypeClient, Content: "from client"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := svc.Append(ctx, conv, AppendInput{SenderType: SenderTypeAdmin, Content: "from admin"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if err := svc.MarkRead(ctx, conv, SenderTypeClient); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	history, err := svc.History(ctx, conv)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	for _, msg := range history {
		read := msg.ReadAt != nil
		if msg.SenderType == SenderTypeClient && !read {
			t.Error("client message should carry a read receipt")
		}
		if msg.SenderType == SenderTypeAdmin && read {
			t.Error("admin message must not be stamped by a client-side read")
		}
	}
}
