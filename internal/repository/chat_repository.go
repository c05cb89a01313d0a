package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/household-market/internal/model"
)

const chatColumns = "chat_id, sender_id, receiver_id, message, created_at"

// ChatRepo reads and writes the `chat` table.  Messages are immutable; there
// is no update.
type ChatRepo struct{ DB *sql.DB }

func NewChatRepo(db *sql.DB) *ChatRepo { return &ChatRepo{DB: db} }

func scanChat(s rowScanner) (model.ChatMessage, error) {
	var m model.ChatMessage
	err := s.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Message, &m.CreatedAt)
	return m, err
}

func (r *ChatRepo) Create(ctx context.Context, m model.ChatMessage) (uint64, error) {
	return insertRow(ctx, r.DB,
		"INSERT INTO chat (sender_id, receiver_id, message) VALUES (?, ?, ?)",
		m.SenderID, m.ReceiverID, m.Message)
}

func (r *ChatRepo) List(ctx context.Context) ([]model.ChatMessage, error) {
	return queryAll(ctx, r.DB, scanChat, "SELECT "+chatColumns+" FROM chat")
}

func (r *ChatRepo) GetByID(ctx context.Context, id uint64) (model.ChatMessage, error) {
	return queryOne(ctx, r.DB, scanChat, "SELECT "+chatColumns+" FROM chat WHERE chat_id = ?", id)
}

func (r *ChatRepo) Delete(ctx context.Context, id uint64) error {
	_, err := execRows(ctx, r.DB, "DELETE FROM chat WHERE chat_id = ?", id)
	return err
}
