package model

import "time"

// ChatMessage is a row of the `chat` table.
type ChatMessage struct {
	ID         uint64    `json:"chat_id"`
	SenderID   uint64    `json:"sender_id"`
	ReceiverID uint64    `json:"receiver_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
