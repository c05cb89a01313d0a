package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/household-market/internal/model"
)

// ChatHandler serves /api/chat.  Messages are immutable once sent.
type ChatHandler struct {
	Chat Store[model.ChatMessage]
	Log  logrus.FieldLogger
}

func NewChatHandler(chat Store[model.ChatMessage], log logrus.FieldLogger) *ChatHandler {
	return &ChatHandler{Chat: chat, Log: log}
}

func (h *ChatHandler) Create(c echo.Context) error {
	_, _, err := createOne(c, h.Log, "chat.create", h.Chat, nil)
	return err
}

func (h *ChatHandler) List(c echo.Context) error {
	return listAll(c, h.Log, "chat.list", h.Chat)
}

func (h *ChatHandler) Get(c echo.Context) error {
	return getOne(c, h.Log, "chat.get", h.Chat)
}

func (h *ChatHandler) Delete(c echo.Context) error {
	_, err := deleteOne(c, h.Log, "chat.delete", "Chat", h.Chat)
	return err
}

// TransactionHandler serves /api/transactions.
type TransactionHandler struct {
	Transactions MutableStore[model.Transaction]
	Log          logrus.FieldLogger
}

func NewTransactionHandler(tx MutableStore[model.Transaction], log logrus.FieldLogger) *TransactionHandler {
	return &TransactionHandler{Transactions: tx, Log: log}
}

func (h *TransactionHandler) Create(c echo.Context) error {
	_, _, err := createOne(c, h.Log, "transactions.create", h.Transactions, nil)
	return err
}

func (h *TransactionHandler) List(c echo.Context) error {
	return listAll(c, h.Log, "transactions.list", h.Transactions)
}

func (h *TransactionHandler) Get(c echo.Context) error {
	return getOne(c, h.Log, "transactions.get", h.Transactions)
}

func (h *TransactionHandler) Update(c echo.Context) error {
	_, _, err := updateOne(c, h.Log, "transactions.update", "Transaction", h.Transactions,
		func(t *model.Transaction, id uint64) { t.ID = id })
	return err
}

func (h *TransactionHandler) Delete(c echo.Context) error {
	_, err := deleteOne(c, h.Log, "transactions.delete", "Transaction", h.Transactions)
	return err
}
