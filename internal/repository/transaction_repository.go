package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/household-market/internal/model"
)

const transactionColumns = "transaction_id, user_id, amount, transaction_type, status, created_at"

// TransactionRepo reads and writes the `transactions` table.  Transactions
// are independent of orders.
type TransactionRepo struct{ DB *sql.DB }

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{DB: db} }

func scanTransaction(s rowScanner) (model.Transaction, error) {
	var t model.Transaction
	err := s.Scan(&t.ID, &t.UserID, &t.Amount, &t.TransactionType, &t.Status, &t.CreatedAt)
	return t, err
}

func (r *TransactionRepo) Create(ctx context.Context, t model.Transaction) (uint64, error) {
	return insertRow(ctx, r.DB,
		"INSERT INTO transactions (user_id, amount, transaction_type, status) VALUES (?, ?, ?, ?)",
		t.UserID, t.Amount, t.TransactionType, t.Status)
}

func (r *TransactionRepo) List(ctx context.Context) ([]model.Transaction, error) {
	return queryAll(ctx, r.DB, scanTransaction, "SELECT "+transactionColumns+" FROM transactions")
}

func (r *TransactionRepo) GetByID(ctx context.Context, id uint64) (model.Transaction, error) {
	return queryOne(ctx, r.DB, scanTransaction,
		"SELECT "+transactionColumns+" FROM transactions WHERE transaction_id = ?", id)
}

func (r *TransactionRepo) Update(ctx context.Context, t model.Transaction) (int64, error) {
	return execRows(ctx, r.DB,
		"UPDATE transactions SET user_id = ?, amount = ?, transaction_type = ?, status = ? WHERE transaction_id = ?",
		t.UserID, t.Amount, t.TransactionType, t.Status, t.ID)
}

func (r *TransactionRepo) Delete(ctx context.Context, id uint64) error {
	_, err := execRows(ctx, r.DB, "DELETE FROM transactions WHERE transaction_id = ?", id)
	return err
}
