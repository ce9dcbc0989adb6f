package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
)

type Account struct {
	ID           int64
	Email        string
	PasswordHash string
}

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByEmail(email string) (*Account, error) {
	var account Account
	err := r.db.QueryRow(
		`SELECT id, email, password_hash FROM accounts WHERE email = ?`,
		email,
	).Scan(&account.ID, &account.Email, &account.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) UpdatePassword(id int64, passwordHash string) error {
	_, err := r.db.Exec(
		`UPDATE accounts SET password_hash = ? WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Register creates the account and its first profile in one transaction.
func (r *AccountRepository) Register(email, passwordHash string, u *domain.User) (int64, int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin register transaction: %w", err)
	}

	result, err := tx.Exec(
		`INSERT INTO accounts (email, password_hash) VALUES (?, ?)`,
		email, passwordHash,
	)
	if err != nil {
		tx.Rollback()
		return 0, 0, fmt.Errorf("failed to create account: %w", err)
	}
	accountID, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, 0, fmt.Errorf("failed to read account id: %w", err)
	}

	u.AccountID = accountID
	userID, err := insertUser(tx, u)
	if err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit register transaction: %w", err)
	}
	return accountID, userID, nil
}
