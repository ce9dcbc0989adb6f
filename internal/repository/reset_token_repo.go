package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
)

// ResetTokenRepository stores one-time password reset codes. An account has
// at most one live code: issuing a new one removes the earlier ones.
type ResetTokenRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewResetTokenRepository(db *sql.DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db, now: time.Now}
}

func (r *ResetTokenRepository) Issue(accountID int64, code string, expiresAt time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin reset code transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM password_reset_tokens WHERE account_id = ?`, accountID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear reset codes: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO password_reset_tokens (account_id, token, expires_at) VALUES (?, ?, ?)`,
		accountID, code, expiresAt.UTC(),
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	return tx.Commit()
}

func (r *ResetTokenRepository) GetValidByEmailAndToken(email, code string) (*domain.PasswordResetToken, error) {
	var (
		t    domain.PasswordResetToken
		used bool
	)
	err := r.db.QueryRow(`
		SELECT t.id, t.account_id, t.token, t.expires_at, t.used
		FROM password_reset_tokens t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.email = ? AND t.token = ? AND t.used = 0 AND t.expires_at > ?
		ORDER BY t.id DESC
		LIMIT 1`,
		email, code, r.now().UTC(),
	).Scan(&t.ID, &t.AccountID, &t.Token, &t.ExpiresAt, &used)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to look up reset code: %w", err)
	}
	t.Used = used
	return &t, nil
}

// Consume marks the code used. It reports false when another request used
// it first or it expired in the meantime.
func (r *ResetTokenRepository) Consume(id int64) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE password_reset_tokens SET used = 1 WHERE id = ? AND used = 0 AND expires_at > ?`,
		id, r.now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to consume reset code: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
