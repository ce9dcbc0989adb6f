package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
)

const userColumns = `id, account_id, name, email, age, height, weight, medical_conditions, address, phone, avatar, created_at, updated_at`

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *domain.User) (int64, error) {
	return insertUser(r.db, u)
}

func insertUser(db execer, u *domain.User) (int64, error) {
	conditions, err := encodeConditions(u.MedicalConditions)
	if err != nil {
		return 0, err
	}

	result, err := db.Exec(
		`INSERT INTO users (account_id, name, email, age, height, weight, medical_conditions, address, phone, avatar)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.AccountID, u.Name, u.Email, u.Age, u.Height, u.Weight, conditions, u.Address, u.Phone, u.Avatar,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return result.LastInsertId()
}

// GetForAccount returns nil when the profile does not exist or belongs to
// another account.
func (r *UserRepository) GetForAccount(id, accountID int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = ? AND account_id = ?`, id, accountID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ListByAccount(accountID int64) ([]domain.User, error) {
	rows, err := r.db.Query(
		`SELECT `+userColumns+` FROM users WHERE account_id = ? ORDER BY id ASC`, accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

var updatableUserColumns = map[string]bool{
	"name": true, "email": true, "age": true, "height": true, "weight": true,
	"medical_conditions": true, "address": true, "phone": true, "avatar": true,
}

func (r *UserRepository) Update(id int64, fields map[string]interface{}) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if updatableUserColumns[k] {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	var setClauses []string
	var args []interface{}
	for _, k := range keys {
		v := fields[k]
		if k == "medical_conditions" {
			encoded, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to encode medical conditions: %w", err)
			}
			v = string(encoded)
		}
		setClauses = append(setClauses, k+" = ?")
		args = append(args, v)
	}

	args = append(args, id)
	query := "UPDATE users SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"

	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	var conditions sql.NullString
	if err := row.Scan(
		&u.ID, &u.AccountID, &u.Name, &u.Email, &u.Age, &u.Height, &u.Weight,
		&conditions, &u.Address, &u.Phone, &u.Avatar, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	u.MedicalConditions = []string{}
	if conditions.Valid && conditions.String != "" {
		if err := json.Unmarshal([]byte(conditions.String), &u.MedicalConditions); err != nil {
			return nil, fmt.Errorf("failed to decode medical conditions: %w", err)
		}
	}
	return &u, nil
}

func encodeConditions(conditions []string) (*string, error) {
	if len(conditions) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(conditions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode medical conditions: %w", err)
	}
	s := string(b)
	return &s, nil
}
