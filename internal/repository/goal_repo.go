package repository

import (
	"database/sql"
	"fmt"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(g *domain.Goal) (int64, error) {
	result, err := r.db.Exec(
		`INSERT INTO goals (user_id, type, target, target_weight, duration_weeks, progress, start_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Type, g.Target, g.TargetWeight, g.DurationWeeks, g.Progress, g.StartDate,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create goal: %w", err)
	}
	return result.LastInsertId()
}

func (r *GoalRepository) ListByUserID(userID int64) ([]domain.Goal, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, type, target, target_weight, duration_weeks, progress, start_date
		 FROM goals
		 WHERE user_id = ?
		 ORDER BY start_date ASC, id ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		var g domain.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Type, &g.Target, &g.TargetWeight, &g.DurationWeeks, &g.Progress, &g.StartDate); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *GoalRepository) UpdateProgress(userID, id int64, progress int) (bool, error) {
	result, err := r.db.Exec(
		`UPDATE goals SET progress = ? WHERE id = ? AND user_id = ?`,
		progress, id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update goal: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update goal: %w", err)
	}
	return n > 0, nil
}

func (r *GoalRepository) Delete(userID, id int64) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete goal: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete goal: %w", err)
	}
	return n > 0, nil
}
