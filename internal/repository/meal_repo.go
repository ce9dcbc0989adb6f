package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
)

type MealRepository struct {
	db *sql.DB
}

func NewMealRepository(db *sql.DB) *MealRepository {
	return &MealRepository{db: db}
}

func (r *MealRepository) Create(m *domain.Meal) error {
	_, err := r.db.Exec(
		`INSERT INTO meals (id, user_id, name, calories, protein, carbs, fat, category, date, time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Name, m.Calories, m.Protein, m.Carbs, m.Fat, m.Category, m.Date, m.Time,
	)
	if err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}
	return nil
}

func (r *MealRepository) List(userID int64, f domain.MealFilter) ([]domain.Meal, error) {
	where := []string{"user_id = ?"}
	args := []interface{}{userID}

	if f.Category != "" && f.Category != "All" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Date != "" {
		where = append(where, "date = ?")
		args = append(args, f.Date)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+escapeLike(strings.ToLower(s))+"%")
	}

	rows, err := r.db.Query(
		`SELECT id, user_id, name, calories, protein, carbs, fat, category, date, time
		 FROM meals
		 WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY date ASC, created_at ASC`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	var meals []domain.Meal
	for rows.Next() {
		var m domain.Meal
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Calories, &m.Protein, &m.Carbs, &m.Fat, &m.Category, &m.Date, &m.Time); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

// Delete reports whether a meal owned by userID was removed.
func (r *MealRepository) Delete(userID int64, id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM meals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete meal: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete meal: %w", err)
	}
	return n > 0, nil
}

func (r *MealRepository) Summary(userID int64, date string) (domain.NutritionSummary, error) {
	s := domain.NutritionSummary{Date: date}
	err := r.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(calories), 0), COALESCE(SUM(protein), 0),
		        COALESCE(SUM(carbs), 0), COALESCE(SUM(fat), 0)
		 FROM meals
		 WHERE user_id = ? AND date = ?`, userID, date,
	).Scan(&s.MealCount, &s.TotalCalories, &s.TotalProtein, &s.TotalCarbs, &s.TotalFat)
	if err != nil {
		return s, fmt.Errorf("failed to summarize meals: %w", err)
	}
	return s, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
