package repository

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func floatPtr(v float64) *float64 { return &v }

func TestAccountRepository_Register(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO accounts`)).
		WithArgs("ada@example.com", "hash").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(int64(7), "Ada", nil, nil, floatPtr(170), floatPtr(70), `["asthma"]`, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	u := &domain.User{Name: "Ada", Height: floatPtr(170), Weight: floatPtr(70), MedicalConditions: []string{"asthma"}}
	accountID, userID, err := repo.Register("ada@example.com", "hash", u)
	require.NoError(t, err)
	assert.Equal(t, int64(7), accountID)
	assert.Equal(t, int64(11), userID)
	assert.Equal(t, int64(7), u.AccountID)
}

func TestAccountRepository_RegisterRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO accounts`)).
		WillReturnError(errors.New("duplicate"))
	mock.ExpectRollback()

	_, _, err := repo.Register("ada@example.com", "hash", &domain.User{Name: "Ada"})
	assert.Error(t, err)
}

func TestAccountRepository_GetByEmailMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash FROM accounts`)).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	account, err := repo.GetByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestUserRepository_GetForAccount(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "account_id", "name", "email", "age", "height", "weight",
		"medical_conditions", "address", "phone", "avatar", "created_at", "updated_at",
	}).AddRow(3, 7, "Ada", nil, 36, 170.0, 70.0, `["asthma","gluten"]`, nil, nil, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = ? AND account_id = ?`)).
		WithArgs(int64(3), int64(7)).
		WillReturnRows(rows)

	u, err := repo.GetForAccount(3, 7)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Ada", u.Name)
	require.NotNil(t, u.Height)
	assert.Equal(t, 170.0, *u.Height)
	assert.Equal(t, []string{"asthma", "gluten"}, u.MedicalConditions)
}

func TestUserRepository_GetForAccountOtherAccount(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = ? AND account_id = ?`)).
		WithArgs(int64(3), int64(8)).
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetForAccount(3, 8)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepository_UpdateFiltersColumns(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET medical_conditions = ?, weight = ? WHERE id = ?`)).
		WithArgs(`["asthma"]`, 68.5, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(3, map[string]interface{}{
		"weight":             68.5,
		"medical_conditions": []string{"asthma"},
		"account_id":         99,
	})
	require.NoError(t, err)
}

func TestUserRepository_UpdateNothingAllowed(t *testing.T) {
	db, _ := newMock(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Update(3, map[string]interface{}{"id": 4}))
}

func TestMetricRepository_LatestByUserID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMetricRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "date", "weight", "height", "bmi", "weight_diff", "body_metric", "created_at"}).
		AddRow(5, 3, "2025-01-15", 70.0, 170.0, 24.22, nil, "normal_weight", "2025-01-15T09:00:00Z")
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC, id DESC`)).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	m, err := repo.LatestByUserID(3)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "normal_weight", m.BodyMetric)
	assert.Nil(t, m.WeightDiff)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC, id DESC`)).
		WithArgs(int64(4)).
		WillReturnError(sql.ErrNoRows)

	m, err = repo.LatestByUserID(4)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestMetricRepository_GetByUserID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMetricRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "date", "weight", "height", "bmi", "weight_diff", "body_metric", "created_at"}).
		AddRow(1, 3, "2025-01-14", 71.5, 170.0, 24.74, nil, "normal_weight", "2025-01-14T08:00:00Z").
		AddRow(2, 3, "2025-01-15", 70.0, 170.0, 24.22, -1.5, "normal_weight", "2025-01-15T08:00:00Z")
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at ASC, id ASC`)).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	got, err := repo.GetByUserID(3)
	require.NoError(t, err)

	diff := -1.5
	want := []domain.UserMetric{
		{ID: 1, UserID: 3, Date: "2025-01-14", Weight: 71.5, Height: 170, BMI: 24.74, BodyMetric: "normal_weight", CreatedAt: "2025-01-14T08:00:00Z"},
		{ID: 2, UserID: 3, Date: "2025-01-15", Weight: 70, Height: 170, BMI: 24.22, WeightDiff: &diff, BodyMetric: "normal_weight", CreatedAt: "2025-01-15T08:00:00Z"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("GetByUserID mismatch (-want +got):\n%s", d)
	}
}

func TestMealRepository_ListFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMealRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "calories", "protein", "carbs", "fat", "category", "date", "time"}).
		AddRow("m1", 3, "Chicken Breast", 165, 31.0, 0.0, 3.6, "Lunch", "2025-01-15", nil)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = ? AND category = ? AND LOWER(name) LIKE ?`)).
		WithArgs(int64(3), "Lunch", `%chick\%%`).
		WillReturnRows(rows)

	meals, err := repo.List(3, domain.MealFilter{Category: "Lunch", Search: " Chick% "})
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "Chicken Breast", meals[0].Name)
}

func TestMealRepository_ListAllCategory(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMealRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = ? AND date = ?`)).
		WithArgs(int64(3), "2025-01-15").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "calories", "protein", "carbs", "fat", "category", "date", "time"}))

	meals, err := repo.List(3, domain.MealFilter{Category: "All", Date: "2025-01-15"})
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestMealRepository_Summary(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMealRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*)`)).
		WithArgs(int64(3), "2025-01-15").
		WillReturnRows(sqlmock.NewRows([]string{"count", "calories", "protein", "carbs", "fat"}).
			AddRow(3, 410, 36.5, 52.0, 7.1))

	s, err := repo.Summary(3, "2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, 3, s.MealCount)
	assert.Equal(t, 410, s.TotalCalories)
	assert.Equal(t, "2025-01-15", s.Date)
}

func TestMealRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMealRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM meals WHERE id = ? AND user_id = ?`)).
		WithArgs("m1", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(3, "m1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGoalRepository_UpdateProgress(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGoalRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE goals SET progress = ? WHERE id = ? AND user_id = ?`)).
		WithArgs(40, int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateProgress(3, 2, 40)
	require.NoError(t, err)
	assert.True(t, updated)
}

func TestResetTokenRepository_GetValidMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResetTokenRepository(db)
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	mock.ExpectQuery(regexp.QuoteMeta(`FROM password_reset_tokens t`)).
		WithArgs("ada@example.com", "123456", now).
		WillReturnError(sql.ErrNoRows)

	token, err := repo.GetValidByEmailAndToken("ada@example.com", "123456")
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestResetTokenRepository_IssueReplacesEarlierCodes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResetTokenRepository(db)
	expires := time.Date(2025, 1, 15, 9, 15, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM password_reset_tokens WHERE account_id = ?`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO password_reset_tokens`)).
		WithArgs(int64(1), "042133", expires).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Issue(1, "042133", expires))
}

func TestResetTokenRepository_IssueRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResetTokenRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM password_reset_tokens`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO password_reset_tokens`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	assert.Error(t, repo.Issue(1, "042133", time.Now()))
}

func TestResetTokenRepository_ConsumeOnce(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResetTokenRepository(db)
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE password_reset_tokens SET used = 1 WHERE id = ? AND used = 0`)).
		WithArgs(int64(9), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE password_reset_tokens SET used = 1 WHERE id = ? AND used = 0`)).
		WithArgs(int64(9), now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Consume(9)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Consume(9)
	require.NoError(t, err)
	assert.False(t, ok)
}
