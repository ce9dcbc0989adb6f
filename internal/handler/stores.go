package handler

import (
	"time"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
	"github.com/yusufkecer/eatsmart-backend/internal/repository"
)

type accountStore interface {
	Register(email, passwordHash string, u *domain.User) (int64, int64, error)
	GetByEmail(email string) (*repository.Account, error)
	UpdatePassword(id int64, passwordHash string) error
}

type resetTokenStore interface {
	Issue(accountID int64, code string, expiresAt time.Time) error
	GetValidByEmailAndToken(email, code string) (*domain.PasswordResetToken, error)
	Consume(id int64) (bool, error)
}

type mailer interface {
	SendPasswordReset(to, token string) error
}

type userStore interface {
	Create(u *domain.User) (int64, error)
	GetForAccount(id, accountID int64) (*domain.User, error)
	ListByAccount(accountID int64) ([]domain.User, error)
	Update(id int64, fields map[string]interface{}) error
}

type metricService interface {
	Record(user *domain.User, in domain.MetricInput) (*domain.UserMetric, error)
	List(userID int64) ([]domain.UserMetric, error)
	Dashboard(user *domain.User) (*domain.Dashboard, error)
}

type mealStore interface {
	Create(m *domain.Meal) error
	List(userID int64, f domain.MealFilter) ([]domain.Meal, error)
	Delete(userID int64, id string) (bool, error)
	Summary(userID int64, date string) (domain.NutritionSummary, error)
}

type goalStore interface {
	Create(g *domain.Goal) (int64, error)
	ListByUserID(userID int64) ([]domain.Goal, error)
	UpdateProgress(userID, id int64, progress int) (bool, error)
	Delete(userID, id int64) (bool, error)
}
