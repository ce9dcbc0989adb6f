package service

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/yusufkecer/eatsmart-backend/internal/bmi"
	"github.com/yusufkecer/eatsmart-backend/internal/domain"
)

type MetricStore interface {
	Create(m *domain.UserMetric) (int64, error)
	GetByUserID(userID int64) ([]domain.UserMetric, error)
	LatestByUserID(userID int64) (*domain.UserMetric, error)
}

type MealSummarizer interface {
	Summary(userID int64, date string) (domain.NutritionSummary, error)
}

type GoalLister interface {
	ListByUserID(userID int64) ([]domain.Goal, error)
}

type MetricService struct {
	metrics MetricStore
	meals   MealSummarizer
	goals   GoalLister
	logger  *zap.Logger
	now     func() time.Time
}

func NewMetricService(metrics MetricStore, meals MealSummarizer, goals GoalLister, logger *zap.Logger) *MetricService {
	return &MetricService{
		metrics: metrics,
		meals:   meals,
		goals:   goals,
		logger:  logger,
		now:     time.Now,
	}
}

// Record evaluates the measurement and stores it. When the input carries no
// height the profile height is used. Invalid measurements are rejected with
// an error matching bmi.ErrInvalidInput and nothing is written.
func (s *MetricService) Record(user *domain.User, in domain.MetricInput) (*domain.UserMetric, error) {
	height := in.Height
	if height == 0 && user.Height != nil {
		height = *user.Height
	}

	res, err := bmi.Evaluate(height, in.Weight)
	if err != nil {
		return nil, err
	}

	previous, err := s.metrics.LatestByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	metric := &domain.UserMetric{
		UserID:     user.ID,
		Date:       in.Date,
		Weight:     in.Weight,
		Height:     height,
		BMI:        res.Index,
		BodyMetric: res.Category.String(),
		CreatedAt:  now.Format(time.RFC3339),
	}
	if metric.Date == "" {
		metric.Date = now.Format(time.DateOnly)
	}
	if previous != nil {
		diff := in.Weight - previous.Weight
		if scaled := diff * 100; !math.IsInf(scaled, 0) {
			diff = math.Round(scaled) / 100
		}
		metric.WeightDiff = &diff
	}

	id, err := s.metrics.Create(metric)
	if err != nil {
		return nil, err
	}
	metric.ID = id

	s.logger.Debug("metric recorded",
		zap.Int64("user_id", user.ID),
		zap.Float64("bmi", res.Rounded()),
		zap.String("category", metric.BodyMetric),
	)
	return metric, nil
}

func (s *MetricService) List(userID int64) ([]domain.UserMetric, error) {
	metrics, err := s.metrics.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = []domain.UserMetric{}
	}
	return metrics, nil
}

func (s *MetricService) Dashboard(user *domain.User) (*domain.Dashboard, error) {
	latest, err := s.metrics.LatestByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("dashboard metric: %w", err)
	}

	today := s.now().UTC().Format(time.DateOnly)
	nutrition, err := s.meals.Summary(user.ID, today)
	if err != nil {
		return nil, fmt.Errorf("dashboard nutrition: %w", err)
	}

	goals, err := s.goals.ListByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("dashboard goals: %w", err)
	}
	if goals == nil {
		goals = []domain.Goal{}
	}

	return &domain.Dashboard{
		User:      Profile(*user),
		Latest:    latest,
		Nutrition: nutrition,
		Goals:     goals,
	}, nil
}

// Profile attaches the BMI for the stored height and weight, if both are set
// and valid.
func Profile(u domain.User) domain.UserProfile {
	p := domain.UserProfile{User: u}
	if u.MedicalConditions == nil {
		p.MedicalConditions = []string{}
	}
	if u.Height == nil || u.Weight == nil {
		return p
	}

	res, err := bmi.Evaluate(*u.Height, *u.Weight)
	if err != nil {
		return p
	}
	summary := Summarize(res)
	p.BMI = &summary
	return p
}

func Summarize(res bmi.Result) domain.BMISummary {
	return domain.BMISummary{
		Index:    res.Index,
		Rounded:  res.Rounded(),
		Category: res.Category.String(),
		Label:    res.Category.Label(),
		Color:    res.Category.Color(),
	}
}
