package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/yusufkecer/eatsmart-backend/internal/middleware"
)

type RouterConfig struct {
	JWTSecret      string
	APIKey         string
	AllowedOrigins string
	HSTS           bool
	TrustedProxies middleware.TrustedProxies
}

type Handlers struct {
	Auth   *AuthHandler
	User   *UserHandler
	Metric *MetricHandler
	BMI    *BMIHandler
	Meal   *MealHandler
	Goal   *GoalHandler
}

func NewRouter(cfg RouterConfig, h Handlers, logger *zap.Logger) *mux.Router {
	loginRL := middleware.NewRateLimiter(5, 15*time.Minute, cfg.TrustedProxies)
	forgotPasswordRL := middleware.NewRateLimiter(3, 60*time.Minute, cfg.TrustedProxies)

	r := mux.NewRouter()

	// Global middleware: request log → CORS → security headers → body limit
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(cfg.HSTS))
	r.Use(middleware.MaxBytes(1 << 20))

	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet, http.MethodOptions)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.APIKeyMiddleware(cfg.APIKey))

	api.Handle("/auth/register", http.HandlerFunc(h.Auth.Register)).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/login", loginRL.Middleware(http.HandlerFunc(h.Auth.Login))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/forgot-password", forgotPasswordRL.Middleware(http.HandlerFunc(h.Auth.ForgotPassword))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/reset-password", http.HandlerFunc(h.Auth.ResetPassword)).Methods(http.MethodPost, http.MethodOptions)

	api.HandleFunc("/bmi", h.BMI.Calculate).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bmi/categories", h.BMI.Categories).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/goals/templates", h.Goal.Templates).Methods(http.MethodGet, http.MethodOptions)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	protected.HandleFunc("/users", h.User.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/users", h.User.GetAll).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/users/{id}", h.User.GetByID).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/users/{id}", h.User.Update).Methods(http.MethodPatch, http.MethodOptions)
	protected.HandleFunc("/users/{id}/metrics", h.Metric.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/users/{id}/metrics", h.Metric.GetByUserID).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/users/{id}/dashboard", h.Metric.Dashboard).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/users/{id}/meals", h.Meal.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/users/{id}/meals", h.Meal.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/users/{id}/meals/summary", h.Meal.Summary).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/users/{id}/meals/{mealID}", h.Meal.Delete).Methods(http.MethodDelete, http.MethodOptions)
	protected.HandleFunc("/users/{id}/goals", h.Goal.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/users/{id}/goals", h.Goal.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/users/{id}/goals/{goalID}", h.Goal.UpdateProgress).Methods(http.MethodPatch, http.MethodOptions)
	protected.HandleFunc("/users/{id}/goals/{goalID}", h.Goal.Delete).Methods(http.MethodDelete, http.MethodOptions)

	return r
}
