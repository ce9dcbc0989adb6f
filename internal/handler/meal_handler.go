package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
)

type MealHandler struct {
	users  userStore
	meals  mealStore
	logger *zap.Logger
	now    func() time.Time
}

func NewMealHandler(users userStore, meals mealStore, logger *zap.Logger) *MealHandler {
	return &MealHandler{users: users, meals: meals, logger: logger, now: time.Now}
}

func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.users, w, r)
	if user == nil {
		return
	}

	var meal domain.Meal
	if err := decodeJSON(r, &meal); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	meal.Name = strings.TrimSpace(meal.Name)
	if meal.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if meal.Calories < 0 || meal.Protein < 0 || meal.Carbs < 0 || meal.Fat < 0 {
		writeError(w, http.StatusBadRequest, "nutrition values must be 0 or greater")
		return
	}
	if meal.Category == "" {
		meal.Category = "Breakfast"
	}
	if !validMealCategory(meal.Category) {
		writeError(w, http.StatusBadRequest, "category must be one of Breakfast, Lunch, Dinner, Snack")
		return
	}
	if meal.Date == "" {
		meal.Date = h.now().UTC().Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, meal.Date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	meal.ID = uuid.NewString()
	meal.UserID = user.ID

	if err := h.meals.Create(&meal); err != nil {
		h.logger.Error("create meal failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create meal")
		return
	}

	writeJSON(w, http.StatusCreated, meal)
}

func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.users, w, r)
	if user == nil {
		return
	}

	q := r.URL.Query()
	filter := domain.MealFilter{
		Category: q.Get("category"),
		Search:   q.Get("q"),
		Date:     q.Get("date"),
	}
	if filter.Category != "" && filter.Category != "All" && !validMealCategory(filter.Category) {
		writeError(w, http.StatusBadRequest, "unknown meal category")
		return
	}

	meals, err := h.meals.List(user.ID, filter)
	if err != nil {
		h.logger.Error("list meals failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list meals")
		return
	}
	if meals == nil {
		meals = []domain.Meal{}
	}

	writeJSON(w, http.StatusOK, meals)
}

func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.users, w, r)
	if user == nil {
		return
	}

	mealID := mux.Vars(r)["mealID"]
	if _, err := uuid.Parse(mealID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid meal id")
		return
	}

	deleted, err := h.meals.Delete(user.ID, mealID)
	if err != nil {
		h.logger.Error("delete meal failed", zap.String("meal_id", mealID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete meal")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "meal not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MealHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.users, w, r)
	if user == nil {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.now().UTC().Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	summary, err := h.meals.Summary(user.ID, date)
	if err != nil {
		h.logger.Error("meal summary failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to summarize meals")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func validMealCategory(c string) bool {
	for _, known := range domain.MealCategories {
		if c == known {
			return true
		}
	}
	return false
}
