package handler

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
)

const defaultGoalWeeks = 12

type GoalHandler struct {
	users  userStore
	goals  goalStore
	logger *zap.Logger
	now    func() time.Time
}

func NewGoalHandler(users userStore, goals goalStore, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{users: users, goals: goals, logger: logger, now: time.Now}
}

func (h *GoalHandler) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.GoalTemplates)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.users, w, r)
	if user == nil {
		return
	}

	var req domain.GoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tmpl, ok := domain.FindGoalTemplate(req.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, "please select a goal")
		return
	}
	if tmpl.NeedsTargetWeight && (req.TargetWeight == nil || !positive(*req.TargetWeight)) {
		writeError(w, http.StatusBadRequest, "target weight is required for this goal")
		return
	}
	if req.DurationWeeks < 0 {
		writeError(w, http.StatusBadRequest, "duration_weeks must be 0 or greater")
		return
	}
	if req.DurationWeeks == 0 {
		req.DurationWeeks = defaultGoalWeeks
	}

	goal := domain.Goal{
		UserID:        user.ID,
		Type:          tmpl.ID,
		Target:        strings.TrimSpace(req.Target),
		TargetWeight:  req.TargetWeight,
		DurationWeeks: req.DurationWeeks,
		StartDate:     h.now().UTC().Format(time.DateOnly),
	}
	if goal.Target == "" {
		goal.Target = tmpl.Title
	}

	id, err := h.goals.Create(&goal)
	if err != nil {
		h.logger.Error("create goal failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create goal")
		return
	}
	goal.ID = id

	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.users, w, r)
	if user == nil {
		return
	}

	goals, err := h.goals.ListByUserID(user.ID)
	if err != nil {
		h.logger.Error("list goals failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list goals")
		return
	}
	if goals == nil {
		goals = []domain.Goal{}
	}

	writeJSON(w, http.StatusOK, goals)
}

type progressRequest struct {
	Progress *int `json:"progress"`
}

func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.users, w, r)
	if user == nil {
		return
	}

	goalID, ok := pathID(r, "goalID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req progressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Progress == nil || *req.Progress < 0 || *req.Progress > 100 {
		writeError(w, http.StatusBadRequest, "progress must be between 0 and 100")
		return
	}

	updated, err := h.goals.UpdateProgress(user.ID, goalID, *req.Progress)
	if err != nil {
		h.logger.Error("update goal failed", zap.Int64("goal_id", goalID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"progress": *req.Progress})
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.users, w, r)
	if user == nil {
		return
	}

	goalID, ok := pathID(r, "goalID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	deleted, err := h.goals.Delete(user.ID, goalID)
	if err != nil {
		h.logger.Error("delete goal failed", zap.Int64("goal_id", goalID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
