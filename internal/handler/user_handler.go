package handler

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
	"github.com/yusufkecer/eatsmart-backend/internal/middleware"
	"github.com/yusufkecer/eatsmart-backend/internal/service"
)

type UserHandler struct {
	repo   userStore
	logger *zap.Logger
}

func NewUserHandler(repo userStore, logger *zap.Logger) *UserHandler {
	return &UserHandler{repo: repo, logger: logger}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var user domain.User
	if err := decodeJSON(r, &user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if msg := validateMeasurements(user.Age, user.Height, user.Weight); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	user.AccountID = accountID

	id, err := h.repo.Create(&user)
	if err != nil {
		h.logger.Error("create user failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user.ID = id
	writeJSON(w, http.StatusCreated, service.Profile(user))
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.repo, w, r)
	if user == nil {
		return
	}
	writeJSON(w, http.StatusOK, service.Profile(*user))
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	users, err := h.repo.ListByAccount(accountID)
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	profiles := make([]domain.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, service.Profile(u))
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.repo, w, r)
	if user == nil {
		return
	}

	var fields map[string]interface{}
	if err := decodeJSON(r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, msg := normalizeProfilePatch(fields)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.repo.Update(user.ID, fields); err != nil {
		h.logger.Error("update user failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	updated, err := h.repo.GetForAccount(user.ID, user.AccountID)
	if err != nil || updated == nil {
		writeError(w, http.StatusInternalServerError, "failed to get updated user")
		return
	}

	writeJSON(w, http.StatusOK, service.Profile(*updated))
}
