package handler

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yusufkecer/eatsmart-backend/internal/bmi"
	"github.com/yusufkecer/eatsmart-backend/internal/domain"
)

type MetricHandler struct {
	users   userStore
	metrics metricService
	logger  *zap.Logger
}

func NewMetricHandler(users userStore, metrics metricService, logger *zap.Logger) *MetricHandler {
	return &MetricHandler{users: users, metrics: metrics, logger: logger}
}

func (h *MetricHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.users, w, r)
	if user == nil {
		return
	}

	var in domain.MetricInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Date != "" {
		if _, err := time.Parse(time.DateOnly, in.Date); err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	metric, err := h.metrics.Record(user, in)
	if err != nil {
		writeBMIError(w, err, func() {
			h.logger.Error("record metric failed", zap.Int64("user_id", user.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to create metric")
		})
		return
	}

	writeJSON(w, http.StatusCreated, metric)
}

func (h *MetricHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.users, w, r)
	if user == nil {
		return
	}

	metrics, err := h.metrics.List(user.ID)
	if err != nil {
		h.logger.Error("list metrics failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list metrics")
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

func (h *MetricHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := ownedUser(h.users, w, r)
	if user == nil {
		return
	}

	dash, err := h.metrics.Dashboard(user)
	if err != nil {
		h.logger.Error("dashboard failed", zap.Int64("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}

	writeJSON(w, http.StatusOK, dash)
}

// writeBMIError answers a rejected measurement with 400 and the reason the
// client shows. Any other error is handed to fallback.
func writeBMIError(w http.ResponseWriter, err error, fallback func()) {
	var inputErr *bmi.InputError
	if errors.As(err, &inputErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: string(inputErr.Reason), Field: inputErr.Field})
		return
	}
	fallback()
}
