package handler

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
	"github.com/yusufkecer/eatsmart-backend/internal/middleware"
	"github.com/yusufkecer/eatsmart-backend/internal/service"
)

const (
	minPasswordLength = 6
	resetTokenTTL     = 15 * time.Minute
	mysqlDuplicateKey = 1062
)

const forgotPasswordReply = "if the email exists, a code has been sent"

type AuthHandler struct {
	jwtSecret  string
	accounts   accountStore
	users      userStore
	resetRepo  resetTokenStore
	mail       mailer
	logger     *zap.Logger
	background func(func())
	inflight   sync.WaitGroup
}

func NewAuthHandler(
	jwtSecret string,
	accounts accountStore,
	users userStore,
	resetRepo resetTokenStore,
	mail mailer,
	logger *zap.Logger,
) *AuthHandler {
	h := &AuthHandler{
		jwtSecret: jwtSecret,
		accounts:  accounts,
		users:     users,
		resetRepo: resetRepo,
		mail:      mail,
		logger:    logger,
	}
	h.background = func(f func()) {
		h.inflight.Add(1)
		go func() {
			defer h.inflight.Done()
			f()
		}()
	}
	return h
}

// Wait blocks until background work such as reset emails has finished or
// ctx is done.
func (h *AuthHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if !validEmail(email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		writeError(w, http.StatusBadRequest, "passwords don't match")
		return
	}
	if msg := validateMeasurements(req.Age, req.Height, req.Weight); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := &domain.User{
		Name:              name,
		Email:             &email,
		Age:               req.Age,
		Height:            req.Height,
		Weight:            req.Weight,
		MedicalConditions: req.MedicalConditions,
	}
	accountID, userID, err := h.accounts.Register(email, string(passwordHash), user)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateKey {
			writeError(w, http.StatusConflict, "email already exists")
			return
		}
		h.logger.Error("register failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	user.ID = userID

	token, err := middleware.GenerateToken(accountID, email, h.jwtSecret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	h.logger.Info("account registered", zap.Int64("account_id", accountID))
	profile := service.Profile(*user)
	writeJSON(w, http.StatusCreated, domain.TokenResponse{Token: token, User: &profile})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if !validEmail(email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return
	}

	account, err := h.accounts.GetByEmail(email)
	if err != nil {
		h.logger.Error("login lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to login")
		return
	}
	if account == nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := middleware.GenerateToken(account.ID, account.Email, h.jwtSecret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	resp := domain.TokenResponse{Token: token}
	users, err := h.users.ListByAccount(account.ID)
	if err != nil {
		h.logger.Warn("login profile lookup failed", zap.Int64("account_id", account.ID), zap.Error(err))
	} else if len(users) > 0 {
		profile := service.Profile(users[0])
		resp.User = &profile
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": forgotPasswordReply})
		return
	}

	email := normalizeEmail(req.Email)
	if validEmail(email) {
		requestID := middleware.RequestID(r.Context())
		h.background(func() { h.sendResetCode(requestID, email) })
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": forgotPasswordReply})
}

func (h *AuthHandler) sendResetCode(requestID, email string) {
	log := h.logger.With(zap.String("request_id", requestID), zap.String("email", email))

	account, err := h.accounts.GetByEmail(email)
	if err != nil {
		log.Error("forgot-password lookup failed", zap.Error(err))
		return
	}
	if account == nil {
		return
	}

	otp, err := generateOTP()
	if err != nil {
		log.Error("failed to generate reset code", zap.Error(err))
		return
	}

	if err := h.resetRepo.Issue(account.ID, otp, time.Now().UTC().Add(resetTokenTTL)); err != nil {
		log.Error("failed to save reset code", zap.Error(err))
		return
	}

	if err := h.mail.SendPasswordReset(email, otp); err != nil {
		log.Error("failed to send reset email", zap.Error(err))
		return
	}
	log.Info("reset email sent")
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Token == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email, token and password are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		writeError(w, http.StatusBadRequest, "passwords don't match")
		return
	}

	resetToken, err := h.resetRepo.GetValidByEmailAndToken(email, req.Token)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to verify token")
		return
	}
	if resetToken == nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	consumed, err := h.resetRepo.Consume(resetToken.ID)
	if err != nil {
		h.logger.Error("consume reset code failed", zap.Int64("token_id", resetToken.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to verify token")
		return
	}
	if !consumed {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	if err := h.accounts.UpdatePassword(resetToken.AccountID, string(passwordHash)); err != nil {
		h.logger.Error("update password failed", zap.Int64("account_id", resetToken.AccountID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password reset successful"})
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

var otpSpace = big.NewInt(1000000)

// generateOTP returns a uniformly distributed six digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
