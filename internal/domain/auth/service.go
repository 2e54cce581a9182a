package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/skyport/backoffice/pkg/errors"
)

// Service exposes authentication workflows.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserView, error)
	Login(ctx context.Context, req LoginRequest, client ClientInfo) (LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
	Logout(ctx context.Context, claims Claims) error
	Profile(ctx context.Context, userID int64) (UserView, error)
	UpdateProfile(ctx context.Context, userID int64, params UpdateProfileParams) (UserView, error)
	ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error
	LoginActivity(ctx context.Context, q ActivityQuery) (ActivityList, error)
}

type service struct {
	cfg      Config
	repo     Repository
	activity ActivityRepository
	logger   *slog.Logger
	now      func() time.Time
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// NewService constructs a Service instance.
func NewService(cfg Config, repo Repository, activity ActivityRepository, logger *slog.Logger) Service {
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = 5
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = time.Hour
	}
	return &service{
		cfg:      cfg,
		repo:     repo,
		activity: activity,
		logger:   logger.With("component", "auth.service"),
		now:      time.Now,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserView, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return UserView{}, apperrors.Wrap("invalid_input", "invalid email address", err)
	}
	firstName, err := normalizeName(req.FirstName, "first name")
	if err != nil {
		return UserView{}, apperrors.Wrap("invalid_input", err.Error(), nil)
	}
	lastName, err := normalizeName(req.LastName, "last name")
	if err != nil {
		return UserView{}, apperrors.Wrap("invalid_input", err.Error(), nil)
	}
	if err := s.validateDateOfBirth(req.DateOfBirth); err != nil {
		return UserView{}, apperrors.Wrap("invalid_input", err.Error(), nil)
	}
	if err := validatePassword(req.Password); err != nil {
		return UserView{}, apperrors.Wrap("invalid_input", err.Error(), nil)
	}
	_, exists, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to check user", err)
	}
	if exists {
		return UserView{}, apperrors.Wrap("email_exists", "user with this email already exists", nil)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to hash password", err)
	}

	now := s.now().UTC()
	user, err := s.repo.Create(ctx, User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		DateOfBirth:  req.DateOfBirth,
		PasswordHash: string(hashed),
		Role:         RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return UserView{}, apperrors.Wrap("email_exists", "user with this email already exists", err)
		}
		return UserView{}, apperrors.Wrap("auth_error", "failed to create user", err)
	}

	s.logger.Info("admin account created", "email", user.Email)
	return toView(user), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest, client ClientInfo) (LoginResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("invalid_input", "invalid email address", err)
	}
	if strings.TrimSpace(req.Password) == "" {
		return LoginResponse{}, apperrors.Wrap("invalid_input", "password cannot be empty", nil)
	}

	failures, err := s.activity.CountRecentFailures(ctx, email, s.now().Add(-s.cfg.AttemptWindow))
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "failed to check login attempts", err)
	}
	if failures >= s.cfg.MaxFailedAttempts {
		return LoginResponse{}, apperrors.Wrap("too_many_attempts", "too many failed login attempts, please try again later", nil)
	}

	user, found, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "failed to fetch user", err)
	}
	if !found {
		s.recordFailure(ctx, 0, email, FailureInvalidEmail, client)
		return LoginResponse{}, apperrors.Wrap("invalid_credentials", "invalid email or password", nil)
	}
	if !user.IsActive {
		s.recordFailure(ctx, user.ID, email, FailureAccountDisabled, client)
		return LoginResponse{}, apperrors.Wrap("invalid_credentials", "invalid email or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, user.ID, email, FailureInvalidPassword, client)
		return LoginResponse{}, apperrors.Wrap("invalid_credentials", "invalid email or password", nil)
	}

	loginTime := s.now().UTC()
	user.LastLogin = &loginTime
	user.UpdatedAt = loginTime
	if user, err = s.repo.Update(ctx, user); err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "failed to update last login", err)
	}

	activity, err := s.activity.Record(ctx, LoginActivity{
		UserID:    user.ID,
		Email:     email,
		LoginTime: loginTime,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		Success:   true,
	})
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "failed to record login", err)
	}

	s.logger.Info("login successful", "email", email, "ip", client.IPAddress)
	return s.buildLoginResponse(user, activity.ID)
}

func (s *service) ValidateToken(ctx context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap("invalid_token", "token missing", nil)
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != tokenTypeAccess {
		return Claims{}, apperrors.Wrap("invalid_token", "token type mismatch", nil)
	}
	return claims, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (LoginResponse, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return LoginResponse{}, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return LoginResponse{}, apperrors.Wrap("invalid_token", "token type mismatch", nil)
	}
	user, found, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "failed to load user", err)
	}
	if !found || !user.IsActive {
		return LoginResponse{}, apperrors.Wrap("user_not_found", "user not found", nil)
	}
	return s.buildLoginResponse(user, claims.ActivityID)
}

func (s *service) Logout(ctx context.Context, claims Claims) error {
	if claims.ActivityID != 0 {
		if err := s.activity.MarkLogout(ctx, claims.ActivityID, s.now().UTC()); err != nil {
			return apperrors.Wrap("auth_error", "failed to record logout", err)
		}
	}
	s.logger.Info("logout", "userId", claims.UserID)
	return nil
}

func (s *service) Profile(ctx context.Context, userID int64) (UserView, error) {
	user, found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to load profile", err)
	}
	if !found {
		return UserView{}, apperrors.Wrap("user_not_found", "user not found", nil)
	}
	return toView(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, params UpdateProfileParams) (UserView, error) {
	user, found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to load profile", err)
	}
	if !found {
		return UserView{}, apperrors.Wrap("user_not_found", "user not found", nil)
	}

	if params.FirstName != nil {
		firstName, err := normalizeName(*params.FirstName, "first name")
		if err != nil {
			return UserView{}, apperrors.Wrap("invalid_input", err.Error(), nil)
		}
		user.FirstName = firstName
	}
	if params.LastName != nil {
		lastName, err := normalizeName(*params.LastName, "last name")
		if err != nil {
			return UserView{}, apperrors.Wrap("invalid_input", err.Error(), nil)
		}
		user.LastName = lastName
	}
	if params.Email != nil {
		email, err := normalizeEmail(*params.Email)
		if err != nil {
			return UserView{}, apperrors.Wrap("invalid_input", "invalid email address", err)
		}
		if email != user.Email {
			if _, exists, err := s.repo.GetByEmail(ctx, email); err != nil {
				return UserView{}, apperrors.Wrap("auth_error", "failed to check email", err)
			} else if exists {
				return UserView{}, apperrors.Wrap("email_exists", "user with this email already exists", nil)
			}
		}
		user.Email = email
	}
	if params.DateOfBirth != nil {
		if err := s.validateDateOfBirth(*params.DateOfBirth); err != nil {
			return UserView{}, apperrors.Wrap("invalid_input", err.Error(), nil)
		}
		user.DateOfBirth = *params.DateOfBirth
	}
	user.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to update profile", err)
	}
	s.logger.Info("profile updated", "userId", updated.ID)
	return toView(updated), nil
}

func (s *service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return apperrors.Wrap("auth_error", "failed to load user", err)
	}
	if !found {
		return apperrors.Wrap("user_not_found", "user not found", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperrors.Wrap("invalid_credentials", "current password is incorrect", nil)
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return apperrors.Wrap("invalid_input", err.Error(), nil)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap("auth_error", "failed to hash password", err)
	}
	user.PasswordHash = string(hashed)
	user.UpdatedAt = s.now().UTC()
	if _, err := s.repo.Update(ctx, user); err != nil {
		return apperrors.Wrap("auth_error", "failed to change password", err)
	}
	s.logger.Info("password changed", "userId", userID)
	return nil
}

func (s *service) LoginActivity(ctx context.Context, q ActivityQuery) (ActivityList, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	activities, total, err := s.activity.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return ActivityList{}, apperrors.Wrap("auth_error", "failed to list login activity", err)
	}
	return ActivityList{
		Activities: activities,
		Pagination: Pagination{
			Current:      page,
			TotalPages:   (total + limit - 1) / limit,
			Count:        len(activities),
			TotalRecords: total,
		},
	}, nil
}

// recordFailure best-effort appends a failed attempt; login still returns
// the credential error if the audit write fails.
func (s *service) recordFailure(ctx context.Context, userID int64, email, reason string, client ClientInfo) {
	_, err := s.activity.Record(ctx, LoginActivity{
		UserID:        userID,
		Email:         email,
		LoginTime:     s.now().UTC(),
		IPAddress:     client.IPAddress,
		UserAgent:     client.UserAgent,
		Success:       false,
		FailureReason: reason,
	})
	if err != nil {
		s.logger.Warn("failed to record login failure", "email", email, "error", err)
	}
}

func (s *service) buildLoginResponse(user User, activityID int64) (LoginResponse, error) {
	access, err := s.generateToken(user, tokenTypeAccess, activityID, s.cfg.TokenTTL)
	if err != nil {
		return LoginResponse{}, err
	}
	refresh, err := s.generateToken(user, tokenTypeRefresh, activityID, s.cfg.RefreshTokenTTL)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		Token:        access,
		RefreshToken: refresh,
		User:         toView(user),
	}, nil
}

func (s *service) generateToken(user User, tokenType string, activityID int64, ttl time.Duration) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		TokenType:  tokenType,
		ActivityID: activityID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        newTokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", apperrors.Wrap("auth_error", "failed to sign token", err)
	}
	return signed, nil
}

func (s *service) parseToken(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, apperrors.Wrap("invalid_token", "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap("invalid_token", "token invalid", nil)
	}
	if claims.ExpiresAt == nil {
		return Claims{}, apperrors.Wrap("invalid_token", "token missing expiry", nil)
	}
	if claims.ExpiresAt.Time.Before(s.now()) {
		return Claims{}, apperrors.Wrap("invalid_token", "token expired", nil)
	}
	return Claims{
		UserID:     claims.UserID,
		Email:      claims.Email,
		Role:       claims.Role,
		TokenType:  claims.TokenType,
		ActivityID: claims.ActivityID,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

func toView(user User) UserView {
	return UserView{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Email:       user.Email,
		DateOfBirth: user.DateOfBirth,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLogin:   user.LastLogin,
		CreatedAt:   user.CreatedAt,
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", errors.New("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}
	return email, nil
}

func normalizeName(raw, label string) (string, error) {
	name := strings.TrimSpace(raw)
	if len(name) < 2 {
		return "", fmt.Errorf("%s must be at least 2 characters", label)
	}
	if len(name) > 50 {
		return "", fmt.Errorf("%s cannot exceed 50 characters", label)
	}
	return name, nil
}

func (s *service) validateDateOfBirth(dob time.Time) error {
	if dob.IsZero() {
		return errors.New("date of birth is required")
	}
	now := s.now()
	if !dob.Before(now) {
		return errors.New("date of birth must be in the past")
	}
	if dob.Before(now.AddDate(-120, 0, 0)) {
		return errors.New("invalid date of birth")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	return nil
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID     int64  `json:"userId"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	TokenType  string `json:"type"`
	ActivityID int64  `json:"activityId,omitempty"`
}

func newTokenID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(buf)
}
