package auth

import "time"

// Config drives authentication behavior.
type Config struct {
	Secret            string
	TokenTTL          time.Duration
	RefreshTokenTTL   time.Duration
	MaxFailedAttempts int
	AttemptWindow     time.Duration
}

// Roles assignable to back-office accounts.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Login failure reasons recorded in the activity log.
const (
	FailureInvalidEmail    = "Invalid Email"
	FailureInvalidPassword = "Invalid Password"
	FailureAccountDisabled = "Account Disabled"
)

// User represents a persisted admin account.
type User struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	DateOfBirth  time.Time  `json:"dateOfBirth"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// LoginActivity is one row of the login audit trail.
type LoginActivity struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId,omitempty"`
	Email         string     `json:"email"`
	LoginTime     time.Time  `json:"loginTime"`
	IPAddress     string     `json:"ipAddress,omitempty"`
	UserAgent     string     `json:"userAgent,omitempty"`
	Success       bool       `json:"success"`
	FailureReason string     `json:"failureReason,omitempty"`
	LogoutTime    *time.Time `json:"logoutTime,omitempty"`
}

// ClientInfo identifies the caller for the activity log.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// RegisterRequest captures the registration payload.
type RegisterRequest struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Password    string    `json:"password"`
}

// LoginRequest captures login details.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the signed tokens.
type LoginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	User         UserView `json:"user"`
}

// UserView trims sensitive fields.
type UserView struct {
	ID          int64      `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email"`
	DateOfBirth time.Time  `json:"dateOfBirth"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Claims are extracted from the JWT token. ActivityID ties an access token
// back to the login that issued it so logout can close the audit row.
type Claims struct {
	UserID     int64
	Email      string
	Role       string
	TokenType  string
	ActivityID int64
	ExpiresAt  time.Time
}

// RefreshRequest encapsulates refresh token payload.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UpdateProfileParams carries only the fields a caller may change; nil
// leaves a field untouched.
type UpdateProfileParams struct {
	FirstName   *string    `json:"firstName"`
	LastName    *string    `json:"lastName"`
	Email       *string    `json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
}

// ChangePasswordRequest captures a password rotation.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ActivityQuery carries activity log pagination.
type ActivityQuery struct {
	Page  int
	Limit int
}

// Pagination describes a page of results.
type Pagination struct {
	Current      int `json:"current"`
	TotalPages   int `json:"total"`
	Count        int `json:"count"`
	TotalRecords int `json:"totalRecords"`
}

// ActivityList bundles a page of activity rows with its pagination envelope.
type ActivityList struct {
	Activities []LoginActivity `json:"activities"`
	Pagination Pagination      `json:"pagination"`
}
