package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/skyport/backoffice/pkg/errors"
)

type stubUserRepo struct {
	users  map[int64]User
	byMail map[string]int64
	seq    int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]User), byMail: make(map[string]int64)}
}

func (r *stubUserRepo) Create(_ context.Context, user User) (User, error) {
	if _, exists := r.byMail[user.Email]; exists {
		return User{}, ErrEmailExists
	}
	r.seq++
	user.ID = r.seq
	r.users[user.ID] = user
	r.byMail[user.Email] = user.ID
	return user, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (User, bool, error) {
	if id, ok := r.byMail[email]; ok {
		return r.users[id], true, nil
	}
	return User{}, false, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (User, bool, error) {
	user, ok := r.users[id]
	return user, ok, nil
}

func (r *stubUserRepo) Update(_ context.Context, user User) (User, error) {
	delete(r.byMail, r.users[user.ID].Email)
	r.users[user.ID] = user
	r.byMail[user.Email] = user.ID
	return user, nil
}

type stubActivityRepo struct {
	rows    []LoginActivity
	seq     int64
	logouts map[int64]time.Time
}

func newStubActivityRepo() *stubActivityRepo {
	return &stubActivityRepo{logouts: make(map[int64]time.Time)}
}

func (r *stubActivityRepo) Record(_ context.Context, activity LoginActivity) (LoginActivity, error) {
	r.seq++
	activity.ID = r.seq
	r.rows = append(r.rows, activity)
	return activity, nil
}

func (r *stubActivityRepo) CountRecentFailures(_ context.Context, email string, since time.Time) (int, error) {
	count := 0
	for _, row := range r.rows {
		if row.Email == email && !row.Success && !row.LoginTime.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *stubActivityRepo) MarkLogout(_ context.Context, activityID int64, at time.Time) error {
	r.logouts[activityID] = at
	return nil
}

func (r *stubActivityRepo) List(_ context.Context, offset, limit int) ([]LoginActivity, int, error) {
	total := len(r.rows)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return r.rows[offset:end], total, nil
}

func testConfig() Config {
	return Config{
		Secret:            "test-secret",
		TokenTTL:          time.Hour,
		RefreshTokenTTL:   24 * time.Hour,
		MaxFailedAttempts: 5,
		AttemptWindow:     time.Hour,
	}
}

func newTestService(users *stubUserRepo, activity *stubActivityRepo) *service {
	return &service{
		cfg:      testConfig(),
		repo:     users,
		activity: activity,
		logger:   slog.New(slog.NewTextHandler(discard{}, nil)),
		now:      time.Now,
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, active bool) User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := repo.Create(context.Background(), User{
		FirstName:    "Amina",
		LastName:     "Rahman",
		Email:        email,
		DateOfBirth:  time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		PasswordHash: string(hashed),
		Role:         RoleAdmin,
		IsActive:     active,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndProfile(t *testing.T) {
	svc := newTestService(newStubUserRepo(), newStubActivityRepo())

	view, err := svc.Register(context.Background(), RegisterRequest{
		FirstName:   "  Amina ",
		LastName:    "Rahman",
		Email:       "Amina@Example.COM",
		DateOfBirth: time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		Password:    "secret1",
	})
	require.NoError(t, err)
	require.Equal(t, "amina@example.com", view.Email)
	require.Equal(t, "Amina Rahman", view.FullName)
	require.Equal(t, RoleAdmin, view.Role)
	require.True(t, view.IsActive)

	profile, err := svc.Profile(context.Background(), view.ID)
	require.NoError(t, err)
	require.Equal(t, view.Email, profile.Email)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(newStubUserRepo(), newStubActivityRepo())

	base := RegisterRequest{
		FirstName:   "Amina",
		LastName:    "Rahman",
		Email:       "amina@example.com",
		DateOfBirth: time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		Password:    "secret1",
	}

	cases := map[string]func(*RegisterRequest){
		"short password":  func(r *RegisterRequest) { r.Password = "five5" },
		"short name":      func(r *RegisterRequest) { r.FirstName = "A" },
		"bad email":       func(r *RegisterRequest) { r.Email = "not-an-email" },
		"future birth":    func(r *RegisterRequest) { r.DateOfBirth = time.Now().Add(24 * time.Hour) },
		"missing birth":   func(r *RegisterRequest) { r.DateOfBirth = time.Time{} },
		"ancient birth":   func(r *RegisterRequest) { r.DateOfBirth = time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := base
			mutate(&req)
			_, err := svc.Register(context.Background(), req)
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, "invalid_input"))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestService(users, newStubActivityRepo())
	seedUser(t, users, "amina@example.com", "secret1", true)

	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName:   "Amina",
		LastName:    "Rahman",
		Email:       "amina@example.com",
		DateOfBirth: time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		Password:    "secret1",
	})
	require.True(t, apperrors.IsCode(err, "email_exists"))
}

func TestLoginSuccessRecordsActivity(t *testing.T) {
	users := newStubUserRepo()
	activity := newStubActivityRepo()
	svc := newTestService(users, activity)
	user := seedUser(t, users, "amina@example.com", "secret1", true)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "amina@example.com", Password: "secret1"},
		ClientInfo{IPAddress: "10.0.0.1", UserAgent: "go-test"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, user.ID, resp.User.ID)
	require.NotNil(t, resp.User.LastLogin)

	require.Len(t, activity.rows, 1)
	require.True(t, activity.rows[0].Success)
	require.Equal(t, "10.0.0.1", activity.rows[0].IPAddress)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, RoleAdmin, claims.Role)
	require.Equal(t, activity.rows[0].ID, claims.ActivityID)
}

func TestLoginFailureReasons(t *testing.T) {
	users := newStubUserRepo()
	activity := newStubActivityRepo()
	svc := newTestService(users, activity)
	seedUser(t, users, "amina@example.com", "secret1", true)
	seedUser(t, users, "frozen@example.com", "secret1", false)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "secret1"}, ClientInfo{})
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "amina@example.com", Password: "wrong-pass"}, ClientInfo{})
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "frozen@example.com", Password: "secret1"}, ClientInfo{})
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))

	require.Len(t, activity.rows, 3)
	require.Equal(t, FailureInvalidEmail, activity.rows[0].FailureReason)
	require.Equal(t, FailureInvalidPassword, activity.rows[1].FailureReason)
	require.Equal(t, FailureAccountDisabled, activity.rows[2].FailureReason)
}

func TestLoginThrottledAfterRepeatedFailures(t *testing.T) {
	users := newStubUserRepo()
	activity := newStubActivityRepo()
	svc := newTestService(users, activity)
	seedUser(t, users, "amina@example.com", "secret1", true)

	for i := 0; i < 5; i++ {
		_, err := svc.Login(context.Background(), LoginRequest{Email: "amina@example.com", Password: "wrong-pass"}, ClientInfo{})
		require.True(t, apperrors.IsCode(err, "invalid_credentials"))
	}

	// Sixth attempt is rejected before credentials are even checked.
	_, err := svc.Login(context.Background(), LoginRequest{Email: "amina@example.com", Password: "secret1"}, ClientInfo{})
	require.True(t, apperrors.IsCode(err, "too_many_attempts"))
}

func TestThrottleWindowExpires(t *testing.T) {
	users := newStubUserRepo()
	activity := newStubActivityRepo()
	svc := newTestService(users, activity)
	seedUser(t, users, "amina@example.com", "secret1", true)

	stale := time.Now().Add(-2 * time.Hour)
	for i := 0; i < 5; i++ {
		activity.rows = append(activity.rows, LoginActivity{
			Email:     "amina@example.com",
			LoginTime: stale,
			Success:   false,
		})
	}

	_, err := svc.Login(context.Background(), LoginRequest{Email: "amina@example.com", Password: "secret1"}, ClientInfo{})
	require.NoError(t, err)
}

func TestRefreshRoundTrip(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestService(users, newStubActivityRepo())
	seedUser(t, users, "amina@example.com", "secret1", true)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "amina@example.com", Password: "secret1"}, ClientInfo{})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.Token)

	// Access tokens are not accepted on the refresh path.
	_, err = svc.Refresh(context.Background(), resp.Token)
	require.True(t, apperrors.IsCode(err, "invalid_token"))

	// Refresh tokens are not accepted as access tokens.
	_, err = svc.ValidateToken(context.Background(), resp.RefreshToken)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestLogoutStampsActivity(t *testing.T) {
	users := newStubUserRepo()
	activity := newStubActivityRepo()
	svc := newTestService(users, activity)
	seedUser(t, users, "amina@example.com", "secret1", true)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "amina@example.com", Password: "secret1"}, ClientInfo{})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), claims))
	require.Contains(t, activity.logouts, claims.ActivityID)
}

func TestChangePassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestService(users, newStubActivityRepo())
	user := seedUser(t, users, "amina@example.com", "secret1", true)

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "wrong-pass",
		NewPassword:     "newsecret",
	})
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))

	err = svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "short",
	})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "newsecret",
	}))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "amina@example.com", Password: "newsecret"}, ClientInfo{})
	require.NoError(t, err)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestService(users, newStubActivityRepo())
	user := seedUser(t, users, "amina@example.com", "secret1", true)
	seedUser(t, users, "taken@example.com", "secret1", true)

	taken := "taken@example.com"
	_, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileParams{Email: &taken})
	require.True(t, apperrors.IsCode(err, "email_exists"))

	fresh := "fresh@example.com"
	newName := "Anika"
	view, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileParams{Email: &fresh, FirstName: &newName})
	require.NoError(t, err)
	require.Equal(t, "fresh@example.com", view.Email)
	require.Equal(t, "Anika Rahman", view.FullName)
}

func TestLoginActivityPagination(t *testing.T) {
	users := newStubUserRepo()
	activity := newStubActivityRepo()
	svc := newTestService(users, activity)
	for i := 0; i < 7; i++ {
		activity.rows = append(activity.rows, LoginActivity{ID: int64(i + 1), Email: "amina@example.com"})
	}

	list, err := svc.LoginActivity(context.Background(), ActivityQuery{Page: 2, Limit: 3})
	require.NoError(t, err)
	require.Len(t, list.Activities, 3)
	require.Equal(t, 2, list.Pagination.Current)
	require.Equal(t, 3, list.Pagination.TotalPages)
	require.Equal(t, 7, list.Pagination.TotalRecords)
}
