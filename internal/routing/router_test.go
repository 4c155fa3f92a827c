package routing

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/managers"
	"fitness-tracker/internal/managers/mocks"
	"fitness-tracker/internal/schemas"
)

const (
	testSecret = "test-secret"
	testIssuer = "fitness-tracker"
	clientURL  = "http://localhost:5173"
)

var (
	userColumns   = []string{"id", "email", "first_name", "last_name", "profile_picture", "goal_weight", "goal_unit", "created_at", "updated_at"}
	weightColumns = []string{"id", "user_id", "weight", "unit", "date", "notes", "created_at", "updated_at"}
	activityCols  = []string{"id", "user_id", "type", "duration", "unit", "calories_burned", "date", "notes", "created_at", "updated_at"}
	photoColumns  = []string{"id", "user_id", "date", "caption", "image", "content_type", "created_at"}

	pngImage = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
)

type testEnv struct {
	t       *testing.T
	pool    pgxmock.PgxPoolIface
	jwtMgr  managers.JWTMgr
	mailMgr *mocks.MockMailManager
	server  *httptest.Server
	expect  *httpexpect.Expect
}

func setupMocks(t *testing.T) (*mocks.MockDatabaseManager, managers.JWTMgr, *mocks.MockMailManager) {
	poolMock, err := pgxmock.NewPool()
	if err != nil {
		log.Errorf("Error creating mock database pool: %v", err)
	}

	databaseMgrMock := &mocks.MockDatabaseManager{}
	databaseMgrMock.On("GetPool").Return(poolMock)

	t.Setenv("ENVIRONMENT", "test")
	jwtMgr := managers.NewJWTManager([]byte(testSecret), testIssuer)

	mailMgrMock := &mocks.MockMailManager{}

	return databaseMgrMock, jwtMgr, mailMgrMock
}

func setupTest(t *testing.T, limiters Limiters) *testEnv {
	databaseMgrMock, jwtMgr, mailMgrMock := setupMocks(t)

	cfg := &config.Config{
		Environment: "test",
		JWTIssuer:   testIssuer,
		CORSOrigins: []string{clientURL},
		ClientURL:   clientURL,
	}
	router := InitRouter(cfg, databaseMgrMock, mailMgrMock, jwtMgr, limiters)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	env := &testEnv{
		t:       t,
		pool:    databaseMgrMock.GetPool().(pgxmock.PgxPoolIface),
		jwtMgr:  jwtMgr,
		mailMgr: mailMgrMock,
		server:  server,
		expect:  httpexpect.Default(t, server.URL),
	}
	t.Cleanup(func() {
		if err := env.pool.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
	return env
}

func newUser(email string) *schemas.User {
	now := time.Now().UTC()
	return &schemas.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "Jane",
		LastName:  "Doe",
		GoalUnit:  schemas.UnitKilograms,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func userRows(user *schemas.User) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns).AddRow(user.ID, user.Email, user.FirstName, user.LastName,
		user.ProfilePicture, user.GoalWeight, user.GoalUnit, user.CreatedAt, user.UpdatedAt)
}

func weightRows(entries ...*schemas.WeightEntry) *pgxmock.Rows {
	rows := pgxmock.NewRows(weightColumns)
	for _, e := range entries {
		rows.AddRow(e.ID, e.UserID, e.Weight, e.Unit, e.Date, e.Notes, e.CreatedAt, e.UpdatedAt)
	}
	return rows
}

func activityRows(entries ...*schemas.ActivityEntry) *pgxmock.Rows {
	rows := pgxmock.NewRows(activityCols)
	for _, e := range entries {
		rows.AddRow(e.ID, e.UserID, e.Type, e.Duration, e.Unit, e.CaloriesBurned, e.Date, e.Notes, e.CreatedAt, e.UpdatedAt)
	}
	return rows
}

func countRows(total int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"count"}).AddRow(total)
}

// token issues a session token and expects the authentication lookup of the user.
func (env *testEnv) token(user *schemas.User) string {
	token, err := env.jwtMgr.GenerateJWT(env.jwtMgr.GenerateClaims(user.ID.String()))
	if err != nil {
		env.t.Fatalf("generating token: %v", err)
	}
	return token
}

func (env *testEnv) expectAuthentication(user *schemas.User) {
	env.pool.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").WithArgs(user.ID.String()).WillReturnRows(userRows(user))
}

func (env *testEnv) authorized(method, path string, user *schemas.User) *httpexpect.Request {
	env.expectAuthentication(user)
	return env.expect.Request(method, path).WithHeader("Authorization", "Bearer "+env.token(user))
}

func errorBody(code, message string) map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}
}

func TestMetadataAndHealth(t *testing.T) {
	env := setupTest(t, Limiters{})

	env.expect.GET("/").Expect().Status(http.StatusOK).
		JSON().Object().HasValue("message", "Fitness Tracker API is running!").HasValue("version", "1.0.0")

	env.pool.ExpectPing()
	health := env.expect.GET("/health").Expect().Status(http.StatusOK).JSON().Object()
	health.HasValue("status", "OK").HasValue("database", "connected")
	health.Value("uptime").Number().Ge(0)

	env.pool.ExpectPing().WillReturnError(errors.New("connection refused"))
	env.expect.GET("/health").Expect().Status(http.StatusServiceUnavailable).
		JSON().Object().HasValue("database", "disconnected")
}

func TestRouteNotFound(t *testing.T) {
	env := setupTest(t, Limiters{})

	env.expect.GET("/api/unknown").Expect().Status(http.StatusNotFound).JSON().IsEqual(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    "RouteNotFound",
			"message": "Route not found",
		},
		"path": "/api/unknown",
	})
}

func TestGlobalRateLimit(t *testing.T) {
	env := setupTest(t, Limiters{Global: managers.NewMemoryRateLimiter(time.Minute, 1, time.Now)})

	env.expect.GET("/").Expect().Status(http.StatusOK)
	response := env.expect.GET("/").Expect().Status(http.StatusTooManyRequests)
	response.Header("Retry-After").NotEmpty()
	response.JSON().Object().Value("error").Object().HasValue("code", "TooManyRequests")
}

func TestUserRegistration(t *testing.T) {
	type registration struct {
		Email     string `json:"email,omitempty"`
		Password  string `json:"password,omitempty"`
		FirstName string `json:"firstName,omitempty"`
		LastName  string `json:"lastName,omitempty"`
	}

	testCases := []struct {
		name    string
		request registration
		mockDB  func(pool pgxmock.PgxPoolIface)
		status  int
		code    string
	}{
		{
			name:    "ValidRegistration",
			request: registration{Email: "  Jane@Example.com ", Password: "Secret1!x", FirstName: "<b>Jane</b>", LastName: "Doe"},
			mockDB: func(pool pgxmock.PgxPoolIface) {
				pool.ExpectBegin()
				pool.ExpectExec("INSERT INTO users").
					WithArgs(pgxmock.AnyArg(), "jane@example.com", pgxmock.AnyArg(), "Jane", "Doe", pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				pool.ExpectCommit()
			},
			status: http.StatusCreated,
		},
		{
			name:    "InvalidEmail",
			request: registration{Email: "test@example@.com", Password: "Secret1!x"},
			status:  http.StatusBadRequest,
			code:    "ValidationFailed",
		},
		{
			name:    "WeakPassword",
			request: registration{Email: "jane@example.com", Password: "password"},
			status:  http.StatusBadRequest,
			code:    "ValidationFailed",
		},
		{
			name:    "PasswordBeyondBcryptLimit",
			request: registration{Email: "jane@example.com", Password: "Aa1!" + strings.Repeat("x", 69)},
			status:  http.StatusBadRequest,
			code:    "ValidationFailed",
		},
		{
			name:    "MissingPassword",
			request: registration{Email: "jane@example.com"},
			status:  http.StatusBadRequest,
			code:    "MissingRequiredField",
		},
		{
			name:    "DuplicateEmail",
			request: registration{Email: "jane@example.com", Password: "Secret1!x"},
			mockDB: func(pool pgxmock.PgxPoolIface) {
				pool.ExpectBegin()
				pool.ExpectExec("INSERT INTO users").
					WithArgs(pgxmock.AnyArg(), "jane@example.com", pgxmock.AnyArg(), "", "", pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23505"})
				pool.ExpectRollback()
			},
			status: http.StatusBadRequest,
			code:   "UserExists",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := setupTest(t, Limiters{})
			if tc.mockDB != nil {
				tc.mockDB(env.pool)
			}

			response := env.expect.POST("/api/auth/register").WithJSON(tc.request).Expect().Status(tc.status)
			body := response.JSON().Object()
			if tc.code != "" {
				body.Value("error").Object().HasValue("code", tc.code)
				return
			}
			body.HasValue("email", "jane@example.com").NotContainsKey("password")
			body.Value("id").String().NotEmpty()
			body.Value("token").String().NotEmpty()
		})
	}
}

func TestUserLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Secret1!x"), bcrypt.MinCost)
	userId := uuid.New()

	testCases := []struct {
		name     string
		email    string
		password string
		found    bool
		status   int
	}{
		{"ValidLogin", "jane@example.com", "Secret1!x", true, http.StatusOK},
		{"WrongPassword", "jane@example.com", "Wrong1!xx", true, http.StatusUnauthorized},
		{"UnknownEmail", "nobody@example.com", "Secret1!x", false, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := setupTest(t, Limiters{})

			rows := pgxmock.NewRows([]string{"id", "password"})
			if tc.found {
				rows.AddRow(userId, string(hash))
			}
			env.pool.ExpectQuery("SELECT id, password FROM users WHERE email = \\$1").WithArgs(tc.email).WillReturnRows(rows)

			response := env.expect.POST("/api/auth/login").
				WithJSON(map[string]string{"email": tc.email, "password": tc.password}).
				Expect().Status(tc.status)

			if tc.status != http.StatusOK {
				response.JSON().IsEqual(errorBody("InvalidCredentials", "Invalid credentials"))
				return
			}
			body := response.JSON().Object()
			body.HasValue("id", userId.String()).HasValue("email", tc.email)

			claims, err := env.jwtMgr.ValidateJWT(body.Value("token").String().Raw())
			if err != nil {
				t.Fatalf("issued token does not validate: %v", err)
			}
			subject, _ := claims.GetSubject()
			if subject != userId.String() {
				t.Errorf("token subject = %s, want %s", subject, userId)
			}
		})
	}
}

func TestAuthenticationErrors(t *testing.T) {
	env := setupTest(t, Limiters{})
	user := newUser("jane@example.com")

	env.expect.GET("/api/auth/me").Expect().Status(http.StatusUnauthorized).
		JSON().IsEqual(errorBody("NoToken", "Not authorized, no token"))

	env.expect.GET("/api/weights").WithHeader("Authorization", "Basic amFuZTpzZWNyZXQ=").
		Expect().Status(http.StatusUnauthorized).JSON().IsEqual(errorBody("NoToken", "Not authorized, no token"))

	env.expect.GET("/api/auth/me").WithHeader("Authorization", "Bearer not-a-token").
		Expect().Status(http.StatusUnauthorized).JSON().IsEqual(errorBody("TokenFailed", "Not authorized, token failed"))

	expired, _ := env.jwtMgr.GenerateJWT(jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	env.expect.GET("/api/auth/me").WithHeader("Authorization", "Bearer "+expired).
		Expect().Status(http.StatusUnauthorized).JSON().IsEqual(errorBody("TokenFailed", "Not authorized, token failed"))

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, env.jwtMgr.GenerateClaims(user.ID.String()))
	forged, _ := foreign.SignedString([]byte("another-secret"))
	env.expect.GET("/api/auth/me").WithHeader("Authorization", "Bearer "+forged).
		Expect().Status(http.StatusUnauthorized).JSON().IsEqual(errorBody("TokenFailed", "Not authorized, token failed"))

	env.pool.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").WithArgs(user.ID.String()).
		WillReturnRows(pgxmock.NewRows(userColumns))
	env.expect.GET("/api/auth/me").WithHeader("Authorization", "Bearer "+env.token(user)).
		Expect().Status(http.StatusUnauthorized).JSON().IsEqual(errorBody("UserNotFound", "User not found"))
}

func TestGetMe(t *testing.T) {
	env := setupTest(t, Limiters{})
	user := newUser("jane@example.com")

	body := env.authorized(http.MethodGet, "/api/auth/me", user).Expect().Status(http.StatusOK).JSON().Object()
	body.HasValue("id", user.ID.String()).HasValue("email", "jane@example.com").HasValue("firstName", "Jane")
	body.NotContainsKey("password")
}

func TestWeightLifecycle(t *testing.T) {
	env := setupTest(t, Limiters{})
	user := newUser("jane@example.com")

	// Create
	env.expectAuthentication(user)
	env.pool.ExpectBegin()
	env.pool.ExpectExec("INSERT INTO weight_entries").
		WithArgs(pgxmock.AnyArg(), user.ID, 80.5, "kg", pgxmock.AnyArg(), "Morning", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	env.pool.ExpectCommit()
	created := env.expect.POST("/api/weights").WithHeader("Authorization", "Bearer "+env.token(user)).
		WithJSON(map[string]interface{}{"weight": 80.5, "notes": " Morning "}).
		Expect().Status(http.StatusCreated).JSON().Object()
	created.HasValue("weight", 80.5).HasValue("unit", "kg").HasValue("notes", "Morning").HasValue("userId", user.ID.String())

	entryId, err := uuid.Parse(created.Value("id").String().Raw())
	if err != nil {
		t.Fatalf("created entry has no valid id: %v", err)
	}
	entry := &schemas.WeightEntry{
		ID: entryId, UserID: user.ID, Weight: 80.5, Unit: "kg", Date: time.Now().UTC(), Notes: "Morning",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}

	// List
	env.expectAuthentication(user)
	env.pool.ExpectQuery("SELECT COUNT\\(\\*\\) FROM weight_entries WHERE user_id = \\$1$").WithArgs(user.ID).WillReturnRows(countRows(1))
	env.pool.ExpectQuery("SELECT (.+) FROM weight_entries WHERE user_id = \\$1 ORDER BY date DESC, created_at DESC LIMIT \\$2 OFFSET \\$3").
		WithArgs(user.ID, 10, 0).WillReturnRows(weightRows(entry))
	list := env.expect.GET("/api/weights").WithHeader("Authorization", "Bearer "+env.token(user)).
		Expect().Status(http.StatusOK).JSON().Object()
	list.HasValue("page", 1).HasValue("limit", 10).HasValue("total", 1).HasValue("totalPages", 1)
	list.Value("weights").Array().Length().IsEqual(1)

	// Partial update keeps the notes
	updatedEntry := *entry
	updatedEntry.Weight = 79
	env.expectAuthentication(user)
	env.pool.ExpectBegin()
	env.pool.ExpectQuery("SELECT (.+) FROM weight_entries WHERE id = \\$1 FOR UPDATE").WithArgs(entryId).WillReturnRows(weightRows(entry))
	env.pool.ExpectQuery("UPDATE weight_entries SET weight = \\$2, updated_at = \\$3 WHERE id = \\$1 RETURNING").
		WithArgs(entryId, 79.0, pgxmock.AnyArg()).WillReturnRows(weightRows(&updatedEntry))
	env.pool.ExpectCommit()
	env.expect.PUT("/api/weights/"+entryId.String()).WithHeader("Authorization", "Bearer "+env.token(user)).
		WithJSON(map[string]interface{}{"weight": 79}).
		Expect().Status(http.StatusOK).JSON().Object().HasValue("weight", 79).HasValue("notes", "Morning")

	// Delete
	env.expectAuthentication(user)
	env.pool.ExpectBegin()
	env.pool.ExpectQuery("SELECT (.+) FROM weight_entries WHERE id = \\$1 FOR UPDATE").WithArgs(entryId).WillReturnRows(weightRows(&updatedEntry))
	env.pool.ExpectExec("DELETE FROM weight_entries WHERE id = \\$1").WithArgs(entryId).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	env.pool.ExpectCommit()
	env.expect.DELETE("/api/weights/"+entryId.String()).WithHeader("Authorization", "Bearer "+env.token(user)).
		Expect().Status(http.StatusOK).JSON().IsEqual(map[string]string{"message": "Weight entry deleted successfully"})

	// Gone
	env.expectAuthentication(user)
	env.pool.ExpectQuery("SELECT (.+) FROM weight_entries WHERE id = \\$1").WithArgs(entryId).WillReturnRows(pgxmock.NewRows(weightColumns))
	env.expect.GET("/api/weights/"+entryId.String()).WithHeader("Authorization", "Bearer "+env.token(user)).
		Expect().Status(http.StatusNotFound).JSON().IsEqual(errorBody("NotFound", "Entry not found"))
}

func TestWeightOwnership(t *testing.T) {
	env := setupTest(t, Limiters{})
	owner := newUser("owner@example.com")
	intruder := newUser("intruder@example.com")
	entry := &schemas.WeightEntry{
		ID: uuid.New(), UserID: owner.ID, Weight: 70, Unit: "kg", Date: time.Now().UTC(),
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	forbidden := errorBody("Forbidden", "Not authorized to access this entry")

	request := env.authorized(http.MethodGet, "/api/weights/"+entry.ID.String(), intruder)
	env.pool.ExpectQuery("SELECT (.+) FROM weight_entries WHERE id = \\$1").WithArgs(entry.ID).WillReturnRows(weightRows(entry))
	request.Expect().Status(http.StatusForbidden).JSON().IsEqual(forbidden)

	env.expectAuthentication(intruder)
	env.pool.ExpectBegin()
	env.pool.ExpectQuery("SELECT (.+) FROM weight_entries WHERE id = \\$1 FOR UPDATE").WithArgs(entry.ID).WillReturnRows(weightRows(entry))
	env.pool.ExpectRollback()
	env.expect.DELETE("/api/weights/"+entry.ID.String()).WithHeader("Authorization", "Bearer "+env.token(intruder)).
		Expect().Status(http.StatusForbidden).JSON().IsEqual(forbidden)

	env.expectAuthentication(intruder)
	env.pool.ExpectBegin()
	env.pool.ExpectQuery("SELECT (.+) FROM weight_entries WHERE id = \\$1 FOR UPDATE").WithArgs(entry.ID).WillReturnRows(weightRows(entry))
	env.pool.ExpectRollback()
	env.expect.PUT("/api/weights/"+entry.ID.String()).WithHeader("Authorization", "Bearer "+env.token(intruder)).
		WithJSON(map[string]interface{}{"notes": "mine now"}).
		Expect().Status(http.StatusForbidden).JSON().IsEqual(forbidden)

	env.authorized(http.MethodGet, "/api/weights/not-a-uuid", intruder).
		Expect().Status(http.StatusNotFound).JSON().IsEqual(errorBody("NotFound", "Entry not found"))
}

func TestWeightValidation(t *testing.T) {
	env := setupTest(t, Limiters{})
	user := newUser("jane@example.com")

	details := env.authorized(http.MethodPost, "/api/weights", user).
		WithJSON(map[string]interface{}{"weight": 1001, "unit": "stone", "date": "yesterday"}).
		Expect().Status(http.StatusBadRequest).JSON().Object().Value("error").Object()
	details.HasValue("code", "ValidationFailed")
	details.Value("details").Array().Length().IsEqual(3)

	env.authorized(http.MethodPost, "/api/weights", user).
		WithJSON(map[string]interface{}{"notes": "forgot the weight"}).
		Expect().Status(http.StatusBadRequest).JSON().Object().Value("error").Object().
		HasValue("code", "MissingRequiredField").HasValue("message", "All fields are required")

	env.authorized(http.MethodPut, "/api/weights/"+uuid.NewString(), user).
		WithJSON(map[string]interface{}{"weight": nil}).
		Expect().Status(http.StatusBadRequest).JSON().Object().Value("error").Object().
		Value("details").Array().Value(0).Object().HasValue("field", "weight")

	env.authorized(http.MethodPost, "/api/weights", user).
		WithJSON(map[string]interface{}{"weight": "heavy"}).
		Expect().Status(http.StatusBadRequest).JSON().Object().Value("error").Object().HasValue("code", "ValidationFailed")
}

func TestWeightListFilters(t *testing.T) {
	env := setupTest(t, Limiters{})
	user := newUser("jane@example.com")

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC).Add(-time.Microsecond)
	where := "user_id = \\$1 AND date >= \\$2 AND date <= \\$3 AND unit = \\$4 AND notes ILIKE \\$5"

	request := env.authorized(http.MethodGet, "/api/weights", user).
		WithQuery("startDate", "2024-01-01").WithQuery("endDate", "2024-01-31").WithQuery("unit", "kg").
		WithQuery("search", "50%").WithQuery("page", 3)
	env.pool.ExpectQuery("SELECT COUNT\\(\\*\\) FROM weight_entries WHERE "+where+"$").
		WithArgs(user.ID, start, end, "kg", "%50\\%%").WillReturnRows(countRows(5))
	env.pool.ExpectQuery("SELECT (.+) FROM weight_entries WHERE "+where+" ORDER BY date DESC, created_at DESC LIMIT \\$6 OFFSET \\$7").
		WithArgs(user.ID, start, end, "kg", "%50\\%%", 10, 20).WillReturnRows(weightRows())

	body := request.Expect().Status(http.StatusOK).JSON().Object()
	body.HasValue("page", 3).HasValue("total", 5).HasValue("totalPages", 1)
	body.Value("weights").Array().IsEmpty()

	env.expectAuthentication(user)
	env.pool.ExpectQuery("SELECT COUNT").WithArgs(user.ID).WillReturnRows(countRows(0))
	env.pool.ExpectQuery("LIMIT").WithArgs(user.ID, 100, 0).WillReturnRows(weightRows())
	env.expect.GET("/api/weights").WithHeader("Authorization", "Bearer "+env.token(user)).WithQuery("limit", 500).
		Expect().Status(http.StatusOK).JSON().Object().HasValue("limit", 100).HasValue("totalPages", 0)

	invalid := env.authorized(http.MethodGet, "/api/weights", user).
		WithQuery("startDate", "last week").WithQuery("unit", "stone").WithQuery("page", "abc").
		Expect().Status(http.StatusBadRequest).JSON().Object().Value("error").Object()
	invalid.HasValue("code", "ValidationFailed")
	invalid.Value("details").Array().Length().IsEqual(3)
}

func TestWeightExport(t *testing.T) {
	env := setupTest(t, Limiters{})
	user := newUser("jane@example.com")
	entry := &schemas.WeightEntry{
		ID: uuid.New(), UserID: user.ID, Weight: 80.5, Unit: "kg",
		Date:  time.Date(2024, time.January, 2, 8, 0, 0, 0, time.UTC),
		Notes: `Ran 5k, felt "great"`,
	}

	request := env.authorized(http.MethodGet, "/api/weights/export", user).WithQuery("unit", "kg")
	env.pool.ExpectQuery("SELECT (.+) FROM weight_entries WHERE user_id = \\$1 AND unit = \\$2 ORDER BY date DESC, created_at DESC$").
		WithArgs(user.ID, "kg").WillReturnRows(weightRows(entry))

	response := request.Expect().Status(http.StatusOK)
	response.Header("Content-Type").HasPrefix("text/csv")
	response.Header("Content-Disposition").IsEqual("attachment; filename=weights.csv")
	response.Body().IsEqual("date,weight,unit,notes\n2024-01-02T08:00:00Z,80.5,kg,\"Ran 5k, felt \"\"great\"\"\"\n")
}

func TestActivityLifecycle(t *testing.T) {
	env := setupTest(t, Limiters{})
	user := newUser("jane@example.com")

	env.expectAuthentication(user)
	env.pool.ExpectBegin()
	env.pool.ExpectExec("INSERT INTO activity_entries").
		WithArgs(pgxmock.AnyArg(), user.ID, "Running", 1.5, "hours", 0.0, pgxmock.AnyArg(), "", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	env.pool.ExpectCommit()
	created := env.expect.POST("/api/activities").WithHeader("Authorization", "Bearer "+env.token(user)).
		WithJSON(map[string]interface{}{"type": "Running", "duration": 1.5, "unit": "hours", "date": "2024-03-01"}).
		Expect().Status(http.StatusCreated).JSON().Object()
	created.HasValue("type", "Running").HasValue("caloriesBurned", 0).HasValue("date", "2024-03-01T00:00:00Z")

	entry := &schemas.ActivityEntry{
		ID: uuid.New(), UserID: user.ID, Type: "Running", Duration: 1.5, Unit: "hours", CaloriesBurned: 300,
		Date: time.Now().UTC(), Notes: "Park", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	cleared := *entry
	cleared.Unit, cleared.CaloriesBurned = "minutes", 0

	env.expectAuthentication(user)
	env.pool.ExpectBegin()
	env.pool.ExpectQuery("SELECT (.+) FROM activity_entries WHERE id = \\$1 FOR UPDATE").WithArgs(entry.ID).WillReturnRows(activityRows(entry))
	env.pool.ExpectQuery("UPDATE activity_entries SET unit = \\$2, calories_burned = \\$3, updated_at = \\$4 WHERE id = \\$1 RETURNING").
		WithArgs(entry.ID, "minutes", 0.0, pgxmock.AnyArg()).WillReturnRows(activityRows(&cleared))
	env.pool.ExpectCommit()
	env.expect.PUT("/api/activities/"+entry.ID.String()).WithHeader("Authorization", "Bearer "+env.token(user)).
		WithJSON(map[string]interface{}{"unit": "", "caloriesBurned": nil}).
		Expect().Status(http.StatusOK).JSON().Object().
		HasValue("unit", "minutes").HasValue("caloriesBurned", 0).HasValue("notes", "Park")

	env.authorized(http.MethodPut, "/api/activities/"+entry.ID.String(), user).
		WithJSON(map[string]interface{}{"type": "<script></script>", "duration": nil}).
		Expect().Status(http.StatusBadRequest).JSON().Object().Value("error").Object().
		Value("details").Array().Length().IsEqual(2)

	request := env.authorized(http.MethodGet, "/api/activities", user).WithQuery("type", "Running")
	env.pool.ExpectQuery("SELECT COUNT\\(\\*\\) FROM activity_entries WHERE user_id = \\$1 AND type = \\$2$").
		WithArgs(user.ID, "Running").WillReturnRows(countRows(1))
	env.pool.ExpectQuery("SELECT (.+) FROM activity_entries WHERE user_id = \\$1 AND type = \\$2 ORDER BY").
		WithArgs(user.ID, "Running", 10, 0).WillReturnRows(activityRows(entry))
	request.Expect().Status(http.StatusOK).JSON().Object().Value("activities").Array().Length().IsEqual(1)

	env.expectAuthentication(user)
	env.pool.ExpectBegin()
	env.pool.ExpectQuery("SELECT (.+) FROM activity_entries WHERE id = \\$1 FOR UPDATE").WithArgs(entry.ID).WillReturnRows(activityRows(entry))
	env.pool.ExpectExec("DELETE FROM activity_entries WHERE id = \\$1").WithArgs(entry.ID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	env.pool.ExpectCommit()
	env.expect.DELETE("/api/activities/"+entry.ID.String()).WithHeader("Authorization", "Bearer "+env.token(user)).
		Expect().Status(http.StatusOK).JSON().Object().HasValue("message", "Activity entry deleted successfully")
}

func TestActivityExport(t *testing.T) {
	env := setupTest(t, Limiters{})
	user := newUser("jane@example.com")
	entry := &schemas.ActivityEntry{
		ID: uuid.New(), UserID: user.ID, Type: "Yoga", Duration: 45, Unit: "minutes", CaloriesBurned: 120.5,
		Date: time.Date(2024, time.March, 1, 7, 30, 0, 0, time.UTC),
	}

	request := env.authorized(http.MethodGet, "/api/activities/export", user)
	env.pool.ExpectQuery("SELECT (.+) FROM activity_entries WHERE user_id = \\$1 ORDER BY").WithArgs(user.ID).WillReturnRows(activityRows(entry))

	response := request.Expect().Status(http.StatusOK)
	response.Header("Content-Disposition").IsEqual("attachment; filename=activities.csv")
	response.Body().IsEqual("date,type,duration,unit,caloriesBurned,notes\n2024-03-01T07:30:00Z,Yoga,45,minutes,120.5,\n")
}

func TestForgotPassword(t *testing.T) {
	generic := map[string]string{"message": "If that email is registered, a reset link has been sent."}

	t.Run("UnknownEmail", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		env.pool.ExpectBegin()
		env.pool.ExpectQuery("SELECT id, first_name FROM users WHERE email = \\$1").WithArgs("nobody@example.com").
			WillReturnRows(pgxmock.NewRows([]string{"id", "first_name"}))
		env.pool.ExpectRollback()

		env.expect.POST("/api/auth/forgot-password").WithJSON(map[string]string{"email": "Nobody@example.com"}).
			Expect().Status(http.StatusOK).JSON().IsEqual(generic)
		env.mailMgr.AssertNotCalled(t, "SendPasswordResetMail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("KnownEmail", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		userId := uuid.New()
		env.pool.ExpectBegin()
		env.pool.ExpectQuery("SELECT id, first_name FROM users WHERE email = \\$1").WithArgs("jane@example.com").
			WillReturnRows(pgxmock.NewRows([]string{"id", "first_name"}).AddRow(userId, "Jane"))
		env.pool.ExpectExec("UPDATE users SET reset_token_hash = \\$1, reset_token_expires_at = \\$2 WHERE id = \\$3").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), userId).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		env.pool.ExpectCommit()

		resetLink := mock.MatchedBy(func(link string) bool {
			return strings.HasPrefix(link, clientURL+"/reset-password?token=") && strings.HasSuffix(link, "&email=jane%40example.com")
		})
		env.mailMgr.On("SendPasswordResetMail", mock.Anything, "jane@example.com", "Jane", resetLink).Return(nil)

		env.expect.POST("/api/auth/forgot-password").WithJSON(map[string]string{"email": "jane@example.com"}).
			Expect().Status(http.StatusOK).JSON().IsEqual(generic)
		env.mailMgr.AssertExpectations(t)
	})

	t.Run("MissingEmail", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		env.expect.POST("/api/auth/forgot-password").WithJSON(map[string]string{}).
			Expect().Status(http.StatusBadRequest).JSON().Object().Value("error").Object().HasValue("code", "MissingRequiredField")
	})
}

func TestResetPassword(t *testing.T) {
	token := strings.Repeat("ab", 32)
	sum := sha256.Sum256([]byte(token))
	tokenHash := hex.EncodeToString(sum[:])
	request := map[string]string{"email": "jane@example.com", "token": token, "newPassword": "Changed1!"}

	t.Run("ValidToken", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		userId := uuid.New()
		env.pool.ExpectBegin()
		env.pool.ExpectQuery("SELECT id FROM users WHERE email = \\$1 AND reset_token_hash = \\$2 AND reset_token_expires_at > \\$3").
			WithArgs("jane@example.com", tokenHash, pgxmock.AnyArg()).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(userId))
		env.pool.ExpectExec("UPDATE users SET password = \\$1, reset_token_hash = NULL, reset_token_expires_at = NULL").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), userId).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		env.pool.ExpectCommit()

		env.expect.POST("/api/auth/reset-password").WithJSON(request).
			Expect().Status(http.StatusOK).JSON().IsEqual(map[string]string{"message": "Password has been reset successfully"})
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		env.pool.ExpectBegin()
		env.pool.ExpectQuery("SELECT id FROM users WHERE email = \\$1 AND reset_token_hash = \\$2").
			WithArgs("jane@example.com", tokenHash, pgxmock.AnyArg()).WillReturnRows(pgxmock.NewRows([]string{"id"}))
		env.pool.ExpectRollback()

		env.expect.POST("/api/auth/reset-password").WithJSON(request).
			Expect().Status(http.StatusBadRequest).JSON().IsEqual(errorBody("InvalidResetToken", "Invalid or expired token"))
	})

	t.Run("MissingFields", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		env.expect.POST("/api/auth/reset-password").WithJSON(map[string]string{"email": "jane@example.com"}).
			Expect().Status(http.StatusBadRequest).JSON().Object().Value("error").Object().
			HasValue("code", "MissingRequiredField").HasValue("message", "All fields are required")
	})
}

func TestProfileUpdate(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Secret1!x"), bcrypt.MinCost)
	passwordRows := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"password"}).AddRow(string(hash))
	}

	t.Run("ChangeNames", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		user := newUser("jane@example.com")
		renamed := *user
		renamed.FirstName = "Janet"

		env.expectAuthentication(user)
		env.pool.ExpectBegin()
		env.pool.ExpectQuery("SELECT password FROM users WHERE id = \\$1 FOR UPDATE").WithArgs(user.ID).WillReturnRows(passwordRows())
		env.pool.ExpectQuery("UPDATE users SET first_name = \\$2, updated_at = \\$3 WHERE id = \\$1 RETURNING").
			WithArgs(user.ID, "Janet", pgxmock.AnyArg()).WillReturnRows(userRows(&renamed))
		env.pool.ExpectCommit()

		body := env.expect.PUT("/api/auth/profile").WithHeader("Authorization", "Bearer "+env.token(user)).
			WithJSON(map[string]string{"firstName": "Janet"}).
			Expect().Status(http.StatusOK).JSON().Object()
		body.HasValue("message", "Profile updated successfully")
		body.Value("user").Object().HasValue("firstName", "Janet").NotContainsKey("password")
	})

	t.Run("ClearGoalWeight", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		goal := 70.0
		user := newUser("jane@example.com")
		user.GoalWeight = &goal
		cleared := *user
		cleared.GoalWeight = nil

		env.expectAuthentication(user)
		env.pool.ExpectBegin()
		env.pool.ExpectQuery("SELECT password FROM users WHERE id = \\$1 FOR UPDATE").WithArgs(user.ID).WillReturnRows(passwordRows())
		env.pool.ExpectQuery("UPDATE users SET goal_weight = \\$2, updated_at = \\$3 WHERE id = \\$1 RETURNING").
			WithArgs(user.ID, nil, pgxmock.AnyArg()).WillReturnRows(userRows(&cleared))
		env.pool.ExpectCommit()

		env.expect.PUT("/api/auth/profile").WithHeader("Authorization", "Bearer "+env.token(user)).
			WithJSON(map[string]interface{}{"goalWeight": nil}).
			Expect().Status(http.StatusOK).JSON().Object().Value("user").Object().
			HasValue("goalWeight", nil)
	})

	t.Run("EmailChangeWithoutCurrentPassword", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		user := newUser("jane@example.com")

		env.expectAuthentication(user)
		env.pool.ExpectBegin()
		env.pool.ExpectQuery("SELECT password FROM users WHERE id = \\$1 FOR UPDATE").WithArgs(user.ID).WillReturnRows(passwordRows())
		env.pool.ExpectRollback()

		env.expect.PUT("/api/auth/profile").WithHeader("Authorization", "Bearer "+env.token(user)).
			WithJSON(map[string]string{"email": "new@example.com"}).
			Expect().Status(http.StatusBadRequest).JSON().Object().Value("error").Object().HasValue("code", "CurrentPasswordRequired")
	})

	t.Run("WrongCurrentPassword", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		user := newUser("jane@example.com")

		env.expectAuthentication(user)
		env.pool.ExpectBegin()
		env.pool.ExpectQuery("SELECT password FROM users WHERE id = \\$1 FOR UPDATE").WithArgs(user.ID).WillReturnRows(passwordRows())
		env.pool.ExpectRollback()

		env.expect.PUT("/api/auth/profile").WithHeader("Authorization", "Bearer "+env.token(user)).
			WithJSON(map[string]string{"newPassword": "Changed1!", "currentPassword": "Wrong1!xx"}).
			Expect().Status(http.StatusUnauthorized).JSON().Object().Value("error").Object().HasValue("code", "CurrentPasswordIncorrect")
	})

	t.Run("EmailInUse", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		user := newUser("jane@example.com")

		env.expectAuthentication(user)
		env.pool.ExpectBegin()
		env.pool.ExpectQuery("SELECT password FROM users WHERE id = \\$1 FOR UPDATE").WithArgs(user.ID).WillReturnRows(passwordRows())
		env.pool.ExpectQuery("UPDATE users SET email = \\$2, updated_at = \\$3 WHERE id = \\$1 RETURNING").
			WithArgs(user.ID, "taken@example.com", pgxmock.AnyArg()).WillReturnError(&pgconn.PgError{Code: "23505"})
		env.pool.ExpectRollback()

		env.expect.PUT("/api/auth/profile").WithHeader("Authorization", "Bearer "+env.token(user)).
			WithJSON(map[string]string{"email": "taken@example.com", "currentPassword": "Secret1!x"}).
			Expect().Status(http.StatusBadRequest).JSON().Object().Value("error").Object().HasValue("code", "EmailInUse")
	})

	t.Run("ProfilePictureUpload", func(t *testing.T) {
		env := setupTest(t, Limiters{})
		user := newUser("jane@example.com")
		withPicture := *user
		withPicture.ProfilePicture = base64.StdEncoding.EncodeToString(pngImage)

		env.expectAuthentication(user)
		env.pool.ExpectBegin()
		env.pool.ExpectQuery("SELECT password FROM users WHERE id = \\$1 FOR UPDATE").WithArgs(user.ID).WillReturnRows(passwordRows())
		env.pool.ExpectQuery("UPDATE users SET goal_weight = \\$2, profile_picture = \\$3, updated_at = \\$4 WHERE id = \\$1 RETURNING").
			WithArgs(user.ID, 65.0, withPicture.ProfilePicture, pgxmock.AnyArg()).WillReturnRows(userRows(&withPicture))
		env.pool.ExpectCommit()

		env.expect.PUT("/api/auth/profile").WithHeader("Authorization", "Bearer "+env.token(user)).
			WithMultipart().WithFormField("goalWeight", "65").
			WithFile("profilePicture", "me.png", bytes.NewReader(pngImage)).
			Expect().Status(http.StatusOK).JSON().Object().Value("user").Object().
			HasValue("profilePicture", withPicture.ProfilePicture)
	})
}

func TestProgressPhotos(t *testing.T) {
	env := setupTest(t, Limiters{})
	user := newUser("jane@example.com")

	env.expectAuthentication(user)
	env.pool.ExpectBegin()
	env.pool.ExpectExec("INSERT INTO progress_photos").
		WithArgs(pgxmock.AnyArg(), user.ID, pgxmock.AnyArg(), "Week 1", base64.StdEncoding.EncodeToString(pngImage), "image/png", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	env.pool.ExpectCommit()
	uploaded := env.expect.POST("/api/progress-photos").WithHeader("Authorization", "Bearer "+env.token(user)).
		WithMultipart().WithFormField("caption", "Week 1").WithFile("image", "week1.png", bytes.NewReader(pngImage)).
		Expect().Status(http.StatusCreated).JSON().Object()
	uploaded.HasValue("message", "Progress photo uploaded")
	uploaded.Value("progressPhoto").Object().HasValue("caption", "Week 1").HasValue("contentType", "image/png")

	env.authorized(http.MethodPost, "/api/progress-photos", user).
		WithMultipart().WithFormField("caption", "No image").
		Expect().Status(http.StatusBadRequest).JSON().IsEqual(errorBody("NoFileUploaded", "No file uploaded"))

	env.authorized(http.MethodPost, "/api/progress-photos", user).
		WithMultipart().WithFile("image", "notes.txt", strings.NewReader("just some text")).
		Expect().Status(http.StatusBadRequest).JSON().Object().Value("error").Object().HasValue("code", "UnsupportedFileType")

	photo := &schemas.ProgressPhoto{ID: uuid.New(), UserID: user.ID, Date: time.Now().UTC(), Image: "aGVsbG8=", ContentType: "image/png", CreatedAt: time.Now().UTC()}
	request := env.authorized(http.MethodGet, "/api/progress-photos", user)
	env.pool.ExpectQuery("SELECT (.+) FROM progress_photos WHERE user_id = \\$1 ORDER BY date DESC").WithArgs(user.ID).
		WillReturnRows(pgxmock.NewRows(photoColumns).AddRow(photo.ID, photo.UserID, photo.Date, photo.Caption, photo.Image, photo.ContentType, photo.CreatedAt))
	request.Expect().Status(http.StatusOK).JSON().Array().Length().IsEqual(1)

	env.expectAuthentication(user)
	env.pool.ExpectBegin()
	env.pool.ExpectQuery("SELECT (.+) FROM progress_photos WHERE id = \\$1 FOR UPDATE").WithArgs(photo.ID).
		WillReturnRows(pgxmock.NewRows(photoColumns).AddRow(photo.ID, photo.UserID, photo.Date, photo.Caption, photo.Image, photo.ContentType, photo.CreatedAt))
	env.pool.ExpectExec("DELETE FROM progress_photos WHERE id = \\$1").WithArgs(photo.ID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	env.pool.ExpectCommit()
	env.expect.DELETE("/api/progress-photos/"+photo.ID.String()).WithHeader("Authorization", "Bearer "+env.token(user)).
		Expect().Status(http.StatusOK).JSON().IsEqual(map[string]string{"message": "Progress photo deleted"})
}

func TestActivityAndPhotoOwnership(t *testing.T) {
	env := setupTest(t, Limiters{})
	owner := newUser("owner@example.com")
	intruder := newUser("intruder@example.com")
	forbidden := errorBody("Forbidden", "Not authorized to access this entry")
	now := time.Now().UTC()

	activity := &schemas.ActivityEntry{
		ID: uuid.New(), UserID: owner.ID, Type: "Cycling", Duration: 40, Unit: "minutes", Date: now,
		CreatedAt: now, UpdatedAt: now,
	}
	photo := &schemas.ProgressPhoto{ID: uuid.New(), UserID: owner.ID, Date: now, Image: "aGVsbG8=", ContentType: "image/png", CreatedAt: now}
	photoRows := func() *pgxmock.Rows {
		return pgxmock.NewRows(photoColumns).AddRow(photo.ID, photo.UserID, photo.Date, photo.Caption, photo.Image, photo.ContentType, photo.CreatedAt)
	}

	request := env.authorized(http.MethodGet, "/api/activities/"+activity.ID.String(), intruder)
	env.pool.ExpectQuery("SELECT (.+) FROM activity_entries WHERE id = \\$1").WithArgs(activity.ID).WillReturnRows(activityRows(activity))
	request.Expect().Status(http.StatusForbidden).JSON().IsEqual(forbidden)

	request = env.authorized(http.MethodDelete, "/api/activities/"+activity.ID.String(), intruder)
	env.pool.ExpectBegin()
	env.pool.ExpectQuery("SELECT (.+) FROM activity_entries WHERE id = \\$1 FOR UPDATE").WithArgs(activity.ID).WillReturnRows(activityRows(activity))
	env.pool.ExpectRollback()
	request.Expect().Status(http.StatusForbidden).JSON().IsEqual(forbidden)

	request = env.authorized(http.MethodGet, "/api/progress-photos/"+photo.ID.String(), intruder)
	env.pool.ExpectQuery("SELECT (.+) FROM progress_photos WHERE id = \\$1").WithArgs(photo.ID).WillReturnRows(photoRows())
	request.Expect().Status(http.StatusForbidden).JSON().IsEqual(forbidden)

	request = env.authorized(http.MethodDelete, "/api/progress-photos/"+photo.ID.String(), intruder)
	env.pool.ExpectBegin()
	env.pool.ExpectQuery("SELECT (.+) FROM progress_photos WHERE id = \\$1 FOR UPDATE").WithArgs(photo.ID).WillReturnRows(photoRows())
	env.pool.ExpectRollback()
	request.Expect().Status(http.StatusForbidden).JSON().IsEqual(forbidden)
}

func TestStats(t *testing.T) {
	env := setupTest(t, Limiters{})
	user := newUser("jane@example.com")
	now := time.Now().UTC()

	weights := weightRows(
		&schemas.WeightEntry{ID: uuid.New(), UserID: user.ID, Weight: 75, Unit: "kg", Date: now},
		&schemas.WeightEntry{ID: uuid.New(), UserID: user.ID, Weight: 80, Unit: "kg", Date: now.AddDate(0, 0, -14)},
	)
	request := env.authorized(http.MethodGet, "/api/stats/weights", user).WithQuery("goal", 70)
	env.pool.ExpectQuery("SELECT (.+) FROM weight_entries WHERE user_id = \\$1 ORDER BY").WithArgs(user.ID).WillReturnRows(weights)
	summary := request.Expect().Status(http.StatusOK).JSON().Object()
	summary.HasValue("totalEntries", 2).HasValue("currentWeight", 75)
	summary.Value("goalProgress").Object().HasValue("percent", 50)
	summary.Value("change").Object().HasValue("value", -5)

	env.authorized(http.MethodGet, "/api/stats/weights", user).WithQuery("goal", "light").
		Expect().Status(http.StatusBadRequest)

	activities := activityRows(
		&schemas.ActivityEntry{ID: uuid.New(), UserID: user.ID, Type: "Running", Duration: 30, Unit: "minutes", Date: now},
		&schemas.ActivityEntry{ID: uuid.New(), UserID: user.ID, Type: "Running", Duration: 1, Unit: "hours", Date: now.AddDate(0, 0, -1)},
		&schemas.ActivityEntry{ID: uuid.New(), UserID: user.ID, Type: "Yoga", Duration: 20, Unit: "minutes", Date: now.AddDate(0, 0, -3)},
	)
	request = env.authorized(http.MethodGet, "/api/stats/activities", user)
	env.pool.ExpectQuery("SELECT (.+) FROM activity_entries WHERE user_id = \\$1 ORDER BY").WithArgs(user.ID).WillReturnRows(activities)
	activitySummary := request.Expect().Status(http.StatusOK).JSON().Object()
	activitySummary.HasValue("totalActivities", 3).HasValue("totalDuration", 110).HasValue("streak", 2).
		HasValue("mostFrequentType", "Running").HasValue("longestSession", 60)
}
