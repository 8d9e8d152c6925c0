package routing

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cycle-nutrition/server/internal/auth"
	"github.com/cycle-nutrition/server/internal/config"
	"github.com/cycle-nutrition/server/internal/managers"
	"github.com/cycle-nutrition/server/internal/managers/mocks"
	"github.com/cycle-nutrition/server/internal/store"
)

type routerFixture struct {
	router   *gin.Engine
	poolMock pgxmock.PgxPoolIface
	tokens   managers.TokenMgr
	mailMock *mocks.MockMailManager
}

func setupRouter(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	poolMock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(poolMock.Close)

	databaseMgrMock := &mocks.MockDatabaseManager{}
	databaseMgrMock.On("GetPool").Return(poolMock)

	mailMgrMock := &mocks.MockMailManager{}
	mailMgrMock.On("SendVerificationMail", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(true)
	mailMgrMock.On("SendPasswordResetMail", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(true)

	cfg := &config.Config{
		Environment:       "test",
		JWTSecret:         "router-test-secret",
		SessionTTL:        time.Hour,
		VerificationTTL:   24 * time.Hour,
		ResetTTL:          time.Hour,
		PasswordMinLength: 8,
		BcryptCost:        bcrypt.MinCost,
		AppURL:            "http://localhost:8080",
	}

	tokens, err := managers.NewTokenManager(cfg.JWTSecret)
	require.NoError(t, err)

	credentialStore := store.NewCredentialStore(poolMock)
	profileStore := store.NewProfileStore(poolMock)
	engine := auth.NewEngine(credentialStore, tokens, mailMgrMock, mocks.NoopAuditManager{}, cfg)

	return &routerFixture{
		router:   InitRouter(databaseMgrMock, engine, profileStore, credentialStore, cfg),
		poolMock: poolMock,
		tokens:   tokens,
		mailMock: mailMgrMock,
	}
}

func newClient(t *testing.T, fixture *routerFixture) *httpexpect.Expect {
	server := httptest.NewServer(fixture.router)
	t.Cleanup(server.Close)
	return httpexpect.Default(t, server.URL)
}

func userColumns() []string {
	return []string{"user_id", "email", "password", "email_verified", "created_at", "last_login"}
}

func TestUserRegistration(t *testing.T) {
	testCases := []struct {
		name      string
		email     string
		password  string
		status    int
		errorCode string
	}{
		{"ValidRegistration", "test@example.com", "test.Password123", http.StatusCreated, ""},
		{"InvalidEmail", "test@example@.com", "test.Password123", http.StatusBadRequest, "ERR-000"},
		{"WeakPassword", "test@example.com", "alllowercase1", http.StatusBadRequest, "ERR-003"},
		{"DuplicateEmail", "taken@example.com", "test.Password123", http.StatusConflict, "ERR-006"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fixture := setupRouter(t)

			switch tc.name {
			case "ValidRegistration":
				fixture.poolMock.ExpectQuery("SELECT").WithArgs(tc.email).
					WillReturnError(pgx.ErrNoRows)
				fixture.poolMock.ExpectExec("INSERT INTO users").
					WithArgs(pgxmock.AnyArg(), tc.email, pgxmock.AnyArg(), false, pgxmock.AnyArg(), (*time.Time)(nil)).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			case "WeakPassword":
				// Rejected by the password policy before any query runs.
			case "DuplicateEmail":
				fixture.poolMock.ExpectQuery("SELECT").WithArgs(tc.email).
					WillReturnRows(pgxmock.NewRows(userColumns()).
						AddRow(uuid.New(), tc.email, "$2a$04$hash", true, time.Now(), nil))
			}

			client := newClient(t, fixture)
			response := client.POST("/api/users").
				WithJSON(map[string]string{"email": tc.email, "password": tc.password}).
				Expect().
				Status(tc.status)

			if tc.errorCode != "" {
				response.JSON().Object().Value("error").Object().
					HasValue("code", tc.errorCode)
			} else {
				response.JSON().Object().ContainsKey("message")
				require.NoError(t, fixture.poolMock.ExpectationsWereMet())
			}
		})
	}
}

func TestUserLogin(t *testing.T) {
	password := "test.Password123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	userId := uuid.New()

	t.Run("VerifiedUser", func(t *testing.T) {
		fixture := setupRouter(t)
		fixture.poolMock.ExpectQuery("SELECT").WithArgs("test@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow(userId, "test@example.com", string(hash), true, time.Now(), nil))
		fixture.poolMock.ExpectExec("UPDATE users SET last_login").
			WithArgs(pgxmock.AnyArg(), userId.String()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		client := newClient(t, fixture)
		session := client.POST("/api/users/login").
			WithJSON(map[string]string{"email": "test@example.com", "password": password}).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		session.HasValue("id", userId.String())
		session.HasValue("email", "test@example.com")
		sessionToken := session.Value("sessionToken").String().NotEmpty().Raw()

		// The issued token verifies back to the same user.
		subject, verifyErr := fixture.tokens.Verify(sessionToken, managers.PurposeSession)
		require.NoError(t, verifyErr)
		require.Equal(t, userId.String(), subject)
	})

	t.Run("UnverifiedUser", func(t *testing.T) {
		fixture := setupRouter(t)
		fixture.poolMock.ExpectQuery("SELECT").WithArgs("test@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow(userId, "test@example.com", string(hash), false, time.Now(), nil))

		client := newClient(t, fixture)
		client.POST("/api/users/login").
			WithJSON(map[string]string{"email": "test@example.com", "password": password}).
			Expect().
			Status(http.StatusForbidden).
			JSON().Object().Value("error").Object().HasValue("code", "ERR-008")
	})

	t.Run("WrongPassword", func(t *testing.T) {
		fixture := setupRouter(t)
		fixture.poolMock.ExpectQuery("SELECT").WithArgs("test@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow(userId, "test@example.com", string(hash), true, time.Now(), nil))

		client := newClient(t, fixture)
		client.POST("/api/users/login").
			WithJSON(map[string]string{"email": "test@example.com", "password": "wrong.Password123"}).
			Expect().
			Status(http.StatusUnauthorized).
			JSON().Object().Value("error").Object().HasValue("code", "ERR-007")
	})
}

func TestSessionVerificationRoute(t *testing.T) {
	fixture := setupRouter(t)
	userId := uuid.New().String()

	sessionToken, err := fixture.tokens.Issue(userId, managers.PurposeSession, time.Hour)
	require.NoError(t, err)
	verificationToken, err := fixture.tokens.Issue(userId, managers.PurposeVerification, time.Hour)
	require.NoError(t, err)

	client := newClient(t, fixture)

	client.POST("/api/users/session").
		WithJSON(map[string]string{"sessionToken": sessionToken}).
		Expect().
		Status(http.StatusOK).
		JSON().Object().HasValue("userId", userId)

	// A verification token must not open a session.
	client.POST("/api/users/session").
		WithJSON(map[string]string{"sessionToken": verificationToken}).
		Expect().
		Status(http.StatusUnauthorized).
		JSON().Object().Value("error").Object().HasValue("code", "ERR-010")
}

func TestProfileRoutesRequireSession(t *testing.T) {
	fixture := setupRouter(t)
	client := newClient(t, fixture)

	client.GET("/api/profile").
		Expect().
		Status(http.StatusUnauthorized).
		JSON().Object().Value("error").Object().HasValue("code", "ERR-012")
}

func TestProfileRoundTrip(t *testing.T) {
	fixture := setupRouter(t)
	userId := uuid.New()
	sessionToken, err := fixture.tokens.Issue(userId.String(), managers.PurposeSession, time.Hour)
	require.NoError(t, err)

	fixture.poolMock.ExpectExec("INSERT INTO profiles").
		WithArgs(userId.String(), "Luteal", "More energy", []string{"Vegetarian"}, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	fixture.poolMock.ExpectQuery("SELECT").
		WithArgs(userId.String()).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "phase", "goal", "diet", "updated_at"}).
			AddRow(userId, "Luteal", "More energy", []string{"Vegetarian"}, time.Now()))

	client := newClient(t, fixture)
	authHeader := "Bearer " + sessionToken

	client.PUT("/api/profile").
		WithHeader("Authorization", authHeader).
		WithJSON(map[string]interface{}{"phase": "Luteal", "goal": "More energy", "diet": []string{"Vegetarian"}}).
		Expect().
		Status(http.StatusOK)

	profile := client.GET("/api/profile").
		WithHeader("Authorization", authHeader).
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	profile.HasValue("phase", "Luteal")
	profile.HasValue("goal", "More energy")

	require.NoError(t, fixture.poolMock.ExpectationsWereMet())
}

func TestHealthRoute(t *testing.T) {
	fixture := setupRouter(t)
	fixture.poolMock.ExpectPing()

	client := newClient(t, fixture)
	health := client.GET("/health").
		Expect().
		Status(http.StatusOK).
		JSON().Object()

	health.HasValue("database", true)
	health.HasValue("signingSecretSet", true)
	// Secrets never appear here, only booleans.
	health.NotContainsKey("jwtSecret")
}

func TestMetadataRoute(t *testing.T) {
	fixture := setupRouter(t)
	client := newClient(t, fixture)

	client.GET("/").
		Expect().
		Status(http.StatusOK).
		JSON().Object().HasValue("apiName", "Cycle Nutrition Assistant")
}
