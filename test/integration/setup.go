package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/vncsmyrnk/playervote/internal/adapters/handler/http"
	repo "github.com/vncsmyrnk/playervote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
	"github.com/vncsmyrnk/playervote/internal/core/services"
)

const (
	testJWTSecret  = "test-secret"
	testOwnerEmail = "owner@example.com"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Notifier    *RecordingNotifier
	SummarySvc  ports.SummaryService
	DBContainer testcontainers.Container
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// RecordingNotifier keeps every notification it receives.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *RecordingNotifier) Notify(_ context.Context, msg domain.Notification) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return true, nil
}

func (n *RecordingNotifier) Titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	titles := make([]string, 0, len(n.sent))
	for _, msg := range n.sent {
		titles = append(titles, msg.Title)
	}
	return titles
}

// MockVerifier accepts "valid_token" and "owner_token".
type MockVerifier struct{}

func (MockVerifier) Verify(_ context.Context, token string, _ string) (*ports.TokenPayload, error) {
	switch token {
	case "valid_token":
		return &ports.TokenPayload{Subject: "google-user", Email: "test@example.com", Name: "Test"}, nil
	case "owner_token":
		return &ports.TokenPayload{Subject: "google-owner", Email: testOwnerEmail, Name: "Owner"}, nil
	}
	return nil, assert.AnError
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	require.NoError(t, repo.MigrateUp(ctx, db))

	playerRepo := repo.NewPlayerRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	resultsRepo := repo.NewResultsRepository(db)
	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)

	notifier := &RecordingNotifier{}
	resultsSvc := services.NewResultsService(resultsRepo, voteRepo)
	summarySvc := services.NewSummaryService(resultsSvc, notifier)
	authSvc := services.NewAuthService(userRepo, authRepo, MockVerifier{}, services.AuthConfig{
		JWTSecret:  testJWTSecret,
		OwnerEmail: testOwnerEmail,
	})

	router := handler.NewHandler(handler.Handlers{
		Players:        handler.NewPlayerHandler(services.NewPlayerService(playerRepo)),
		Results:        handler.NewResultsHandler(resultsSvc),
		Votes:          handler.NewVoteHandler(services.NewVoteService(playerRepo, voteRepo, notifier)),
		Admin:          handler.NewAdminHandler(services.NewAdminService(playerRepo, voteRepo, summarySvc)),
		Auth:           handler.NewAuthHandler(authSvc, "https://example.com/redirect", "", http.SameSiteLaxMode),
		Users:          handler.NewUserHandler(services.NewUserService(userRepo)),
		Health:         handler.NewHealthHandler(db),
		Authenticator:  handler.NewAuthenticator(authSvc),
		AllowedOrigins: []string{"*"},
	})

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Notifier:    notifier,
		SummarySvc:  summarySvc,
		DBContainer: dbContainer,
	}
}

// createUserAndToken inserts a user with the given role and signs an access
// token for it the way the auth service does.
func createUserAndToken(t *testing.T, db *sql.DB, role domain.Role) (uuid.UUID, string) {
	t.Helper()

	userID := uuid.New()
	email := fmt.Sprintf("user-%s@example.com", userID)
	name := fmt.Sprintf("User %s", userID)
	_, err := db.Exec("INSERT INTO users (id, open_id, email, name, role) VALUES ($1, $2, $3, $4, $5)",
		userID, "open-"+userID.String(), email, name, string(role))
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return userID, signedToken
}

func (app *TestApp) request(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "integration-test")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) vote(t *testing.T, playerID int64, fingerprint string) *http.Response {
	t.Helper()
	return app.request(t, http.MethodPost, "/api/votes", map[string]any{"playerId": playerID, "fingerprint": fingerprint}, "")
}

func (app *TestApp) addPlayer(t *testing.T, name, team string) int64 {
	t.Helper()
	var id int64
	err := app.DB.QueryRow("INSERT INTO players (name, team) VALUES ($1, $2) RETURNING id", name, team).Scan(&id)
	require.NoError(t, err)
	return id
}

func (app *TestApp) count(t *testing.T, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, app.DB.QueryRow(query, args...).Scan(&n))
	return n
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func fingerprintN(i int) string {
	return fmt.Sprintf("device-%04d", i)
}
