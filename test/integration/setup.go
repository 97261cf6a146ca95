package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/lively-votes/api/internal/adapters/broadcast"
	handler "github.com/lively-votes/api/internal/adapters/handler/http"
	repo "github.com/lively-votes/api/internal/adapters/repository/postgres"
	"github.com/lively-votes/api/internal/core/ports"
	"github.com/lively-votes/api/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Broker      ports.Broker
	DBContainer testcontainers.Container
}

// apiResponse mirrors the response envelope for decoding in tests.
type apiResponse struct {
	Status      string          `json:"status"`
	AccessToken string          `json:"accessToken"`
	Data        json.RawMessage `json:"data"`
	Message     string          `json:"message"`
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
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

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(db))

	userRepo := repo.NewUserRepository(db)
	pollRepo := repo.NewPollRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	broker := broadcast.NewMemoryBroker()

	tokenService := services.NewTokenService(
		[]byte("test-access-secret"), []byte("test-refresh-secret"),
		15*time.Minute, 7*24*time.Hour,
	)
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	pollService := services.NewPollService(pollRepo, userRepo)
	voteService := services.NewVoteService(pollRepo, voteRepo, userRepo, broker)

	router := handler.NewHandler(
		handler.NewAuthHandler(authService, 7*24*time.Hour),
		handler.NewUserHandler(userService),
		handler.NewPollHandler(pollService),
		handler.NewVoteHandler(voteService),
		handler.NewRealtimeHandler(broker, []string{"*"}),
		authService,
		[]string{"*"},
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Broker:      broker,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.Broker.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// signUp registers a fresh account through the public endpoint and
// returns the issued access token plus the new user's id.
func (app *TestApp) signUp(t *testing.T, name, email, password string) (string, int64) {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	resp, err := app.Client.Post(app.Server.URL+"/api/v1/users/signup", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.AccessToken)

	var userID int64
	require.NoError(t, app.DB.QueryRow("SELECT id FROM users WHERE email = $1", email).Scan(&userID))

	return body.AccessToken, userID
}

// createPoll creates a poll as the given user and returns the poll id
// and the created option ids in order.
func (app *TestApp) createPoll(t *testing.T, token, question string, options ...string) (int64, []int64) {
	t.Helper()

	optionPayload := make([]map[string]string, 0, len(options))
	for _, text := range options {
		optionPayload = append(optionPayload, map[string]string{"text": text})
	}
	payload, _ := json.Marshal(map[string]any{
		"question": question,
		"options":  optionPayload,
	})

	resp := app.doJSON(t, "POST", "/api/v1/polls/", token, payload)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	var poll struct {
		ID      int64 `json:"id"`
		Options []struct {
			ID int64 `json:"id"`
		} `json:"options"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &poll))

	optionIDs := make([]int64, 0, len(poll.Options))
	for _, opt := range poll.Options {
		optionIDs = append(optionIDs, opt.ID)
	}
	return poll.ID, optionIDs
}

func (app *TestApp) castVote(t *testing.T, token string, pollID, optionID int64) *http.Response {
	t.Helper()

	payload, _ := json.Marshal(map[string]int64{"pollId": pollID, "optionId": optionID})
	return app.doJSON(t, "POST", "/api/v1/polls/castVote", token, payload)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (app *TestApp) doJSON(t *testing.T, method, path, token string, payload []byte) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, app.Server.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}
