package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/social-network/internal/config"
	"github.com/deppfellow/social-network/internal/database"
	"github.com/deppfellow/social-network/internal/errs"
	"github.com/deppfellow/social-network/internal/handler"
	"github.com/deppfellow/social-network/internal/model"
	"github.com/deppfellow/social-network/internal/repository"
	"github.com/deppfellow/social-network/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConn answers the statements the repositories issue from a fixed
// users table and records everything it was asked to run.
type stubConn struct {
	users   map[int64]database.Row
	nextID  int64
	err     error
	queries []string
}

func newStubConn() *stubConn {
	return &stubConn{
		users: map[int64]database.Row{
			1: {"id": int64(1), "username": "ada", "email_address": "ada@example.com"},
		},
		nextID: 2,
	}
}

func (s *stubConn) Execute(_ context.Context, sql string, params ...any) ([]database.Row, error) {
	s.queries = append(s.queries, sql)
	if s.err != nil {
		return nil, s.err
	}

	switch {
	case strings.HasPrefix(sql, "SELECT") && strings.HasSuffix(sql, "WHERE id = $1;"):
		if row, ok := s.users[params[0].(int64)]; ok {
			return []database.Row{row}, nil
		}
		return nil, nil
	case strings.HasPrefix(sql, "SELECT"):
		return []database.Row{s.users[1]}, nil
	case strings.HasPrefix(sql, "INSERT"):
		id := s.nextID
		s.nextID++
		return []database.Row{{"id": id}}, nil
	default:
		return nil, nil
	}
}

func newTestRouter(t *testing.T, conn repository.Connection, opts ...func(*config.Config)) *echo.Echo {
	t.Helper()

	nop := zerolog.Nop()
	cfg := &config.Config{
		Primary:       config.Primary{Env: "test"},
		Observability: config.DefaultObservabilityConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	s := &server.Server{Config: cfg, Logger: &nop}

	return NewRouter(s, handler.NewHandlers(s, repository.NewRepositories(conn)))
}

func serve(r *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStatus(t *testing.T) {
	rec := serve(newTestRouter(t, newStubConn()), http.MethodGet, "/status", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGetUser(t *testing.T) {
	rec := serve(newTestRouter(t, newStubConn()), http.MethodGet, "/api/v1/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, model.User{ID: 1, Username: "ada", EmailAddress: "ada@example.com"}, user)
}

func TestListUsers(t *testing.T) {
	rec := serve(newTestRouter(t, newStubConn()), http.MethodGet, "/api/v1/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var users []model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "ada", users[0].Username)
}

func TestGetUserNotFound(t *testing.T) {
	rec := serve(newTestRouter(t, newStubConn()), http.MethodGet, "/api/v1/users/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "User not found", body.Message)
}

func TestGetUserBadID(t *testing.T) {
	r := newTestRouter(t, newStubConn())

	for _, target := range []string{"/api/v1/users/abc", "/api/v1/users/0"} {
		rec := serve(r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestCreateUser(t *testing.T) {
	conn := newStubConn()
	rec := serve(newTestRouter(t, conn), http.MethodPost, "/api/v1/users",
		`{"username":"grace","email_address":"grace@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, model.User{ID: 2, Username: "grace", EmailAddress: "grace@example.com"}, user)
	assert.Equal(t,
		"INSERT INTO users (username, email_address) VALUES ($1, $2) RETURNING id;",
		conn.queries[len(conn.queries)-1])
}

func TestUpdateAndDeleteUser(t *testing.T) {
	conn := newStubConn()
	r := newTestRouter(t, conn)

	rec := serve(r, http.MethodPut, "/api/v1/users/1", `{"username":"ada2","email_address":"ada@example.com"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "UPDATE users SET username = $1, email_address = $2 WHERE id = $3;",
		conn.queries[len(conn.queries)-1])

	rec = serve(r, http.MethodDelete, "/api/v1/users/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "DELETE FROM users WHERE id = $1;", conn.queries[len(conn.queries)-1])
}

func TestCreatePostForeignKeyViolation(t *testing.T) {
	conn := newStubConn()
	conn.err = &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		TableName:      "posts",
		ConstraintName: "posts_user_id_fkey",
	}

	rec := serve(newTestRouter(t, conn), http.MethodPost, "/api/v1/posts",
		`{"title":"hello","content":"world","views":0,"user_id":99}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteUserWithPosts(t *testing.T) {
	conn := newStubConn()
	conn.err = &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        `update or delete on table "users" violates foreign key constraint "posts_user_id_fkey" on table "posts"`,
		TableName:      "posts",
		ConstraintName: "posts_user_id_fkey",
	}

	rec := serve(newTestRouter(t, conn), http.MethodDelete, "/api/v1/users/1", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "USER_IN_USE", decodeError(t, rec).Code)
}

func TestUnknownRoute(t *testing.T) {
	rec := serve(newTestRouter(t, newStubConn()), http.MethodGet, "/api/v1/comments", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, newStubConn(), func(cfg *config.Config) {
		cfg.Server.RateLimit = 1
	})

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/users/1", "").Code)

	rec := serve(r, http.MethodGet, "/api/v1/users/1", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, rec).Code)
}
