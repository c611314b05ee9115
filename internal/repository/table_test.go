package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/social-network/internal/database"
	"github.com/deppfellow/social-network/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStatements(t *testing.T) {
	ctx := context.Background()
	conn := &recordingConn{rows: []database.Row{{"id": int64(7), "username": "u", "email_address": "e"}}}
	repo := NewUserRepository(conn)

	_, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, username, email_address FROM users;", conn.last().sql)
	assert.Empty(t, conn.last().params)

	_, err = repo.Find(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, username, email_address FROM users WHERE id = $1;", conn.last().sql)
	assert.Equal(t, []any{int64(7)}, conn.last().params)

	_, err = repo.Create(ctx, model.User{ID: 99, Username: "u", EmailAddress: "e"})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO users (username, email_address) VALUES ($1, $2) RETURNING id;", conn.last().sql)
	assert.Equal(t, []any{"u", "e"}, conn.last().params)

	require.NoError(t, repo.Update(ctx, model.User{ID: 7, Username: "u2", EmailAddress: "e2"}))
	assert.Equal(t, "UPDATE users SET username = $1, email_address = $2 WHERE id = $3;", conn.last().sql)
	assert.Equal(t, []any{"u2", "e2", int64(7)}, conn.last().params)

	require.NoError(t, repo.Delete(ctx, 7))
	assert.Equal(t, "DELETE FROM users WHERE id = $1;", conn.last().sql)
	assert.Equal(t, []any{int64(7)}, conn.last().params)
}

func TestPostStatements(t *testing.T) {
	ctx := context.Background()
	conn := &recordingConn{rows: []database.Row{{"id": int64(3)}}}
	repo := NewPostRepository(conn)

	_, err := repo.Create(ctx, model.Post{Title: "t", Content: "c", Views: 5, UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO posts (title, content, views, user_id) VALUES ($1, $2, $3, $4) RETURNING id;", conn.last().sql)
	assert.Equal(t, []any{"t", "c", int64(5), int64(1)}, conn.last().params)

	require.NoError(t, repo.Update(ctx, model.Post{ID: 3, Title: "t", Content: "c", Views: 6, UserID: 2}))
	assert.Equal(t, "UPDATE posts SET title = $1, content = $2, views = $3, user_id = $4 WHERE id = $5;", conn.last().sql)
	assert.Equal(t, []any{"t", "c", int64(6), int64(2), int64(3)}, conn.last().params)

	require.NoError(t, repo.Delete(ctx, 3))
	assert.Equal(t, "DELETE FROM posts WHERE id = $1;", conn.last().sql)

	conn.rows = nil
	_, err = repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, title, content, views, user_id FROM posts;", conn.last().sql)

	_, err = repo.Find(ctx, 3)
	assert.Equal(t, "SELECT id, title, content, views, user_id FROM posts WHERE id = $1;", conn.last().sql)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParametersAreNeverInlined(t *testing.T) {
	conn := &recordingConn{rows: []database.Row{{"id": int64(1)}}}
	repo := NewUserRepository(conn)

	hostile := "x'); DROP TABLE users; --"
	_, err := repo.Create(context.Background(), model.User{Username: hostile, EmailAddress: hostile})
	require.NoError(t, err)

	assert.NotContains(t, conn.last().sql, hostile)
	assert.Equal(t, []any{hostile, hostile}, conn.last().params)
}

func TestFindNotFound(t *testing.T) {
	repo := NewUserRepository(&recordingConn{})

	user, err := repo.Find(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Contains(t, err.Error(), "table:users:")
	assert.Equal(t, model.User{}, user)
}

func TestFindTakesFirstRow(t *testing.T) {
	conn := &recordingConn{rows: []database.Row{
		{"id": int64(1), "username": "first", "email_address": "a"},
		{"id": int64(2), "username": "second", "email_address": "b"},
	}}

	user, err := NewUserRepository(conn).Find(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "first", user.Username)
}

func TestConnectionErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	repo := NewPostRepository(&recordingConn{err: boom})

	_, err := repo.All(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = repo.Find(ctx, 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = repo.Create(ctx, model.Post{})
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, repo.Update(ctx, model.Post{ID: 1}), boom)
	assert.ErrorIs(t, repo.Delete(ctx, 1), boom)
}

func TestCreateWithoutReturnedID(t *testing.T) {
	_, err := NewUserRepository(&recordingConn{}).Create(context.Background(), model.User{})
	assert.ErrorContains(t, err, "no id returned")
}

func TestAllDecodeFailureFailsWholeCall(t *testing.T) {
	conn := &recordingConn{rows: []database.Row{
		{"id": int64(1), "title": "ok", "content": "c", "views": int64(1), "user_id": int64(1)},
		{"id": int64(2), "title": "bad", "content": "c", "views": "lots", "user_id": int64(1)},
	}}

	posts, err := NewPostRepository(conn).All(context.Background())
	assert.ErrorIs(t, err, ErrColumnType)
	assert.Nil(t, posts)
}

func TestAllEmptyTable(t *testing.T) {
	users, err := NewUserRepository(&recordingConn{}).All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}
