package repository

import (
	"github.com/deppfellow/social-network/internal/database"
	"github.com/deppfellow/social-network/internal/model"
)

// PostRepository is CRUD over the posts table.
type PostRepository struct {
	*Table[model.Post]
}

var postSchema = Schema[model.Post]{
	Table:   "posts",
	Columns: []string{"title", "content", "views", "user_id"},
	Decode:  decodePost,
	Encode: func(p model.Post) []any {
		return []any{p.Title, p.Content, p.Views, p.UserID}
	},
	ID: func(p model.Post) int64 { return p.ID },
}

func NewPostRepository(conn Connection) *PostRepository {
	return &PostRepository{Table: NewTable(conn, postSchema)}
}

func decodePost(row database.Row) (model.Post, error) {
	d := rowDecoder{row: row}
	post := model.Post{
		ID:      d.integer("id"),
		Title:   d.text("title"),
		Content: d.text("content"),
		Views:   d.integer("views"),
		UserID:  d.integer("user_id"),
	}
	if d.err != nil {
		return model.Post{}, d.err
	}
	return post, nil
}
