package repository

import (
	"github.com/deppfellow/social-network/internal/database"
	"github.com/deppfellow/social-network/internal/model"
)

// UserRepository is CRUD over the users table.
type UserRepository struct {
	*Table[model.User]
}

var userSchema = Schema[model.User]{
	Table:   "users",
	Columns: []string{"username", "email_address"},
	Decode:  decodeUser,
	Encode: func(u model.User) []any {
		return []any{u.Username, u.EmailAddress}
	},
	ID: func(u model.User) int64 { return u.ID },
}

func NewUserRepository(conn Connection) *UserRepository {
	return &UserRepository{Table: NewTable(conn, userSchema)}
}

func decodeUser(row database.Row) (model.User, error) {
	d := rowDecoder{row: row}
	user := model.User{
		ID:           d.integer("id"),
		Username:     d.text("username"),
		EmailAddress: d.text("email_address"),
	}
	if d.err != nil {
		return model.User{}, d.err
	}
	return user, nil
}
