package model

// Post mirrors one row of the posts table.
// UserID references users.id; integrity is enforced by the schema only.
type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Views   int64  `json:"views"`
	UserID  int64  `json:"user_id"`
}
