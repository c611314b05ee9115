package model

// User mirrors one row of the users table.
// ID is assigned by the database on insert.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	EmailAddress string `json:"email_address"`
}
