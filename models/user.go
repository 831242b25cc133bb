package models

// User represents a login account. It maps to the `users` table in SQLite.
// PasswordDigest holds the hex SHA-256 of the password; it is never exposed
// over JSON.
type User struct {
	ID             int64  `db:"id" json:"id"`
	Username       string `db:"username" json:"username"`
	PasswordDigest string `db:"password" json:"-"`
	Role           string `db:"role" json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
