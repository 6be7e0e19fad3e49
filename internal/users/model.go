package users

// User is a stable identity. This subsystem never mutates users.
type User struct {
	ID       int64
	Username string
	Email    string
}
