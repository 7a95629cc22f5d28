package models

// User is the staff profile returned by the gateway's login endpoint. The
// console persists it alongside the token; it owns no user records itself.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // "admin" or "staff"
}

// CanAccessConsole reports whether the user's role grants back-office access.
func (u User) CanAccessConsole() bool {
	return u.Role == "admin" || u.Role == "staff"
}

// LoginResponse is the gateway's response to a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
