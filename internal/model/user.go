package model

// Roles stored in the "role" property of User nodes and in the JWT "role"
// claim. Admins may edit or delete any comment/review and manage the
// movie and actor catalog.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a User node. PasswordHash holds the bcrypt digest and is
// never serialized. LastActive is an RFC 3339 UTC timestamp updated on
// every mutating operation; ActivityScore counts those operations and
// backs the "most active user" endpoint.
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	PasswordHash  string `json:"-"`
	LastActive    string `json:"lastActive"`
	ActivityScore int64  `json:"activityScore"`
}
