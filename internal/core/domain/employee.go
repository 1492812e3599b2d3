package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// FirstEmployeeID is the id given to the first employee ever registered.
const FirstEmployeeID int64 = 1000

// Employee is a single record of the employee directory.
type Employee struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Designation  string `json:"designation"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// Subject is the identity carried by a verified access token.
type Subject struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the subject holds the admin role.
func (s Subject) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// ValidRole reports whether role is one of the two known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
