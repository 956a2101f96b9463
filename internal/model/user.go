package model

// User roles.
const (
	RoleAdmin   = "admin"
	RoleSales   = "sales"
	RoleManager = "manager"
)

// User is an account that can sign in and own leads.
type User struct {
	ID    int    `json:"id" db:"id"`
	Email string `json:"email" db:"email"`
	Role  string `json:"role" db:"role"`
}
