package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin       = "ADMIN"
	RoleManager     = "MANAGER"
	RoleSalesperson = "SALESPERSON"
)

// ValidRole indica si el rol es uno de los permitidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSalesperson:
		return true
	}
	return false
}

// User representa un usuario del sistema (vendedor, gerente o administrador).
type User struct {
	ID           string
	Email        string // único
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
