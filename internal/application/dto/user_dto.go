package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest entrada para crear un usuario.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Role      string `json:"role"` // ADMIN | MANAGER | SALESPERSON (por defecto SALESPERSON)
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse salida de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	SaleCount int       `json:"saleCount,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PageResponse   `json:"pagination"`
}

// UpdateUserRequest entrada para actualizar un usuario (campos opcionales).
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"isActive"`
}

// ChangePasswordRequest entrada para cambiar la contraseña.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// RoleCountDTO número de cuentas con un rol.
type RoleCountDTO struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// SalespersonStatsDTO desempeño de un vendedor en los últimos 30 días.
type SalespersonStatsDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	SaleCount int             `json:"salesCount"`
	Revenue   decimal.Decimal `json:"totalRevenue"`
}

// UserStatsResponse resumen de cuentas: totales, distribución por rol y
// los vendedores con mejor desempeño reciente.
type UserStatsResponse struct {
	TotalUsers     int                   `json:"totalUsers"`
	ActiveUsers    int                   `json:"activeUsers"`
	InactiveUsers  int                   `json:"inactiveUsers"`
	UsersByRole    []RoleCountDTO        `json:"usersByRole"`
	TopSalespeople []SalespersonStatsDTO `json:"topSalespeople"`
}
