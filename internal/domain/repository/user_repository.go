package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
)

// UserFilter criterios de listado de usuarios.
type UserFilter struct {
	Search   string // nombre, apellido o email
	Role     string
	IsActive *bool
	Limit    int
	Offset   int
}

// RoleCount número de cuentas por rol.
type RoleCount struct {
	Role  string
	Count int
}

// SalespersonStats desempeño de un vendedor en una ventana de tiempo:
// ventas COMPLETED registradas e ingresos generados.
type SalespersonStats struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	SaleCount int
	Revenue   decimal.Decimal
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdatePassword(id, passwordHash string) error
	SetActive(id string, active bool) error
	List(filter UserFilter) ([]*entity.User, int, error)
	Delete(id string) error
	// CountSales número de ventas registradas por el usuario.
	CountSales(id string) (int, error)
	// CountAll total de cuentas y cuántas están activas.
	CountAll() (total, active int, err error)
	CountByRole() ([]RoleCount, error)
	// TopSalespeople vendedores activos con más ventas COMPLETED desde el
	// instante dado, ordenados por número de ventas.
	TopSalespeople(since time.Time, limit int) ([]SalespersonStats, error)
}
