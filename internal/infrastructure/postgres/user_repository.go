package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, first_name, last_name, role, is_active, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (insensible a mayúsculas).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *UserRepo) getOne(query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update actualiza los datos del perfil (no toca la contraseña).
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, first_name = $3, last_name = $4, role = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.FirstName, user.LastName, user.Role, user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword cambia solo el hash de la contraseña.
func (r *UserRepo) UpdatePassword(id, passwordHash string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

// SetActive activa o desactiva la cuenta.
func (r *UserRepo) SetActive(id string, active bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	return nil
}

// List lista usuarios con filtros dinámicos y paginación.
func (r *UserRepo) List(filter repository.UserFilter) ([]*entity.User, int, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(first_name ILIKE %s OR last_name ILIKE %s OR email ILIKE %s)", p, p, p))
	}
	if filter.Role != "" {
		conds = append(conds, "role = "+arg(filter.Role))
	}
	if filter.IsActive != nil {
		conds = append(conds, "is_active = "+arg(*filter.IsActive))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY created_at DESC LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, total, rows.Err()
}

// CountSales número de ventas registradas por el usuario.
func (r *UserRepo) CountSales(id string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales WHERE sold_by_id = $1`, id,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count user sales: %w", err)
	}
	return count, nil
}

// CountAll total de cuentas y cuántas están activas.
func (r *UserRepo) CountAll() (int, int, error) {
	var total, active int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active = true) FROM users`,
	).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("count users: %w", err)
	}
	return total, active, nil
}

// CountByRole número de cuentas por rol.
func (r *UserRepo) CountByRole() ([]repository.RoleCount, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT role, COUNT(*) FROM users GROUP BY role ORDER BY role`,
	)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	defer rows.Close()

	var list []repository.RoleCount
	for rows.Next() {
		var rc repository.RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count); err != nil {
			return nil, fmt.Errorf("scan role count: %w", err)
		}
		list = append(list, rc)
	}
	return list, rows.Err()
}

// TopSalespeople vendedores activos con más ventas COMPLETED desde el
// instante dado, ordenados por número de ventas.
func (r *UserRepo) TopSalespeople(since time.Time, limit int) ([]repository.SalespersonStats, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, u.email,
		       COUNT(s.id)                    AS sale_count,
		       COALESCE(SUM(s.final_amount), 0) AS revenue
		FROM users u
		LEFT JOIN sales s ON s.sold_by_id = u.id
		     AND s.status = $1 AND s.created_at >= $2
		WHERE u.role = $3 AND u.is_active = true
		GROUP BY u.id, u.first_name, u.last_name, u.email
		ORDER BY sale_count DESC
		LIMIT $4`
	rows, err := r.q.Query(context.Background(), query,
		entity.SaleStatusCompleted, since, entity.RoleSalesperson, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top salespeople: %w", err)
	}
	defer rows.Close()

	var list []repository.SalespersonStats
	for rows.Next() {
		var s repository.SalespersonStats
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.SaleCount, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan salesperson stats: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina un usuario. El caso de uso ya verificó que no tenga ventas.
func (r *UserRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
