package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

// UserUseCase administración de usuarios. La política de permisos vive aquí:
// un no-admin solo opera sobre su propio perfil y no puede tocar rol ni estado.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista usuarios con filtros (solo ADMIN; el handler aplica el RBAC).
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest, search, role, isActive string) (*dto.UserListResponse, error) {
	page.DefaultPage()
	filter := repository.UserFilter{
		Search: search,
		Role:   role,
		Limit:  page.Limit,
		Offset: page.Offset(),
	}
	if isActive != "" {
		active := isActive == "true"
		filter.IsActive = &active
	}
	list, total, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	users := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		count, _ := uc.repo.CountSales(u.ID)
		users = append(users, *toUserResponse(u, count))
	}
	return &dto.UserListResponse{
		Users:      users,
		Pagination: dto.NewPageResponse(page.Page, page.Limit, total),
	}, nil
}

// Get obtiene un usuario. Un no-admin solo puede ver su propio perfil.
func (uc *UserUseCase) Get(ctx context.Context, actorID, actorRole, id string) (*dto.UserResponse, error) {
	if actorRole != entity.RoleAdmin && actorID != id {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	count, _ := uc.repo.CountSales(id)
	return toUserResponse(user, count), nil
}

// Update actualiza un usuario. Un no-admin solo edita su propio perfil y no
// puede cambiar rol ni estado activo.
func (uc *UserUseCase) Update(ctx context.Context, actorID, actorRole, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actorRole != entity.RoleAdmin && actorID != id {
		return nil, domain.ErrForbidden
	}
	if actorRole != entity.RoleAdmin {
		in.Role = nil
		in.IsActive = nil
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil && *in.Email != user.Email {
		if dup, _ := uc.repo.GetByEmail(*in.Email); dup != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user, 0), nil
}

// ChangePassword cambia la contraseña. Cuando el actor cambia la suya propia
// debe acreditar la contraseña actual; un ADMIN cambiando la de otro, no.
func (uc *UserUseCase) ChangePassword(ctx context.Context, actorID, actorRole, id string, in dto.ChangePasswordRequest) error {
	if actorRole != entity.RoleAdmin && actorID != id {
		return domain.ErrForbidden
	}
	if len(in.NewPassword) < 6 {
		return domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if actorID == id {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return domain.ErrUnauthorized
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(id, string(hash))
}

// SetActive activa o desactiva un usuario (ADMIN). Un admin no puede
// desactivarse a sí mismo.
func (uc *UserUseCase) SetActive(ctx context.Context, actorID, id string, active bool) error {
	if !active && actorID == id {
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.SetActive(id, active)
}

// Delete elimina un usuario (ADMIN). Un admin no puede borrarse a sí mismo y
// un usuario con ventas registradas no se borra: se desactiva, para no dejar
// ventas huérfanas.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	count, err := uc.repo.CountSales(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrHasSalesHistory
	}
	return uc.repo.Delete(id)
}

const (
	topSalespeopleWindowDays = 30 // ventana del ranking de vendedores
	topSalespeopleLimit      = 5
)

// StatsOverview resumen de cuentas: totales, distribución por rol y los
// vendedores con más ventas COMPLETED del último mes.
func (uc *UserUseCase) StatsOverview(ctx context.Context) (*dto.UserStatsResponse, error) {
	total, active, err := uc.repo.CountAll()
	if err != nil {
		return nil, err
	}
	byRole, err := uc.repo.CountByRole()
	if err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -topSalespeopleWindowDays)
	top, err := uc.repo.TopSalespeople(since, topSalespeopleLimit)
	if err != nil {
		return nil, err
	}

	roles := make([]dto.RoleCountDTO, 0, len(byRole))
	for _, rc := range byRole {
		roles = append(roles, dto.RoleCountDTO{Role: rc.Role, Count: rc.Count})
	}
	sellers := make([]dto.SalespersonStatsDTO, 0, len(top))
	for _, s := range top {
		sellers = append(sellers, dto.SalespersonStatsDTO{
			ID:        s.ID,
			Name:      s.FirstName + " " + s.LastName,
			Email:     s.Email,
			SaleCount: s.SaleCount,
			Revenue:   s.Revenue.Round(2),
		})
	}

	return &dto.UserStatsResponse{
		TotalUsers:     total,
		ActiveUsers:    active,
		InactiveUsers:  total - active,
		UsersByRole:    roles,
		TopSalespeople: sellers,
	}, nil
}

func toUserResponse(u *entity.User, saleCount int) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		SaleCount: saleCount,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
