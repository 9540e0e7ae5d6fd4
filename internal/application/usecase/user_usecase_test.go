package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/application/usecase"
	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
)

func seedUser(t *testing.T, repo *memUserRepo, email, role, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(u))
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestUserGet_NoAdminSoloVeSuPerfil(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	vendedor := seedUser(t, repo, "vendedor@example.com", entity.RoleSalesperson, "secret1")
	otro := seedUser(t, repo, "otro@example.com", entity.RoleSalesperson, "secret1")

	// Su propio perfil sí.
	got, err := uc.Get(context.Background(), vendedor.ID, vendedor.Role, vendedor.ID)
	require.NoError(t, err)
	assert.Equal(t, vendedor.Email, got.Email)

	// El perfil de otro, no.
	_, err = uc.Get(context.Background(), vendedor.ID, vendedor.Role, otro.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserUpdate_NoAdminNoPuedeEscalarRol(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	vendedor := seedUser(t, repo, "vendedor@example.com", entity.RoleSalesperson, "secret1")

	adminRole := entity.RoleAdmin
	resp, err := uc.Update(context.Background(), vendedor.ID, vendedor.Role, vendedor.ID, dto.UpdateUserRequest{
		FirstName: strPtr("Nuevo"),
		Role:      &adminRole,
	})
	require.NoError(t, err)

	// El cambio de nombre pasa; el de rol se descarta en silencio.
	assert.Equal(t, "Nuevo", resp.FirstName)
	assert.Equal(t, entity.RoleSalesperson, resp.Role, "un no-admin no puede cambiar su propio rol")
}

func TestUserUpdate_EmailDuplicado(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	admin := seedUser(t, repo, "admin@example.com", entity.RoleAdmin, "secret1")
	otro := seedUser(t, repo, "otro@example.com", entity.RoleSalesperson, "secret1")

	_, err := uc.Update(context.Background(), admin.ID, admin.Role, otro.ID, dto.UpdateUserRequest{
		Email: strPtr("admin@example.com"),
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUpdate_RolInvalido(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	admin := seedUser(t, repo, "admin@example.com", entity.RoleAdmin, "secret1")
	otro := seedUser(t, repo, "otro@example.com", entity.RoleSalesperson, "secret1")

	badRole := "SUPERUSER"
	_, err := uc.Update(context.Background(), admin.ID, admin.Role, otro.ID, dto.UpdateUserRequest{
		Role: &badRole,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambio de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestUserChangePassword_PropiaRequiereActual(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	vendedor := seedUser(t, repo, "vendedor@example.com", entity.RoleSalesperson, "secret1")

	// Contraseña actual incorrecta → rechazo.
	err := uc.ChangePassword(context.Background(), vendedor.ID, vendedor.Role, vendedor.ID, dto.ChangePasswordRequest{
		CurrentPassword: "equivocada",
		NewPassword:     "nueva123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Con la actual correcta, el hash cambia.
	err = uc.ChangePassword(context.Background(), vendedor.ID, vendedor.Role, vendedor.ID, dto.ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "nueva123",
	})
	require.NoError(t, err)

	stored, _ := repo.GetByID(vendedor.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nueva123")))
}

func TestUserChangePassword_AdminNoNecesitaActual(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	admin := seedUser(t, repo, "admin@example.com", entity.RoleAdmin, "secret1")
	vendedor := seedUser(t, repo, "vendedor@example.com", entity.RoleSalesperson, "secret1")

	err := uc.ChangePassword(context.Background(), admin.ID, admin.Role, vendedor.ID, dto.ChangePasswordRequest{
		NewPassword: "reseteada",
	})
	assert.NoError(t, err, "un ADMIN restablece contraseñas ajenas sin acreditar la actual")
}

func TestUserChangePassword_MuyCorta(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	vendedor := seedUser(t, repo, "vendedor@example.com", entity.RoleSalesperson, "secret1")

	err := uc.ChangePassword(context.Background(), vendedor.ID, vendedor.Role, vendedor.ID, dto.ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "abc",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Activación y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestUserSetActive_AdminNoSeDesactivaASiMismo(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	admin := seedUser(t, repo, "admin@example.com", entity.RoleAdmin, "secret1")

	err := uc.SetActive(context.Background(), admin.ID, admin.ID, false)
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, _ := repo.GetByID(admin.ID)
	assert.True(t, stored.IsActive)
}

func TestUserSetActive_DesactivaYReactiva(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	admin := seedUser(t, repo, "admin@example.com", entity.RoleAdmin, "secret1")
	vendedor := seedUser(t, repo, "vendedor@example.com", entity.RoleSalesperson, "secret1")

	require.NoError(t, uc.SetActive(context.Background(), admin.ID, vendedor.ID, false))
	stored, _ := repo.GetByID(vendedor.ID)
	assert.False(t, stored.IsActive)

	require.NoError(t, uc.SetActive(context.Background(), admin.ID, vendedor.ID, true))
	stored, _ = repo.GetByID(vendedor.ID)
	assert.True(t, stored.IsActive)
}

func TestUserDelete_ConVentasRechazado(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	admin := seedUser(t, repo, "admin@example.com", entity.RoleAdmin, "secret1")
	vendedor := seedUser(t, repo, "vendedor@example.com", entity.RoleSalesperson, "secret1")
	repo.saleCounts[vendedor.ID] = 12

	err := uc.Delete(context.Background(), admin.ID, vendedor.ID)
	assert.ErrorIs(t, err, domain.ErrHasSalesHistory,
		"un usuario con ventas registradas se desactiva, no se borra")

	stored, _ := repo.GetByID(vendedor.ID)
	assert.NotNil(t, stored)
}

func TestUserDelete_PropiaCuentaRechazado(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	admin := seedUser(t, repo, "admin@example.com", entity.RoleAdmin, "secret1")

	err := uc.Delete(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserDelete_SinVentas(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)
	admin := seedUser(t, repo, "admin@example.com", entity.RoleAdmin, "secret1")
	vendedor := seedUser(t, repo, "vendedor@example.com", entity.RoleSalesperson, "secret1")

	require.NoError(t, uc.Delete(context.Background(), admin.ID, vendedor.ID))
	stored, _ := repo.GetByID(vendedor.ID)
	assert.Nil(t, stored)
}

// ──────────────────────────────────────────────────────────────────────────────
// StatsOverview
// ──────────────────────────────────────────────────────────────────────────────

func TestUserStatsOverview_ResumenYRanking(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	seedUser(t, repo, "admin@example.com", entity.RoleAdmin, "secret1")
	ana := seedUser(t, repo, "ana@example.com", entity.RoleSalesperson, "secret1")
	luis := seedUser(t, repo, "luis@example.com", entity.RoleSalesperson, "secret1")
	inactivo := seedUser(t, repo, "inactivo@example.com", entity.RoleSalesperson, "secret1")
	require.NoError(t, repo.SetActive(inactivo.ID, false))

	repo.saleCounts[ana.ID] = 7
	repo.saleRevenue[ana.ID] = decimal.RequireFromString("350.00")
	repo.saleCounts[luis.ID] = 3
	repo.saleRevenue[luis.ID] = decimal.RequireFromString("90.00")

	stats, err := uc.StatsOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalUsers)
	assert.Equal(t, 3, stats.ActiveUsers)
	assert.Equal(t, 1, stats.InactiveUsers)

	require.Len(t, stats.UsersByRole, 2)
	assert.Equal(t, entity.RoleAdmin, stats.UsersByRole[0].Role)
	assert.Equal(t, 1, stats.UsersByRole[0].Count)
	assert.Equal(t, entity.RoleSalesperson, stats.UsersByRole[1].Role)
	assert.Equal(t, 3, stats.UsersByRole[1].Count, "la distribución por rol incluye cuentas inactivas")

	// El ranking solo incluye vendedores activos, ordenados por ventas.
	require.Len(t, stats.TopSalespeople, 2)
	assert.Equal(t, ana.ID, stats.TopSalespeople[0].ID)
	assert.Equal(t, "Test User", stats.TopSalespeople[0].Name)
	assert.Equal(t, 7, stats.TopSalespeople[0].SaleCount)
	assert.True(t, decimal.RequireFromString("350.00").Equal(stats.TopSalespeople[0].Revenue))
	assert.Equal(t, luis.ID, stats.TopSalespeople[1].ID)
}
