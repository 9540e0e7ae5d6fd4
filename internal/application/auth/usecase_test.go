package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixdev100/Sales-Suite/internal/application/auth"
	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
	pkgjwt "github.com/phoenixdev100/Sales-Suite/pkg/jwt"
)

// fakeUserRepo repo en memoria con las operaciones que usa auth.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(*entity.User) error           { return nil }
func (r *fakeUserRepo) UpdatePassword(string, string) error { return nil }

func (r *fakeUserRepo) SetActive(id string, active bool) error {
	if u, ok := r.users[id]; ok {
		u.IsActive = active
	}
	return nil
}

func (r *fakeUserRepo) List(repository.UserFilter) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Delete(string) error            { return nil }
func (r *fakeUserRepo) CountSales(string) (int, error) { return 0, nil }
func (r *fakeUserRepo) CountAll() (int, int, error)    { return 0, 0, nil }

func (r *fakeUserRepo) CountByRole() ([]repository.RoleCount, error) { return nil, nil }

func (r *fakeUserRepo) TopSalespeople(time.Time, int) ([]repository.SalespersonStats, error) {
	return nil, nil
}

var testJWTCfg = auth.JWTConfig{
	Secret:     "auth-test-secret",
	ExpMinutes: 60,
	Issuer:     "sales-suite-test",
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:     "ana@example.com",
		Password:  "secreta1",
		FirstName: "Ana",
		LastName:  "García",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_RolPorDefectoVendedor(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	resp, err := uc.Register(registerRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSalesperson, resp.Role, "sin rol explícito se asigna SALESPERSON")
	assert.True(t, resp.IsActive)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	_, err = uc.Register(registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RolInvalido(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	in := registerRequest()
	in.Role = "SUPERUSER"
	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_PasswordCorta(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	in := registerRequest()
	in.Password = "abc"
	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenConClaimsDelUsuario(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	in := registerRequest()
	in.Role = entity.RoleManager
	created, err := uc.Register(in)
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: in.Email, Password: in.Password})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, created.ID, resp.User.ID)

	// El token lleva el usuario y el rol para el RBAC.
	userID, role, err := pkgjwt.Parse(testJWTCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleManager, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	in := registerRequest()
	_, err := uc.Register(in)
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: in.Email, Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	in := registerRequest()
	created, err := uc.Register(in)
	require.NoError(t, err)
	require.NoError(t, repo.SetActive(created.ID, false))

	_, err = uc.Login(dto.LoginRequest{Email: in.Email, Password: in.Password})
	assert.ErrorIs(t, err, domain.ErrForbidden, "una cuenta desactivada no puede iniciar sesión")
}

// ──────────────────────────────────────────────────────────────────────────────
// Me
// ──────────────────────────────────────────────────────────────────────────────

func TestMe_DevuelvePerfil(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)

	created, err := uc.Register(registerRequest())
	require.NoError(t, err)

	me, err := uc.Me(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, me.Email)
}

func TestMe_Inexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWTCfg)
	_, err := uc.Me("no-such-id")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
