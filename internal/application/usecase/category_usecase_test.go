package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/application/usecase"
	"github.com/phoenixdev100/Sales-Suite/internal/domain"
)

func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	repo := newMemCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Papelería"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Papelería"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el nombre de categoría es único")
}

func TestCategoryCreate_SinNombre(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newMemCategoryRepo())
	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUpdate_RenombreChocaConOtra(t *testing.T) {
	repo := newMemCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Papelería"})
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Tecnología"})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), second.ID, dto.UpdateCategoryRequest{Name: strPtr("Papelería")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Re-guardar con el mismo nombre propio sí está permitido.
	_, err = uc.Update(context.Background(), second.ID, dto.UpdateCategoryRequest{Name: strPtr("Tecnología")})
	assert.NoError(t, err)
}

func TestCategoryDelete_ConProductosRechazado(t *testing.T) {
	repo := newMemCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	created, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Papelería"})
	require.NoError(t, err)
	repo.productCounts[created.ID] = 3

	err = uc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrHasProducts)

	got, _ := repo.GetByID(created.ID)
	assert.NotNil(t, got, "la categoría con productos debe sobrevivir al intento de borrado")
}

func TestCategoryDelete_VaciaSeElimina(t *testing.T) {
	repo := newMemCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	created, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Papelería"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	got, _ := repo.GetByID(created.ID)
	assert.Nil(t, got)
}

func TestCategoryGetByID_Inexistente(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newMemCategoryRepo())
	_, err := uc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryGetByID_IncluyeConteoDeProductos(t *testing.T) {
	repo := newMemCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	created, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Papelería"})
	require.NoError(t, err)
	repo.productCounts[created.ID] = 7

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ProductCount)
}
