package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/application/usecase"
	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type productFixture struct {
	uc         *usecase.ProductUseCase
	products   *memProductRepo
	categories *memCategoryRepo
	movements  *memMovementRepo
	categoryID string
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	products := newMemProductRepo()
	categories := newMemCategoryRepo()
	movements := &memMovementRepo{}
	runner := &memCatalogRunner{products: products, movements: movements}

	categoryID := uuid.New().String()
	require.NoError(t, categories.Create(&entity.Category{
		ID:        categoryID,
		Name:      "Electrónica",
		CreatedAt: time.Now(),
	}))

	return &productFixture{
		uc:         usecase.NewProductUseCase(runner, products, categories),
		products:   products,
		categories: categories,
		movements:  movements,
		categoryID: categoryID,
	}
}

func (f *productFixture) createRequest(name, sku string, quantity int) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:       name,
		SKU:        sku,
		Price:      decimal.NewFromFloat(19.99),
		Cost:       decimal.NewFromFloat(12.50),
		Quantity:   quantity,
		MinStock:   2,
		CategoryID: f.categoryID,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_RegistraStockInicialEnElLibro(t *testing.T) {
	f := newProductFixture(t)

	resp, err := f.uc.Create(context.Background(), f.createRequest("Teclado", "TEC-001", 15))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 15, resp.Quantity)
	assert.True(t, resp.IsActive, "los productos nacen activos")
	require.NotNil(t, resp.Category)
	assert.Equal(t, "Electrónica", resp.Category.Name)

	// El stock inicial queda documentado como movimiento IN.
	require.Len(t, f.movements.movements, 1)
	mov := f.movements.movements[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, 15, mov.Quantity)
	assert.Equal(t, entity.MovementReasonInitial, mov.Reason)
	assert.Equal(t, entity.MovementRefInitial, mov.Reference)
}

func TestProductCreate_StockCeroSinMovimiento(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.uc.Create(context.Background(), f.createRequest("Teclado", "TEC-001", 0))
	require.NoError(t, err)
	assert.Empty(t, f.movements.movements, "stock inicial cero no genera movimiento")
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.uc.Create(context.Background(), f.createRequest("Teclado", "TEC-001", 5))
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), f.createRequest("Otro teclado", "TEC-001", 5))
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestProductCreate_BarcodeDuplicado(t *testing.T) {
	f := newProductFixture(t)

	first := f.createRequest("Teclado", "TEC-001", 5)
	first.Barcode = strPtr("7701234567890")
	_, err := f.uc.Create(context.Background(), first)
	require.NoError(t, err)

	second := f.createRequest("Mouse", "MOU-001", 5)
	second.Barcode = strPtr("7701234567890")
	_, err = f.uc.Create(context.Background(), second)
	assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	f := newProductFixture(t)

	in := f.createRequest("Teclado", "TEC-001", 5)
	in.CategoryID = uuid.New().String()
	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	f := newProductFixture(t)

	cases := []struct {
		name   string
		mutate func(*dto.CreateProductRequest)
	}{
		{"sin nombre", func(in *dto.CreateProductRequest) { in.Name = "" }},
		{"sin SKU", func(in *dto.CreateProductRequest) { in.SKU = "" }},
		{"sin categoría", func(in *dto.CreateProductRequest) { in.CategoryID = "" }},
		{"cantidad negativa", func(in *dto.CreateProductRequest) { in.Quantity = -1 }},
		{"precio negativo", func(in *dto.CreateProductRequest) { in.Price = decimal.NewFromInt(-1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := f.createRequest("Teclado", "TEC-"+tc.name, 5)
			tc.mutate(&in)
			_, err := f.uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — ajuste manual de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_AjusteManualPositivo(t *testing.T) {
	f := newProductFixture(t)
	created, err := f.uc.Create(context.Background(), f.createRequest("Teclado", "TEC-001", 10))
	require.NoError(t, err)

	resp, err := f.uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Quantity: intPtr(14),
	})
	require.NoError(t, err)
	assert.Equal(t, 14, resp.Quantity)

	// Movimiento inicial + ajuste IN por el delta.
	require.Len(t, f.movements.movements, 2)
	adj := f.movements.movements[1]
	assert.Equal(t, entity.MovementTypeIN, adj.Type)
	assert.Equal(t, 4, adj.Quantity, "el ajuste registra la magnitud del delta")
	assert.Equal(t, entity.MovementReasonAdjustment, adj.Reason)
	assert.Equal(t, entity.MovementRefAdjustment, adj.Reference)
}

func TestProductUpdate_AjusteManualNegativo(t *testing.T) {
	f := newProductFixture(t)
	created, err := f.uc.Create(context.Background(), f.createRequest("Teclado", "TEC-001", 10))
	require.NoError(t, err)

	resp, err := f.uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Quantity: intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Quantity)

	adj := f.movements.movements[1]
	assert.Equal(t, entity.MovementTypeOUT, adj.Type)
	assert.Equal(t, 7, adj.Quantity)
	assert.Equal(t, entity.MovementReasonAdjustment, adj.Reason)
}

func TestProductUpdate_MismaCantidadSinMovimiento(t *testing.T) {
	f := newProductFixture(t)
	created, err := f.uc.Create(context.Background(), f.createRequest("Teclado", "TEC-001", 10))
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Quantity: intPtr(10),
		Name:     strPtr("Teclado mecánico"),
	})
	require.NoError(t, err)
	assert.Len(t, f.movements.movements, 1, "delta cero no genera ajuste")
}

func TestProductUpdate_CantidadNegativaRechazada(t *testing.T) {
	f := newProductFixture(t)
	created, err := f.uc.Create(context.Background(), f.createRequest("Teclado", "TEC-001", 10))
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Quantity: intPtr(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_ProductoInexistente(t *testing.T) {
	f := newProductFixture(t)
	_, err := f.uc.Update(context.Background(), uuid.New().String(), dto.UpdateProductRequest{
		Name: strPtr("Nada"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestProductDelete_ConHistorialDeVentasRechazado(t *testing.T) {
	f := newProductFixture(t)
	created, err := f.uc.Create(context.Background(), f.createRequest("Teclado", "TEC-001", 10))
	require.NoError(t, err)

	f.products.saleHistory[created.ID] = true

	err = f.uc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrHasSalesHistory,
		"un producto con líneas de venta no se borra, se desactiva")

	got, _ := f.products.GetByID(created.ID)
	assert.NotNil(t, got, "el producto debe seguir existiendo")
}

func TestProductDelete_SinHistorial(t *testing.T) {
	f := newProductFixture(t)
	created, err := f.uc.Create(context.Background(), f.createRequest("Teclado", "TEC-001", 10))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), created.ID))

	got, _ := f.products.GetByID(created.ID)
	assert.Nil(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListLowStock
// ──────────────────────────────────────────────────────────────────────────────

func TestProductListLowStock_SoloActivosEnUmbral(t *testing.T) {
	f := newProductFixture(t)

	low := f.createRequest("Casi agotado", "LOW-001", 1) // minStock 2 → bajo
	ok := f.createRequest("Surtido", "OK-001", 50)
	_, err := f.uc.Create(context.Background(), low)
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), ok)
	require.NoError(t, err)

	alerts, err := f.uc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "LOW-001", alerts[0].SKU)
	assert.True(t, alerts[0].LowStock)
}
