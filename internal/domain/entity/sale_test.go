package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
)

func TestFormatSaleNumber(t *testing.T) {
	cases := []struct {
		day  time.Time
		seq  int
		want string
	}{
		{time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), 1, "SALE-20250615-0001"},
		{time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC), 42, "SALE-20250615-0042"},
		{time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), 999, "SALE-20251201-0999"},
		{time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC), 1234, "SALE-20260102-1234"},
		// La secuencia no se trunca a 4 dígitos, solo se rellena.
		{time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC), 10001, "SALE-20260102-10001"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, entity.FormatSaleNumber(tc.day, tc.seq))
	}
}

func TestValidSaleStatus(t *testing.T) {
	for _, s := range []string{
		entity.SaleStatusPending, entity.SaleStatusCompleted,
		entity.SaleStatusCancelled, entity.SaleStatusRefunded,
	} {
		assert.True(t, entity.ValidSaleStatus(s), "estado %s debe ser válido", s)
	}
	assert.False(t, entity.ValidSaleStatus("SHIPPED"))
	assert.False(t, entity.ValidSaleStatus("completed"), "los estados distinguen mayúsculas")
	assert.False(t, entity.ValidSaleStatus(""))
}

func TestProductLowStock(t *testing.T) {
	p := entity.Product{Quantity: 5, MinStock: 5}
	assert.True(t, p.LowStock(), "quantity == minStock cuenta como stock bajo")

	p.Quantity = 6
	assert.False(t, p.LowStock())

	p.Quantity = 0
	assert.True(t, p.LowStock())
}
