package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrProductInactive    = errors.New("producto inactivo")
	ErrSaleNotFound       = errors.New("venta no encontrada")
	ErrCategoryNotFound   = errors.New("categoría no encontrada")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidStatus      = errors.New("estado de venta inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrDuplicateSKU       = errors.New("SKU duplicado")
	ErrDuplicateBarcode   = errors.New("código de barras duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrHasSalesHistory    = errors.New("el producto tiene historial de ventas")
	ErrHasProducts        = errors.New("la categoría tiene productos asociados")
)

// InsufficientStockError lleva el detalle de disponibilidad que el cliente
// necesita ver (producto, disponible vs solicitado). Compatible con
// errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}

// Is permite tratar el error detallado como ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
