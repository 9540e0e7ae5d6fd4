package dto

import "time"

// StockMovementResponse un registro del libro de inventario.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Type      string    `json:"type"` // IN | OUT
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}

// StockMovementListResponse listado del libro de inventario.
type StockMovementListResponse struct {
	Movements []StockMovementResponse `json:"movements"`
}
