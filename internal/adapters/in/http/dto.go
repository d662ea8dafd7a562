package http

import (
	"time"

	"foodtruck/internal/core/application/usecases/queries"
	"foodtruck/internal/core/domain/model/order"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SubmitOrderRequest is the body of POST /api/v1/orders.
type SubmitOrderRequest struct {
	CurryQuantity int `json:"curryQuantity"`
	NaanQuantity  int `json:"naanQuantity"`
}

// SubmitOrderResponse acknowledges an admitted order request. The order
// itself does not exist yet; jobId tracks the queued scheduling work.
type SubmitOrderResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"jobId"`
	Status  string `json:"status"`
}

// OrderResponse is one order in a listing or completion response.
type OrderResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	CurryQuantity int    `json:"curryQuantity"`
	NaanQuantity  int    `json:"naanQuantity"`
	PickupTime    string `json:"pickupTime"`
	CreatedAt     string `json:"createdAt"`
	Status        string `json:"status"`
}

func orderResponseFromQuery(row queries.OrderQueryResponse, loc *time.Location) OrderResponse {
	return OrderResponse{
		ID:            row.ID.String(),
		UserID:        row.UserID.String(),
		CurryQuantity: row.CurryQuantity,
		NaanQuantity:  row.NaanQuantity,
		PickupTime:    row.PickupTime.In(loc).Format(time.RFC3339),
		CreatedAt:     row.CreatedAt.In(loc).Format(time.RFC3339),
		Status:        row.Status.String(),
	}
}

func orderResponseFromAggregate(o *order.Order, loc *time.Location) OrderResponse {
	return OrderResponse{
		ID:            o.ID().String(),
		UserID:        o.UserID().String(),
		CurryQuantity: o.CurryQuantity().Value(),
		NaanQuantity:  o.NaanQuantity().Value(),
		PickupTime:    o.PickupTime().In(loc).Format(time.RFC3339),
		CreatedAt:     o.CreatedAt().In(loc).Format(time.RFC3339),
		Status:        o.Status().String(),
	}
}
