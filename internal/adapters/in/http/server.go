// Package http exposes the order pipeline over REST plus a server-sent
// events stream for order notifications.
package http

import (
	"errors"
	"net/http"
	"time"

	"foodtruck/internal/adapters/out/notify"
	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/application/usecases/queries"
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler    commands.SubmitOrderCommandHandler
	markOrderReadyHandler commands.MarkOrderReadyCommandHandler

	// Query handlers
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler
	getUserOrdersHandler     queries.GetUserOrdersQueryHandler

	identity ports.IdentityProvider
	hub      *notify.Hub
	location *time.Location
}

// NewServer creates a new HTTP server with the required command and query handlers.
// The location controls how timestamps are rendered in responses; nil falls
// back to UTC.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	markOrderReadyHandler commands.MarkOrderReadyCommandHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getUserOrdersHandler queries.GetUserOrdersQueryHandler,
	identity ports.IdentityProvider,
	hub *notify.Hub,
	location *time.Location,
) *Server {
	if location == nil {
		location = time.UTC
	}

	return &Server{
		submitOrderHandler:       submitOrderHandler,
		markOrderReadyHandler:    markOrderReadyHandler,
		getOrdersByStatusHandler: getOrdersByStatusHandler,
		getUserOrdersHandler:     getUserOrdersHandler,
		identity:                 identity,
		hub:                      hub,
		location:                 location,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1. Every route requires a
// valid bearer token; completing and listing all orders additionally
// require the operator role.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", bearerAuth(s.identity))

	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/stream", s.StreamOrderEvents)
	api.PATCH("/orders/:id/ready", s.MarkOrderReady, requireOperator)
}

// SubmitOrder handles POST /api/v1/orders. The request is admitted into the
// scheduling queue and acknowledged with 202; the pickup time arrives later
// over the event stream.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req SubmitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSubmitOrderCommand(principalFrom(ctx).UserID, req.CurryQuantity, req.NaanQuantity)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	handle, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to accept order",
		})
	}

	return ctx.JSON(http.StatusAccepted, SubmitOrderResponse{
		Success: true,
		JobID:   handle.JobID.String(),
		Status:  handle.Status,
	})
}

// MarkOrderReady handles PATCH /api/v1/orders/:id/ready. Operators complete
// an order exactly once; a second attempt conflicts.
func (s *Server) MarkOrderReady(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	completed, err := s.markOrderReadyHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Order is already completed",
		})
	case err != nil:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to complete order",
		})
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(completed, s.location))
}

// GetOrders handles GET /api/v1/orders. Operators see the whole order book;
// customers see only their own orders. An optional status query parameter
// narrows either view.
func (s *Server) GetOrders(ctx echo.Context) error {
	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Unknown status: " + raw,
			})
		}
		statusFilter = &status
	}

	principal := principalFrom(ctx)

	var (
		rows []queries.OrderQueryResponse
		err  error
	)
	if principal.IsOperator() {
		rows, err = s.listAllOrders(ctx, statusFilter)
	} else {
		rows, err = s.listUserOrders(ctx, principal.UserID, statusFilter)
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OrderResponse, len(rows))
	for i, row := range rows {
		response[i] = orderResponseFromQuery(row, s.location)
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) listAllOrders(ctx echo.Context, statusFilter *order.Status) ([]queries.OrderQueryResponse, error) {
	if statusFilter == nil {
		return s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	}

	query, err := queries.NewGetOrdersByStatusQuery(*statusFilter)
	if err != nil {
		return nil, err
	}
	return s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
}

func (s *Server) listUserOrders(
	ctx echo.Context,
	userID kernel.UUID,
	statusFilter *order.Status,
) ([]queries.OrderQueryResponse, error) {
	var (
		query queries.GetUserOrdersQuery
		err   error
	)
	if statusFilter == nil {
		query, err = queries.NewGetUserOrdersQuery(userID)
	} else {
		query, err = queries.NewGetUserOrdersByStatusQuery(userID, *statusFilter)
	}
	if err != nil {
		return nil, err
	}

	return s.getUserOrdersHandler.Handle(ctx.Request().Context(), query)
}
