// Package http is the inbound HTTP adapter. It translates echo requests
// into commands and queries and maps domain errors to status codes.
//
// The acting user comes from the X-User-Id and X-User-Role headers set by
// the API gateway after authentication.
package http

import (
	"errors"
	"net/http"

	"qatmarket/internal/core/application/usecases/commands"
	"qatmarket/internal/core/application/usecases/queries"
	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/ledger"
	"qatmarket/internal/core/domain/model/order"
	"qatmarket/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	userIDHeader   = "X-User-Id"
	userRoleHeader = "X-User-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	changeOrderStatusHandler    commands.ChangeOrderStatusCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	topUpWalletHandler          commands.TopUpWalletCommandHandler
	withdrawWalletHandler       commands.WithdrawWalletCommandHandler
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler
	createDriverHandler         commands.CreateDriverCommandHandler

	// Query handlers
	getOrderHandler               queries.GetOrderQueryHandler
	getOrdersByParticipantHandler queries.GetOrdersByParticipantQueryHandler
	getWalletBalanceHandler       queries.GetWalletBalanceQueryHandler
	getWalletTransactionsHandler  queries.GetWalletTransactionsQueryHandler
	getNotificationsHandler       queries.GetNotificationsQueryHandler
	getAvailableDriversHandler    queries.GetAvailableDriversQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	topUpWalletHandler commands.TopUpWalletCommandHandler,
	withdrawWalletHandler commands.WithdrawWalletCommandHandler,
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler,
	createDriverHandler commands.CreateDriverCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByParticipantHandler queries.GetOrdersByParticipantQueryHandler,
	getWalletBalanceHandler queries.GetWalletBalanceQueryHandler,
	getWalletTransactionsHandler queries.GetWalletTransactionsQueryHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
	getAvailableDriversHandler queries.GetAvailableDriversQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		changeOrderStatusHandler:      changeOrderStatusHandler,
		cancelOrderHandler:            cancelOrderHandler,
		topUpWalletHandler:            topUpWalletHandler,
		withdrawWalletHandler:         withdrawWalletHandler,
		markNotificationReadHandler:   markNotificationReadHandler,
		createDriverHandler:           createDriverHandler,
		getOrderHandler:               getOrderHandler,
		getOrdersByParticipantHandler: getOrdersByParticipantHandler,
		getWalletBalanceHandler:       getWalletBalanceHandler,
		getWalletTransactionsHandler:  getWalletTransactionsHandler,
		getNotificationsHandler:       getNotificationsHandler,
		getAvailableDriversHandler:    getAvailableDriversHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)

	api.GET("/wallet", s.GetWallet)
	api.GET("/wallet/transactions", s.GetWalletTransactions)
	api.POST("/wallet/topup", s.TopUpWallet)
	api.POST("/wallet/withdraw", s.WithdrawWallet)

	api.GET("/notifications", s.GetNotifications)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)

	api.POST("/drivers", s.CreateDriver)
	api.GET("/drivers", s.GetAvailableDrivers)
}

// CreateOrder handles POST /api/v1/orders - places a new order for the buyer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	buyerID, _, err := identity(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	var washerID *kernel.UUID
	if req.WasherID != nil {
		id, err := kernel.UUIDFromString(*req.WasherID)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, err)
		}
		washerID = &id
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		productID, err := kernel.UUIDFromString(line.ProductID)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, err)
		}

		item, err := order.NewItem(productID, line.UnitPrice, line.Quantity, line.Washing)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, err)
		}
		items = append(items, item)
	}

	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyerID, sellerID, washerID,
		items, req.Address, req.DeliveryTime, paymentMethod,
	)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	placed, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:       placed.ID().String(),
		Status:   placed.Status().String(),
		SaleCode: placed.SaleCode().String(),
		Total:    placed.Total(),
	})
}

// GetOrders handles GET /api/v1/orders - lists every order the user takes part in.
func (s *Server) GetOrders(ctx echo.Context) error {
	userID, _, err := identity(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	query, err := queries.NewGetOrdersByParticipantQuery(userID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	orders, err := s.getOrdersByParticipantHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = orderResponseFrom(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with history.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(result))
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - moves an order
// along its lifecycle on behalf of the acting role.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	_, role, err := identity(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	var req ChangeOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, role)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	_, role, err := identity(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, role)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetWallet handles GET /api/v1/wallet - returns the user's balance.
func (s *Server) GetWallet(ctx echo.Context) error {
	userID, _, err := identity(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	query, err := queries.NewGetWalletBalanceQuery(userID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	result, err := s.getWalletBalanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, WalletResponse{
		UserID:  result.UserID.String(),
		Balance: result.Balance,
	})
}

// GetWalletTransactions handles GET /api/v1/wallet/transactions.
func (s *Server) GetWalletTransactions(ctx echo.Context) error {
	userID, _, err := identity(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	query, err := queries.NewGetWalletTransactionsQuery(userID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	entries, err := s.getWalletTransactionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]TransactionResponse, len(entries))
	for i, entry := range entries {
		response[i] = TransactionResponse{
			ID:        entry.ID.String(),
			Delta:     entry.Delta,
			Reason:    entry.Reason,
			CreatedAt: entry.CreatedAt,
		}
		if entry.OrderID != nil {
			s := entry.OrderID.String()
			response[i].OrderID = &s
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// TopUpWallet handles POST /api/v1/wallet/topup.
func (s *Server) TopUpWallet(ctx echo.Context) error {
	userID, _, err := identity(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	var req TopUpWalletRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewTopUpWalletCommand(userID, req.Amount)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err := s.topUpWalletHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// WithdrawWallet handles POST /api/v1/wallet/withdraw.
func (s *Server) WithdrawWallet(ctx echo.Context) error {
	userID, _, err := identity(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	var req WithdrawWalletRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewWithdrawWalletCommand(userID, req.Amount)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err := s.withdrawWalletHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetNotifications handles GET /api/v1/notifications - the user's feed.
func (s *Server) GetNotifications(ctx echo.Context) error {
	userID, _, err := identity(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	query, err := queries.NewGetNotificationsQuery(userID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	events, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]NotificationResponse, len(events))
	for i, event := range events {
		response[i] = NotificationResponse{
			ID:        event.ID.String(),
			EventType: event.EventType,
			Payload:   event.Payload,
			CreatedAt: event.CreatedAt,
			Read:      event.Read,
		}
		if event.OrderID != nil {
			s := event.OrderID.String()
			response[i].OrderID = &s
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	userID, _, err := identity(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	notificationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, userID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err := s.markNotificationReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateDriver handles POST /api/v1/drivers - registers a driver on the roster.
func (s *Server) CreateDriver(ctx echo.Context) error {
	_, role, err := identity(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}
	if role != kernel.RoleAdmin {
		return errorJSON(ctx, http.StatusForbidden, order.ErrUnauthorizedRole)
	}

	var req CreateDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(driverID, req.Name, req.VehicleType)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err := s.createDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, DriverResponse{
		ID:          driverID.String(),
		Name:        req.Name,
		VehicleType: req.VehicleType,
	})
}

// GetAvailableDrivers handles GET /api/v1/drivers - lists free drivers.
func (s *Server) GetAvailableDrivers(ctx echo.Context) error {
	query := queries.NewGetAvailableDriversQuery()

	drivers, err := s.getAvailableDriversHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]DriverResponse, len(drivers))
	for i, d := range drivers {
		response[i] = DriverResponse{
			ID:          d.ID.String(),
			Name:        d.Name,
			VehicleType: d.VehicleType,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// identity extracts the acting user and role from the gateway headers.
func identity(ctx echo.Context) (kernel.UUID, kernel.Role, error) {
	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(userIDHeader))
	if err != nil {
		return kernel.UUID{}, kernel.RoleUnknown, err
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get(userRoleHeader))
	if err != nil {
		return kernel.UUID{}, kernel.RoleUnknown, err
	}

	return userID, role, nil
}

// domainError maps use case errors to HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err)
	case errors.Is(err, order.ErrUnauthorizedRole):
		return errorJSON(ctx, http.StatusForbidden, err)
	case errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrTerminalState),
		errors.Is(err, order.ErrRefundWindowClosed),
		errors.Is(err, order.ErrDriverIsRequired),
		errors.Is(err, commands.ErrNoAvailableDrivers),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return errorJSON(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		return errorJSON(ctx, http.StatusBadRequest, err)
	default:
		return errorJSON(ctx, http.StatusInternalServerError, err)
	}
}

func errorJSON(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
