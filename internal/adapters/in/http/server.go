package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/draft"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// reportDateLayout is the format of the from/to query parameters on the
// draft conversion report.
const reportDateLayout = "2006-01-02"

// Server exposes the storefront operations over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	recordDraftHandler          commands.RecordDraftCommandHandler
	createOrderHandler          commands.CreateOrderCommandHandler
	transitionOrderHandler      commands.TransitionOrderCommandHandler
	dispatchOrderHandler        commands.DispatchOrderCommandHandler
	refreshCourierStatusHandler commands.RefreshCourierStatusCommandHandler

	// Query handlers
	assessRiskHandler            queries.AssessRiskQueryHandler
	draftConversionReportHandler queries.DraftConversionReportQueryHandler
	courierBalanceHandler        queries.CourierBalanceQueryHandler
	priceQuoteHandler            queries.PriceQuoteQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	recordDraftHandler commands.RecordDraftCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	refreshCourierStatusHandler commands.RefreshCourierStatusCommandHandler,
	assessRiskHandler queries.AssessRiskQueryHandler,
	draftConversionReportHandler queries.DraftConversionReportQueryHandler,
	courierBalanceHandler queries.CourierBalanceQueryHandler,
	priceQuoteHandler queries.PriceQuoteQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		recordDraftHandler:           recordDraftHandler,
		createOrderHandler:           createOrderHandler,
		transitionOrderHandler:       transitionOrderHandler,
		dispatchOrderHandler:         dispatchOrderHandler,
		refreshCourierStatusHandler:  refreshCourierStatusHandler,
		assessRiskHandler:            assessRiskHandler,
		draftConversionReportHandler: draftConversionReportHandler,
		courierBalanceHandler:        courierBalanceHandler,
		priceQuoteHandler:            priceQuoteHandler,
		logger:                       logger.With("component", "http_server"),
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/checkout/drafts", s.RecordDraft)
	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/:id/transition", s.TransitionOrder)
	v1.POST("/orders/:id/dispatch", s.DispatchOrder)
	v1.POST("/orders/:id/courier-status/refresh", s.RefreshCourierStatus)
	v1.GET("/risk/:phone", s.AssessRisk)
	v1.GET("/reports/draft-conversion", s.DraftConversionReport)
	v1.GET("/courier/balance", s.CourierBalance)
	v1.POST("/pricing/quote", s.PriceQuote)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// RecordDraft handles POST /api/v1/checkout/drafts.
//
// Draft recording is fire-and-forget: persistence failures are logged and
// the customer still gets a 202 so the storefront form never stalls on it.
func (s *Server) RecordDraft(ctx echo.Context) error {
	var req RecordDraftRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordDraftCommand(req.SessionID, draft.Fields{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
	}, req.CartJSON)
	if err != nil {
		return badRequest(ctx, "Invalid draft data: "+err.Error())
	}

	if handleErr := s.recordDraftHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		s.logger.WarnContext(ctx.Request().Context(), "Draft recording failed",
			"session_id", req.SessionID, "error", handleErr)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = commands.OrderItemInput{
			ProductID:   item.ProductID,
			Name:        item.Name,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		req.SessionID,
		req.CustomerName, req.CustomerPhone, req.Address, req.City,
		items,
		req.Zone, req.CouponCode,
		order.PaymentMethod(req.PaymentMethod),
		req.WaiveDeliveryCharge,
		req.TransactionID,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.orderPlacementError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID:            result.OrderID.String(),
		OrderNumber:        result.OrderNumber,
		PaymentRedirectURL: result.PaymentRedirectURL,
	})
}

func (s *Server) orderPlacementError(ctx echo.Context, err error) error {
	var couponErr *pricing.CouponRejectedError
	switch {
	case errors.As(err, &couponErr):
		return errorJSON(ctx, http.StatusUnprocessableEntity, couponErr.Error())
	case errors.Is(err, commands.ErrPaymentNotSettled):
		return errorJSON(ctx, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Order placement failed", "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to place order")
	}
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, req.Target, req.Override)
	if err != nil {
		return badRequest(ctx, "Invalid transition: "+err.Error())
	}

	err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)

	var warning *commands.RiskWarningError
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.As(err, &warning):
		return ctx.JSON(http.StatusConflict, RiskWarningResponse{
			Code:         http.StatusConflict,
			Message:      "Confirmation withheld: resubmit with override to proceed",
			Phone:        warning.Phone,
			Tier:         string(warning.Tier),
			SuccessRatio: warning.SuccessRatio,
		})
	case errors.Is(err, order.ErrTerminalState):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Order transition failed",
			"order_id", orderID.String(), "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to transition order")
	}
}

// DispatchOrder handles POST /api/v1/orders/:id/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid dispatch request: "+err.Error())
	}

	err = s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd)

	var rejected *ports.DispatchRejectedError
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.Is(err, order.ErrAlreadyDispatched),
		errors.Is(err, order.ErrNotDispatchEligible):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.As(err, &rejected):
		return errorJSON(ctx, http.StatusUnprocessableEntity, rejected.Error())
	case errors.Is(err, ports.ErrDispatchOutcomeUnknown):
		return errorJSON(ctx, http.StatusBadGateway, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Order dispatch failed",
			"order_id", orderID.String(), "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to dispatch order")
	}
}

// RefreshCourierStatus handles POST /api/v1/orders/:id/courier-status/refresh.
func (s *Server) RefreshCourierStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewRefreshCourierStatusCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid refresh request: "+err.Error())
	}

	err = s.refreshCourierStatusHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.Is(err, order.ErrNotDispatchEligible):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Courier status refresh failed",
			"order_id", orderID.String(), "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to refresh courier status")
	}
}

// AssessRisk handles GET /api/v1/risk/:phone.
func (s *Server) AssessRisk(ctx echo.Context) error {
	query, err := queries.NewAssessRiskQuery(ctx.Param("phone"))
	if err != nil {
		return badRequest(ctx, "Invalid phone number: "+err.Error())
	}

	assessment, err := s.assessRiskHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to assess risk")
	}

	perCourier := make([]CourierHistoryResponse, len(assessment.PerCourier))
	for i, courier := range assessment.PerCourier {
		perCourier[i] = CourierHistoryResponse{
			Name:      courier.Name,
			Total:     courier.Total,
			Success:   courier.Success,
			Cancelled: courier.Cancelled,
		}
	}

	return ctx.JSON(http.StatusOK, RiskAssessmentResponse{
		Phone:        assessment.Phone,
		TotalParcels: assessment.TotalParcels,
		Successful:   assessment.Successful,
		Cancelled:    assessment.Cancelled,
		SuccessRatio: assessment.SuccessRatio,
		Tier:         string(assessment.Tier),
		PerCourier:   perCourier,
		Inconclusive: assessment.Inconclusive,
	})
}

// DraftConversionReport handles GET /api/v1/reports/draft-conversion.
// The from/to parameters are dates; the interval is [from, to).
func (s *Server) DraftConversionReport(ctx echo.Context) error {
	from, err := time.Parse(reportDateLayout, ctx.QueryParam("from"))
	if err != nil {
		return badRequest(ctx, "Invalid from date, expected YYYY-MM-DD")
	}
	to, err := time.Parse(reportDateLayout, ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, "Invalid to date, expected YYYY-MM-DD")
	}

	query, err := queries.NewDraftConversionReportQuery(from, to)
	if err != nil {
		return badRequest(ctx, "Invalid date range: "+err.Error())
	}

	report, err := s.draftConversionReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Draft conversion report failed", "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to build report")
	}

	response := make([]DraftConversionRowResponse, len(report))
	for i, row := range report {
		response[i] = DraftConversionRowResponse{
			Day:            row.Day,
			Drafts:         row.Drafts,
			Converted:      row.Converted,
			ConversionRate: row.ConversionRate,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CourierBalance handles GET /api/v1/courier/balance.
func (s *Server) CourierBalance(ctx echo.Context) error {
	balance, err := s.courierBalanceHandler.Handle(ctx.Request().Context(), queries.NewCourierBalanceQuery())
	if err != nil {
		return errorJSON(ctx, http.StatusBadGateway, "Carrier balance unavailable")
	}

	return ctx.JSON(http.StatusOK, CourierBalanceResponse{
		Available: balance.Available,
		Pending:   balance.Pending,
		Currency:  balance.Currency,
	})
}

// PriceQuote handles POST /api/v1/pricing/quote.
// The quote is display-only; order placement re-prices server-side.
func (s *Server) PriceQuote(ctx echo.Context) error {
	var req PriceQuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]pricing.CartItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = pricing.CartItem{
			ProductID:   item.ProductID,
			Name:        item.Name,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	query, err := queries.NewPriceQuoteQuery(
		items, req.Zone, req.CouponCode, req.WaiveDeliveryCharge, req.PartialPayment,
	)
	if err != nil {
		return badRequest(ctx, "Invalid quote request: "+err.Error())
	}

	result, err := s.priceQuoteHandler.Handle(ctx.Request().Context(), query)

	var couponErr *pricing.CouponRejectedError
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, PriceQuoteResponse{
			Subtotal:         result.Subtotal,
			QuantityDiscount: result.QuantityDiscount,
			CouponDiscount:   result.CouponDiscount,
			DiscountAmount:   result.DiscountAmount,
			DeliveryCharge:   result.DeliveryCharge,
			Total:            result.Total,
			PartialAmount:    result.PartialAmount,
		})
	case errors.As(err, &couponErr):
		return errorJSON(ctx, http.StatusUnprocessableEntity, couponErr.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return badRequest(ctx, err.Error())
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Price quote failed", "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to price cart")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return errorJSON(ctx, http.StatusBadRequest, message)
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
