package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ErrPaymentNotSettled is returned when the gateway reports a transaction
// status other than completed during checkout verification.
var ErrPaymentNotSettled = errors.New("gateway transaction is not settled")

// CreateOrderResult reports the placed order back to the caller.
type CreateOrderResult struct {
	OrderID     kernel.UUID
	OrderNumber string

	// PaymentRedirectURL is set for the partial payment method: the
	// customer finishes the up-front charge on the gateway's hosted page.
	PaymentRedirectURL string
}

// CreateOrderCommandHandler places an order from a priced checkout.
//
// The handler re-prices the cart server-side from the stored zone and coupon
// so client-submitted totals are never trusted, then persists the order with
// its items, converts the session draft, and bumps the coupon counter inside
// one transaction. A gateway payment is verified with the gateway before any
// state is written; anything short of a completed status aborts the checkout.
type CreateOrderCommandHandler struct {
	uowFactory    CheckoutUoWFactory
	paymentClient ports.PaymentClient
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a CheckoutUoWFactory for transactional persistence and a
// PaymentClient for gateway verification and partial charges.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory, paymentClient ports.PaymentClient,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		paymentClient: paymentClient,
	}
}

// Handle processes the order placement command.
func (h CreateOrderCommandHandler) Handle(
	ctx context.Context, cmd CreateOrderCommand,
) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	if cmd.PaymentMethod() == order.MethodGateway {
		status, err := h.paymentClient.VerifyTransaction(ctx, cmd.TransactionID())
		if err != nil {
			return CreateOrderResult{}, err
		}
		if status != ports.PaymentCompleted {
			return CreateOrderResult{}, fmt.Errorf("%w: status is %s", ErrPaymentNotSettled, status)
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()

	zone, err := uow.ZoneRepository().GetByName(ctx, cmd.ZoneName())
	if err != nil {
		return CreateOrderResult{}, err
	}

	var coupon *pricing.Coupon
	if cmd.CouponCode() != "" {
		found, couponErr := uow.CouponRepository().GetByCode(ctx, cmd.CouponCode())
		if errors.Is(couponErr, errs.ErrObjectNotFound) {
			return CreateOrderResult{}, pricing.NewCouponRejectedError(cmd.CouponCode(), pricing.CouponNotFound)
		}
		if couponErr != nil {
			return CreateOrderResult{}, couponErr
		}
		coupon = &found
	}

	priced, err := pricing.Compute(pricing.Request{
		Items:               cartItems(cmd.Items()),
		Tiers:               pricing.DefaultQuantityTiers(),
		Coupon:              coupon,
		Zone:                &zone,
		WaiveDeliveryCharge: cmd.WaiveDeliveryCharge(),
		PartialPayment:      cmd.PaymentMethod() == order.MethodPartial,
	}, now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	items := make([]order.Item, 0, len(cmd.Items()))
	for _, in := range cmd.Items() {
		item, itemErr := order.NewItem(
			kernel.NewUUID(), in.ProductID, in.Name, in.VariantName, in.Quantity, in.UnitPrice)
		if itemErr != nil {
			return CreateOrderResult{}, itemErr
		}
		items = append(items, item)
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), orderNumberFor(cmd.OrderID()), cmd.Customer(), items,
		priced, cmd.PaymentMethod(), cmd.CouponCode(), now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return CreateOrderResult{}, err
	}

	if cmd.CouponCode() != "" {
		if err = uow.CouponRepository().IncrementUsage(ctx, cmd.CouponCode()); err != nil {
			return CreateOrderResult{}, err
		}
	}

	if err = h.convertDraft(ctx, uow, cmd.SessionID(), cmd.OrderID(), now); err != nil {
		return CreateOrderResult{}, err
	}

	result := CreateOrderResult{
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.OrderNumber(),
	}

	if cmd.PaymentMethod() == order.MethodPartial {
		charge, chargeErr := h.paymentClient.CreateCharge(
			ctx, aggregate.OrderNumber(), aggregate.PartialPaymentAmount())
		if chargeErr != nil {
			return CreateOrderResult{}, chargeErr
		}
		result.PaymentRedirectURL = charge.RedirectURL
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return result, nil
}

// convertDraft marks the session draft converted inside the checkout
// transaction. An order placed without a recorded draft is not an error.
func (h CreateOrderCommandHandler) convertDraft(
	ctx context.Context, uow CheckoutUoW, sessionID string, orderID kernel.UUID, now time.Time,
) error {
	if sessionID == "" {
		return nil
	}

	draftRepo := uow.DraftRepository()
	d, err := draftRepo.GetBySession(ctx, sessionID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = d.Convert(orderID, now); err != nil {
		return err
	}
	return draftRepo.Upsert(ctx, d)
}

func cartItems(items []OrderItemInput) []pricing.CartItem {
	out := make([]pricing.CartItem, 0, len(items))
	for _, in := range items {
		out = append(out, pricing.CartItem{
			ProductID:   in.ProductID,
			Name:        in.Name,
			VariantName: in.VariantName,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
		})
	}
	return out
}

// orderNumberFor derives the human-facing order number from the order id.
// The id is minted per checkout, so the number is unique and a retry of the
// same checkout reuses it.
func orderNumberFor(id kernel.UUID) string {
	return "ORD-" + strings.ToUpper(id.String()[:8])
}
