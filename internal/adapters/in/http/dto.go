package http

import "time"

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RecordDraftRequest captures a partial checkout form keyed by session.
type RecordDraftRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	CartJSON  string `json:"cart_json"`
}

// OrderItemRequest is one cart line in an order or quote request.
type OrderItemRequest struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	VariantName string `json:"variant_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

// CreateOrderRequest places an order from a checkout.
type CreateOrderRequest struct {
	SessionID           string             `json:"session_id"`
	CustomerName        string             `json:"customer_name"`
	CustomerPhone       string             `json:"customer_phone"`
	Address             string             `json:"address"`
	City                string             `json:"city"`
	Items               []OrderItemRequest `json:"items"`
	Zone                string             `json:"zone"`
	CouponCode          string             `json:"coupon_code"`
	PaymentMethod       string             `json:"payment_method"`
	WaiveDeliveryCharge bool               `json:"waive_delivery_charge"`
	TransactionID       string             `json:"transaction_id"`
}

// CreateOrderResponse reports the placed order.
type CreateOrderResponse struct {
	OrderID            string `json:"order_id"`
	OrderNumber        string `json:"order_number"`
	PaymentRedirectURL string `json:"payment_redirect_url,omitempty"`
}

// TransitionOrderRequest moves an order to a target status.
// Override resubmits a transition that was withheld by a risk warning.
type TransitionOrderRequest struct {
	Target   string `json:"target"`
	Override bool   `json:"override"`
}

// RiskWarningResponse is returned when a confirmation is withheld.
type RiskWarningResponse struct {
	Code         int     `json:"code"`
	Message      string  `json:"message"`
	Phone        string  `json:"phone"`
	Tier         string  `json:"tier"`
	SuccessRatio float64 `json:"success_ratio"`
}

// CourierHistoryResponse is one courier's record in a risk assessment.
type CourierHistoryResponse struct {
	Name      string `json:"name"`
	Total     int    `json:"total_parcels"`
	Success   int    `json:"successful"`
	Cancelled int    `json:"cancelled"`
}

// RiskAssessmentResponse is the classified delivery history for a phone.
type RiskAssessmentResponse struct {
	Phone        string                   `json:"phone"`
	TotalParcels int                      `json:"total_parcels"`
	Successful   int                      `json:"successful"`
	Cancelled    int                      `json:"cancelled"`
	SuccessRatio float64                  `json:"success_ratio"`
	Tier         string                   `json:"tier"`
	PerCourier   []CourierHistoryResponse `json:"per_courier"`
	Inconclusive bool                     `json:"inconclusive"`
}

// DraftConversionRowResponse is one day of the checkout funnel report.
type DraftConversionRowResponse struct {
	Day            time.Time `json:"day"`
	Drafts         int       `json:"drafts"`
	Converted      int       `json:"converted"`
	ConversionRate float64   `json:"conversion_rate"`
}

// CourierBalanceResponse is the carrier-held cash-on-delivery balance.
type CourierBalanceResponse struct {
	Available int64  `json:"available"`
	Pending   int64  `json:"pending"`
	Currency  string `json:"currency"`
}

// PriceQuoteRequest prices a cart for display during checkout.
type PriceQuoteRequest struct {
	Items               []OrderItemRequest `json:"items"`
	Zone                string             `json:"zone"`
	CouponCode          string             `json:"coupon_code"`
	WaiveDeliveryCharge bool               `json:"waive_delivery_charge"`
	PartialPayment      bool               `json:"partial_payment"`
}

// PriceQuoteResponse is the priced breakdown for a cart.
type PriceQuoteResponse struct {
	Subtotal         int64 `json:"subtotal"`
	QuantityDiscount int64 `json:"quantity_discount"`
	CouponDiscount   int64 `json:"coupon_discount"`
	DiscountAmount   int64 `json:"discount_amount"`
	DeliveryCharge   int64 `json:"delivery_charge"`
	Total            int64 `json:"total"`
	PartialAmount    int64 `json:"partial_amount,omitempty"`
}
