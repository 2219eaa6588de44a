package usecase

import (
	"context"

	"currypoint/internal/domain/entity"
	"currypoint/internal/domain/repository"
)

// QuoteInput describes an order before payment. CouponCode is optional and
// matched case insensitively.
type QuoteInput struct {
	CustomerID int
	Amount     float64
	CouponCode string
}

// Quote previews a payment: what is discounted, what is paid, what is earned
// and the UPI link to pay it with.
type Quote struct {
	Amount       float64        `json:"amount"`
	Discount     float64        `json:"discount"`
	FinalAmount  float64        `json:"finalAmount"`
	PointsToEarn int            `json:"pointsToEarn"`
	Coupon       *entity.Coupon `json:"coupon,omitempty"`
	PaymentLink  string         `json:"paymentLink"`
}

// RecordPaymentInput confirms a completed payment.
type RecordPaymentInput struct {
	CustomerID int
	Amount     float64
	CouponCode string
}

// PaymentOutput is the ledger state after a payment was recorded.
type PaymentOutput struct {
	Customer    *entity.Customer
	Transaction *entity.Transaction
	Discount    float64
	BecameVip   bool
	Write       *repository.WriteResult
}

// RedeemInput spends points for a rupee amount.
type RedeemInput struct {
	CustomerID int
	Rupees     float64
}

// RedemptionOutput is the ledger state after a redemption.
type RedemptionOutput struct {
	Customer    *entity.Customer
	Transaction *entity.Transaction
	Write       *repository.WriteResult
}

// PaymentUsecase earns and spends loyalty points.
type PaymentUsecase interface {
	Quote(ctx context.Context, input QuoteInput) (*Quote, error)
	// PaymentQR renders the quote's payment link as a PNG image.
	PaymentQR(ctx context.Context, input QuoteInput) ([]byte, error)
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*PaymentOutput, error)
	RedeemPoints(ctx context.Context, input RedeemInput) (*RedemptionOutput, error)
}
