package impl

import (
	"context"
	"log/slog"

	deliverycontext "currypoint/internal/delivery/context"
	"currypoint/internal/domain/entity"
	domainerrors "currypoint/internal/domain/errors"
	"currypoint/internal/domain/loyalty"
	"currypoint/internal/domain/repository"
	"currypoint/internal/domain/service"
	"currypoint/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type paymentService struct {
	store  repository.LedgerStore
	qrcode service.QRCodeService
	now    Clock
	logger *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	Store         repository.LedgerStore
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
	Clock         Clock `optional:"true"`
}

func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		store:  params.Store,
		qrcode: params.QRCodeService,
		now:    clockOrDefault(params.Clock),
		logger: params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// resolveCoupon looks up code for a customer. An empty code resolves to no
// coupon. A coupon the customer may not use is rejected; one merely below its
// minimum order value is returned and discounts nothing.
func resolveCoupon(coupons []entity.Coupon, code string, customer entity.Customer, now Clock) (int, error) {
	if normalizeCouponCode(code) == "" {
		return -1, nil
	}

	idx := couponByCode(coupons, code)
	if idx < 0 {
		return -1, domainerrors.ErrCouponNotFound.WithDetailsf("code %s", normalizeCouponCode(code))
	}
	if !loyalty.IsAvailableTo(coupons[idx], customer.IsVip, now()) {
		return -1, domainerrors.ErrCouponNotApplicable.WithDetailsf("code %s", coupons[idx].Code)
	}

	return idx, nil
}

func activeCustomer(customers []entity.Customer, id int) (int, error) {
	idx, err := customerIndex(customers, id)
	if err != nil {
		return -1, err
	}
	if !customers[idx].IsActive {
		return -1, domainerrors.ErrCustomerInactive
	}

	return idx, nil
}

// Quote previews a payment without touching the ledger.
func (srv *paymentService) Quote(ctx context.Context, input usecase.QuoteInput) (*usecase.Quote, error) {
	if input.Amount <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	customers := srv.store.Customers(ctx)
	idx, err := activeCustomer(customers, input.CustomerID)
	if err != nil {
		return nil, err
	}
	customer := customers[idx]

	coupons := srv.store.Coupons(ctx)
	couponIdx, err := resolveCoupon(coupons, input.CouponCode, customer, srv.now)
	if err != nil {
		return nil, err
	}

	settings := srv.store.Settings(ctx)
	calc := loyalty.NewCalculator(srv.store.PaymentSlabs(ctx), settings)

	quote := &usecase.Quote{
		Amount:       input.Amount,
		FinalAmount:  input.Amount,
		PointsToEarn: calc.PointsFor(input.Amount, customer.IsVip),
	}
	if couponIdx >= 0 {
		coupon := coupons[couponIdx]
		applied := loyalty.ApplyCoupon(coupon, input.Amount)
		quote.Coupon = &coupon
		quote.Discount = applied.Discount
		quote.FinalAmount = applied.FinalAmount
	}
	quote.PaymentLink = srv.qrcode.BuildPaymentLink(service.PaymentLink{
		PayeeAddress: settings.UpiID,
		PayeeName:    settings.BusinessName,
		Amount:       quote.FinalAmount,
	})

	return quote, nil
}

func (srv *paymentService) PaymentQR(ctx context.Context, input usecase.QuoteInput) ([]byte, error) {
	quote, err := srv.Quote(ctx, input)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcode.GeneratePaymentQR(quote.PaymentLink)
	if err != nil {
		srv.log(ctx).Error("Failed to render payment QR", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render payment QR")
	}

	return png, nil
}

// RecordPayment credits a completed payment. Points are earned on the order
// amount before any discount, at the customer's VIP rate before this payment;
// totalSpent grows by the amount actually paid.
func (srv *paymentService) RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*usecase.PaymentOutput, error) {
	if input.Amount <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	out := &usecase.PaymentOutput{}
	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		customers := unit.Customers(ctx)
		idx, err := activeCustomer(customers, input.CustomerID)
		if err != nil {
			return err
		}
		customer := &customers[idx]

		coupons := unit.Coupons(ctx)
		couponIdx, err := resolveCoupon(coupons, input.CouponCode, *customer, srv.now)
		if err != nil {
			return err
		}

		calc := loyalty.NewCalculator(unit.PaymentSlabs(ctx), unit.Settings(ctx))
		applied := loyalty.Applied{FinalAmount: input.Amount}
		couponUsed := ""
		if couponIdx >= 0 {
			applied = loyalty.ApplyCoupon(coupons[couponIdx], input.Amount)
			coupons[couponIdx].UsageCount++
			couponUsed = coupons[couponIdx].Code
			unit.SetCoupons(coupons)
		}

		now := srv.now()
		earned := calc.PointsFor(input.Amount, customer.IsVip)
		wasVip := customer.IsVip

		customer.Points += earned
		customer.TotalSpent += applied.FinalAmount
		customer.LastVisit = entity.FormatDate(now)
		customer.IsVip = customer.IsVip || calc.ReachesVip(customer.TotalSpent)
		unit.SetCustomers(customers)

		transactions := unit.Transactions(ctx)
		tx := entity.Transaction{
			ID:           entity.NextID(transactions),
			CustomerID:   customer.ID,
			Amount:       applied.FinalAmount,
			PointsEarned: earned,
			Date:         entity.FormatTimestamp(now),
			Type:         entity.TransactionTypePayment,
			CouponUsed:   couponUsed,
		}
		unit.SetTransactions(append(transactions, tx))

		updated := *customer
		out.Customer = &updated
		out.Transaction = &tx
		out.Discount = applied.Discount
		out.BecameVip = !wasVip && customer.IsVip

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Payment rejected", slog.Int("customerID", input.CustomerID), slog.Any("error", err))

		return nil, err
	}
	out.Write = result

	srv.log(ctx).Info("Payment recorded",
		slog.Int("customerID", input.CustomerID),
		slog.Float64("amount", out.Transaction.Amount),
		slog.Int("pointsEarned", out.Transaction.PointsEarned),
		slog.Bool("becameVip", out.BecameVip),
	)

	return out, nil
}

// RedeemPoints converts points into a rupee discount. Nothing is written when
// the amount is not covered by the balance.
func (srv *paymentService) RedeemPoints(ctx context.Context, input usecase.RedeemInput) (*usecase.RedemptionOutput, error) {
	if input.Rupees <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	out := &usecase.RedemptionOutput{}
	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		customers := unit.Customers(ctx)
		idx, err := activeCustomer(customers, input.CustomerID)
		if err != nil {
			return err
		}
		customer := &customers[idx]

		calc := loyalty.NewCalculator(unit.PaymentSlabs(ctx), unit.Settings(ctx))
		if maxRupees := calc.MaxRedeemable(customer.Points); input.Rupees > maxRupees {
			return domainerrors.ErrRedemptionExceedsBalance.WithDetailsf("maximum redeemable amount is %.0f", maxRupees)
		}
		if !calc.CanRedeem(customer.Points) {
			return domainerrors.ErrBelowMinRedemption.WithDetailsf("at least %d points are required", unit.Settings(ctx).MinRedemptionPoints)
		}

		needed := calc.PointsNeeded(input.Rupees)
		if needed > customer.Points {
			return domainerrors.ErrRedemptionExceedsBalance.WithDetailsf("%d points needed, %d available", needed, customer.Points)
		}

		now := srv.now()
		customer.Points -= needed
		customer.LastVisit = entity.FormatDate(now)
		unit.SetCustomers(customers)

		transactions := unit.Transactions(ctx)
		tx := entity.Transaction{
			ID:             entity.NextID(transactions),
			CustomerID:     customer.ID,
			Amount:         input.Rupees,
			PointsRedeemed: needed,
			Date:           entity.FormatTimestamp(now),
			Type:           entity.TransactionTypeRedemption,
		}
		unit.SetTransactions(append(transactions, tx))

		updated := *customer
		out.Customer = &updated
		out.Transaction = &tx

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Redemption rejected", slog.Int("customerID", input.CustomerID), slog.Any("error", err))

		return nil, err
	}
	out.Write = result

	srv.log(ctx).Info("Points redeemed",
		slog.Int("customerID", input.CustomerID),
		slog.Float64("rupees", input.Rupees),
		slog.Int("pointsRedeemed", out.Transaction.PointsRedeemed),
	)

	return out, nil
}
