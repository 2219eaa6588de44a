// Package impl contains the implementation of the application's business logic.
package impl

import (
	"slices"
	"strings"
	"time"

	"currypoint/internal/domain/entity"
	domainerrors "currypoint/internal/domain/errors"
)

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time

func clockOrDefault(clock Clock) Clock {
	if clock == nil {
		return time.Now
	}

	return clock
}

func customerIndex(customers []entity.Customer, id int) (int, error) {
	idx := entity.FindByID(customers, id)
	if idx < 0 {
		return -1, domainerrors.ErrCustomerNotFound.WithDetailsf("customer %d", id)
	}

	return idx, nil
}

func couponIndex(coupons []entity.Coupon, id int) (int, error) {
	idx := entity.FindByID(coupons, id)
	if idx < 0 {
		return -1, domainerrors.ErrCouponNotFound.WithDetailsf("coupon %d", id)
	}

	return idx, nil
}

// phoneTaken reports whether another customer than exceptID uses phone.
func phoneTaken(customers []entity.Customer, phone string, exceptID int) bool {
	for _, c := range customers {
		if c.Phone == phone && c.ID != exceptID {
			return true
		}
	}

	return false
}

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func couponByCode(coupons []entity.Coupon, code string) int {
	code = normalizeCouponCode(code)
	for i, c := range coupons {
		if strings.EqualFold(c.Code, code) {
			return i
		}
	}

	return -1
}

// codeTaken reports whether another coupon than exceptID uses code.
func codeTaken(coupons []entity.Coupon, code string, exceptID int) bool {
	idx := couponByCode(coupons, code)

	return idx >= 0 && coupons[idx].ID != exceptID
}

func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)

	return domainerrors.ErrValidationFailed.WithDetails("missing " + strings.Join(missing, ", "))
}
