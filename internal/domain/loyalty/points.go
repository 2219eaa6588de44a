// Package loyalty holds the pure points and coupon arithmetic. Nothing here
// reads storage; callers pass the slabs and settings in.
package loyalty

import (
	"math"
	"math/big"
	"slices"
	"strconv"

	"currypoint/internal/domain/entity"
)

// PointsForAmount awards the points of the slab containing amount, multiplied
// for VIPs and rounded half up. Amounts outside every slab earn nothing.
func PointsForAmount(amount float64, slabs []entity.PaymentSlab, isVip bool, vipMultiplier float64) int {
	if amount <= 0 {
		return 0
	}

	idx := slices.IndexFunc(slabs, func(s entity.PaymentSlab) bool { return s.Contains(amount) })
	if idx < 0 {
		return 0
	}

	points := slabs[idx].Points
	if isVip {
		return roundHalfUp(float64(points) * vipMultiplier)
	}

	return points
}

// PointsValue is the rupee value of a balance; fractions are kept.
func PointsValue(points int, ratio float64) float64 {
	return float64(points) * ratio
}

// CanRedeem reports whether the balance reaches the redemption minimum.
func CanRedeem(points, minRedemptionPoints int) bool {
	return points >= minRedemptionPoints
}

// MaxRedeemableRupees is floor(points * ratio).
func MaxRedeemableRupees(points int, ratio float64) float64 {
	if points <= 0 || ratio <= 0 {
		return 0
	}

	product := new(big.Rat).Mul(new(big.Rat).SetInt64(int64(points)), decimal(ratio))

	return float64(floorRat(product))
}

// PointsNeededForRedemption is ceil(rupees / ratio).
func PointsNeededForRedemption(rupees, ratio float64) int {
	if rupees <= 0 || ratio <= 0 {
		return 0
	}

	quotient := new(big.Rat).Quo(decimal(rupees), decimal(ratio))

	return int(ceilRat(quotient))
}

// decimal reads v as the shortest decimal that round-trips to it, so 1.1
// is exactly eleven tenths rather than its binary approximation.
func decimal(v float64) *big.Rat {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'g', -1, 64))
	if !ok {
		return new(big.Rat).SetFloat64(v)
	}

	return r
}

// floorRat and ceilRat expect a non-negative r.
func floorRat(r *big.Rat) int64 {
	return new(big.Int).Quo(r.Num(), r.Denom()).Int64()
}

func ceilRat(r *big.Rat) int64 {
	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}

	return q.Int64()
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Calculator binds the arithmetic to one slab table and settings snapshot.
type Calculator struct {
	slabs    []entity.PaymentSlab
	settings entity.Settings
}

func NewCalculator(slabs []entity.PaymentSlab, settings entity.Settings) *Calculator {
	return &Calculator{slabs: slabs, settings: settings}
}

func (c *Calculator) PointsFor(amount float64, isVip bool) int {
	return PointsForAmount(amount, c.slabs, isVip, c.settings.VipPointsMultiplier)
}

func (c *Calculator) Value(points int) float64 {
	return PointsValue(points, c.settings.PointsToRupeeRatio)
}

func (c *Calculator) CanRedeem(points int) bool {
	return CanRedeem(points, c.settings.MinRedemptionPoints)
}

func (c *Calculator) MaxRedeemable(points int) float64 {
	return MaxRedeemableRupees(points, c.settings.PointsToRupeeRatio)
}

func (c *Calculator) PointsNeeded(rupees float64) int {
	return PointsNeededForRedemption(rupees, c.settings.PointsToRupeeRatio)
}

// ReachesVip reports whether a lifetime spend qualifies for VIP.
func (c *Calculator) ReachesVip(totalSpent float64) bool {
	return totalSpent >= c.settings.VipThreshold
}

// SpendToVip is how much more a customer must spend to become VIP; 0 once reached.
func (c *Calculator) SpendToVip(totalSpent float64) float64 {
	return max(0, c.settings.VipThreshold-totalSpent)
}
