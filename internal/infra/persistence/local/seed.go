package local

import (
	"currypoint/internal/domain/entity"
	"currypoint/internal/domain/service"

	"github.com/pkg/errors"
)

func float64Ptr(v float64) *float64 { return &v }

// seedPasswords are hashed before the seed is stored.
var seedPasswords = map[int]string{ //nolint:gochecknoglobals
	1: "1234",
	2: "admin",
}

// SeedLedger returns the default dataset with hashed passwords.
func SeedLedger(hasher service.PasswordHasher) (*entity.Ledger, error) {
	ledger := seedLedger()
	for i := range ledger.Customers {
		hash, err := hasher.Hash(seedPasswords[ledger.Customers[i].ID])
		if err != nil {
			return nil, errors.Wrap(err, "hash seed password")
		}
		ledger.Customers[i].Password = hash
	}

	return ledger, nil
}

func seedLedger() *entity.Ledger {
	return &entity.Ledger{
		Customers: []entity.Customer{
			{
				ID:         1,
				Name:       "John Doe",
				Phone:      "+91 9876543210",
				Email:      "john@example.com",
				Points:     125,
				TotalSpent: 2850,
				IsActive:   true,
				CreatedAt:  "2025-01-15",
				LastVisit:  "2025-05-22",
			},
			{
				ID:        2,
				Name:      "Admin User",
				Phone:     "+91 9999999999",
				Email:     "admin@currypoint.com",
				IsActive:  true,
				IsVip:     true,
				CreatedAt: "2025-01-01",
				LastVisit: "2025-05-22",
			},
		},
		Transactions: []entity.Transaction{
			{ID: 1, CustomerID: 1, Amount: 550, PointsEarned: 30, Date: "2025-05-22T14:30:45", Type: entity.TransactionTypePayment},
			{ID: 2, CustomerID: 1, Amount: 800, PointsEarned: 60, Date: "2025-05-20T19:15:22", Type: entity.TransactionTypePayment},
			{ID: 3, CustomerID: 1, Amount: 1500, PointsEarned: 100, Date: "2025-05-15T12:45:33", Type: entity.TransactionTypePayment},
			{ID: 4, CustomerID: 1, Amount: 200, PointsRedeemed: 40, Date: "2025-05-10T20:30:15", Type: entity.TransactionTypeRedemption},
		},
		PaymentSlabs: []entity.PaymentSlab{
			{ID: 1, MinAmount: 0, MaxAmount: 100, Points: 5},
			{ID: 2, MinAmount: 101, MaxAmount: 300, Points: 15},
			{ID: 3, MinAmount: 301, MaxAmount: 500, Points: 30},
			{ID: 4, MinAmount: 501, MaxAmount: 1000, Points: 60},
			{ID: 5, MinAmount: 1001, MaxAmount: 99999, Points: 100},
		},
		Coupons: []entity.Coupon{
			{
				ID:            1,
				Code:          "WELCOME10",
				Title:         "10% Off Your First Order",
				Description:   "Get 10% off on your first order above ₹300",
				DiscountType:  entity.DiscountTypePercentage,
				DiscountValue: 10,
				MinOrderValue: 300,
				MaxDiscount:   float64Ptr(100),
				IsActive:      true,
				ExpiryDate:    "2025-12-31",
				UsageLimit:    1,
			},
			{
				ID:            2,
				Code:          "FLAT50",
				Title:         "Flat ₹50 Off",
				Description:   "Get flat ₹50 off on orders above ₹500",
				DiscountType:  entity.DiscountTypeFixed,
				DiscountValue: 50,
				MinOrderValue: 500,
				IsActive:      true,
				ExpiryDate:    "2025-07-31",
				UsageLimit:    2,
			},
			{
				ID:            3,
				Code:          "VIPSPECIAL",
				Title:         "VIP Special: 15% Off",
				Description:   "Exclusive 15% off for our VIP customers",
				DiscountType:  entity.DiscountTypePercentage,
				DiscountValue: 15,
				MinOrderValue: 200,
				MaxDiscount:   float64Ptr(200),
				IsActive:      true,
				ExpiryDate:    "2025-12-31",
				UsageLimit:    5,
				ForVipOnly:    true,
			},
		},
		Settings: entity.Settings{
			BusinessName:        "Curry Point",
			UpiID:               "currypoint@upi",
			PointsToRupeeRatio:  0.5,
			WelcomeBonusPoints:  50,
			MinRedemptionPoints: 100,
			VipThreshold:        3000,
			VipPointsMultiplier: 1.2,
		},
	}
}
