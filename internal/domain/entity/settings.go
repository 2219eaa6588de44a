package entity

// Settings is the singleton business configuration.
type Settings struct {
	BusinessName        string  `json:"businessName"`
	UpiID               string  `json:"upiId"`
	PointsToRupeeRatio  float64 `json:"pointsToRupeeRatio"` // rupees per point
	WelcomeBonusPoints  int     `json:"welcomeBonusPoints"`
	MinRedemptionPoints int     `json:"minRedemptionPoints"`
	VipThreshold        float64 `json:"vipThreshold"`
	VipPointsMultiplier float64 `json:"vipPointsMultiplier"` // >= 1
}
