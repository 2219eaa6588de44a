package handler

import (
	"strconv"

	"currypoint/internal/domain/entity"
	"currypoint/internal/domain/repository"
	"currypoint/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CustomerView is a customer as exposed over HTTP, without the password hash.
type CustomerView struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Points     int     `json:"points"`
	TotalSpent float64 `json:"totalSpent"`
	IsActive   bool    `json:"isActive"`
	IsVip      bool    `json:"isVip"`
	CreatedAt  string  `json:"createdAt"`
	LastVisit  string  `json:"lastVisit"`
}

func newCustomerView(c entity.Customer) CustomerView {
	return CustomerView{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Points:     c.Points,
		TotalSpent: c.TotalSpent,
		IsActive:   c.IsActive,
		IsVip:      c.IsVip,
		CreatedAt:  c.CreatedAt,
		LastVisit:  c.LastVisit,
	}
}

func newCustomerViews(customers []entity.Customer) []CustomerView {
	views := make([]CustomerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, newCustomerView(c))
	}

	return views
}

// WriteView tells the client whether the change is also being mirrored remotely.
type WriteView struct {
	RemotePending bool `json:"remotePending"`
}

func newWriteView(w *repository.WriteResult) WriteView {
	if w == nil {
		return WriteView{}
	}

	return WriteView{RemotePending: w.RemoteAttempted()}
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// ProfileView is usecase.CustomerProfile with the customer redacted.
type ProfileView struct {
	Customer      CustomerView `json:"customer"`
	PointsValue   float64      `json:"pointsValue"`
	MaxRedeemable float64      `json:"maxRedeemable"`
	CanRedeem     bool         `json:"canRedeem"`
	SpendToVip    float64      `json:"spendToVip"`
	VipThreshold  float64      `json:"vipThreshold"`
}

func newProfileView(p usecase.CustomerProfile) ProfileView {
	return ProfileView{
		Customer:      newCustomerView(p.Customer),
		PointsValue:   p.PointsValue,
		MaxRedeemable: p.MaxRedeemable,
		CanRedeem:     p.CanRedeem,
		SpendToVip:    p.SpendToVip,
		VipThreshold:  p.VipThreshold,
	}
}
