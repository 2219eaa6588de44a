// Package entity contains the ledger's business objects. Every entity is
// persisted as JSON with the camelCase keys below, locally and remotely.
package entity

import "time"

// DateLayout is the calendar-date format used for createdAt and lastVisit.
const DateLayout = "2006-01-02"

// Customer is a loyalty member. Phone is the login identifier and is unique.
type Customer struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`   // bcrypt hash
	Points     int     `json:"points"`     // never negative
	TotalSpent float64 `json:"totalSpent"` // lifetime spend in rupees
	IsActive   bool    `json:"isActive"`
	IsVip      bool    `json:"isVip"` // promotion only, never reset automatically
	CreatedAt  string  `json:"createdAt"`
	LastVisit  string  `json:"lastVisit"`
}

func (c Customer) Identity() int { return c.ID }

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
