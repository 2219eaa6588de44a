package entity

// Role represents the kind of principal calling the ledger.
type Role string

const (
	// RoleCustomer is a self-service customer.
	RoleCustomer Role = "customer"
	// RoleAdmin is the business operator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}
