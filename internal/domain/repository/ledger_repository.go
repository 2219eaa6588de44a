package repository

import (
	"context"
	"time"

	"currypoint/internal/domain/entity"
	"currypoint/internal/errors"
)

// ErrLedgerClosed is returned for writes after the store has shut down.
var ErrLedgerClosed = errors.New("ledger store closed")

// LedgerReader serves each collection according to the current sync mode. Reads
// never fail because of the remote tier; they fall back to the local value.
type LedgerReader interface {
	Customers(ctx context.Context) []entity.Customer
	Transactions(ctx context.Context) []entity.Transaction
	PaymentSlabs(ctx context.Context) []entity.PaymentSlab
	Coupons(ctx context.Context) []entity.Coupon
	Settings(ctx context.Context) entity.Settings
}

// LedgerUnit is a read-modify-write scope. Reads see values staged earlier in
// the same unit; staged collections are written together when the unit commits.
type LedgerUnit interface {
	LedgerReader

	SetCustomers(customers []entity.Customer)
	SetTransactions(transactions []entity.Transaction)
	SetPaymentSlabs(slabs []entity.PaymentSlab)
	SetCoupons(coupons []entity.Coupon)
	SetSettings(settings entity.Settings)
}

// LedgerStore is the persistence gateway seen by the use cases.
type LedgerStore interface {
	LedgerReader

	// Execute runs fn with exclusive write access to the ledger. When fn returns
	// nil, every staged collection is persisted locally in one write before
	// Execute returns, and mirrored remotely in the background. When fn returns
	// an error nothing is written.
	Execute(ctx context.Context, fn func(unit LedgerUnit) error) (*WriteResult, error)
}

// SyncMode selects which tiers serve reads and receive writes.
type SyncMode string

const (
	SyncModeLocal  SyncMode = "local"
	SyncModeRemote SyncMode = "remote"
	SyncModeHybrid SyncMode = "hybrid"
)

// ErrUnknownSyncMode is returned for an unrecognised mode name.
var ErrUnknownSyncMode = errors.New("unknown sync mode")

func (m SyncMode) IsValid() bool {
	switch m {
	case SyncModeLocal, SyncModeRemote, SyncModeHybrid:
		return true
	default:
		return false
	}
}

// ParseSyncMode converts a configured name into a SyncMode.
func ParseSyncMode(name string) (SyncMode, error) {
	m := SyncMode(name)
	if !m.IsValid() {
		return "", errors.Wrapf(ErrUnknownSyncMode, "%q", name)
	}

	return m, nil
}

// SyncStatus is the operator-facing view of the tiers.
type SyncStatus struct {
	Mode             SyncMode           `json:"mode"`
	RemoteConfigured bool               `json:"remoteConfigured"`
	RemoteAvailable  bool               `json:"remoteAvailable"`
	RemoteEndpoint   string             `json:"remoteEndpoint,omitempty"`
	SyncInProgress   bool               `json:"syncInProgress"`
	LastSync         *time.Time         `json:"lastSync,omitempty"`
	LastError        string             `json:"lastError,omitempty"`
	Counts           map[Collection]int `json:"counts"`
}

// SyncError describes one failed remote operation.
type SyncError struct {
	Op         string     `json:"op"`
	Collection Collection `json:"collection,omitempty"`
	Err        error      `json:"-"`
	At         time.Time  `json:"at"`
}

func (e SyncError) Error() string {
	if e.Collection != "" {
		return e.Op + " " + string(e.Collection) + ": " + e.Err.Error()
	}

	return e.Op + ": " + e.Err.Error()
}

// LedgerSync is the orchestration surface over both tiers.
type LedgerSync interface {
	Status() SyncStatus
	Mode() SyncMode
	// ToggleMode cycles local -> remote -> hybrid -> local. Leaving local for
	// remote only happens while the remote tier is available.
	ToggleMode() SyncMode
	// PushAll overwrites every remote collection with the local one.
	PushAll(ctx context.Context) error
	// PullAll overwrites every local collection with the remote one. Nothing is
	// written unless all five collections were fetched.
	PullAll(ctx context.Context) error
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) (*WriteResult, error)
	Reset(ctx context.Context) (*WriteResult, error)
	// Errors delivers every remote failure. Slow consumers miss events; the
	// failures are logged regardless.
	Errors() <-chan SyncError
}

// LocalStore is the always-available tier. It persists the whole ledger as a
// single snapshot.
type LocalStore interface {
	// Load returns the persisted ledger, seeding defaults on first use.
	Load(ctx context.Context) (*entity.Ledger, error)
	Save(ctx context.Context, ledger *entity.Ledger) error
	// Export returns the persisted snapshot bytes exactly as stored.
	Export(ctx context.Context) ([]byte, error)
	// Import validates data and stores it verbatim.
	Import(ctx context.Context, data []byte) (*entity.Ledger, error)
	// Reset replaces the snapshot with the seed defaults.
	Reset(ctx context.Context) (*entity.Ledger, error)
}
