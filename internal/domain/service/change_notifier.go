package service

import (
	"context"
	"time"
)

// ChangeSource tells subscribers what produced a ledger change.
type ChangeSource string

const (
	ChangeSourceWrite  ChangeSource = "write"
	ChangeSourcePull   ChangeSource = "pull"
	ChangeSourceImport ChangeSource = "import"
	ChangeSourceReset  ChangeSource = "reset"
	// ChangeSourceSyncError carries a remote failure rather than a data change.
	ChangeSourceSyncError ChangeSource = "syncError"
)

// ChangeEvent tells open views which collections to re-read.
type ChangeEvent struct {
	Collections []string     `json:"collections"`
	Source      ChangeSource `json:"source"`
	Message     string       `json:"message,omitempty"`
	Origin      string       `json:"origin,omitempty"` // publishing instance
	At          time.Time    `json:"at"`
}

// ChangeNotifier fans ledger change events out to subscribers. Delivery is
// best effort and unordered across publishers.
type ChangeNotifier interface {
	// Publish delivers event to current subscribers.
	Publish(ctx context.Context, event ChangeEvent) error

	// Subscribe returns a channel of events that is closed when ctx ends.
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)

	// Close releases any resources held by the notifier
	Close() error
}
