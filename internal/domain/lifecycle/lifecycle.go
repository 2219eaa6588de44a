// Package lifecycle holds shared start and stop settings.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle hooks that talk to external systems.
const DefaultTimeout = 10 * time.Second
