// Package sweeper runs periodic ownership maintenance outside the request path.
package sweeper

import (
	"context"
)

// Sweeper is a long-running maintenance loop
type Sweeper interface {
	// Start runs cycles until ctx is canceled or Stop is called. It blocks.
	Start(ctx context.Context) error

	// Stop ends the loop after the current cycle finishes or ctx expires
	Stop(ctx context.Context) error

	// Name identifies the sweeper in logs
	Name() string
}
