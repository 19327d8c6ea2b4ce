package types

import (
	"context"

	"github.com/matthieukhl/parceltrack/internal/models"
)

// OrderSource fetches the full order collection
type OrderSource interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// Carrier refreshes tracking data held by the tracker service for one carrier
type Carrier interface {
	Name() string
	// Refresh re-queries the carrier for a single order.
	Refresh(ctx context.Context, orderID int) error
	// RefreshAll re-queries every order and returns the server's summary line.
	RefreshAll(ctx context.Context) (string, error)
}

// LastUpdates holds the time each carrier was last refreshed in bulk
type LastUpdates struct {
	Cainiao string `json:"cainiao_last_update,omitempty"`
	Doar    string `json:"doar_last_update,omitempty"`
}
