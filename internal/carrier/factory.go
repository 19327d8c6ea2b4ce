// Package carrier maps each supported carrier onto its tracker endpoints.
package carrier

import (
	"context"
	"fmt"
	"strings"

	"github.com/matthieukhl/parceltrack/internal/apiclient"
	"github.com/matthieukhl/parceltrack/internal/types"
)

const (
	Cainiao = "cainiao"
	Doar    = "doar"
)

// API is the slice of the tracker client the carriers need.
type API interface {
	RefreshTracking(ctx context.Context, id int) error
	RefreshDoarTracking(ctx context.Context, id int) error
	RefreshAll(ctx context.Context) (*apiclient.BulkRefreshResponse, error)
	RefreshAllDoar(ctx context.Context) (*apiclient.BulkRefreshResponse, error)
}

// Names lists the carriers in display order.
func Names() []string {
	return []string{Cainiao, Doar}
}

// New creates a carrier by name
func New(name string, api API) (types.Carrier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Cainiao:
		return NewCainiao(api), nil
	case Doar:
		return NewDoar(api), nil
	default:
		return nil, fmt.Errorf("unsupported carrier: %s", name)
	}
}

// All creates every supported carrier.
func All(api API) []types.Carrier {
	return []types.Carrier{NewCainiao(api), NewDoar(api)}
}
