package carrier

import (
	"context"

	"github.com/matthieukhl/parceltrack/internal/types"
)

// DoarCarrier refreshes the Israel Post (Doar Israel) timeline.
type DoarCarrier struct {
	api API
}

func NewDoar(api API) *DoarCarrier {
	return &DoarCarrier{api: api}
}

func (d *DoarCarrier) Name() string {
	return Doar
}

func (d *DoarCarrier) Refresh(ctx context.Context, orderID int) error {
	return d.api.RefreshDoarTracking(ctx, orderID)
}

func (d *DoarCarrier) RefreshAll(ctx context.Context) (string, error) {
	resp, err := d.api.RefreshAllDoar(ctx)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Compile-time interface check
var _ types.Carrier = (*DoarCarrier)(nil)
