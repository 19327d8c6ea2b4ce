package carrier

import (
	"context"

	"github.com/matthieukhl/parceltrack/internal/types"
)

// CainiaoCarrier refreshes the AliExpress/Cainiao tracking timeline.
type CainiaoCarrier struct {
	api API
}

func NewCainiao(api API) *CainiaoCarrier {
	return &CainiaoCarrier{api: api}
}

func (c *CainiaoCarrier) Name() string {
	return Cainiao
}

func (c *CainiaoCarrier) Refresh(ctx context.Context, orderID int) error {
	return c.api.RefreshTracking(ctx, orderID)
}

func (c *CainiaoCarrier) RefreshAll(ctx context.Context) (string, error) {
	resp, err := c.api.RefreshAll(ctx)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Compile-time interface check
var _ types.Carrier = (*CainiaoCarrier)(nil)
