package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/matthieukhl/parceltrack/internal/models"
)

type OrdersResponse struct {
	Orders []models.Order `json:"orders"`
}

type AddOrderRequest struct {
	URL            string `json:"url"`
	TrackingNumber string `json:"tracking_number"`
}

type UpdateOrderRequest struct {
	ProductTitle   string `json:"product_title"`
	TrackingNumber string `json:"tracking_number"`
	ProductImage   string `json:"product_image"`
}

type OrderResponse struct {
	Order   *models.Order `json:"order,omitempty"`
	Message string        `json:"message,omitempty"`
}

type BulkRefreshResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Updated int    `json:"updated"`
	Failed  int    `json:"failed"`
	Total   int    `json:"total"`
	Skipped int    `json:"skipped"`
}

type LastUpdatesResponse struct {
	Success           bool   `json:"success"`
	CainiaoLastUpdate string `json:"cainiao_last_update,omitempty"`
	DoarLastUpdate    string `json:"doar_last_update,omitempty"`
}

type ImportRequest struct {
	CurlCommand string `json:"curl_command"`
}

type ImportResponse struct {
	Success         bool           `json:"success"`
	Imported        int            `json:"imported"`
	Skipped         int            `json:"skipped"`
	TotalFound      int            `json:"total_found"`
	TrackingFetched int            `json:"tracking_fetched"`
	Orders          []models.Order `json:"orders,omitempty"`
	Message         string         `json:"message,omitempty"`
	Error           string         `json:"error,omitempty"`
}

type APIKeyStatus struct {
	APIKeySet bool   `json:"api_key_set"`
	MaskedKey string `json:"masked_key"`
}

type SetAPIKeyRequest struct {
	APIKey string `json:"api_key"`
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var resp OrdersResponse
	if err := c.call(ctx, http.MethodGet, "/api/orders", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Orders == nil {
		resp.Orders = []models.Order{}
	}
	return resp.Orders, nil
}

func (c *Client) AddOrder(ctx context.Context, req AddOrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	if err := c.call(ctx, http.MethodPost, "/api/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id int, req UpdateOrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	if err := c.call(ctx, http.MethodPut, orderPath(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	return c.call(ctx, http.MethodDelete, orderPath(id), nil, nil)
}

// RefreshTracking asks the tracker to re-query Cainiao for one order.
func (c *Client) RefreshTracking(ctx context.Context, id int) error {
	return c.callChecked(ctx, http.MethodPost, orderPath(id)+"/tracking", nil, nil)
}

// RefreshDoarTracking asks the tracker to re-query Israel Post for one order.
func (c *Client) RefreshDoarTracking(ctx context.Context, id int) error {
	return c.callChecked(ctx, http.MethodPost, orderPath(id)+"/doar-tracking", nil, nil)
}

func (c *Client) RefreshAll(ctx context.Context) (*BulkRefreshResponse, error) {
	return c.bulkRefresh(ctx, "/api/orders/refresh-all")
}

func (c *Client) RefreshAllDoar(ctx context.Context) (*BulkRefreshResponse, error) {
	return c.bulkRefresh(ctx, "/api/orders/refresh-all-doar")
}

func (c *Client) bulkRefresh(ctx context.Context, path string) (*BulkRefreshResponse, error) {
	var resp BulkRefreshResponse
	if err := c.callChecked(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) LastUpdates(ctx context.Context) (*LastUpdatesResponse, error) {
	var resp LastUpdatesResponse
	if err := c.callChecked(ctx, http.MethodGet, "/api/auto-update/last-updates", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ImportOrders forwards a pasted cURL command. success:false with a message
// is a normal "nothing imported" answer and is returned, not raised.
func (c *Client) ImportOrders(ctx context.Context, curlCommand string) (*ImportResponse, error) {
	var resp ImportResponse
	if err := c.call(ctx, http.MethodPost, "/api/import/orders", ImportRequest{CurlCommand: curlCommand}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DoarAPIKeyStatus(ctx context.Context) (*APIKeyStatus, error) {
	var resp APIKeyStatus
	if err := c.call(ctx, http.MethodGet, "/api/config/doar-api-key", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetDoarAPIKey(ctx context.Context, key string) error {
	return c.call(ctx, http.MethodPost, "/api/config/doar-api-key", SetAPIKeyRequest{APIKey: key}, nil)
}

func orderPath(id int) string {
	return fmt.Sprintf("/api/orders/%d", id)
}
