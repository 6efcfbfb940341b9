// Package simulator drives the ordering API the way a room full of waiters would.
package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the /api/v1 endpoints of the ordering API
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API served at baseURL. A nil httpClient
// gets a client with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		http:    httpClient,
	}
}

// APIError is a non-2xx answer from the API
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// OrderResult is the answer to an order mutation
type OrderResult struct {
	OrderID uint   `json:"order_id"`
	Outcome string `json:"outcome"`
	Message string `json:"-"`
}

// Item is one line of a table's order
type Item struct {
	MenuID      uint   `json:"menu_id"`
	MenuName    string `json:"menu_name"`
	Quantity    int    `json:"quantity"`
	CookingTime int    `json:"cooking_time"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type registered struct {
	ID uint `json:"id"`
}

// RegisterTable registers a table code and returns its id
func (c *Client) RegisterTable(ctx context.Context, code string) (uint, error) {
	var out registered
	if _, err := c.do(ctx, http.MethodPost, "/tables", map[string]string{"code": code}, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// RegisterMenu registers a menu item name and returns its id
func (c *Client) RegisterMenu(ctx context.Context, name string) (uint, error) {
	var out registered
	if _, err := c.do(ctx, http.MethodPost, "/menus", map[string]string{"name": name}, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// CreateOrder adds the menu items to the table's order
func (c *Client) CreateOrder(ctx context.Context, tableID uint, menuIDs []uint) (OrderResult, error) {
	body := map[string]interface{}{"table_id": tableID, "menu_ids": menuIDs}
	var out OrderResult
	msg, err := c.do(ctx, http.MethodPost, "/orders", body, &out)
	out.Message = msg
	return out, err
}

// TableItems lists the lines of the table's order
func (c *Client) TableItems(ctx context.Context, tableID uint) ([]Item, error) {
	var items []Item
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tables/%d/items", tableID), nil, &items)
	return items, err
}

// TableItem returns the table's line for one menu item
func (c *Client) TableItem(ctx context.Context, tableID, menuID uint) (Item, error) {
	var item Item
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tables/%d/items/%d", tableID, menuID), nil, &item)
	return item, err
}

// RemoveItem removes one unit of the menu item from the table's order
func (c *Client) RemoveItem(ctx context.Context, tableID, menuID uint) (OrderResult, error) {
	var out OrderResult
	msg, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d/items/%d", tableID, menuID), nil, &out)
	out.Message = msg
	return out, err
}

// do sends the request and decodes the envelope's data into out, returning its message
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (string, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("%s %s: failed to decode response (status %d): %w", method, path, resp.StatusCode, err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return "", apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("%s %s: failed to decode data: %w", method, path, err)
		}
	}
	return env.Message, nil
}
