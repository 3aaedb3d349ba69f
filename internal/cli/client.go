// Package cli backs the operator tool: a thin HTTP client for the
// dashboard API plus the on-disk session file.
package cli

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

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Login authenticates against the dashboard and returns the session
// cookie value to persist.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	raw, err := json.Marshal(map[string]any{"password": password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/login", bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("dashboard status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "bot-dashboard" {
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("dashboard set no session cookie")
}

func (c *Client) Logout(ctx context.Context, token string) error {
	var out map[string]any
	return c.jsonRequest(ctx, http.MethodPost, "/logout", token, nil, &out)
}

func (c *Client) Inventory(ctx context.Context, token, userID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/api/inventory", token, map[string]any{
		"userId": userID,
	}, &out)
	return out, err
}

func (c *Client) SearchUser(ctx context.Context, token, userID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/api/admin-inventory-search", token, map[string]any{
		"userId": userID,
	}, &out)
	return out, err
}

func (c *Client) UpdateBalance(ctx context.Context, token, userID, field string, amount int64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/api/users/balance", token, map[string]any{
		"userId": userID,
		"field":  field,
		"amount": amount,
	}, &out)
	return out, err
}

func (c *Client) GiveProperty(ctx context.Context, token, userID, name, adminTag string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/api/properties/give", token, map[string]any{
		"userId":       userID,
		"propertyName": name,
		"adminTag":     adminTag,
	}, &out)
	return out, err
}

func (c *Client) RemoveProperty(ctx context.Context, token, userID, name string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/api/properties/remove", token, map[string]any{
		"userId":       userID,
		"propertyName": name,
	}, &out)
	return out, err
}

func (c *Client) DeleteProperty(ctx context.Context, token, name string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/api/properties/delete", token, map[string]any{
		"propertyName": name,
	}, &out)
	return out, err
}

func (c *Client) UpdateInventory(ctx context.Context, token, userID, column, item, action string, qty int) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/inventory/update", token, map[string]any{
		"userId":   userID,
		"column":   column,
		"item":     item,
		"action":   action,
		"quantity": qty,
	}, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path, token string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "bot-dashboard", Value: token})
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("dashboard status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
