// Package client is a Go client for the frame-art HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"frame-art-backend/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

func (c *Client) Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	var resp models.GenerateResponse
	if err := c.postJSON(ctx, "/generate", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to generate artwork: %w", err)
	}
	return &resp, nil
}

func (c *Client) Edit(ctx context.Context, req models.EditRequest) (*models.EditResponse, error) {
	var resp models.EditResponse
	if err := c.postJSON(ctx, "/edit", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to edit artwork: %w", err)
	}
	return &resp, nil
}

func (c *Client) ListImages(ctx context.Context) ([]models.GeneratedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/images", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp models.ImagesResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return resp.Images, nil
}

func (c *Client) SaveImage(ctx context.Context, req models.SaveImageRequest) (*models.SaveImageResponse, error) {
	var resp models.SaveImageResponse
	if err := c.postJSON(ctx, "/images", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}
	return &resp, nil
}

func (c *Client) DeleteImage(ctx context.Context, id string) error {
	u := c.baseURL + "/images?id=" + url.QueryEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	var resp models.DeleteResponse
	if err := c.do(req, &resp); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (c *Client) ListStyles(ctx context.Context) ([]models.StyleResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/styles", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp models.StylesResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to list styles: %w", err)
	}
	return resp.Styles, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr models.ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.Details != "" {
				return fmt.Errorf("status %d: %s (%s)", resp.StatusCode, apiErr.Error, apiErr.Details)
			}
			return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, truncate(string(raw), 500))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
