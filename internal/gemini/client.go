// Package gemini is a REST client for the Gemini generateContent API,
// covering the text call used for prompt crafting and the image
// generation/edit calls.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"frame-art-backend/internal/prompt"
)

const (
	modelText  = "gemini-2.5-flash"
	modelImage = "gemini-2.5-flash-image"

	// TV artwork is always 16:9 at the highest supported tier.
	aspectRatio = "16:9"
	imageSize   = "4K"
)

const editPreamble = "Edit the provided image according to the instruction below. Preserve the original 16:9 aspect ratio and overall composition unless the instruction explicitly says otherwise. Output only the edited image at the same quality."

type Options struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	HTTPClient *http.Client
	Logger     *slog.Logger

	// RequestsPerSecond bounds calls against the upstream API.
	// Zero means one request per second.
	RequestsPerSecond float64
}

type Client struct {
	apiKey     string
	baseURL    string
	apiVersion string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	apiVersion := strings.TrimSpace(opts.APIVersion)
	if apiVersion == "" {
		apiVersion = "v1beta"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		apiVersion: apiVersion,
		httpClient: httpClient,
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Limit(rps), 4),
	}
}

// GenerateText runs the prompt-crafting call and returns the first
// candidate's text.
func (c *Client) GenerateText(ctx context.Context, promptText string, cfg prompt.GenerationConfig) (string, error) {
	req := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: promptText}}},
		},
		GenerationConfig: &generationConfig{
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
	}

	decoded, err := c.generateContent(ctx, modelText, req)
	if err != nil {
		return "", err
	}

	text, _ := extractParts(decoded)
	return text, nil
}

// GenerateImage synthesizes one 16:9 image for a crafted prompt.
func (c *Client) GenerateImage(ctx context.Context, craftedPrompt string) (ImageResult, error) {
	req := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: craftedPrompt}}},
		},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &imageConfig{AspectRatio: aspectRatio, ImageSize: imageSize},
		},
	}

	decoded, err := c.generateContent(ctx, modelImage, req)
	if err != nil {
		return ImageResult{}, err
	}
	return firstImage(decoded)
}

// EditImage applies an edit instruction to a source image.
func (c *Client) EditImage(ctx context.Context, src []byte, mimeType, instruction string) (ImageResult, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}

	req := generateContentRequest{
		Contents: []content{
			{
				Role: "user",
				Parts: []part{
					{Text: editPreamble + "\n\nInstruction: " + instruction},
					{InlineData: &blob{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(src),
					}},
				},
			},
		},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &imageConfig{AspectRatio: aspectRatio, ImageSize: imageSize},
		},
	}

	decoded, err := c.generateContent(ctx, modelImage, req)
	if err != nil {
		return ImageResult{}, err
	}
	return firstImage(decoded)
}

func (c *Client) generateContent(ctx context.Context, model string, payload generateContentRequest) (generateContentResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return generateContentResponse{}, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, c.apiVersion, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("gemini call finished",
		"model", model,
		"status", httpResp.StatusCode,
		"duration", time.Since(start),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		c.logger.Error("gemini call failed",
			"model", model,
			"status", httpResp.StatusCode,
			"body", truncate(strings.TrimSpace(string(rawBody)), 500),
		)
		return generateContentResponse{}, &UpstreamError{
			StatusCode: httpResp.StatusCode,
			Body:       strings.TrimSpace(string(rawBody)),
		}
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return generateContentResponse{}, fmt.Errorf("failed to decode gemini response: %w", err)
	}

	return decoded, nil
}

// extractParts walks the first candidate's parts, collecting text and
// the first inline image payload.
func extractParts(resp generateContentResponse) (string, *blob) {
	if len(resp.Candidates) == 0 {
		return "", nil
	}

	var textBuilder strings.Builder
	var inline *blob

	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			textBuilder.WriteString(p.Text)
		}
		if inline == nil && p.InlineData != nil && p.InlineData.Data != "" {
			d := *p.InlineData
			inline = &d
		}
	}

	return textBuilder.String(), inline
}

func firstImage(resp generateContentResponse) (ImageResult, error) {
	text, inline := extractParts(resp)
	if inline == nil {
		return ImageResult{}, &NoImageError{Explanation: strings.TrimSpace(text)}
	}

	data, err := base64.StdEncoding.DecodeString(inline.Data)
	if err != nil {
		return ImageResult{}, fmt.Errorf("failed to decode image payload: %w", err)
	}

	mimeType := inline.MimeType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return ImageResult{Data: data, MimeType: mimeType}, nil
}
