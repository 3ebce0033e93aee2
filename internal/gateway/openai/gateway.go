package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	retrierconfig "figurine/pkg/retrier"
	"figurine/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "openai"

	defaultBaseURL     = "https://api.openai.com/v1"
	defaultVisionModel = "gpt-4-turbo"
	defaultImageModel  = "dall-e-3"
	defaultImageSize   = "1024x1024"

	visionSystemPrompt = "Describe this image as a stylized action figure."
	visionUserPrompt   = "Create an 80s-style plastic action figure from this."
)

const (
	initialInterval = 500 * time.Millisecond
	maxInterval     = 5 * time.Second
	maxElapsedTime  = 30 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type Config struct {
	APIKey      string
	BaseURL     string
	VisionModel string
	ImageModel  string
}

type Gateway struct {
	apiKey      string
	baseURL     string
	visionModel string
	imageModel  string
	client      httpDoer
	retrier     retrier
}

func New(client httpDoer, cfg Config) *Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = defaultVisionModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = defaultImageModel
	}

	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryableStatus,
	}

	return &Gateway{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		visionModel: cfg.VisionModel,
		imageModel:  cfg.ImageModel,
		client:      client,
		retrier:     backoff_adapter.New(retryConfig),
	}
}

// DescribeFigure asks the vision model to turn the uploaded photo into an
// action-figure prompt. The photo travels inline as a data URL.
func (g *Gateway) DescribeFigure(ctx context.Context, imageDataURL string) (string, error) {
	req := chatRequest{
		Model: g.visionModel,
		Messages: []chatMessage{
			{Role: "system", Content: visionSystemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: visionUserPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: imageDataURL}},
			}},
		},
	}

	var resp chatResponse
	if err := g.postJSON(ctx, "ChatCompletions", "/chat/completions", req, &resp); err != nil {
		return "", fmt.Errorf("gateway openai, describe figure: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("gateway openai, describe figure: empty choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// RenderImages generates count images for the prompt and returns the raw
// decoded bytes.
func (g *Gateway) RenderImages(ctx context.Context, prompt string, count int) ([][]byte, error) {
	req := imageRequest{
		Model:          g.imageModel,
		Prompt:         prompt,
		N:              count,
		Size:           defaultImageSize,
		ResponseFormat: "b64_json",
	}

	var resp imageResponse
	if err := g.postJSON(ctx, "ImageGenerations", "/images/generations", req, &resp); err != nil {
		return nil, fmt.Errorf("gateway openai, render images: %w", err)
	}

	images := make([][]byte, 0, len(resp.Data))
	for i, item := range resp.Data {
		decoded, err := base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("gateway openai, decode image %d: %w", i, err)
		}
		images = append(images, decoded)
	}

	return images, nil
}

type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("openai responded %d: %s", e.status, e.message)
}

func isRetryableStatus(err error) bool {
	var statusErr *statusError
	if !errors.As(err, &statusErr) {
		return false
	}

	return statusErr.status == http.StatusTooManyRequests || statusErr.status >= http.StatusInternalServerError
}

func (g *Gateway) postJSON(ctx context.Context, method, path string, reqBody, respBody any) error {
	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	return g.executeWithMetrics(ctx, method, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(encoded))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+g.apiKey)

		resp, err := g.client.Do(req)
		if err != nil {
			return fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			var apiErr apiError
			if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
				return &statusError{status: resp.StatusCode, message: apiErr.Error.Message}
			}
			return &statusError{status: resp.StatusCode, message: string(body)}
		}

		if err := json.Unmarshal(body, respBody); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}

		return nil
	})
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	statusCode := getStatusCode(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, statusCode).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, statusCode).Inc()
	}

	return err
}

func getStatusCode(err error) string {
	if err == nil {
		return "200"
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return strconv.Itoa(statusErr.status)
	}
	return "unknown"
}
