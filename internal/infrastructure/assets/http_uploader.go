package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"stockroom/internal/core/ports"

	"go.uber.org/zap"
)

// HTTPUploader pushes image bytes to the external asset host over a multipart
// POST and returns the public URL the host hands back.
type HTTPUploader struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *zap.SugaredLogger
}

func NewHTTPUploader(endpoint, apiKey string, timeout time.Duration, logger *zap.SugaredLogger) ports.AssetUploader {
	return &HTTPUploader{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (u *HTTPUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to buffer image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("asset host returned status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("asset host returned no url")
	}

	u.logger.Debugw("image uploaded", "filename", filename, "url", parsed.URL)
	return parsed.URL, nil
}
