// Package storage предоставляет клиент внешнего блоб-хранилища изображений.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client инкапсулирует HTTP-взаимодействие с хранилищем изображений.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент хранилища по указанному адресу.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload загружает файл и возвращает его публичный URL.
// Ошибки не ретраятся, URL не проверяется — за валидность отвечает хранилище.
func (c *Client) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if c == nil || c.baseURL == "" {
		return "", fmt.Errorf("storage client not configured")
	}

	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	uploadURL := fmt.Sprintf("%s/upload?filename=%s", base, url.QueryEscape(filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return result.URL, nil
}
