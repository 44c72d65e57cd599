package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestUpload_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/upload" {
			t.Fatalf("path = %s, want /upload", r.URL.Path)
		}
		if got := r.URL.Query().Get("filename"); got != "1700000000_latte.png" {
			t.Fatalf("filename = %q, want 1700000000_latte.png", got)
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if string(body) != "image-bytes" {
			t.Fatalf("body = %q, want image-bytes", string(body))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(uploadResponse{URL: "http://cdn/latte.png"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	url, err := client.Upload(ctx, []byte("image-bytes"), "1700000000_latte.png")
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if url != "http://cdn/latte.png" {
		t.Fatalf("url = %q, want http://cdn/latte.png", url)
	}
}

func TestUpload_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := client.Upload(ctx, []byte("image-bytes"), "latte.png"); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestUpload_NotConfigured(t *testing.T) {
	var client *Client

	if _, err := client.Upload(context.Background(), []byte("x"), "latte.png"); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
