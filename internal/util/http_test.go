package util

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetBytesLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	ctx := context.Background()
	if b, err := GetBytes(ctx, srv.URL, time.Second, 64); err != nil || len(b) != 64 {
		t.Fatalf("body at the limit: %d bytes, %v", len(b), err)
	}
	if _, err := GetBytes(ctx, srv.URL, time.Second, 63); !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge, got %v", err)
	}
	if b, err := GetBytes(ctx, srv.URL, time.Second, 0); err != nil || len(b) != 64 {
		t.Fatalf("unlimited read: %d bytes, %v", len(b), err)
	}
}

func TestGetBytesStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	if _, err := GetBytes(context.Background(), srv.URL, time.Second, 0); err == nil {
		t.Fatalf("expected an error for 404")
	}
}
