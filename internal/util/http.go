package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrBodyTooLarge is returned when a response exceeds the caller's limit.
var ErrBodyTooLarge = errors.New("response body too large")

// GetBytes fetches url and returns the body. Non-2xx responses are errors,
// as are bodies longer than limit bytes when limit is positive.
func GetBytes(ctx context.Context, url string, timeout time.Duration, limit int64) ([]byte, error) {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	client := http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}
	if limit <= 0 {
		return io.ReadAll(resp.Body)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("get %s: %w (limit %d bytes)", url, ErrBodyTooLarge, limit)
	}
	return b, nil
}
