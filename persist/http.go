package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Entry is the wire form of one value on the score server.
type Entry struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// HTTP talks to a score server. Network failures are logged and reads fall back
// to the caller's default, so a session never stalls on the network.
type HTTP struct {
	base    string
	client  *http.Client
	timeout time.Duration
}

// NewHTTP targets the server at base, e.g. "http://localhost:5808".
func NewHTTP(base string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTP{base: base, client: client, timeout: 2 * time.Second}
}

func (h *HTTP) GetInt(key string, def int) int {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	entry, found, err := h.Get(ctx, key)
	if err != nil {
		log.Printf("persist: %v", err)
		return def
	}
	if !found {
		return def
	}
	return entry.Value
}

func (h *HTTP) SetInt(key string, value int) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.Put(ctx, key, value); err != nil {
		log.Printf("persist: %v", err)
	}
}

// Get fetches key. found is false when the server has no value for it.
func (h *HTTP) Get(ctx context.Context, key string) (entry Entry, found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url(key), nil)
	if err != nil {
		return Entry{}, false, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return Entry{}, false, fmt.Errorf("get %s: %w", key, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Entry{}, false, nil
	default:
		return Entry{}, false, fmt.Errorf("get %s: %s", key, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return Entry{}, false, fmt.Errorf("get %s: %w", key, err)
	}
	return entry, true, nil
}

// Put stores value under key.
func (h *HTTP) Put(ctx context.Context, key string, value int) error {
	body, err := json.Marshal(Entry{Key: key, Value: value})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, h.url(key), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("put %s: %s", key, resp.Status)
	}
	return nil
}

func (h *HTTP) url(key string) string {
	return h.base + "/v1/kv/" + url.PathEscape(key)
}
