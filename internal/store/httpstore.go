package store

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

// HTTPStore talks to a hosted realtime database over its REST surface:
// GET/PUT/POST/PATCH on {base}/{path}.json, with an optional auth token
// appended as a query parameter.
type HTTPStore struct {
	base         string
	authToken    string
	client       *http.Client
	pollInterval time.Duration
}

// NewHTTPStore builds a client for the store at base (e.g.
// "https://neurowatch-demo-default-rtdb.firebaseio.com"). authToken may be
// empty for open rules. pollInterval drives Watch; zero means 3s, the
// cadence the original dashboard refreshed at.
func NewHTTPStore(base, authToken string, pollInterval time.Duration) *HTTPStore {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	return &HTTPStore{
		base:         strings.TrimRight(base, "/"),
		authToken:    authToken,
		client:       &http.Client{Timeout: 10 * time.Second},
		pollInterval: pollInterval,
	}
}

func (s *HTTPStore) url(path string) string {
	u := s.base + "/" + normalize(path) + ".json"
	if s.authToken != "" {
		u += "?auth=" + s.authToken
	}
	return u
}

func (s *HTTPStore) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		raw, err := marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.url(path), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s %s returned %d", ErrUnavailable, method, path, resp.StatusCode)
	}
	return json.RawMessage(data), nil
}

func (s *HTTPStore) Get(ctx context.Context, path string, out any) error {
	raw, err := s.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	// The hosted store answers "null" for an empty path.
	if isNull(raw) {
		return ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

func (s *HTTPStore) Put(ctx context.Context, path string, value any) error {
	_, err := s.do(ctx, http.MethodPut, path, value)
	return err
}

func (s *HTTPStore) Post(ctx context.Context, path string, value any) (string, error) {
	raw, err := s.do(ctx, http.MethodPost, path, value)
	if err != nil {
		return "", err
	}
	var resp struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	return resp.Name, nil
}

func (s *HTTPStore) Patch(ctx context.Context, path string, fields map[string]any) error {
	_, err := s.do(ctx, http.MethodPatch, path, fields)
	return err
}

// Watch polls the path and forwards the value whenever it changes. The
// original client re-rendered from a 3-second feed; polling gives the same
// last-write-wins view without holding a streaming connection open.
func (s *HTTPStore) Watch(ctx context.Context, path string) <-chan json.RawMessage {
	ch := make(chan json.RawMessage, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		var last json.RawMessage
		for {
			raw, err := s.do(ctx, http.MethodGet, path, nil)
			if err == nil && !isNull(raw) && !bytes.Equal(raw, last) {
				last = raw
				select {
				case ch <- raw:
				default:
					select {
					case <-ch:
					default:
					}
					ch <- raw
				}
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return ch
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
