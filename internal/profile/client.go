// Package profile looks up user names in the remote profile service.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

var (
	ErrNotConfigured    = errors.New("profile service url is not configured")
	ErrUnexpectedStatus = errors.New("unexpected profile service status")
)

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(config.URL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &loggingTransport{
				Transport: &apiKeyTransport{APIKey: config.APIKey, Transport: http.DefaultTransport},
			},
		},
	}
}

// Lookup fetches the profile of the user with the given id.
func (c *Client) Lookup(ctx context.Context, userID string) (Profile, error) {
	if c.baseURL == "" {
		return Profile{}, ErrNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to create profile request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to request profile of user %q: %w", userID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("profile of user %q: %w: %d", userID, ErrUnexpectedStatus, resp.StatusCode)
	}
	p := Profile{}
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("failed to decode profile of user %q: %w", userID, err)
	}
	return p, nil
}
