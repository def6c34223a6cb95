package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

var ErrNotConfigured = errors.New("media deletion endpoint not configured")

// Client talks to the image-hosting deletion endpoint. Uploads happen in the
// browser through the hosting widget; the server only ever deletes by public
// id.
type Client struct {
	endpoint string
	http     *retryablehttp.Client
}

func NewClient(endpoint string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil
	return &Client{endpoint: endpoint, http: rc}
}

type deleteResponse struct {
	Result struct {
		Result string `json:"result"`
	} `json:"result"`
	Error string `json:"error"`
}

// Delete removes a hosted image. Success is only the provider's "ok" marker;
// anything else is a reportable failure and the caller must keep the photo in
// the draft so the user can retry.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	if c.endpoint == "" {
		return ErrNotConfigured
	}
	if publicID == "" {
		return errors.New("missing publicId")
	}

	body, _ := json.Marshal(map[string]string{"publicId": publicID})
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("media service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("media delete failed: %s", resp.Status)
	}

	var dr deleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("media delete response malformed: %w", err)
	}
	if dr.Error != "" {
		return fmt.Errorf("media delete failed: %s", dr.Error)
	}
	if dr.Result.Result != "ok" {
		return fmt.Errorf("media delete rejected: %q", dr.Result.Result)
	}
	return nil
}
