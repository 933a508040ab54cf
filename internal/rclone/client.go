package rclone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Client talks to a running rc server over its HTTP JSON API. Every
// call is a POST with a JSON body, including parameterless ones.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the rc server at addr
// (host:port, as passed to --rc-addr).
func NewClient(addr string) *Client {
	return &Client{
		baseURL: "http://" + addr,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Version returns the remote rclone's version string, e.g. "v1.67.0".
func (c *Client) Version(ctx context.Context) (string, error) {
	var result struct {
		Version string `json:"version"`
	}
	if err := c.call(ctx, "core/version", nil, &result); err != nil {
		return "", err
	}
	return result.Version, nil
}

// PID returns the server's process id.
func (c *Client) PID(ctx context.Context) (int, error) {
	var result struct {
		PID int `json:"pid"`
	}
	if err := c.call(ctx, "core/pid", nil, &result); err != nil {
		return 0, err
	}
	return result.PID, nil
}

// call POSTs params to the named rc method and decodes the JSON reply
// into out. rc errors come back as {"error": ...} with a non-2xx
// status.
func (c *Client) call(ctx context.Context, method string, params, out any) error {
	if params == nil {
		params = struct{}{}
	}
	body, err := json.Marshal(params)
	if err != nil {
		return eris.Wrapf(err, "failed to encode %s params", method)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return eris.Wrapf(err, "failed to build %s request", method)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "rc call %s failed", method)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrapf(err, "failed to read %s response", method)
	}

	if resp.StatusCode != http.StatusOK {
		var rcErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &rcErr) == nil && rcErr.Error != "" {
			return eris.Errorf("rc call %s: %s", method, rcErr.Error)
		}
		return eris.Errorf("rc call %s: unexpected status %s", method, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrapf(err, "failed to parse %s response", method)
	}
	return nil
}

// Describe summarises the server for display, e.g. "v1.67.0 (pid 4242)".
func (c *Client) Describe(ctx context.Context) (string, error) {
	version, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	pid, err := c.PID(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (pid %d)", version, pid), nil
}
