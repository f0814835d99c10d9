package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// doJSON sends a method request to url, with body encoded as JSON when it is
// non-nil, and decodes the JSON response into out.
// It classifies failures into the adapter error taxonomy so each concrete
// adapter does not have to repeat status-code triage (the teacher's four
// clients each inlined a near-identical version of this).
func doJSON(ctx context.Context, client *http.Client, method, url string, headers map[string]string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: Permanent, Reason: "encode_request", Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &Error{Kind: Permanent, Reason: "build_request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &Error{Kind: Cancelled, Reason: "context_done", Err: ctx.Err()}
		}
		return &Error{Kind: Transient, Reason: "request_failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: Transient, Reason: "read_response", Err: err}
	}

	if err := classifyStatus(resp.StatusCode, respBody); err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Kind: Permanent, Reason: "malformed_response", Err: err}
		}
	}
	return nil
}

func classifyStatus(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return &Error{Kind: Transient, Reason: "rate_limited", Err: fmt.Errorf("status %d: %s", status, truncate(body))}
	case status >= 500:
		return &Error{Kind: Transient, Reason: "server_error", Err: fmt.Errorf("status %d: %s", status, truncate(body))}
	case status >= 400:
		return &Error{Kind: Permanent, Reason: "client_error", Err: fmt.Errorf("status %d: %s", status, truncate(body))}
	default:
		return &Error{Kind: Transient, Reason: "unexpected_status", Err: fmt.Errorf("status %d: %s", status, truncate(body))}
	}
}

func truncate(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
