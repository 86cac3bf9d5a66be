// Package airtable implements the small slice of the Airtable REST API the
// relay needs: creating and updating a single record.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the public Airtable API host.
const DefaultBaseURL = "https://api.airtable.com"

// Client issues record calls against a single Airtable base. The zero value
// is not usable; construct with NewClient.
//
// HTTPClient may be replaced to control timeouts or to stub the transport in
// tests. When nil, http.DefaultClient is used.
type Client struct {
	BaseURL    string
	BaseID     string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient returns a Client for the given base. An empty baseURL falls back
// to DefaultBaseURL.
func NewClient(baseURL, baseID, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL: baseURL,
		BaseID:  baseID,
		APIKey:  apiKey,
	}
}

// Record is an Airtable record as returned by the API.
type Record struct {
	ID          string                 `json:"id"`
	CreatedTime string                 `json:"createdTime,omitempty"`
	Fields      map[string]interface{} `json:"fields,omitempty"`
}

// recordBody is the request envelope for create and update calls.
type recordBody struct {
	Fields map[string]interface{} `json:"fields"`
}

// errorEnvelope matches the error body Airtable returns on non-2xx statuses.
type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIError is returned when Airtable responds with a non-2xx status. Message
// is taken from the upstream error body when one is present.
type APIError struct {
	StatusCode int
	Message    string
}

// Error returns the upstream message.
func (e *APIError) Error() string {
	return e.Message
}

// CreateRecord creates a record in table with the given fields.
func (c *Client) CreateRecord(ctx context.Context, table string, fields map[string]interface{}) (*Record, error) {
	return c.send(ctx, http.MethodPost, c.recordURL(table, ""), fields)
}

// UpdateRecord updates the fields of an existing record in table.
func (c *Client) UpdateRecord(ctx context.Context, table string, recordID string, fields map[string]interface{}) (*Record, error) {
	return c.send(ctx, http.MethodPatch, c.recordURL(table, recordID), fields)
}

// recordURL builds the resource path for a table, optionally scoped to a
// single record.
func (c *Client) recordURL(table string, recordID string) string {
	u := fmt.Sprintf("%s/v0/%s/%s", c.BaseURL, c.BaseID, url.PathEscape(table))

	if recordID != "" {
		u = u + "/" + recordID
	}

	return u
}

// httpClient is used internally to assist stubs on the transport for testing.
func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	return http.DefaultClient
}

// send issues a single record call and decodes the result. Non-2xx statuses
// become an *APIError. There are no retries.
func (c *Client) send(ctx context.Context, method string, callURL string, fields map[string]interface{}) (*Record, error) {
	if c.APIKey == "" {
		return nil, errors.New("airtable api key is not configured")
	}

	payload, err := json.Marshal(recordBody{Fields: fields})
	if err != nil {
		return nil, errors.Wrap(err, "failed marshaling record fields")
	}

	req, err := http.NewRequestWithContext(ctx, method, callURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrapf(err, "failed building %s request for %v", method, callURL)
	}

	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed calling airtable at %v", callURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed reading airtable response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(body, resp.StatusCode),
		}
	}

	record := new(Record)
	if err := json.Unmarshal(body, record); err != nil {
		return nil, errors.Wrapf(err, "failed unmarshaling airtable record from %s", body)
	}

	return record, nil
}

// upstreamMessage extracts the message from an Airtable error body, falling
// back to a generic string when the body doesn't carry one.
func upstreamMessage(body []byte, status int) string {
	envelope := new(errorEnvelope)
	if err := json.Unmarshal(body, envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}

	return fmt.Sprintf("airtable request failed (status %d)", status)
}
