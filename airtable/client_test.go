package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture holds the request details seen by the stub upstream.
type capture struct {
	method  string
	path    string
	auth    string
	content string
	body    map[string]interface{}
}

func stubUpstream(t *testing.T, status int, responseBody string, seen *capture) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.method = r.Method
		seen.path = r.URL.EscapedPath()
		seen.auth = r.Header.Get("Authorization")
		seen.content = r.Header.Get("Content-Type")

		var envelope struct {
			Fields map[string]interface{} `json:"fields"`
		}
		if err := json.NewDecoder(r.Body).Decode(&envelope); err == nil {
			seen.body = envelope.Fields
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(responseBody))
	}))
}

func TestNewClient(t *testing.T) {
	c := NewClient("", "appXYZ", "key123")

	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, "appXYZ", c.BaseID)
	assert.Equal(t, "key123", c.APIKey)
}

func TestClient_recordURL(t *testing.T) {
	c := NewClient("https://example.com", "appXYZ", "key123")

	cases := []struct {
		table    string
		recordID string
		expected string
	}{
		{"Leads", "", "https://example.com/v0/appXYZ/Leads"},
		{"Form Submissions", "", "https://example.com/v0/appXYZ/Form%20Submissions"},
		{"Form Submissions", "rec123", "https://example.com/v0/appXYZ/Form%20Submissions/rec123"},
	}

	for _, c2 := range cases {
		assert.Equal(t, c2.expected, c.recordURL(c2.table, c2.recordID))
	}
}

func TestClient_CreateRecord(t *testing.T) {
	seen := &capture{}
	upstream := stubUpstream(t, 200, `{"id":"rec123","createdTime":"2024-01-01T00:00:00.000Z"}`, seen)
	defer upstream.Close()

	c := NewClient(upstream.URL, "appXYZ", "key123")

	record, err := c.CreateRecord(context.Background(), "Form Submissions", map[string]interface{}{
		"email":  "jo@example.com",
		"urgent": true,
	})

	assert.NoError(t, err)
	assert.Equal(t, "rec123", record.ID)

	assert.Equal(t, "POST", seen.method)
	assert.Equal(t, "/v0/appXYZ/Form%20Submissions", seen.path)
	assert.Equal(t, "Bearer key123", seen.auth)
	assert.Equal(t, "application/json", seen.content)
	assert.Equal(t, "jo@example.com", seen.body["email"])
	assert.Equal(t, true, seen.body["urgent"])
}

func TestClient_UpdateRecord(t *testing.T) {
	seen := &capture{}
	upstream := stubUpstream(t, 200, `{"id":"rec123"}`, seen)
	defer upstream.Close()

	c := NewClient(upstream.URL, "appXYZ", "key123")

	record, err := c.UpdateRecord(context.Background(), "Form Submissions", "rec123", map[string]interface{}{
		"status": "completed",
	})

	assert.NoError(t, err)
	assert.Equal(t, "rec123", record.ID)

	assert.Equal(t, "PATCH", seen.method)
	assert.Equal(t, "/v0/appXYZ/Form%20Submissions/rec123", seen.path)
}

func TestClient_send_missingAPIKey(t *testing.T) {
	c := NewClient("https://example.com", "appXYZ", "")

	_, err := c.CreateRecord(context.Background(), "Form Submissions", nil)

	assert.Error(t, err)
	assert.Equal(t, "airtable api key is not configured", err.Error())
}

func TestClient_send_upstreamError(t *testing.T) {
	seen := &capture{}
	upstream := stubUpstream(t, 422, `{"error":{"type":"INVALID_VALUE_FOR_COLUMN","message":"Invalid field"}}`, seen)
	defer upstream.Close()

	c := NewClient(upstream.URL, "appXYZ", "key123")

	_, err := c.CreateRecord(context.Background(), "Form Submissions", nil)

	assert.Error(t, err)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.Equal(t, "Invalid field", apiErr.Message)
	assert.Equal(t, "Invalid field", apiErr.Error())
}

func TestClient_send_upstreamError_noMessage(t *testing.T) {
	seen := &capture{}
	upstream := stubUpstream(t, 503, `oops`, seen)
	defer upstream.Close()

	c := NewClient(upstream.URL, "appXYZ", "key123")

	_, err := c.CreateRecord(context.Background(), "Form Submissions", nil)

	assert.Error(t, err)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, 503, apiErr.StatusCode)
	assert.Equal(t, "airtable request failed (status 503)", apiErr.Message)
}

func TestClient_send_connectionError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "appXYZ", "key123")

	_, err := c.CreateRecord(context.Background(), "Form Submissions", nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed calling airtable")
}

func TestClient_send_badResponseBody(t *testing.T) {
	seen := &capture{}
	upstream := stubUpstream(t, 200, `{...`, seen)
	defer upstream.Close()

	c := NewClient(upstream.URL, "appXYZ", "key123")

	_, err := c.CreateRecord(context.Background(), "Form Submissions", nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed unmarshaling airtable record")
}

func TestUpstreamMessage(t *testing.T) {
	cases := []struct {
		body     string
		status   int
		expected string
	}{
		{`{"error":{"message":"Invalid field"}}`, 422, "Invalid field"},
		{`{"error":{"type":"NOT_FOUND"}}`, 404, "airtable request failed (status 404)"},
		{`not json at all`, 500, "airtable request failed (status 500)"},
		{``, 502, "airtable request failed (status 502)"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, upstreamMessage([]byte(c.body), c.status))
	}
}
