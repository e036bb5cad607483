package frappe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	datetimeLayout = "2006-01-02 15:04:05"
	// creation/modified columns carry microseconds
	creationLayout = "2006-01-02 15:04:05.000000"
)

// Client talks to a Frappe site over its REST resource API and RPC method
// endpoints, authenticating with an API key/secret pair.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	loc        *time.Location
}

func NewClient(baseURL string, apiKey string, apiSecret string, timezone string) (*Client, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid backend timezone %q: %w", timezone, err)
	}
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		loc: loc,
	}, nil
}

// Location returns the backend site's local timezone. All datetime fields on
// the wire are naive local times in this zone.
func (c *Client) Location() *time.Location {
	return c.loc
}

// APIError represents a non-2xx response from the Frappe site.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("frappe API error [%d]: %s", e.StatusCode, e.Message)
}

type listOptions struct {
	Filters   [][]interface{}
	Fields    []string
	OrderBy   string
	Parent    string
	LimitPage int
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("token %s:%s", c.apiKey, c.apiSecret))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Exception string `json:"exception"`
			Message   string `json:"message"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(raw, &apiErr)
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Exception
		}
		if msg == "" {
			msg = string(raw)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getList fetches documents of a doctype. The result's "data" array is
// decoded into out.
func (c *Client) getList(ctx context.Context, doctype string, opts listOptions, out interface{}) error {
	query := url.Values{}
	if len(opts.Filters) > 0 {
		encoded, err := json.Marshal(opts.Filters)
		if err != nil {
			return fmt.Errorf("encode filters: %w", err)
		}
		query.Set("filters", string(encoded))
	}
	if len(opts.Fields) > 0 {
		encoded, err := json.Marshal(opts.Fields)
		if err != nil {
			return fmt.Errorf("encode fields: %w", err)
		}
		query.Set("fields", string(encoded))
	}
	if opts.OrderBy != "" {
		query.Set("order_by", opts.OrderBy)
	}
	if opts.Parent != "" {
		query.Set("parent", opts.Parent)
	}
	if opts.LimitPage > 0 {
		query.Set("limit_page_length", fmt.Sprintf("%d", opts.LimitPage))
	} else {
		query.Set("limit_page_length", "0")
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := c.do(ctx, http.MethodGet, "/api/resource/"+url.PathEscape(doctype), query, nil, &envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, out)
}

// insert creates a document and decodes the created doc into out.
func (c *Client) insert(ctx context.Context, doctype string, doc interface{}, out interface{}) error {
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := c.do(ctx, http.MethodPost, "/api/resource/"+url.PathEscape(doctype), nil, doc, &envelope); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

// setValue updates fields on an existing document.
func (c *Client) setValue(ctx context.Context, doctype string, name string, values map[string]interface{}) error {
	path := "/api/resource/" + url.PathEscape(doctype) + "/" + url.PathEscape(name)
	return c.do(ctx, http.MethodPut, path, nil, values, nil)
}

// call invokes a whitelisted RPC method. The response's "message" value is
// decoded into out.
func (c *Client) call(ctx context.Context, method string, args interface{}, out interface{}) error {
	envelope := struct {
		Message json.RawMessage `json:"message"`
	}{}
	if err := c.do(ctx, http.MethodPost, "/api/method/"+method, nil, args, &envelope); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(envelope.Message, out)
}

// cancelDoc cancels a submitted document.
func (c *Client) cancelDoc(ctx context.Context, doctype string, name string) error {
	return c.call(ctx, "frappe.client.cancel", map[string]string{
		"doctype": doctype,
		"name":    name,
	}, nil)
}

// parseDatetime parses a naive backend datetime in the site's timezone.
func (c *Client) parseDatetime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(creationLayout, s, c.loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(datetimeLayout, s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q: %w", s, err)
	}
	return t, nil
}

// formatDatetime renders a timestamp as a naive local datetime for the wire.
func (c *Client) formatDatetime(t time.Time) string {
	return t.In(c.loc).Format(datetimeLayout)
}
