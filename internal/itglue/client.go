package itglue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Resource is one normalized entity from the API: id, type, and the
// resource's attributes flattened in with camelCase keys.
type Resource map[string]any

// Pagination is the normalized page metadata of a collection response.
// Fields are always populated, with defaults when the upstream omits them.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	NextPage    *int `json:"nextPage"`
	PrevPage    *int `json:"prevPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
}

// Result is the normalized form of one API response.
type Result struct {
	Data []Resource `json:"data"`
	Meta Pagination `json:"meta"`
}

// Client issues authenticated GET requests against the IT Glue API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client from resolved credentials. A missing API key is
// rejected here so it can never reach the wire.
func NewClient(creds Credentials) (*Client, error) {
	if creds.APIKey == "" {
		return nil, ErrMissingCredentials
	}
	return &Client{
		apiKey:     creds.APIKey,
		baseURL:    creds.endpoint(),
		httpClient: &http.Client{},
	}, nil
}

// envelope is the raw JSON:API response shape.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Meta   map[string]any  `json:"meta"`
	Errors []envelopeError `json:"errors"`
}

type envelopeError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// rawResource is one entity as the API sends it, hyphenated keys and all.
type rawResource struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	Attributes    map[string]any `json:"attributes"`
	Relationships map[string]any `json:"relationships"`
}

// Request performs one GET round trip and normalizes the response. A
// single-resource response is wrapped into a one-element slice.
func (c *Client) Request(ctx context.Context, path string, params Params) (*Result, error) {
	u := c.baseURL + path + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/vnd.api+json")
	req.Header.Set("Accept", "application/vnd.api+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(body)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	// The API can report errors inside a 2xx envelope.
	if len(env.Errors) > 0 {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			if e.Detail != "" {
				msgs = append(msgs, e.Detail)
			} else {
				msgs = append(msgs, e.Title)
			}
		}
		return nil, &APIError{Messages: msgs}
	}

	raw, err := decodeData(env.Data)
	if err != nil {
		return nil, fmt.Errorf("parsing response data: %w", err)
	}

	data := make([]Resource, 0, len(raw))
	for _, r := range raw {
		data = append(data, normalizeResource(r))
	}

	return &Result{Data: data, Meta: parseMeta(env.Meta, len(data))}, nil
}

// Get returns the first resource of a response, nil when the response is
// empty. Existence checks are the caller's concern.
func (c *Client) Get(ctx context.Context, path string, params Params) (Resource, error) {
	result, err := c.Request(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if len(result.Data) == 0 {
		return nil, nil
	}
	return result.Data[0], nil
}

// decodeData unwraps the envelope's data field, which can be a list, a
// single object, or null.
func decodeData(data json.RawMessage) ([]rawResource, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []rawResource
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var single rawResource
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, err
	}
	return []rawResource{single}, nil
}

// normalizeResource flattens a raw resource into a single map: id, type,
// camelCase attributes, plus relationships when the API sent any.
func normalizeResource(r rawResource) Resource {
	out := Resource{"id": r.ID, "type": r.Type}
	for k, v := range r.Attributes {
		if nested, ok := v.(map[string]any); ok {
			out[ToCamel(k)] = NormalizeKeys(nested)
			continue
		}
		out[ToCamel(k)] = v
	}
	if r.Relationships != nil {
		out["relationships"] = NormalizeKeys(r.Relationships)
	}
	return out
}

// parseMeta normalizes page metadata, applying defaults for anything the
// upstream omitted.
func parseMeta(meta map[string]any, count int) Pagination {
	return Pagination{
		CurrentPage: metaInt(meta, "current-page", 1),
		NextPage:    metaIntPtr(meta, "next-page"),
		PrevPage:    metaIntPtr(meta, "prev-page"),
		TotalPages:  metaInt(meta, "total-pages", 1),
		TotalCount:  metaInt(meta, "total-count", count),
	}
}

func metaInt(meta map[string]any, key string, def int) int {
	if f, ok := meta[key].(float64); ok {
		return int(f)
	}
	return def
}

func metaIntPtr(meta map[string]any, key string) *int {
	if f, ok := meta[key].(float64); ok {
		n := int(f)
		return &n
	}
	return nil
}
