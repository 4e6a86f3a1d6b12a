// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package links queries the resolver backend for the targets of a citation.
package links

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/pdiddy/linkresolver/internal/httputil"
	"github.com/pdiddy/linkresolver/pkg/types"
)

// maxBodyBytes bounds the backend response read into memory.
const maxBodyBytes = 4 << 20

// Errors surfaced to the page. Their text is shown to patrons, so it carries
// no transport detail; the underlying cause is logged.
var (
	ErrUnavailable = errors.New("link service is unavailable")
	ErrBadResponse = errors.New("link service returned an unreadable response")
)

// Client fetches link records from the backend endpoint.
type Client struct {
	HTTP       *http.Client
	Endpoint   string
	UserAgent  string
	MaxRetries int

	// Token, when set, is sent as a bearer credential to the backend.
	Token string

	// Exclude lists target URLs removed from every response.
	Exclude []string

	Logger *zap.Logger
}

// NewClient builds a Client from the resolver configuration.
func NewClient(cfg types.ResolverConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		Endpoint:   cfg.BackendURL,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		Token:      cfg.BackendToken,
		Exclude:    cfg.ExcludeTargets,
		Logger:     logger,
	}
}

// Fetch sends the page's query string to the endpoint and returns the link
// records in the order received.
func (c *Client) Fetch(ctx context.Context, query url.Values) ([]types.LinkRecord, error) {
	log := c.logger()

	reqURL, err := c.requestURL(query)
	if err != nil {
		log.Error("building backend request URL", zap.String("endpoint", c.Endpoint), zap.Error(err))
		return nil, ErrUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Error("creating backend request", zap.Error(err))
		return nil, ErrUnavailable
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient(), req, c.MaxRetries)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn("backend request failed", zap.String("url", reqURL), zap.Error(err))
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("backend returned error status", zap.String("url", reqURL), zap.Int("status", resp.StatusCode))
		return nil, ErrUnavailable
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("reading backend response", zap.Error(err))
		return nil, ErrUnavailable
	}

	records, err := Decode(body)
	if err != nil {
		log.Warn("decoding backend response", zap.Error(err))
		return nil, ErrBadResponse
	}

	records = c.filter(records)
	log.Debug("backend links fetched", zap.Int("count", len(records)))
	return records, nil
}

func (c *Client) requestURL(query url.Values) (string, error) {
	if c.Endpoint == "" {
		return "", fmt.Errorf("no backend endpoint configured")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint: %w", err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// filter drops excluded targets, keeping the original order.
func (c *Client) filter(records []types.LinkRecord) []types.LinkRecord {
	if len(c.Exclude) == 0 {
		return records
	}
	excluded := make(map[string]bool, len(c.Exclude))
	for _, u := range c.Exclude {
		excluded[u] = true
	}
	kept := records[:0]
	for _, r := range records {
		if !excluded[r.TargetURL] {
			kept = append(kept, r)
		}
	}
	return kept
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

// envelope is the SFX multi-object response rendered as JSON.
type envelope struct {
	ContextObject []struct {
		Targets []struct {
			Target []types.LinkRecord `json:"target"`
		} `json:"ctx_obj_targets"`
	} `json:"ctx_obj"`
}

// Decode accepts either a bare JSON array of link records or the SFX
// multi-object envelope and returns the records of the first context object.
// A null body decodes to an empty, non-nil slice.
func Decode(body []byte) ([]types.LinkRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	switch trimmed[0] {
	case '[':
		var records []types.LinkRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("parsing link list: %w", err)
		}
		return nonNil(records), nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("parsing context object: %w", err)
		}
		if env.ContextObject == nil {
			return nil, fmt.Errorf("could not identify context object in response")
		}
		if len(env.ContextObject) == 0 || len(env.ContextObject[0].Targets) == 0 {
			return []types.LinkRecord{}, nil
		}
		return nonNil(env.ContextObject[0].Targets[0].Target), nil
	case 'n':
		if string(trimmed) == "null" {
			return []types.LinkRecord{}, nil
		}
	}
	return nil, fmt.Errorf("unexpected response body")
}

func nonNil(records []types.LinkRecord) []types.LinkRecord {
	if records == nil {
		return []types.LinkRecord{}
	}
	return records
}
