package chef

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sazze/go-chef/chefauth"
)

// Client talks to a Chef server. Create one with NewClient; a Client is
// immutable and safe for concurrent use.
//
// All requests go out through a chefauth.Transport, so every call is
// signed on its way to the wire.
type Client struct {
	host       string
	port       int
	version    string
	httpClient *http.Client
	requestID  func() string
}

// NewClient validates cfg, fills in defaults, and returns a Client. The
// private key is parsed and validated here, so a malformed key fails at
// construction, before any request is attempted. When cfg.HTTPClient is
// set, its transport is wrapped with the signing transport and its
// timeout, redirect, and cookie settings are kept.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, ErrNoHost
	}

	if cfg.UserID == "" {
		return nil, ErrNoUserID
	}

	if len(cfg.Key) == 0 {
		return nil, ErrNoKey
	}

	key, err := chefauth.ParseKey(cfg.Key)
	if err != nil {
		return nil, err
	}

	signCfg := chefauth.SignConfig{UserID: cfg.UserID, Key: key}

	base := cfg.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}

	c := &Client{
		host:    cfg.Host,
		port:    cfg.Port,
		version: cfg.Version,
		httpClient: &http.Client{
			Transport:     chefauth.NewTransport(base.Transport, signCfg),
			CheckRedirect: base.CheckRedirect,
			Jar:           base.Jar,
			Timeout:       base.Timeout,
		},
		requestID: cfg.RequestID,
	}

	if c.port == 0 {
		c.port = DefaultPort
	}

	if c.version == "" {
		c.version = DefaultVersion
	}

	if c.requestID == nil {
		c.requestID = uuid.NewString
	}

	return c, nil
}

// Do executes one authenticated API call and returns the decoded JSON
// response as a generic map/slice/scalar tree. The path must start with a
// slash; query, when non-empty, is appended verbatim after "?". All
// resource methods funnel through Do.
//
// The response body is decoded regardless of HTTP status, and an empty or
// non-JSON body yields nil without error. Transport failures are returned
// unmodified.
func (c *Client) Do(ctx context.Context, method, path, query string, body []byte) (any, error) {
	url := fmt.Sprintf("http://%s:%d%s", c.host, c.port, path)
	if query != "" {
		url += "?" + query
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), url, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("X-Chef-Version", c.version)
	req.Header.Set("X-Remote-Request-Id", c.requestID())
	req.Header.Set("Accept", "application/json")

	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return decodeBody(raw), nil
}

// decodeBody decodes raw as JSON. An empty or undecodable body yields
// nil: the server reports errors in the body, so distinguishing "no
// content" from "bad content" is left to the caller on purpose.
func decodeBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}

	return doc
}
