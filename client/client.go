// Package client provides the HTTP collaborator used to fetch watch pages,
// player scripts, and innertube browse continuations. It wraps http.Client
// with retry/backoff, default headers, and transparent response decoding.
package client

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/ytget/ytx/errs"
	"github.com/ytget/ytx/internal/logger"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRetries = 3

	userAgentValue   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	initialBackoff   = 200 * time.Millisecond
	maxBackoff       = 3 * time.Second
	successMinCode   = http.StatusOK                  // 200
	retryableMinCode = http.StatusInternalServerError // 500

	browseEndpoint       = "https://www.youtube.com/youtubei/v1/browse"
	defaultClientName    = "WEB"
	defaultClientVersion = "2.20210622.10.00"
)

var log = logger.WithComponent(logger.ComponentClient)

// defaultTransport is a tuned HTTP transport reused across clients.
var defaultTransport = &http.Transport{
	Proxy:                 http.ProxyFromEnvironment,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ResponseHeaderTimeout: 10 * time.Second,
	// Enable HTTP/2
	ForceAttemptHTTP2: true,
	// Negotiate compression ourselves so the raw body stays available
	DisableCompression: true,
	ReadBufferSize:     16 * 1024,
	WriteBufferSize:    16 * 1024,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
}

// Config holds optional client parameters. Zero values use defaults.
type Config struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
	ProxyURL  string
}

// Client wraps http.Client with retry/backoff and default headers.
type Client struct {
	HTTPClient *http.Client
	Retries    int
	UserAgent  string

	apiKey        string
	clientVersion string
}

// New creates a new Client with a tuned Transport, default timeout, and retries.
func New() *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: defaultTransport,
		},
		Retries:       defaultRetries,
		UserAgent:     userAgentValue,
		clientVersion: defaultClientVersion,
	}
}

// NewWith creates a new client with provided config. Zero values use defaults.
func NewWith(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.Retries
	if retries <= 0 {
		retries = defaultRetries
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = userAgentValue
	}

	tr := defaultTransport.Clone()
	if cfg.ProxyURL != "" {
		if proxyFunc, err := proxyFromURLString(cfg.ProxyURL); err == nil {
			tr.Proxy = proxyFunc
		}
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		Retries:       retries,
		UserAgent:     ua,
		clientVersion: defaultClientVersion,
	}
}

// WithAPIKey sets the innertube API key used for browse continuations.
// The key is normally discovered from the page config blob.
func (c *Client) WithAPIKey(key string) *Client {
	c.apiKey = key
	return c
}

// WithClientVersion overrides the innertube client version sent in the
// request context.
func (c *Client) WithClientVersion(v string) *Client {
	if v != "" {
		c.clientVersion = v
	}
	return c
}

// Fetch performs a GET request with a simple retry policy for transient
// errors (HTTP 5xx or network failures) and returns the decoded body.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &errs.TransportError{URL: rawURL, Err: err}
	}
	c.setHeaders(req)
	return c.do(req)
}

// FetchPlayerScript downloads a player script and returns it as a string.
func (c *Client) FetchPlayerScript(ctx context.Context, scriptURL string) (string, error) {
	body, err := c.Fetch(ctx, scriptURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

type browseContext struct {
	Client struct {
		ClientName    string `json:"clientName"`
		ClientVersion string `json:"clientVersion"`
	} `json:"client"`
}

type browseRequest struct {
	Context      browseContext `json:"context"`
	Continuation string        `json:"continuation"`
}

// Continuation posts a continuation token to the innertube browse endpoint
// and returns the raw response body.
func (c *Client) Continuation(ctx context.Context, token string) ([]byte, error) {
	reqBody := browseRequest{Continuation: token}
	reqBody.Context.Client.ClientName = defaultClientName
	reqBody.Context.Client.ClientVersion = c.clientVersion

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode browse request: %w", err)
	}

	endpoint := browseEndpoint
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &errs.TransportError{URL: endpoint, Err: err}
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	ua := c.UserAgent
	if ua == "" {
		ua = userAgentValue
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Accept-Language", "en-us,en;q=0.5")
}

// do runs the request with retry/backoff and decodes the response body
// according to its Content-Encoding.
func (c *Client) do(req *http.Request) ([]byte, error) {
	retries := c.Retries
	if retries < 1 {
		retries = 1
	}

	var resp *http.Response
	var err error
	var lastStatus int
	backoff := initialBackoff
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			log.Debug("retrying request", map[string]interface{}{
				"url":     req.URL.String(),
				"attempt": attempt + 1,
			})
			select {
			case <-req.Context().Done():
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			if req.GetBody != nil {
				if body, bodyErr := req.GetBody(); bodyErr == nil {
					req.Body = body
				}
			}
		}
		resp, err = c.HTTPClient.Do(req)
		if err == nil && resp.StatusCode >= successMinCode && resp.StatusCode < retryableMinCode {
			break
		}
		if resp != nil && resp.Body != nil {
			lastStatus = resp.StatusCode
			_ = resp.Body.Close()
			resp = nil
		}
		if req.Context().Err() != nil {
			break
		}
	}
	if err != nil {
		return nil, &errs.TransportError{URL: req.URL.String(), Err: err}
	}
	if resp == nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, &errs.TransportError{URL: req.URL.String(), Err: ctxErr}
		}
		// Every attempt came back retryable; report the last status seen.
		return nil, &errs.TransportError{URL: req.URL.String(), Status: lastStatus}
	}
	defer resp.Body.Close()

	if resp.StatusCode < successMinCode || resp.StatusCode >= 300 {
		return nil, &errs.TransportError{URL: req.URL.String(), Status: resp.StatusCode}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, &errs.TransportError{URL: req.URL.String(), Err: err}
	}
	return body, nil
}

// decodeBody decompresses the response according to Content-Encoding.
func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		reader = fl
	}
	return io.ReadAll(reader)
}

// proxyFromURLString parses a proxy URL and returns a Proxy function.
func proxyFromURLString(raw string) (func(*http.Request) (*url.URL, error), error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return http.ProxyURL(u), nil
}
