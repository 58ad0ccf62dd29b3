package api

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Client fetches bazaar snapshots from the upstream REST endpoint.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	validate   *validator.Validate

	requireSuccess bool
	maxBodyBytes   int64
}

// maxResponseBytes caps how much of an upstream body is buffered.
const maxResponseBytes = 64 << 20

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new bazaar client for the given endpoint URL.
func NewClient(url, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		validate:     newValidator(),
		maxBodyBytes: maxResponseBytes,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRequireSuccess makes a response with "success": false fail as a DecodeError.
func WithRequireSuccess(require bool) ClientOption {
	return func(c *Client) {
		c.requireSuccess = require
	}
}

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
