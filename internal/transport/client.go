package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultTimeout      = 60 * time.Second
	defaultRetryWaitMin = 1 * time.Second
	defaultRetryWaitMax = 5 * time.Second
)

// Options configure NewHTTPClient
type Options struct {
	Timeout time.Duration
	// RetryMax retries connection failures only; responses are never retried
	RetryMax int
	Logger   *slog.Logger
	// Transport is the innermost round tripper, http.DefaultTransport when nil
	Transport http.RoundTripper
}

// NewHTTPClient creates a client with request logging and connection retries
func NewHTTPClient(opts Options) *http.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	retryClient.RetryWaitMin = defaultRetryWaitMin
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = opts.Timeout

	retryClient.Logger = nil

	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}

		return false, nil
	}

	inner := opts.Transport
	if inner == nil {
		inner = retryClient.HTTPClient.Transport
	}
	retryClient.HTTPClient.Transport = NewLoggingRoundTripper(opts.Logger, inner)

	// returned responses are handled by the caller, including error statuses
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return retryClient.StandardClient()
}
