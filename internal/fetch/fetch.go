package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultUserAgent mirrors a desktop browser; ncaa.com serves the full
	// page markup only to browser-identified clients
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	DefaultTimeout = 10 * time.Second
	DefaultDelay   = 1 * time.Second
	DefaultRetries = 2
)

// ErrorKind classifies a fetch failure
type ErrorKind string

const (
	KindTimeout ErrorKind = "timeout"
	KindStatus  ErrorKind = "http_status"
	KindNetwork ErrorKind = "network"
)

// Error is a typed fetch failure. Callers treat every kind identically to a
// missing page; the kind exists for logging and summaries.
type Error struct {
	URL        string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("fetching %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s (%s): %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fetcher retrieves raw markup over HTTP
type Fetcher struct {
	client    *http.Client
	userAgent string
	delay     time.Duration
	retries   uint64
	sleep     func(time.Duration)
}

// Options configures a Fetcher. Zero values fall back to the defaults.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Delay     time.Duration
	Retries   int
}

// New creates a new Fetcher
func New(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Retries <= 0 {
		opts.Retries = DefaultRetries
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent: opts.UserAgent,
		delay:     opts.Delay,
		retries:   uint64(opts.Retries),
		sleep:     time.Sleep,
	}
}

// Fetch retrieves the raw markup at rawURL. Transient failures (timeouts,
// network errors, 5xx and 429 responses) are retried with exponential backoff;
// other HTTP statuses fail immediately. The politeness delay is applied after
// every attempt regardless of outcome.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	attempt := func() ([]byte, error) {
		body, err := f.fetchOnce(ctx, rawURL)
		f.sleep(f.delay)
		if err == nil {
			return body, nil
		}

		var fe *Error
		if errors.As(err, &fe) && !retryable(fe) {
			return nil, backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.retries), ctx)

	return backoff.RetryWithData(attempt, policy)
}

// fetchOnce performs a single HTTP GET
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Kind: KindNetwork, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		kind := KindNetwork
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			kind = KindTimeout
		}
		return nil, &Error{URL: rawURL, Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{URL: rawURL, Kind: KindStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: rawURL, Kind: KindNetwork, Err: err}
	}

	return body, nil
}

// retryable reports whether a fetch error is worth another attempt
func retryable(e *Error) bool {
	switch e.Kind {
	case KindTimeout, KindNetwork:
		return true
	case KindStatus:
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
	}
	return false
}
