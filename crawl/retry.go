package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/wikidoc"
)

// FetchFunc is the signature for a page fetch function.
type FetchFunc func(ctx context.Context, id string) (string, error)

// RetryFunc is called before each retry with the attempt about to be made
// and the error that caused it.
type RetryFunc func(id string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays fetches a page, retrying transport failures after each
// of the given delays in turn. Classified wiki errors such as ENOTFOUND or
// EPROTOCOL are returned immediately. An empty delays slice disables retries.
func FetchWithRetryDelays(ctx context.Context, id string, fetch FetchFunc, onRetry RetryFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, id)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if onRetry != nil {
			onRetry(id, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

// isRetryable reports whether err is a transport failure worth repeating.
func isRetryable(err error) bool {
	var e *wikidoc.Error
	if errors.As(err, &e) {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
