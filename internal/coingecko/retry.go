package coingecko

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pairScope/internal/model"
)

func withRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, onRetry func(attempt int, err error, delay time.Duration), fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries || !isRetryable(err) {
			return err
		}
		if onRetry != nil {
			onRetry(attempt+1, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}

// isRetryable reports transport failures, throttling and server errors.
// Cancellation of the caller's context surfaces as a bare ctx error and is
// never retried.
func isRetryable(err error) bool {
	var upstream *model.UpstreamError
	if !errors.As(err, &upstream) {
		return false
	}
	return upstream.StatusCode == 0 ||
		upstream.StatusCode == http.StatusTooManyRequests ||
		upstream.StatusCode >= http.StatusInternalServerError
}
