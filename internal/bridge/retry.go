// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bridge

import (
	"context"
	"math"
	"strings"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff when
// the Notes app times out answering a script. Tests override this to
// avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// appleEventTimeout is the error code osascript reports when the target
// application does not answer in time, typically while Notes is syncing.
const appleEventTimeout = "(-1712)"

// isTimeout reports whether err is an Apple Event timeout.
func isTimeout(err error) bool {
	return err != nil && strings.Contains(err.Error(), appleEventTimeout)
}

// outputWithRetry runs the script and retries Apple Event timeouts with
// exponential backoff: RetryBaseDelay, then double each attempt. Other
// failures return at once. After the last retry the timeout error is
// returned.
func (s *Source) outputWithRetry(ctx context.Context, args ...string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		out, err := s.exec.Output(ctx, binOsascript, args...)
		if !isTimeout(err) || attempt >= s.maxRetries {
			return out, err
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		s.log.Warn("notes app timed out, retrying", "backoff", backoff, "attempt", attempt+1, "max_retries", s.maxRetries)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
