package youtube

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

var (
	// ErrQuotaExceeded matches any ProviderError caused by an exhausted
	// YouTube Data API quota.
	ErrQuotaExceeded = errors.New("youtube API quota exceeded")
	ErrVideoNotFound = errors.New("video not found")
)

// quotaReasons are the googleapi error reasons YouTube uses for quota and
// rate limits.
var quotaReasons = map[string]bool{
	"quotaExceeded":      true,
	"dailyLimitExceeded": true,
	"rateLimitExceeded":  true,
}

// ProviderError wraps a failed YouTube Data API call.
type ProviderError struct {
	Op            string
	Err           error
	QuotaExceeded bool
}

func (e *ProviderError) Error() string {
	if e.QuotaExceeded {
		return fmt.Sprintf("youtube %s failed: quota exceeded (try again after the daily reset): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("youtube %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrQuotaExceeded && e.QuotaExceeded
}

func newProviderError(op string, err error) *ProviderError {
	pe := &ProviderError{Op: op, Err: err}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		for _, item := range apiErr.Errors {
			if quotaReasons[item.Reason] {
				pe.QuotaExceeded = true
				break
			}
		}
	}

	return pe
}
