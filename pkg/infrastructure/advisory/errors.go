package advisory

import (
	"errors"
	"fmt"
)

var (
	ErrRateLimited     = errors.New("advisory: rate limited")
	ErrTimeout         = errors.New("advisory: timed out")
	ErrInvalidResponse = errors.New("advisory: invalid response")
)

// HTTPError is a non-2xx upstream reply
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("upstream http error: status=%d body=%s", e.StatusCode, e.Body)
}
