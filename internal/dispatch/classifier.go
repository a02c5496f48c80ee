package dispatch

import (
	"errors"
	"net/http"
	"strings"

	"trends-desk/pkg/trends"
)

// ErrorClass tells the dispatcher how to treat a failed call.
type ErrorClass int

const (
	ErrorClassNone        ErrorClass = iota
	ErrorClassRateLimited            // cool down, then retry once
	ErrorClassGeneric                // report and stop
)

func (c ErrorClass) String() string {
	switch c {
	case ErrorClassNone:
		return "none"
	case ErrorClassRateLimited:
		return "rate_limited"
	default:
		return "generic"
	}
}

// rateLimitMarkers are matched case-insensitively against error text, for
// clients that only surface the status inside a message.
var rateLimitMarkers = []string{
	"429",
	"rate limit",
	"too many requests",
}

// Classify sorts an error into the dispatcher's taxonomy.
func Classify(err error) ErrorClass {
	if err == nil {
		return ErrorClassNone
	}
	if IsRateLimited(err) {
		return ErrorClassRateLimited
	}
	return ErrorClassGeneric
}

// IsRateLimited reports whether err signals that the trends service is
// throttling us.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *trends.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests
	}

	errStr := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(errStr, marker) {
			return true
		}
	}
	return false
}
