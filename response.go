package zoominfo

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusError is returned when the API answers with a non-2xx status.
// It matches [ErrStatus] and, for 401 and 403, [ErrUnauthorized].
type StatusError struct {
	StatusCode int
	Status     string
	// Body holds the start of the response body, usually the API's error message.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: %d, %s: %s", e.Status, e.StatusCode, ErrStatus, e.Body)
	}

	return fmt.Sprintf("%s: %d, %s", e.Status, e.StatusCode, ErrStatus)
}

// Is implements errors.Is for sentinel error matching.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrStatus:
		return true
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}

	return false
}

// SearchResult is the decoded JSON body of a search response, unmodified.
// Numbers are [json.Number] values.
type SearchResult map[string]any

// TotalResults returns the totalResults field, or 0 when absent.
func (r SearchResult) TotalResults() int64 {
	return r.number("totalResults")
}

// CurrentPage returns the currentPage field, or 0 when absent.
func (r SearchResult) CurrentPage() int64 {
	return r.number("currentPage")
}

// Data returns the result records.
func (r SearchResult) Data() []map[string]any {
	raw, _ := r["data"].([]any)

	records := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}

	return records
}

func (r SearchResult) number(key string) int64 {
	n, ok := r[key].(json.Number)
	if !ok {
		return 0
	}

	v, err := n.Int64()
	if err != nil {
		return 0
	}

	return v
}
