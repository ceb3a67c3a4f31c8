package backend

import "net/http"

// Status classifies a backend response.
type Status int

const (
	// StatusOK is any 2xx response.
	StatusOK Status = iota
	// StatusUnauthorized is a 401, no valid session.
	StatusUnauthorized
	// StatusForbidden is a 403, authenticated but not allowed.
	StatusForbidden
	// StatusNotFound is a 404.
	StatusNotFound
	// StatusOther is every other non-success response.
	StatusOther
)

// String returns the metric label of s.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnauthorized:
		return "unauthorized"
	case StatusForbidden:
		return "forbidden"
	case StatusNotFound:
		return "not_found"
	default:
		return "other"
	}
}

// Classify maps an HTTP status code onto a Status.
func Classify(code int) Status {
	switch {
	case code >= 200 && code < 300:
		return StatusOK
	case code == http.StatusUnauthorized:
		return StatusUnauthorized
	case code == http.StatusForbidden:
		return StatusForbidden
	case code == http.StatusNotFound:
		return StatusNotFound
	default:
		return StatusOther
	}
}

// Result is the outcome of one backend call.
type Result[T any] struct {
	Status  Status
	Code    int    // raw HTTP status code
	Value   T      // decoded payload, set for StatusOK only
	Message string // response body text of a non-success answer
}

// OK reports whether the backend answered with a 2xx.
func (r Result[T]) OK() bool {
	return r.Status == StatusOK
}

// Empty is the payload of calls answering without a body.
type Empty struct{}
