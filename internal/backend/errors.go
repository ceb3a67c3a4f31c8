package backend

import "errors"

var (
	// ErrEmptyBaseURL is returned by New without a backend url.
	ErrEmptyBaseURL = errors.New("backend url can not be empty")

	// ErrUnexpectedContent is returned when a 2xx body can not be decoded.
	ErrUnexpectedContent = errors.New("unexpected backend response content")
)
