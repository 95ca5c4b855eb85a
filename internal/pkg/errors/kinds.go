package errors

import (
	"fmt"
)

// FetchError is returned when a page cannot be retrieved: either the
// transport failed or the server answered with something other than 200.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(`failed to fetch %s: %v`, e.URL, e.Err)
	}
	return fmt.Sprintf(`failed to fetch %s: status code %d`, e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ProbeError describes a failed link reachability probe. It is never
// returned up the stack; link checks store its text as data.
type ProbeError struct {
	URL string
	Err error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf(`probe %s: %v`, e.URL, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// AIServiceError covers every failure of the suggestion service.
type AIServiceError struct {
	Reason string
	Err    error
}

func (e *AIServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(`ai service: %s: %v`, e.Reason, e.Err)
	}
	return `ai service: ` + e.Reason
}

func (e *AIServiceError) Unwrap() error {
	return e.Err
}

// ConfigurationError is fatal at startup.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(`configuration error: %s: %s`, e.Key, e.Reason)
}
