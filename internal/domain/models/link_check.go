package models

import (
	"encoding/json"
	"fmt"
)

// LinkCheck is the outcome of probing one href. Exactly one of StatusCode
// and Error is set.
type LinkCheck struct {
	URL        string
	StatusCode int
	Error      string
}

// Broken reports whether the probe returned an error status or failed.
func (l LinkCheck) Broken() bool {
	return l.Error != "" || l.StatusCode >= 400
}

// Outcome is the status code or the transport error text.
func (l LinkCheck) Outcome() string {
	if l.Error != "" {
		return l.Error
	}
	return fmt.Sprint(l.StatusCode)
}

// MarshalJSON encodes the check as [url, status] or [url, "error"].
func (l LinkCheck) MarshalJSON() ([]byte, error) {
	if l.Error != "" {
		return json.Marshal([]any{l.URL, l.Error})
	}
	return json.Marshal([]any{l.URL, l.StatusCode})
}

func (l *LinkCheck) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf(`link check: expected 2 elements, got %d`, len(pair))
	}
	if err := json.Unmarshal(pair[0], &l.URL); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[1], &l.StatusCode); err == nil {
		return nil
	}
	return json.Unmarshal(pair[1], &l.Error)
}

// LinkCheckResult holds one entry per href, in href order.
type LinkCheckResult []LinkCheck

// Broken returns the failing entries, keeping their order.
func (r LinkCheckResult) Broken() []LinkCheck {
	broken := make([]LinkCheck, 0)
	for _, c := range r {
		if c.Broken() {
			broken = append(broken, c)
		}
	}
	return broken
}
