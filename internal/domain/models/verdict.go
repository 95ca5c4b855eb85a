package models

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityPass Severity = "pass"
	SeverityWarn Severity = "warn"
	SeverityFail Severity = "fail"
)

const (
	markerPass = "✅"
	markerWarn = "⚠️"
	markerFail = "❌"
)

// Marker is the symbol a verdict of this severity starts with.
func (s Severity) Marker() string {
	switch s {
	case SeverityPass:
		return markerPass
	case SeverityWarn:
		return markerWarn
	default:
		return markerFail
	}
}

// Verdict formats one rule outcome.
func Verdict(s Severity, format string, args ...any) string {
	return s.Marker() + " " + fmt.Sprintf(format, args...)
}

// SeverityOf reads the severity back from a verdict string. Anything
// without a pass or warn marker counts as a failure.
func SeverityOf(verdict string) Severity {
	switch {
	case strings.HasPrefix(verdict, markerPass):
		return SeverityPass
	case strings.HasPrefix(verdict, markerWarn):
		return SeverityWarn
	default:
		return SeverityFail
	}
}
