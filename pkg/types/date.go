// Package types provides the core domain types for the member roster:
// dated identities, memberships, posts, and organizations.
package types

import (
	"fmt"
	"regexp"
)

// Date is a calendar date in ISO 8601 form ("YYYY-MM-DD"). Zero-padded
// fields make lexicographic comparison equivalent to chronological
// comparison, so Date values compare directly as strings.
type Date string

// DateMax is the open-ended sentinel used for ongoing memberships.
const DateMax Date = "9999-12-31"

// DateMin is the sentinel used when a start date is unknown.
const DateMin Date = "1000-01-01"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate validates an ISO 8601 date string.
// An empty string is accepted and returned unchanged; callers treat it
// as "unknown" (see pkg/temporal).
func ParseDate(s string) (Date, error) {
	if s == "" {
		return "", nil
	}
	if !isoDatePattern.MatchString(s) {
		return "", fmt.Errorf("invalid ISO 8601 date %q", s)
	}
	return Date(s), nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d == "" }

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d < other }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d > other }

// OrMax returns the date, or DateMax if unset. Used for open end dates.
func (d Date) OrMax() Date {
	if d.IsZero() {
		return DateMax
	}
	return d
}

// OrMin returns the date, or DateMin if unset. Used for unknown start dates.
func (d Date) OrMin() Date {
	if d.IsZero() {
		return DateMin
	}
	return d
}

// IsOpen reports whether the date is an open-ended sentinel.
func (d Date) IsOpen() bool { return d.IsZero() || d == DateMax }
