// Package temporal provides point-in-time filtering over dated records.
// Every matching tier in the resolver is date-scoped through this
// package: a record matches a query date D when start <= D <= end,
// with unset bounds widened to the sentinel dates.
package temporal

import "github.com/coolbeans/hansard/pkg/types"

// Dated is any record carrying a validity interval.
// An unset start is treated as types.DateMin, an unset end as
// types.DateMax.
type Dated interface {
	Interval() (start, end types.Date)
}

// Within reports whether date falls inside [start, end], widening
// unset bounds to the sentinels.
func Within(start, end, date types.Date) bool {
	return !date.Before(start.OrMin()) && !date.After(end.OrMax())
}

// AsOf returns the records whose interval contains the query date.
//
// When date is unset the interval check is skipped and every record is
// returned: callers that do not know the document date get a looser,
// best-effort match and must disambiguate downstream.
func AsOf[T Dated](records []T, date types.Date) []T {
	if date.IsZero() {
		out := make([]T, len(records))
		copy(out, records)
		return out
	}
	var out []T
	for _, record := range records {
		start, end := record.Interval()
		if Within(start, end, date) {
			out = append(out, record)
		}
	}
	return out
}

// Overlapping reports whether the two intervals share at least one day.
func Overlapping(aStart, aEnd, bStart, bEnd types.Date) bool {
	return !aStart.OrMin().After(bEnd.OrMax()) && !bStart.OrMin().After(aEnd.OrMax())
}
