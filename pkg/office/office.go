// Package office resolves role labels ("The Deputy Speaker", "First
// Minister") to the person holding the office on a given date.
// Holder records come from roster memberships in office posts, merged
// with the hand-maintained override table for offices the roster does
// not model.
package office

import (
	"fmt"
	"strings"

	"github.com/coolbeans/hansard/pkg/overrides"
	"github.com/coolbeans/hansard/pkg/roster"
	"github.com/coolbeans/hansard/pkg/temporal"
	"github.com/coolbeans/hansard/pkg/types"
)

// Record is one date-scoped office holding.
type Record struct {
	Office    string
	PersonID  types.PersonID
	StartDate types.Date
	EndDate   types.Date
	Note      string
}

// Interval returns the holding window.
func (r Record) Interval() (types.Date, types.Date) {
	return r.StartDate, r.EndDate
}

// AmbiguityError means an office label resolved to more than one
// concurrent holder: a roster data defect, surfaced rather than
// guessed around.
type AmbiguityError struct {
	Office  string
	Date    types.Date
	Holders []types.PersonID
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("office %q has %d concurrent holders on %s",
		e.Office, len(e.Holders), e.Date)
}

// History answers point-in-time office-holder queries. It also carries
// the per-document deputy-speaker pointer, which calling parsers set
// when a sitting announces who is in the chair; that pointer is scoped
// to the current document and reset with the session.
type History struct {
	records []Record
	crowd   map[string]bool

	deputyName string
}

// New builds a history from explicit records and the crowd-phrase list.
func New(records []Record, crowdLabels []string) *History {
	crowd := make(map[string]bool, len(crowdLabels))
	for _, label := range crowdLabels {
		crowd[canonicalOffice(label)] = true
	}
	return &History{records: records, crowd: crowd}
}

// FromRoster derives holder records from every roster membership whose
// post is a named office rather than a territorial seat, then merges
// the override table on top.
func FromRoster(store *roster.Store, ovr *overrides.Set) *History {
	records := rosterOfficeRecords(store)
	for _, holder := range ovr.OfficeHolders {
		records = append(records, Record{
			Office:    holder.Office,
			PersonID:  holder.PersonID,
			StartDate: holder.StartDate,
			EndDate:   holder.EndDate,
			Note:      holder.Note,
		})
	}
	return New(records, ovr.CrowdLabels)
}

// IsCrowd reports whether the label is a recognized generic crowd
// phrase; matching one is a deliberate non-match, never an error.
func (h *History) IsCrowd(label string) bool {
	return h.crowd[canonicalOffice(label)]
}

// Resolve returns the holder of the office as of the date. A label
// with no holder record returns the empty PersonID and no error; more
// than one live holder is an *AmbiguityError.
func (h *History) Resolve(label string, date types.Date) (types.PersonID, error) {
	wanted := canonicalOffice(label)
	if wanted == "" {
		return "", nil
	}
	var matching []Record
	for _, record := range h.records {
		if canonicalOffice(record.Office) == wanted {
			matching = append(matching, record)
		}
	}
	live := temporal.AsOf(matching, date)

	holders := make(map[types.PersonID]bool)
	var ordered []types.PersonID
	for _, record := range live {
		if !holders[record.PersonID] {
			holders[record.PersonID] = true
			ordered = append(ordered, record.PersonID)
		}
	}
	switch len(ordered) {
	case 0:
		return "", nil
	case 1:
		return ordered[0], nil
	default:
		return "", &AmbiguityError{Office: label, Date: date, Holders: ordered}
	}
}

// SetDeputy records the deputy-speaker pointer for the current
// document. The name is resolved lazily by the resolver, at the date
// of the speech that references the chair.
func (h *History) SetDeputy(name string) { h.deputyName = name }

// Deputy returns the current deputy pointer, or "".
func (h *History) Deputy() string { return h.deputyName }

// ClearDeputy resets the per-document pointer.
func (h *History) ClearDeputy() { h.deputyName = "" }

// canonicalOffice lowercases and strips the optional leading article
// and courtesy tokens so "The Deputy Speaker", "Mr Deputy Speaker",
// and "deputy speaker" compare equal.
func canonicalOffice(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	l = strings.TrimSuffix(l, ":")
	l = strings.TrimPrefix(l, "the ")
	for _, courtesy := range []string{"mr ", "mrs ", "madam ", "madame "} {
		l = strings.TrimPrefix(l, courtesy)
	}
	return strings.TrimSpace(l)
}

func rosterOfficeRecords(store *roster.Store) []Record {
	var records []Record
	for _, mship := range store.AllMemberships() {
		post, ok := store.Post(mship.PostID)
		if !ok || !post.IsOffice() {
			continue
		}
		records = append(records, Record{
			Office:    post.Role,
			PersonID:  mship.PersonID,
			StartDate: mship.StartDate,
			EndDate:   mship.EndDate,
		})
	}
	return records
}
