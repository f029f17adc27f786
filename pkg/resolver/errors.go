package resolver

import (
	"fmt"

	"github.com/coolbeans/hansard/pkg/roster"
	"github.com/coolbeans/hansard/pkg/types"
)

// Candidate is one possible match, with the attributes that
// distinguish it from its rivals. Ambiguity errors carry the full
// candidate list so a human or the patch tooling can pick.
type Candidate struct {
	PersonID     types.PersonID     `json:"person_id"`
	MembershipID types.MembershipID `json:"membership_id,omitempty"`
	Title        string             `json:"title,omitempty"`
	Constituency string             `json:"constituency,omitempty"`
	Party        string             `json:"party,omitempty"`
	StartDate    types.Date         `json:"start_date,omitempty"`
	EndDate      types.Date         `json:"end_date,omitempty"`
}

func candidateFromEntry(entry roster.Entry) Candidate {
	return Candidate{
		PersonID:     entry.PersonID,
		MembershipID: entry.MembershipID,
		Title:        entry.Title,
		Constituency: entry.Constituency,
		Party:        entry.Party,
		StartDate:    entry.StartDate,
		EndDate:      entry.EndDate,
	}
}

// UnknownSpeakerError means the grammar parsed the label but no roster
// record matches at the given date.
type UnknownSpeakerError struct {
	Label string
	Date  types.Date
}

func (e *UnknownSpeakerError) Error() string {
	return fmt.Sprintf("unknown speaker %q on %s", e.Label, e.Date)
}

// AmbiguousSpeakerError means multiple roster records match and no
// tie-break resolves them. A non-empty Reason marks a detected data
// inconsistency (e.g. name and constituency pointing at different
// people in the same date window).
type AmbiguousSpeakerError struct {
	Label      string
	Date       types.Date
	Reason     string
	Candidates []Candidate
}

func (e *AmbiguousSpeakerError) Error() string {
	msg := fmt.Sprintf("ambiguous speaker %q on %s: %d candidates", e.Label, e.Date, len(e.Candidates))
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}
