package types

import "strings"

// PersonID is the stable, globally unique identifier of a person.
// IDs are never reused; a person keeps the same ID across every title,
// seat, and office they ever hold.
type PersonID string

// MembershipID identifies one continuous tenure of a person in a post.
type MembershipID string

// PostID identifies a seat or office.
type PostID string

// OrgID identifies a legislature or party.
type OrgID string

// Reason enumerates why a membership started or ended.
type Reason string

const (
	ReasonGeneralElection   Reason = "general_election"
	ReasonRegionalElection  Reason = "regional_election"
	ReasonByElection        Reason = "by_election"
	ReasonChangedParty      Reason = "changed_party"
	ReasonChangedName       Reason = "changed_name"
	ReasonBecamePresiding   Reason = "became_presiding_officer"
	ReasonResigned          Reason = "resigned"
	ReasonDisqualified      Reason = "disqualified"
	ReasonDeceased          Reason = "deceased"
	ReasonDissolution       Reason = "dissolution"
	ReasonStillInOffice     Reason = "still_in_office"
	ReasonUnknown           Reason = ""
)

// OtherName is one rendering of a person's name. Commons-style names
// carry given/family parts; peerage titles carry lordname ("Lord
// <Lordname>") and/or lordofname ("of <Lordofname>") parts.
type OtherName struct {
	GivenName       string `json:"given_name,omitempty"`
	FamilyName      string `json:"family_name,omitempty"`
	Lordname        string `json:"lordname,omitempty"`
	Lordofname      string `json:"lordofname,omitempty"`
	HonorificPrefix string `json:"honorific_prefix,omitempty"`
	Note            string `json:"note,omitempty"`
	StartDate       Date   `json:"start_date,omitempty"`
	EndDate         Date   `json:"end_date,omitempty"`
}

// FullName returns the "Given Family" rendering, or whichever part is present.
func (n OtherName) FullName() string {
	if n.GivenName != "" && n.FamilyName != "" {
		return n.GivenName + " " + n.FamilyName
	}
	if n.FamilyName != "" {
		return n.FamilyName
	}
	return n.GivenName
}

// IsPeerage reports whether the name is a peerage-style rendering.
func (n OtherName) IsPeerage() bool {
	return n.Lordname != "" || n.Lordofname != ""
}

// Interval returns the validity window of this rendering.
func (n OtherName) Interval() (Date, Date) {
	return n.StartDate, n.EndDate
}

// Identifier is a cross-reference key into an external dataset
// (e.g. scheme "datadotparl_id" or a legislature's own speaker codes).
type Identifier struct {
	Scheme     string `json:"scheme"`
	Identifier string `json:"identifier"`
}

// Person is a canonical human identity, stable across roles, titles,
// and time. Persons are only ever created by roster import, never
// deleted; new names and identifiers accrue over time.
type Person struct {
	ID          PersonID     `json:"id"`
	OtherNames  []OtherName  `json:"other_names,omitempty"`
	Identifiers []Identifier `json:"identifiers,omitempty"`
}

// NamesAsOf returns the name renderings valid on the given date.
// An unset date matches every rendering.
func (p *Person) NamesAsOf(date Date) []OtherName {
	var names []OtherName
	for _, n := range p.OtherNames {
		if date.IsZero() || (!date.Before(n.StartDate.OrMin()) && !date.After(n.EndDate.OrMax())) {
			names = append(names, n)
		}
	}
	return names
}

// Membership is one continuous tenure of a person holding a post inside
// an organization, on behalf of a party. End dates default to the
// DateMax sentinel while the tenure is ongoing; tenures are soft-ended,
// never removed.
type Membership struct {
	ID             MembershipID `json:"id"`
	PersonID       PersonID     `json:"person_id"`
	PostID         PostID       `json:"post_id"`
	OrganizationID OrgID        `json:"organization_id"`
	OnBehalfOfID   OrgID        `json:"on_behalf_of_id,omitempty"`
	StartDate      Date         `json:"start_date,omitempty"`
	EndDate        Date         `json:"end_date,omitempty"`
	StartReason    Reason       `json:"start_reason,omitempty"`
	EndReason      Reason       `json:"end_reason,omitempty"`
}

// Interval returns the tenure window.
func (m *Membership) Interval() (Date, Date) {
	return m.StartDate, m.EndDate
}

// Overlaps reports whether two tenures share at least one day.
func (m *Membership) Overlaps(other *Membership) bool {
	return !m.StartDate.OrMin().After(other.EndDate.OrMax()) &&
		!other.StartDate.OrMin().After(m.EndDate.OrMax())
}

// Post is a seat or office: a constituency seat, or a non-elected
// office such as "Speaker" or "Deputy Presiding Officer".
type Post struct {
	ID             PostID `json:"id"`
	Role           string `json:"role"`
	OrganizationID OrgID  `json:"organization_id"`
	Area           string `json:"area,omitempty"`
	StartDate      Date   `json:"start_date,omitempty"`
	EndDate        Date   `json:"end_date,omitempty"`
}

// Interval returns the window during which the post existed.
func (p *Post) Interval() (Date, Date) {
	return p.StartDate, p.EndDate
}

// IsOffice reports whether the post is a named office rather than a
// territorial seat.
func (p *Post) IsOffice() bool { return p.Area == "" }

// OrgClassification distinguishes legislatures from parties.
type OrgClassification string

const (
	OrgLegislature OrgClassification = "legislature"
	OrgParty       OrgClassification = "party"
)

// Organization is a legislature or a party.
type Organization struct {
	ID             OrgID             `json:"id"`
	Name           string            `json:"name"`
	Classification OrgClassification `json:"classification"`
}

// Legislature codes used by the grammar parsers and resolver.
const (
	LegislatureCommons  = "commons"
	LegislatureLords    = "lords"
	LegislatureScotland = "scotland"
	LegislatureNI       = "ni"
	LegislatureSenedd   = "senedd"
)

// SuffixMatches reports whether id ends with the given short suffix.
// Override datasets refer to people by the numeric tail of their ID
// (e.g. "90355" for ".../member/90355") so entries stay readable.
func (id PersonID) SuffixMatches(suffix string) bool {
	if suffix == "" {
		return false
	}
	return strings.HasSuffix(string(id), suffix)
}
