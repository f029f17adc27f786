package roster

import (
	"sort"
	"strings"

	"github.com/coolbeans/hansard/pkg/types"
)

// Entry is one derived name-index record: a normalized name key mapped
// to a membership, with the disambiguating fields the resolver's
// tie-breaks need. The interval is the intersection of the membership
// tenure and the name rendering's own validity window.
type Entry struct {
	PersonID     types.PersonID
	MembershipID types.MembershipID
	StartDate    types.Date
	EndDate      types.Date

	Title        string // lowercased honorific or peerage title
	Place        string // peerage territorial designation, lowercased
	Constituency string // seat area, lowercased
	Party        string // on-behalf-of organization name, lowercased
	Legislature  types.OrgID
}

// Interval returns the window in which this entry is a valid match.
func (e Entry) Interval() (types.Date, types.Date) {
	return e.StartDate, e.EndDate
}

// NameIndex maps normalized name strings to candidate entries.
// It is built once per snapshot and never mutated afterwards.
type NameIndex struct {
	full         map[string][]Entry // "given family"
	family       map[string][]Entry // "family"
	lord         map[string][]Entry // peerage lordname
	place        map[string][]Entry // peerage territorial designation
	constituency map[string][]Entry // seat area
	size         int
}

// ByFullName returns candidates whose "Given Family" rendering matches.
func (idx *NameIndex) ByFullName(name string) []Entry { return idx.full[key(name)] }

// ByFamilyName returns candidates whose family name matches.
func (idx *NameIndex) ByFamilyName(name string) []Entry { return idx.family[key(name)] }

// ByLordName returns candidates whose peerage name matches
// ("Lord Smith of Finsbury" -> "smith").
func (idx *NameIndex) ByLordName(name string) []Entry { return idx.lord[key(name)] }

// ByPlace returns candidates whose territorial designation matches
// ("of Finsbury" -> "finsbury", "Bishop of Southwark" -> "southwark").
func (idx *NameIndex) ByPlace(name string) []Entry { return idx.place[key(name)] }

// ByConstituency returns candidates holding the named seat.
func (idx *NameIndex) ByConstituency(name string) []Entry { return idx.constituency[key(name)] }

// Len returns the total number of index entries.
func (idx *NameIndex) Len() int { return idx.size }

func key(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// buildNameIndex derives the full index from a validated snapshot.
// One membership yields one entry per name rendering whose validity
// window intersects the tenure.
func buildNameIndex(snap *snapshot) *NameIndex {
	idx := &NameIndex{
		full:         make(map[string][]Entry),
		family:       make(map[string][]Entry),
		lord:         make(map[string][]Entry),
		place:        make(map[string][]Entry),
		constituency: make(map[string][]Entry),
	}

	for _, mship := range snap.membershipByID {
		person := snap.personByID[mship.PersonID]
		post := snap.postByID[mship.PostID]

		party := ""
		if org, ok := snap.orgByID[mship.OnBehalfOfID]; ok {
			party = key(org.Name)
		}

		for _, name := range person.OtherNames {
			start, end := intersect(mship.StartDate, mship.EndDate, name.StartDate, name.EndDate)
			if start == "" && end == "" {
				continue // disjoint windows
			}
			entry := Entry{
				PersonID:     mship.PersonID,
				MembershipID: mship.ID,
				StartDate:    start,
				EndDate:      end,
				Title:        key(name.HonorificPrefix),
				Place:        key(name.Lordofname),
				Constituency: key(post.Area),
				Party:        party,
				Legislature:  mship.OrganizationID,
			}
			if name.IsPeerage() {
				if name.Lordname != "" {
					idx.add(idx.lord, name.Lordname, entry)
				}
				if name.Lordofname != "" {
					idx.add(idx.place, name.Lordofname, entry)
				}
				continue
			}
			if full := name.FullName(); full != "" {
				idx.add(idx.full, full, entry)
			}
			if name.FamilyName != "" {
				idx.add(idx.family, name.FamilyName, entry)
			}
			if post.Area != "" {
				idx.add(idx.constituency, post.Area, entry)
			}
		}
	}

	// Deterministic candidate ordering regardless of map iteration.
	for _, bucket := range []map[string][]Entry{idx.full, idx.family, idx.lord, idx.place, idx.constituency} {
		for _, entries := range bucket {
			sort.Slice(entries, func(i, j int) bool {
				if entries[i].PersonID != entries[j].PersonID {
					return entries[i].PersonID < entries[j].PersonID
				}
				return entries[i].MembershipID < entries[j].MembershipID
			})
		}
	}
	return idx
}

func (idx *NameIndex) add(bucket map[string][]Entry, name string, entry Entry) {
	bucket[key(name)] = append(bucket[key(name)], entry)
	idx.size++
}

// intersect returns the overlap of two intervals, or ("","") when they
// are disjoint. Unset bounds widen to the sentinels as usual.
func intersect(aStart, aEnd, bStart, bEnd types.Date) (types.Date, types.Date) {
	start := aStart.OrMin()
	if bStart.OrMin().After(start) {
		start = bStart.OrMin()
	}
	end := aEnd.OrMax()
	if bEnd.OrMax().Before(end) {
		end = bEnd.OrMax()
	}
	if start.After(end) {
		return "", ""
	}
	return start, end
}
