// Package resolver maps a textual speaker label plus an as-of date to
// a canonical person identifier. Matching runs in tiers of decreasing
// confidence (exact alias, full structured match, name-only,
// constituency-only, last-name-only), each filtered by date, with
// candidates from a looser tier considered only when every tighter
// tier produced nothing. Nothing here guesses: every unresolved or
// over-resolved label surfaces as a typed error, because downstream
// output is treated as an authoritative public record.
package resolver

import (
	"sort"
	"strings"

	"github.com/coolbeans/hansard/pkg/grammar"
	"github.com/coolbeans/hansard/pkg/normalize"
	"github.com/coolbeans/hansard/pkg/office"
	"github.com/coolbeans/hansard/pkg/overrides"
	"github.com/coolbeans/hansard/pkg/roster"
	"github.com/coolbeans/hansard/pkg/temporal"
	"github.com/coolbeans/hansard/pkg/types"
)

// Config tunes a Resolver.
type Config struct {
	// Legislature selects the grammar and the override scope
	// (types.Legislature* constants).
	Legislature string

	// Overrides supplies the exception datasets; nil loads the
	// built-in defaults.
	Overrides *overrides.Set

	// Grammars supplies the parser registry; nil uses the default.
	Grammars *grammar.Registry
}

// Resolver is the central label+date -> person lookup. It is
// constructed against one roster store and one legislature, holds
// per-document session state, and performs no I/O of its own.
type Resolver struct {
	store       *roster.Store
	offices     *office.History
	grammars    *grammar.Registry
	overrides   *overrides.Set
	norm        *normalize.Normalizer
	legislature string
	session     *session
}

// New builds a resolver over an already-loaded roster store.
func New(store *roster.Store, cfg Config) *Resolver {
	ovr := cfg.Overrides
	if ovr == nil {
		ovr = overrides.Default()
	}
	grammars := cfg.Grammars
	if grammars == nil {
		grammars = grammar.DefaultRegistry()
	}
	legislature := cfg.Legislature
	if legislature == "" {
		legislature = types.LegislatureCommons
	}
	return &Resolver{
		store:       store,
		offices:     office.FromRoster(store, ovr),
		grammars:    grammars,
		overrides:   ovr,
		norm:        normalize.New(ovr.NameAliasTable()),
		legislature: legislature,
		session:     newSession(),
	}
}

// ClearSession resets all per-document state: recent speakers, office
// associations, and the deputy pointer. Callers invoke it at the start
// of each new date or source document.
func (r *Resolver) ClearSession() {
	r.session = newSession()
	r.offices.ClearDeputy()
}

// SetDeputy records the deputy-speaker pointer announced in the
// current document ("the deputy speaker in the chair is X"). The name
// is resolved at the date of the speech that references the chair.
func (r *Resolver) SetDeputy(name string) {
	r.offices.SetDeputy(name)
}

// Reload re-reads the backing roster document and rebuilds the office
// history from it. Session state survives a reload; only the caller
// knows where document boundaries are.
func (r *Resolver) Reload() error {
	if err := r.store.Reload(); err != nil {
		return err
	}
	r.offices = office.FromRoster(r.store, r.overrides)
	return nil
}

// Resolve maps one speaker label to a person ID as of the given date.
//
// A recognized generic crowd phrase ("Several Members") returns the
// empty PersonID with no error: a deliberate non-match. Every other
// failure is typed: *grammar.ParseError, *UnknownSpeakerError,
// *AmbiguousSpeakerError, or *office.AmbiguityError.
func (r *Resolver) Resolve(label string, date types.Date) (types.PersonID, error) {
	if r.offices.IsCrowd(label) {
		return "", nil
	}

	if id, ok := r.exactAlias(label, date); ok {
		return id, nil
	}

	parser, ok := r.grammars.ForLegislature(r.legislature)
	if !ok {
		return "", &grammar.ParseError{Fragment: label, Legislature: r.legislature, Context: "no parser registered"}
	}

	// Repair encoding artifacts and strip post-nominals before the
	// grammar sees the label; title tokens stay for the parser.
	prepared := r.norm.PrepareLabel(label)

	fields, err := parser.Parse(prepared)
	if err != nil {
		// A label like "The Deputy Speaker" may fail the name grammar
		// yet be a perfectly good office reference.
		if grammar.IsOfficeLabel(prepared) {
			return r.resolveOffice(prepared, date)
		}
		return "", err
	}

	if fields.SpeakerCode != "" {
		if id, ok := r.store.PersonByIdentifier(grammar.SeneddSpeakerScheme, fields.SpeakerCode); ok {
			r.session.noteSpeaker(id)
			return id, nil
		}
		return "", &UnknownSpeakerError{Label: label, Date: date}
	}

	// A peerage label may carry only a territorial designation
	// ("The Earl of Onslow"); that is a name match, not an office.
	if !fields.HasPersonalName() && fields.Place == "" {
		return r.resolveOffice(fields.Office, date)
	}

	id, err := r.resolveFields(label, fields, date)
	if err != nil {
		return "", err
	}
	r.session.noteSpeaker(id)
	if fields.Office != "" {
		r.session.noteOffice(canonical(fields.Office), id)
	}
	return id, nil
}

// Search is the non-raising bulk variant: it returns every candidate
// from the first matching tier, deduplicated and sorted, for callers
// that disambiguate downstream. Unparseable labels and empty results
// both return an empty set. An unset date disables interval filtering.
func (r *Resolver) Search(label string, date types.Date) []types.PersonID {
	if r.offices.IsCrowd(label) {
		return nil
	}
	if id, ok := r.exactAlias(label, date); ok {
		return []types.PersonID{id}
	}
	parser, ok := r.grammars.ForLegislature(r.legislature)
	if !ok {
		return nil
	}
	prepared := r.norm.PrepareLabel(label)
	fields, err := parser.Parse(prepared)
	if err != nil {
		if grammar.IsOfficeLabel(prepared) {
			if id, err := r.resolveOffice(prepared, date); err == nil && id != "" {
				return []types.PersonID{id}
			}
		}
		return nil
	}
	if fields.SpeakerCode != "" {
		if id, ok := r.store.PersonByIdentifier(grammar.SeneddSpeakerScheme, fields.SpeakerCode); ok {
			return []types.PersonID{id}
		}
		return nil
	}
	if !fields.HasPersonalName() && fields.Place == "" {
		if id, err := r.resolveOffice(fields.Office, date); err == nil && id != "" {
			return []types.PersonID{id}
		}
		return nil
	}
	entries, _ := r.tieredCandidates(label, fields, date)
	return personIDs(entries)
}

// exactAlias checks the manually curated full-label override table.
func (r *Resolver) exactAlias(label string, date types.Date) (types.PersonID, bool) {
	cleaned := r.norm.Clean(label)
	var matching []overrides.Alias
	for _, alias := range r.overrides.Aliases {
		if strings.EqualFold(alias.Label, cleaned) || strings.EqualFold(alias.Label, strings.TrimSpace(label)) {
			matching = append(matching, alias)
		}
	}
	live := temporal.AsOf(matching, date)
	if len(live) == 0 {
		return "", false
	}
	return live[0].PersonID, true
}

// resolveOffice handles labels that denote a role rather than a
// person: session back-references first, then the deputy pointer,
// then the office history.
func (r *Resolver) resolveOffice(label string, date types.Date) (types.PersonID, error) {
	canon := canonical(label)
	if canon == "" {
		return "", &UnknownSpeakerError{Label: label, Date: date}
	}

	if id, ok := r.session.officeSeen[canon]; ok {
		return id, nil
	}

	if strings.Contains(canon, "deputy") {
		// A pointer that itself canonicalizes to the deputy office
		// cannot resolve through itself.
		if deputyName := r.offices.Deputy(); deputyName != "" && canonical(deputyName) != canon {
			id, err := r.Resolve(deputyName, date)
			if err != nil {
				return "", err
			}
			if id != "" {
				r.session.noteOffice(canon, id)
				return id, nil
			}
		}
	}

	id, err := r.offices.Resolve(label, date)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", &UnknownSpeakerError{Label: label, Date: date}
	}
	r.session.noteOffice(canon, id)
	return id, nil
}

// resolveFields runs the tiered match and the disambiguation rules.
func (r *Resolver) resolveFields(label string, fields *grammar.Fields, date types.Date) (types.PersonID, error) {
	entries, inconsistent := r.tieredCandidates(label, fields, date)

	if inconsistent != "" {
		return "", &AmbiguousSpeakerError{
			Label:      label,
			Date:       date,
			Reason:     inconsistent,
			Candidates: candidates(entries),
		}
	}

	ids := personIDs(entries)
	switch len(ids) {
	case 0:
		return "", &UnknownSpeakerError{Label: r.norm.Clean(label), Date: date}
	case 1:
		return ids[0], nil
	}

	// Tie-break: prefer the person already active in this debate.
	var inSession []types.PersonID
	for _, id := range ids {
		if r.session.recent[id] {
			inSession = append(inSession, id)
		}
	}
	if len(inSession) == 1 {
		return inSession[0], nil
	}

	return "", &AmbiguousSpeakerError{Label: label, Date: date, Candidates: candidates(entries)}
}

// tieredCandidates produces the candidate entries for a parsed label,
// trying tiers strictly tightest-first, and reports a non-empty reason
// string when loose name and constituency matches contradict each
// other in the same date window.
func (r *Resolver) tieredCandidates(label string, fields *grammar.Fields, date types.Date) ([]roster.Entry, string) {
	names := r.store.Names()

	if r.legislature == types.LegislatureLords {
		return r.applyExclusions(label, date, r.lordsTiers(names, fields, date)), ""
	}

	exclude := func(entries []roster.Entry) []roster.Entry {
		return r.applyExclusions(label, date, entries)
	}

	// Tier 1: every structured field at once.
	fullName := fields.FullName()
	if fullName != "" {
		tier := filterEntries(temporal.AsOf(names.ByFullName(fullName), date), fields, true)
		if scoped := exclude(r.narrowSegments(tier, fields)); len(scoped) > 0 {
			return scoped, ""
		}
	}

	// Tier 2: personal name only.
	var nameTier []roster.Entry
	if fullName != "" {
		nameTier = exclude(temporal.AsOf(names.ByFullName(fullName), date))
	}

	// Tier 3: territorial designation only.
	var seatTier []roster.Entry
	if fields.Constituency != "" {
		seatTier = exclude(temporal.AsOf(names.ByConstituency(fields.Constituency), date))
	}

	// Cross-tier consistency: a name match and a constituency match
	// that disagree about who was there is bad data, not a choice.
	if len(nameTier) > 0 && len(seatTier) > 0 {
		common := intersectEntries(nameTier, seatTier)
		if len(common) > 0 {
			return r.narrowSegments(common, fields), ""
		}
		return append(nameTier, seatTier...), "name and constituency match different people"
	}
	if len(nameTier) > 0 {
		return r.narrowSegments(nameTier, fields), ""
	}
	if len(seatTier) > 0 {
		return r.narrowSegments(seatTier, fields), ""
	}

	// Tier 4: last name only.
	if fields.LastName != "" {
		tier := exclude(temporal.AsOf(names.ByFamilyName(fields.LastName), date))
		return r.narrowSegments(tier, fields), ""
	}
	return nil, ""
}

// lordsTiers matches peerage labels: title plus name plus territorial
// designation, loosening one field at a time. The territorial
// designation is rewritten through the dated rename table first, so a
// pre-rename transcript matches the post-rename roster record.
func (r *Resolver) lordsTiers(names *roster.NameIndex, fields *grammar.Fields, date types.Date) []roster.Entry {
	place := r.overrides.ApplyRenames(r.legislature, fields.Place, date)

	match := func(entries []roster.Entry, checkPlace bool) []roster.Entry {
		live := temporal.AsOf(entries, date)
		var out []roster.Entry
		for _, entry := range live {
			if fields.Title != "" && entry.Title != "" && entry.Title != fields.Title {
				continue
			}
			if checkPlace && place != "" && entry.Place != "" && !strings.EqualFold(entry.Place, place) {
				continue
			}
			out = append(out, entry)
		}
		return out
	}

	if fields.LastName != "" {
		if tier := match(names.ByLordName(fields.LastName), true); len(tier) > 0 {
			return tier
		}
	}
	if place != "" {
		if tier := match(names.ByPlace(place), false); len(tier) > 0 {
			return tier
		}
	}
	if fields.LastName != "" {
		if tier := match(names.ByLordName(fields.LastName), false); len(tier) > 0 {
			return tier
		}
	}
	return nil
}

// narrowSegments applies Scottish-style bracket narrowing: each
// unclassified segment must keep the candidate set non-empty to be
// applied, and narrowing stops once a single candidate remains.
func (r *Resolver) narrowSegments(entries []roster.Entry, fields *grammar.Fields) []roster.Entry {
	if len(entries) <= 1 {
		return entries
	}
	for _, segment := range append([]string{fields.Party}, fields.Segments...) {
		if segment == "" {
			continue
		}
		var narrowed []roster.Entry
		seg := strings.ToLower(strings.TrimSpace(segment))
		for _, entry := range entries {
			if entry.Constituency == seg || entry.Party == seg || partyMatches(entry.Party, seg) {
				narrowed = append(narrowed, entry)
			}
		}
		if len(narrowed) > 0 {
			entries = narrowed
		}
		if len(personIDs(entries)) == 1 {
			break
		}
	}
	return entries
}

// applyExclusions drops candidates the override dataset rules out for
// this label and date.
func (r *Resolver) applyExclusions(label string, date types.Date, entries []roster.Entry) []roster.Entry {
	var out []roster.Entry
	for _, entry := range entries {
		if r.overrides.Excluded(r.legislature, strings.TrimSpace(label), date, entry.PersonID) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// filterEntries keeps entries consistent with every structured field
// present. With strict set, a field on the label that the entry cannot
// confirm (both sides non-empty and different) rejects the entry.
func filterEntries(entries []roster.Entry, fields *grammar.Fields, strict bool) []roster.Entry {
	var out []roster.Entry
	for _, entry := range entries {
		if strict {
			if fields.Title != "" && entry.Title != "" && entry.Title != strings.ToLower(fields.Title) {
				continue
			}
			if fields.Constituency != "" && entry.Constituency != "" &&
				!strings.EqualFold(entry.Constituency, strings.TrimSpace(fields.Constituency)) {
				continue
			}
			if fields.Party != "" && entry.Party != "" && !partyMatches(entry.Party, fields.Party) {
				continue
			}
		}
		out = append(out, entry)
	}
	return out
}

// partyMatches compares a roster party name against a transcript party
// designation, tolerating the short codes transcripts use.
func partyMatches(rosterParty, labelParty string) bool {
	a := strings.ToLower(strings.TrimSpace(rosterParty))
	b := strings.ToLower(strings.TrimSpace(labelParty))
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	short := map[string]string{
		"scottish national party": "snp",
		"liberal democrat":        "ld",
		"liberal democrats":       "ld",
		"conservative":            "con",
		"labour":                  "lab",
		"plaid cymru":             "pc",
		"democratic unionist party": "dup",
		"ulster unionist party":     "uup",
		"social democratic and labour party": "sdlp",
		"sinn féin": "sf",
		"sinn fein": "sf",
	}
	if code, ok := short[a]; ok && code == b {
		return true
	}
	if code, ok := short[b]; ok && code == a {
		return true
	}
	return false
}

// intersectEntries returns the entries of a whose person also appears in b.
func intersectEntries(a, b []roster.Entry) []roster.Entry {
	inB := make(map[types.PersonID]bool, len(b))
	for _, entry := range b {
		inB[entry.PersonID] = true
	}
	var out []roster.Entry
	for _, entry := range a {
		if inB[entry.PersonID] {
			out = append(out, entry)
		}
	}
	return out
}

// personIDs deduplicates entries to their distinct people, sorted for
// deterministic output.
func personIDs(entries []roster.Entry) []types.PersonID {
	seen := make(map[types.PersonID]bool, len(entries))
	var ids []types.PersonID
	for _, entry := range entries {
		if !seen[entry.PersonID] {
			seen[entry.PersonID] = true
			ids = append(ids, entry.PersonID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// candidates converts entries to the error-carrying candidate form,
// one per person, deterministically ordered.
func candidates(entries []roster.Entry) []Candidate {
	seen := make(map[types.PersonID]bool, len(entries))
	var out []Candidate
	for _, entry := range entries {
		if !seen[entry.PersonID] {
			seen[entry.PersonID] = true
			out = append(out, candidateFromEntry(entry))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PersonID < out[j].PersonID })
	return out
}

// canonical mirrors the office history's label canonicalization for
// session bookkeeping.
func canonical(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	l = strings.TrimSuffix(l, ":")
	l = strings.TrimPrefix(l, "the ")
	for _, courtesy := range []string{"mr ", "mrs ", "madam ", "madame "} {
		l = strings.TrimPrefix(l, courtesy)
	}
	return strings.TrimSpace(l)
}
