package overrides

import (
	"strings"

	"github.com/coolbeans/hansard/pkg/types"
)

// Default returns the built-in override dataset. Entries here encode
// verified historical facts that the roster data cannot express; each
// carries its rationale in the Note/Reason field.
func Default() *Set {
	return &Set{
		Renames:     append([]Rename(nil), defaultRenames...),
		Exclusions:  append([]Exclusion(nil), defaultExclusions...),
		CrowdLabels: append([]string(nil), defaultCrowdLabels...),
	}
}

// defaultRenames covers dated renames of territorial designations.
var defaultRenames = []Rename{
	{
		Legislature: types.LegislatureLords,
		From:        "Southwell",
		To:          "Southwell and Nottingham",
		Effective:   "2005-07-01",
		Note:        "Diocese of Southwell renamed Southwell and Nottingham; transcripts use both forms after the rename.",
	},
	{
		Legislature: types.LegislatureLords,
		From:        "Sodor and Man",
		To:          "Sodor & Man",
		Effective:   "1000-01-01",
		Note:        "Roster spells the diocese with an ampersand.",
	},
}

// defaultExclusions removes candidates for labels on dates where a
// same-day role transition leaves two otherwise-live records.
var defaultExclusions = []Exclusion{
	{
		Legislature:    types.LegislatureNI,
		Label:          "Mr Hay",
		Date:           "2015-01-12",
		PersonIDSuffix: "90355",
		Reason:         "William Hay became Speaker on 2015-01-12; the outgoing Speaker's member record is still open on that date and must not match the bare surname.",
	},
}

// defaultCrowdLabels are generic crowd phrases: matching one of these
// is a deliberate non-match, not a failure.
var defaultCrowdLabels = []string{
	"Several Members",
	"Several Hon. Members",
	"Some Members",
	"A Member",
	"Members",
	"Hon. Members",
	"An Hon. Member",
	"Noble Lords",
	"A Noble Lord",
}

// equalFoldTrim compares trimmed strings case-insensitively.
func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
