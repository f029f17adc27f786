// Package overrides holds the hand-maintained exception datasets that
// the resolver consults: exact-label aliases, office-holder records
// that the roster lacks, per-legislature candidate exclusions, and
// dated title renames. Keeping these as data rather than code branches
// keeps the matching algorithm generic while isolating historical
// quirks where they can carry their rationale.
package overrides

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/hansard/pkg/types"
)

// Alias maps a full speaker label (after normalization) straight to a
// person, bypassing the matching tiers. Used for known hard cases.
type Alias struct {
	Label     string        `yaml:"label"`
	PersonID  types.PersonID `yaml:"person_id"`
	StartDate types.Date    `yaml:"start_date,omitempty"`
	EndDate   types.Date    `yaml:"end_date,omitempty"`
	Note      string        `yaml:"note,omitempty"`
}

// Interval returns the window in which the alias applies.
func (a Alias) Interval() (types.Date, types.Date) {
	return a.StartDate, a.EndDate
}

// NameAlias rewrites a recurring bad rendering of a name to its
// canonical form before index lookup.
type NameAlias struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Note string `yaml:"note,omitempty"`
}

// OfficeHolder records who held a named office over a date range, for
// offices the roster's membership records do not cover.
type OfficeHolder struct {
	Office    string         `yaml:"office"`
	PersonID  types.PersonID `yaml:"person_id"`
	StartDate types.Date     `yaml:"start_date,omitempty"`
	EndDate   types.Date     `yaml:"end_date,omitempty"`
	Note      string         `yaml:"note,omitempty"`
}

// Interval returns the holding window.
func (o OfficeHolder) Interval() (types.Date, types.Date) {
	return o.StartDate, o.EndDate
}

// Exclusion removes a candidate from consideration for a specific
// label on a specific date. These encode undocumented real-world edge
// cases (mid-day role transitions); the rationale travels with the
// entry because the underlying fact is not recoverable from the data.
type Exclusion struct {
	Legislature    string     `yaml:"legislature"`
	Label          string     `yaml:"label,omitempty"`
	Date           types.Date `yaml:"date"`
	PersonIDSuffix string     `yaml:"person_id_suffix"`
	Reason         string     `yaml:"reason"`
}

// Rename substitutes one territorial designation for another from an
// effective date onward (diocese renames, constituency renames).
type Rename struct {
	Legislature string     `yaml:"legislature"`
	From        string     `yaml:"from"`
	To          string     `yaml:"to"`
	Effective   types.Date `yaml:"effective"`
	Note        string     `yaml:"note,omitempty"`
}

// Set is the full override dataset consulted by a resolver instance.
type Set struct {
	Aliases       []Alias        `yaml:"aliases,omitempty"`
	NameAliases   []NameAlias    `yaml:"name_aliases,omitempty"`
	OfficeHolders []OfficeHolder `yaml:"office_holders,omitempty"`
	Exclusions    []Exclusion    `yaml:"exclusions,omitempty"`
	Renames       []Rename       `yaml:"renames,omitempty"`
	CrowdLabels   []string       `yaml:"crowd_labels,omitempty"`
}

// Load reads an override dataset from a YAML file and merges it over
// the built-in defaults.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML override data and merges it over the defaults.
func Parse(data []byte) (*Set, error) {
	var loaded Set
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing overrides: %w", err)
	}
	merged := Default()
	merged.Aliases = append(merged.Aliases, loaded.Aliases...)
	merged.NameAliases = append(merged.NameAliases, loaded.NameAliases...)
	merged.OfficeHolders = append(merged.OfficeHolders, loaded.OfficeHolders...)
	merged.Exclusions = append(merged.Exclusions, loaded.Exclusions...)
	merged.Renames = append(merged.Renames, loaded.Renames...)
	merged.CrowdLabels = append(merged.CrowdLabels, loaded.CrowdLabels...)
	return merged, nil
}

// NameAliasTable flattens the name aliases into the map form the
// normalizer consumes.
func (s *Set) NameAliasTable() map[string]string {
	table := make(map[string]string, len(s.NameAliases))
	for _, alias := range s.NameAliases {
		table[alias.From] = alias.To
	}
	return table
}

// ApplyRenames rewrites a territorial designation according to the
// renames in force for the given legislature and date.
func (s *Set) ApplyRenames(legislature, place string, date types.Date) string {
	for _, rename := range s.Renames {
		if rename.Legislature != "" && rename.Legislature != legislature {
			continue
		}
		if !date.IsZero() && date.Before(rename.Effective) {
			continue
		}
		if equalFoldTrim(rename.From, place) {
			place = rename.To
		}
	}
	return place
}

// Excluded reports whether a candidate is excluded for the given
// legislature, label, and date.
func (s *Set) Excluded(legislature, label string, date types.Date, id types.PersonID) bool {
	for _, exclusion := range s.Exclusions {
		if exclusion.Legislature != "" && exclusion.Legislature != legislature {
			continue
		}
		if exclusion.Label != "" && !equalFoldTrim(exclusion.Label, label) {
			continue
		}
		if !exclusion.Date.IsZero() && exclusion.Date != date {
			continue
		}
		if id.SuffixMatches(exclusion.PersonIDSuffix) {
			return true
		}
	}
	return false
}
