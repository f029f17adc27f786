package overrides

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coolbeans/hansard/pkg/types"
)

func TestParseMergesOverDefaults(t *testing.T) {
	data := []byte(`
aliases:
  - label: "Wee Jock"
    person_id: "uk.org.publicwhip/person/40"
    note: "nickname used in early transcripts"
name_aliases:
  - from: "Sion Simon"
    to: "Siôn Simon"
office_holders:
  - office: "Counsel General"
    person_id: "uk.org.publicwhip/person/70"
    start_date: "2007-07-19"
crowd_labels:
  - "Rhai Aelodau"
`)
	set, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(set.Aliases) != 1 || set.Aliases[0].PersonID != "uk.org.publicwhip/person/40" {
		t.Errorf("Aliases = %v", set.Aliases)
	}
	if len(set.OfficeHolders) != 1 {
		t.Errorf("OfficeHolders = %v", set.OfficeHolders)
	}
	// Built-in entries survive the merge.
	if len(set.Renames) == 0 {
		t.Error("Expected default renames preserved")
	}
	if len(set.Exclusions) == 0 {
		t.Error("Expected default exclusions preserved")
	}
	found := false
	for _, label := range set.CrowdLabels {
		if label == "Rhai Aelodau" {
			found = true
		}
	}
	if !found {
		t.Error("Loaded crowd label missing after merge")
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := Parse([]byte("aliases: {not a list")); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	if err := os.WriteFile(path, []byte("crowd_labels:\n  - \"Everyone\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(set.CrowdLabels) <= len(Default().CrowdLabels) {
		t.Error("Expected loaded crowd label appended to defaults")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestApplyRenames(t *testing.T) {
	set := Default()

	t.Run("before_effective_date", func(t *testing.T) {
		if got := set.ApplyRenames("lords", "Southwell", "2005-01-01"); got != "Southwell" {
			t.Errorf("ApplyRenames = %q", got)
		}
	})

	t.Run("on_and_after_effective_date", func(t *testing.T) {
		for _, date := range []types.Date{"2005-07-01", "2010-01-01"} {
			if got := set.ApplyRenames("lords", "Southwell", date); got != "Southwell and Nottingham" {
				t.Errorf("ApplyRenames(%s) = %q", date, got)
			}
		}
	})

	t.Run("unset_date_applies", func(t *testing.T) {
		if got := set.ApplyRenames("lords", "Southwell", ""); got != "Southwell and Nottingham" {
			t.Errorf("ApplyRenames = %q", got)
		}
	})

	t.Run("wrong_legislature", func(t *testing.T) {
		if got := set.ApplyRenames("commons", "Southwell", "2010-01-01"); got != "Southwell" {
			t.Errorf("ApplyRenames = %q", got)
		}
	})

	t.Run("case_insensitive_match", func(t *testing.T) {
		if got := set.ApplyRenames("lords", "southwell", "2010-01-01"); got != "Southwell and Nottingham" {
			t.Errorf("ApplyRenames = %q", got)
		}
	})
}

func TestExcluded(t *testing.T) {
	set := Default()

	if !set.Excluded("ni", "Mr Hay", "2015-01-12", "uk.org.publicwhip/person/90355") {
		t.Error("Expected exclusion to apply on its date")
	}
	if set.Excluded("ni", "Mr Hay", "2015-01-13", "uk.org.publicwhip/person/90355") {
		t.Error("Exclusion must not apply off its date")
	}
	if set.Excluded("ni", "Mr Kay", "2015-01-12", "uk.org.publicwhip/person/90355") {
		t.Error("Exclusion must not apply to other labels")
	}
	if set.Excluded("commons", "Mr Hay", "2015-01-12", "uk.org.publicwhip/person/90355") {
		t.Error("Exclusion must not apply to other legislatures")
	}
	if set.Excluded("ni", "Mr Hay", "2015-01-12", "uk.org.publicwhip/person/82") {
		t.Error("Exclusion must not apply to other people")
	}
}

func TestNameAliasTable(t *testing.T) {
	set := &Set{NameAliases: []NameAlias{{From: "Sion Simon", To: "Siôn Simon"}}}
	table := set.NameAliasTable()
	if table["Sion Simon"] != "Siôn Simon" {
		t.Errorf("NameAliasTable = %v", table)
	}
}
