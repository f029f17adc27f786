package normalize

import "testing"

func TestNormalizeStripCounts(t *testing.T) {
	// "The Rt Hon" strips as one token, "Dr" as a second, "MP" as a
	// trailing post-nominal group.
	result := New(nil).Normalize("The Rt Hon. Dr John Smith MP")
	if result.Cleaned != "John Smith" {
		t.Errorf("Expected %q, got %q", "John Smith", result.Cleaned)
	}
	if result.PrefixesStripped != 2 {
		t.Errorf("Expected 2 leading tokens stripped, got %d", result.PrefixesStripped)
	}
	if result.SuffixesStripped != 1 {
		t.Errorf("Expected 1 trailing token stripped, got %d", result.SuffixesStripped)
	}
}

func TestNormalize(t *testing.T) {
	norm := New(nil)
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "John Smith", "John Smith"},
		{"courtesy", "Mr Hay", "Hay"},
		{"stacked_titles", "The Rt Hon Sir John Smith", "John Smith"},
		{"post_nominals", "John Smith, KCMG OBE", "John Smith"},
		{"trailing_colon", "Mr Deputy Speaker:", "Deputy Speaker"},
		{"entities", "John&nbsp;O&#8217;Brien", "John O'Brien"},
		{"nbsp_char", "John Smith", "John Smith"},
		{"whitespace", "  John   Smith  ", "John Smith"},
		{"ocr_surname", "M'Donald", "McDonald"},
		{"title_only_not_emptied", "The Speaker", "Speaker"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := norm.Clean(tc.input); got != tc.want {
				t.Errorf("Clean(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	norm := New(nil)
	inputs := []string{
		"The Rt Hon. Dr John Smith MP",
		"Mr Hay",
		"John&nbsp;O&#8217;Brien",
		"Baroness Williams of Crosby",
		"",
		"???",
	}
	for _, input := range inputs {
		once := norm.Clean(input)
		twice := norm.Clean(once)
		if once != twice {
			t.Errorf("Normalization not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeNeverEmptiesBareTitle(t *testing.T) {
	// A label that is nothing but title tokens must survive, not
	// normalize to the empty string.
	if got := New(nil).Clean("Mr"); got != "Mr" {
		t.Errorf("Expected bare title to pass through, got %q", got)
	}
}

func TestPrepareLabel(t *testing.T) {
	norm := New(nil)
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"post_nominal", "Mr John Smith MP", "Mr John Smith"},
		{"entity", "Mr John&nbsp;Smith", "Mr John Smith"},
		{"titles_kept", "The Lord Bishop of Southwark", "The Lord Bishop of Southwark"},
		{"colon_kept", "Lord Hattersley:", "Lord Hattersley:"},
		{"honours_before_colon", "Sir John Smith, KCMG OBE:", "Sir John Smith:"},
		{"speaker_code", "214", "214"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := norm.PrepareLabel(tc.input); got != tc.want {
				t.Errorf("PrepareLabel(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeAliasTargetReduced(t *testing.T) {
	// An alias target carrying a courtesy title is reduced at
	// construction, so applying the alias stays idempotent.
	norm := New(map[string]string{
		"Sion Simon": "Mr Siôn Simon",
	})
	once := norm.Clean("Mr Sion Simon")
	if once != "Siôn Simon" {
		t.Fatalf("Clean = %q, want %q", once, "Siôn Simon")
	}
	if twice := norm.Clean(once); twice != once {
		t.Errorf("Alias output not stable: %q then %q", once, twice)
	}
}

func TestNormalizeAliases(t *testing.T) {
	norm := New(map[string]string{
		"Sion Simon": "Siôn Simon",
	})
	if got := norm.Clean("Mr Sion Simon"); got != "Siôn Simon" {
		t.Errorf("Expected alias applied after stripping, got %q", got)
	}
	// The alias target is stable under re-normalization.
	if got := norm.Clean("Siôn Simon"); got != "Siôn Simon" {
		t.Errorf("Expected alias target unchanged, got %q", got)
	}
}

func TestNormalizeUnparseableInputUnchanged(t *testing.T) {
	norm := New(nil)
	for _, weird := range []string{"12345", "???", "—", "(()"} {
		got := norm.Normalize(weird)
		if got.PrefixesStripped != 0 || got.SuffixesStripped != 0 {
			t.Errorf("Nothing should strip from %q", weird)
		}
	}
}
